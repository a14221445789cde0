package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"openway/internal/model"
)

// ObjectAPI is the part of *s3.Client the S3 repository uses.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options configures an S3-compatible endpoint (AWS, R2, MinIO).
type S3Options struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3Client builds an S3 client. With static credentials and a custom
// endpoint it works against any S3-compatible store.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

type s3ThemeValue struct {
	IsDarkMode bool      `json:"isDarkMode"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type s3ThemeRepository struct {
	api    ObjectAPI
	bucket string
	prefix string
}

// NewS3ThemeRepository stores one JSON object per device under prefix.
// Create uses If-None-Match so an existing object is a conflict; Update
// requires the object to exist and writes with If-Match on its ETag.
func NewS3ThemeRepository(api ObjectAPI, bucket, prefix string) ThemePreferenceRepository {
	return &s3ThemeRepository{
		api:    api,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (r *s3ThemeRepository) objectKey(id model.DeviceID) string {
	if r.prefix == "" {
		return id.String() + ".json"
	}
	return r.prefix + "/" + id.String() + ".json"
}

func (r *s3ThemeRepository) Get(ctx context.Context, id model.DeviceID) (*model.ThemePreference, error) {
	out, err := r.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.objectKey(id)),
	})
	if isS3NotFound(err) {
		return nil, fmt.Errorf("get theme preference: %w", model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get theme preference: %w", err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read theme preference: %w", err)
	}
	var v s3ThemeValue
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("decode theme preference: %w", err)
	}
	return &model.ThemePreference{ID: id, IsDarkMode: v.IsDarkMode, UpdatedAt: v.UpdatedAt}, nil
}

func (r *s3ThemeRepository) Create(ctx context.Context, id model.DeviceID, isDarkMode bool) error {
	payload, err := json.Marshal(s3ThemeValue{IsDarkMode: isDarkMode, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encode theme preference: %w", err)
	}

	_, err = r.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.objectKey(id)),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
		IfNoneMatch: aws.String("*"),
	})
	if isS3PreconditionFailed(err) {
		return fmt.Errorf("create theme preference: %w", model.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("create theme preference: %w", err)
	}
	return nil
}

func (r *s3ThemeRepository) Update(ctx context.Context, id model.DeviceID, isDarkMode bool) error {
	head, err := r.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.objectKey(id)),
	})
	if isS3NotFound(err) {
		return fmt.Errorf("update theme preference: %w", model.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update theme preference: %w", err)
	}

	payload, err := json.Marshal(s3ThemeValue{IsDarkMode: isDarkMode, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encode theme preference: %w", err)
	}

	_, err = r.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.objectKey(id)),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
		IfMatch:     head.ETag,
	})
	if err != nil {
		return fmt.Errorf("update theme preference: %w", err)
	}
	return nil
}

func isS3NotFound(err error) bool {
	if err == nil {
		return false
	}
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	if errors.As(err, &nsk) || errors.As(err, &nf) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}

func isS3PreconditionFailed(err error) bool {
	if err == nil {
		return false
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "PreconditionFailed", "ConditionalRequestConflict":
			return true
		}
	}
	var withStatus interface{ HTTPStatusCode() int }
	if errors.As(err, &withStatus) {
		return withStatus.HTTPStatusCode() == http.StatusPreconditionFailed
	}
	return false
}
