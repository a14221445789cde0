package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"openway/internal/model"
)

// ipAccuracy is the nominal radius reported for IP-derived fixes.
const ipAccuracy = 5000

type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// IPPositioner locates the host by its public IP through an ip-api.com
// compatible endpoint. It ignores HighAccuracy.
type IPPositioner struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

func NewIPPositioner(url string, client *http.Client, log *zap.Logger) *IPPositioner {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &IPPositioner{url: url, client: client, log: log.Named("geoip")}
}

func (p *IPPositioner) CurrentPosition(ctx context.Context, opts model.PositionOptions) (model.LocationFix, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return model.LocationFix{}, fmt.Errorf("build geoip request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return model.LocationFix{}, fmt.Errorf("geoip request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return model.LocationFix{}, fmt.Errorf("geoip status %d: %s", resp.StatusCode, body)
	}

	var out ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return model.LocationFix{}, fmt.Errorf("decode geoip response: %w", err)
	}
	if out.Status != "" && out.Status != "success" {
		return model.LocationFix{}, fmt.Errorf("geoip lookup failed: %s", out.Message)
	}

	p.log.Debug("geoip fix",
		zap.Float64("lat", out.Lat),
		zap.Float64("lon", out.Lon),
		zap.Duration("duration", time.Since(start)),
	)

	return model.LocationFix{
		Latitude:  out.Lat,
		Longitude: out.Lon,
		Accuracy:  ipAccuracy,
		Timestamp: time.Now().UTC(),
	}, nil
}
