package device

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"openway/internal/model"
)

func TestSanitizeDeviceID(t *testing.T) {
	tests := []struct {
		raw  string
		want model.DeviceID
	}{
		{"abc123", "abc123"},
		{"ABC-def_123", "ABC-def_123"},
		{"5F3A:91B2.00 7C", "5F3A91B2007C"},
		{"éü!@#$%^&*()", ""},
		{"", ""},
		{"a/b\\c", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, model.SanitizeDeviceID(tt.raw))
		})
	}
}

func TestProvider_Resolve_SanitizesAndMemoizes(t *testing.T) {
	var calls atomic.Int32
	src := SourceFunc(func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "abc:123", nil
	})
	p := NewProvider(src, zap.NewNop())

	id, err := p.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DeviceID("abc123"), id)

	again, err := p.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, id, again)
	assert.Equal(t, int32(1), calls.Load(), "source should be read once")
	assert.Equal(t, id, p.Current())
}

func TestProvider_Resolve_ConcurrentCallsReadSourceOnce(t *testing.T) {
	var calls atomic.Int32
	src := SourceFunc(func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "device-1", nil
	})
	p := NewProvider(src, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := p.Resolve(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, model.DeviceID("device-1"), id)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestProvider_Resolve_SourceErrorLeavesSentinel(t *testing.T) {
	boom := errors.New("platform api error")
	p := NewProvider(SourceFunc(func(ctx context.Context) (string, error) {
		return "", boom
	}), zap.NewNop())

	id, err := p.Resolve(context.Background())
	require.ErrorIs(t, err, boom)
	assert.True(t, id.IsZero())
	assert.True(t, p.Current().IsZero())
}

func TestProvider_Resolve_EmptyAfterSanitizing(t *testing.T) {
	p := NewProvider(StaticSource("::::"), zap.NewNop())

	id, err := p.Resolve(context.Background())
	require.ErrorIs(t, err, model.ErrDeviceUnresolved)
	assert.True(t, id.IsZero())
}

func TestProvider_Resolve_RetriesAfterFailure(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	p := NewProvider(SourceFunc(func(ctx context.Context) (string, error) {
		if fail.Load() {
			return "", errors.New("not ready")
		}
		return "ready-id", nil
	}), nil)

	_, err := p.Resolve(context.Background())
	require.Error(t, err)

	fail.Store(false)
	id, err := p.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DeviceID("ready-id"), id)
}

func TestEnvSource(t *testing.T) {
	t.Setenv("TEST_DEVICE_ID", "  env-device  ")
	id, err := EnvSource{Key: "TEST_DEVICE_ID"}.UniqueID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env-device", id)

	t.Setenv("TEST_DEVICE_ID", "")
	_, err = EnvSource{Key: "TEST_DEVICE_ID"}.UniqueID(context.Background())
	assert.Error(t, err)
}

func TestInstallSource_StableAcrossCalls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "device-id")
	src := InstallSource{Path: path}

	first, err := src.UniqueID(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := src.UniqueID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestChainSource(t *testing.T) {
	chain := ChainSource{
		StaticSource(""),
		SourceFunc(func(ctx context.Context) (string, error) { return "", errors.New("nope") }),
		StaticSource("third"),
	}
	id, err := chain.UniqueID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "third", id)

	_, err = ChainSource{StaticSource("")}.UniqueID(context.Background())
	assert.Error(t, err)
}

func TestChainSource_SkipsIDsThatSanitizeToEmpty(t *testing.T) {
	chain := ChainSource{
		StaticSource("!!!"),
		StaticSource("  "),
		StaticSource("env-id"),
	}
	id, err := chain.UniqueID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env-id", id)

	p := NewProvider(chain, zap.NewNop())
	got, err := p.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DeviceID("env-id"), got)
}
