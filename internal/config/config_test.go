package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setDocstoreEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_BACKEND", "docstore")
	t.Setenv("DOCSTORE_PROJECT_ID", "proj")
	t.Setenv("DOCSTORE_DATABASE_ID", "db")
	t.Setenv("DOCSTORE_THEME_COLLECTION_ID", "themes")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setDocstoreEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, BackendDocstore, cfg.StoreBackend)
	assert.Equal(t, "https://cloud.appwrite.io/v1", cfg.DocstoreEndpoint)
	assert.Equal(t, 15*time.Second, cfg.LocationTimeout)
	assert.Equal(t, 10*time.Second, cfg.LocationMaxAge)
	assert.Equal(t, 10*time.Minute, cfg.WeatherCacheTTL)
	assert.Equal(t, 2, cfg.SentimentWorkers)
}

func TestLoadConfig_OverridesFromEnv(t *testing.T) {
	setDocstoreEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOCATION_TIMEOUT", "5s")
	t.Setenv("STORE_BACKEND", "  DocStore ")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 5*time.Second, cfg.LocationTimeout)
	assert.Equal(t, BackendDocstore, cfg.StoreBackend)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"docstore missing project", Config{StoreBackend: "docstore", DocstoreEndpoint: "http://x"}, true},
		{"docstore ok", Config{StoreBackend: "docstore", DocstoreEndpoint: "http://x", DocstoreProjectID: "p", DocstoreDatabaseID: "d", DocstoreThemeCollection: "c"}, false},
		{"postgres missing host", Config{StoreBackend: "postgres", DBName: "openway"}, true},
		{"postgres ok", Config{StoreBackend: "postgres", DBHost: "localhost", DBName: "openway"}, false},
		{"redis missing url", Config{StoreBackend: "redis"}, true},
		{"redis ok", Config{StoreBackend: "redis", RedisURL: "redis://localhost:6379"}, false},
		{"s3 missing bucket", Config{StoreBackend: "s3"}, true},
		{"s3 ok", Config{StoreBackend: "s3", S3Bucket: "prefs"}, false},
		{"unknown backend", Config{StoreBackend: "mongo"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_FillsLocationDefaults(t *testing.T) {
	cfg := Config{StoreBackend: "redis", RedisURL: "redis://localhost:6379", LocationMaxAge: -time.Second}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 15*time.Second, cfg.LocationTimeout)
	assert.Equal(t, time.Duration(0), cfg.LocationMaxAge)
	assert.Equal(t, 2, cfg.SentimentWorkers)
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "openway", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=openway port=5432 sslmode=disable", cfg.PostgresDSN())
	assert.True(t, cfg.HasPostgres())
}

func TestLoad_SkipsBackendValidation(t *testing.T) {
	t.Setenv("STORE_BACKEND", "none")
	t.Setenv("GEOIP_URL", "http://geo.local/json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "none", cfg.StoreBackend)
	assert.Equal(t, "http://geo.local/json", cfg.GeoIPURL)

	_, err = LoadConfig()
	assert.ErrorContains(t, err, "unknown STORE_BACKEND")
}
