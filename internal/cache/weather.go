package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"openway/internal/model"
)

const (
	// WeatherCachePrefix is the key prefix for cached current-weather readings
	WeatherCachePrefix = "weather:current:"

	// DefaultWeatherTTL is how long a reading stays fresh
	DefaultWeatherTTL = 10 * time.Minute
)

// WeatherCache stores current-weather readings by rounded coordinates.
type WeatherCache interface {
	// Get returns (reading, found, error). found=false on a miss.
	Get(ctx context.Context, lat, lon float64) (*model.CurrentWeather, bool, error)

	Set(ctx context.Context, lat, lon float64, w *model.CurrentWeather) error
}

// RedisWeatherCache implements WeatherCache with plain string keys and a TTL.
type RedisWeatherCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewWeatherCache creates a WeatherCache backed by Redis.
func NewWeatherCache(client *redis.Client, ttl time.Duration, log *zap.Logger) WeatherCache {
	if ttl <= 0 {
		ttl = DefaultWeatherTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisWeatherCache{client: client, ttl: ttl, log: log.Named("weather_cache")}
}

// weatherKey rounds to 2 decimals (~1km) so nearby requests share an entry.
func weatherKey(lat, lon float64) string {
	return fmt.Sprintf("%s%.2f:%.2f", WeatherCachePrefix, lat, lon)
}

func (c *RedisWeatherCache) Get(ctx context.Context, lat, lon float64) (*model.CurrentWeather, bool, error) {
	key := weatherKey(lat, lon)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.log.Debug("miss", zap.String("key", key))
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get weather: %w", err)
	}

	var w model.CurrentWeather
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, false, fmt.Errorf("decode cached weather: %w", err)
	}
	c.log.Debug("hit", zap.String("key", key))
	return &w, true, nil
}

func (c *RedisWeatherCache) Set(ctx context.Context, lat, lon float64, w *model.CurrentWeather) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode weather: %w", err)
	}

	start := time.Now()
	if err := c.client.Set(ctx, weatherKey(lat, lon), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set weather: %w", err)
	}
	c.log.Debug("stored", zap.String("key", weatherKey(lat, lon)), zap.Duration("ttl", c.ttl), zap.Duration("duration", time.Since(start)))
	return nil
}
