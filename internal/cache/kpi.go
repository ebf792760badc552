// internal/cache/kpi.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freshmart/retail-ops/backend-go/internal/config"
	"github.com/freshmart/retail-ops/backend-go/internal/domain"
)

const (
	kpiKeyPrefix  = "kpi:snapshot"
	scanBatchSize = 100
	defaultKPITTL = time.Minute
)

// KPICache caches assembled KPI snapshots per filter. Snapshots are
// derived values, so the cache is a pure read-through optimization:
// a miss or error always falls back to re-aggregation.
type KPICache interface {
	Get(ctx context.Context, filter domain.KPIFilter) (*domain.KPIData, bool, error)
	Set(ctx context.Context, filter domain.KPIFilter, data *domain.KPIData) error
	InvalidateAll(ctx context.Context) error
}

type redisKPICache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopKPICache struct{}

func NewKPICache(cfg config.CacheConfig) (KPICache, error) {
	if !cfg.Enabled {
		return &noopKPICache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.KPITTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultKPITTL
	}

	return &redisKPICache{client: client, ttl: ttl}, nil
}

func NewNoopKPICache() KPICache {
	return &noopKPICache{}
}

func (c *redisKPICache) Get(ctx context.Context, filter domain.KPIFilter) (*domain.KPIData, bool, error) {
	key := buildKPIKey(filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var data domain.KPIData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, false, fmt.Errorf("decode kpi snapshot cache: %w", err)
	}

	return &data, true, nil
}

func (c *redisKPICache) Set(ctx context.Context, filter domain.KPIFilter, data *domain.KPIData) error {
	key := buildKPIKey(filter)
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode kpi snapshot cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisKPICache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, kpiKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return nil
}

func (n *noopKPICache) Get(ctx context.Context, filter domain.KPIFilter) (*domain.KPIData, bool, error) {
	return nil, false, nil
}

func (n *noopKPICache) Set(ctx context.Context, filter domain.KPIFilter, data *domain.KPIData) error {
	return nil
}

func (n *noopKPICache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func buildKPIKey(filter domain.KPIFilter) string {
	parts := []string{
		"start=" + filter.Start.Format("2006-01-02"),
		"end=" + filter.End.Format("2006-01-02"),
	}
	if filter.Region != nil {
		parts = append(parts, "region="+string(*filter.Region))
	}
	if filter.StoreID != nil {
		parts = append(parts, "store="+strconv.FormatInt(*filter.StoreID, 10))
	}
	if filter.Supplier != nil {
		parts = append(parts, "supplier="+*filter.Supplier)
	}

	raw := strings.Join(parts, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", kpiKeyPrefix, hex.EncodeToString(hash[:]))
}
