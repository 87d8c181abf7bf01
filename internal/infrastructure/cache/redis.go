package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/KBRglobal/Traviapp-sub001/internal/config"

	"github.com/redis/go-redis/v9"
)

// Redis is a bypassing cache: when the server is unreachable every read is a
// miss and every write is a no-op, so callers never fail because of it.
type Redis struct {
	client  *redis.Client
	timeout time.Duration
	logger  *log.Logger

	warnedUnavailable atomic.Bool
}

// NewRedis dials the server once; timeout bounds every later round trip.
func NewRedis(cfg config.RedisConfig, timeout time.Duration, logger *log.Logger) *Redis {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(cfg.Port)
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: strings.TrimSpace(cfg.Password),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("[Cache] Redis unavailable, bypassing cache: %v", err)
		}
		_ = client.Close()
		return &Redis{client: nil, timeout: timeout, logger: logger}
	}

	return &Redis{client: client, timeout: timeout, logger: logger}
}

func (r *Redis) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if r == nil || r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Printf("[Cache] Redis unavailable, bypassing cache: %v", err)
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return errors.New("redis unavailable")
	}
	return r.client.Ping(ctx).Err()
}

// GetJSON reports (false, nil) on both cache miss and cache outage.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	ctx, cancel := r.callCtx(ctx)
	defer cancel()

	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.isUnavailable() {
		return nil
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	ctx, cancel := r.callCtx(ctx)
	defer cancel()

	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if r.isUnavailable() {
		return nil
	}
	ctx, cancel := r.callCtx(ctx)
	defer cancel()

	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// InvalidateSuggestPrefixes drops cached autocomplete pages after a suggestion
// table rebuild so stale rankings do not outlive their TTL window.
func (r *Redis) InvalidateSuggestPrefixes(ctx context.Context) error {
	if r.isUnavailable() {
		return nil
	}
	iter := r.client.Scan(ctx, 0, "suggest:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil && r.logger != nil {
			r.logger.Printf("[Cache] Redis delete error key=%s err=%v", iter.Val(), err)
		}
	}
	return iter.Err()
}
