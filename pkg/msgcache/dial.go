package msgcache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrEmptyRedisURL    = errors.New("msgcache: empty redis URL")
	ErrInvalidRedisURL  = errors.New("msgcache: invalid redis URL")
	ErrRedisUnreachable = errors.New("msgcache: redis unreachable")
)

type dialOpts struct {
	poolSize      int
	attempts      int
	retryInterval time.Duration
	timeout       time.Duration
}

// DialOption configures Dial.
type DialOption func(*dialOpts)

// WithPoolSize sets the maximum number of pooled connections.
// Default: 10.
func WithPoolSize(n int) DialOption {
	return func(o *dialOpts) {
		o.poolSize = n
	}
}

// WithRetry sets how many times Dial pings before giving up and the base
// wait between attempts. The wait grows linearly.
// Default: 3 attempts, 1 second.
func WithRetry(attempts int, interval time.Duration) DialOption {
	return func(o *dialOpts) {
		o.attempts = attempts
		o.retryInterval = interval
	}
}

// WithTimeout sets the dial, read and write timeouts.
// Default: 3 seconds.
func WithTimeout(d time.Duration) DialOption {
	return func(o *dialOpts) {
		o.timeout = d
	}
}

// Dial connects to a redis:// or rediss:// URL and pings until the server
// answers, for use with NewRedis.
//
//	client, err := msgcache.Dial(ctx, os.Getenv("REDIS_URL"))
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//	store := msgcache.NewRedis(client)
func Dial(ctx context.Context, url string, opts ...DialOption) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyRedisURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrInvalidRedisURL
	}

	o := &dialOpts{
		poolSize:      10,
		attempts:      3,
		retryInterval: time.Second,
		timeout:       3 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}

	ro, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrInvalidRedisURL, err)
	}
	ro.PoolSize = o.poolSize
	ro.DialTimeout = o.timeout
	ro.ReadTimeout = o.timeout
	ro.WriteTimeout = o.timeout

	var lastErr error
	for i := range max(o.attempts, 1) {
		client := redis.NewClient(ro)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		if i == max(o.attempts, 1)-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisUnreachable, ctx.Err())
		case <-time.After(time.Duration(i+1) * o.retryInterval):
		}
	}
	return nil, errors.Join(ErrRedisUnreachable, lastErr)
}

// Ping checks that the store's server is reachable. It fits health check
// registries that take func(context.Context) error.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrRedisUnreachable, err)
	}
	return nil
}
