package msgcache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/amannn/next-intl-sub001/pkg/icu"
)

// DefaultPrefix namespaces message keys in Redis.
const DefaultPrefix = "icu"

// Redis is a Redis-backed store. It is shared across processes, so a
// message compiled by one instance is reused by every other.
type Redis struct {
	client redis.UniversalClient
	codec  Codec
	prefix string
	ttl    time.Duration
}

// RedisOption configures the Redis store.
type RedisOption func(*Redis)

// WithPrefix sets the key prefix. Keys are stored as "prefix:key".
// An empty prefix stores bare keys and makes Clear flush the database.
// Default: DefaultPrefix.
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// WithTTL sets the expiration of stored messages. Zero means no expiration.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		r.ttl = max(ttl, 0)
	}
}

// WithCodec sets the serialization codec.
// Default: JSONCodec.
func WithCodec(codec Codec) RedisOption {
	return func(r *Redis) {
		if codec != nil {
			r.codec = codec
		}
	}
}

// NewRedis creates a Redis-backed store.
//
// Example:
//
//	s := msgcache.NewRedis(client,
//	    msgcache.WithPrefix("messages"),
//	    msgcache.WithCodec(msgcache.MsgpackCodec{}),
//	)
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		codec:  JSONCodec{},
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get retrieves and decodes a message.
func (r *Redis) Get(ctx context.Context, key string) (icu.Message, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r.codec.Unmarshal(data)
}

// Set encodes and stores a message.
func (r *Redis) Set(ctx context.Context, key string, msg icu.Message) error {
	data, err := r.codec.Marshal(msg)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(key), data, r.ttl).Err()
}

// Delete removes a key.
func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Has checks whether a key exists.
func (r *Redis) Has(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Clear removes every key under the prefix.
func (r *Redis) Clear(ctx context.Context) error {
	if r.prefix == "" {
		return r.client.FlushDB(ctx).Err()
	}

	var cursor uint64
	pattern := r.prefix + ":*"
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Close is a no-op. The caller owns the client.
func (r *Redis) Close() error {
	return nil
}

func (r *Redis) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

var _ Store = (*Redis)(nil)
