// Package redis wraps the go-redis client used by the Redis roster store.
package redis

import (
	"crypto/tls"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/doodle-garden/internal/errors"
)

// Options configures Redis client behavior
type Options struct {
	// MaxRetries of zero keeps the go-redis default, -1 disables retries
	MaxRetries int
	UseTLS     bool
}

// NewClient creates a Redis client. The endpoint is either host:port or a
// redis:// / rediss:// URL.
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.InvalidArgument("redis: endpoint is required")
	}

	if opts == nil {
		opts = &Options{}
	}

	redisOpts := &redis.Options{Addr: endpoint}
	if strings.Contains(endpoint, "://") {
		parsed, err := redis.ParseURL(endpoint)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "redis: invalid endpoint URL")
		}
		redisOpts = parsed
	}

	if opts.MaxRetries != 0 {
		redisOpts.MaxRetries = opts.MaxRetries
	}

	if opts.UseTLS && redisOpts.TLSConfig == nil {
		redisOpts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	return redis.NewClient(redisOpts), nil
}
