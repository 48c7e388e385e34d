package redislist

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vnykmshr/streamio/pkg/common/validation"
)

// Config holds configuration shared by Producer and Writer.
type Config struct {
	// Timeout bounds each Redis round trip. Zero means no per-command
	// timeout beyond the caller's context.
	Timeout time.Duration

	// MaxLen, when positive, trims the list to its newest MaxLen chunks
	// after every push. Writer only.
	MaxLen int64

	// TTL, when positive, is reapplied to the key after every push. Writer only.
	TTL time.Duration

	// Logger receives Redis failures. Default: zap.NewNop()
	Logger *zap.Logger
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout: 500 * time.Millisecond,
		Logger:  zap.NewNop(),
	}
}

// validateConfig checks the arguments shared by both constructors and fills
// in defaults.
func validateConfig(client redis.Cmdable, key string, config Config) (Config, error) {
	if err := validation.ValidateNotNil("redislist", "client", unwrapNil(client)); err != nil {
		return config, err
	}
	if err := validation.ValidateNotEmpty("redislist", "key", key); err != nil {
		return config, err
	}
	if err := validation.ValidateNonNegative("redislist", "MaxLen", config.MaxLen); err != nil {
		return config, err
	}
	if err := validation.ValidateNonNegative("redislist", "Timeout", int64(config.Timeout)); err != nil {
		return config, err
	}

	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return config, nil
}

// unwrapNil turns a typed nil client into an untyped nil.
func unwrapNil(client redis.Cmdable) redis.Cmdable {
	switch c := client.(type) {
	case *redis.Client:
		if c == nil {
			return nil
		}
	case *redis.ClusterClient:
		if c == nil {
			return nil
		}
	case *redis.Ring:
		if c == nil {
			return nil
		}
	}
	return client
}
