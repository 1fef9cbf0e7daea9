package cache

import (
	"context"
	"time"
)

// Options selects and configures a cache backend.
type Options struct {
	Disabled   bool          // Use a NullCache
	RedisURL   string        // Use Redis when set
	Dir        string        // FileCache directory; empty means DefaultDir
	Memory     bool          // Use an in-process cache instead of files
	MaxEntries int           // MemoryCache size bound
	TTL        time.Duration // Upper bound on entry lifetime for MemoryCache
}

// Open returns the backend described by opts, in order of precedence:
// disabled, Redis, memory, file.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch {
	case opts.Disabled:
		return NewNullCache(), nil
	case opts.RedisURL != "":
		c, err := NewRedisCache(ctx, opts.RedisURL, "repolens:")
		if err != nil {
			return nil, err
		}
		return c, nil
	case opts.Memory:
		return NewMemoryCache(opts.MaxEntries, opts.TTL), nil
	}
	c, err := NewFileCache(opts.Dir)
	if err != nil {
		return nil, err
	}
	return c, nil
}
