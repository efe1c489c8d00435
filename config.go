package rangecache

import (
	"github.com/pkg/errors"

	"github.com/krisalay/interval-cache/index"
	"github.com/krisalay/interval-cache/types"
)

// DefaultCapacity is the number of entries used when none is configured.
const DefaultCapacity = 1000

// Config is a plain struct. Set the fields you care about and pass it to New.
type Config struct {
	// Capacity is the maximum number of resident entries. Must be positive.
	Capacity int

	// Length is the length of the sequence the keys index into.
	// Keys and invalidation points are validated against [0, Length).
	Length int

	// Index selects the invalidation strategy. Defaults to index.Tree.
	Index index.Type

	// Metrics receives cache events. Defaults to types.NoopMetrics.
	Metrics types.Metrics
}

// DefaultConfig returns a config for a sequence of the given length.
func DefaultConfig(length int) Config {
	return Config{
		Capacity: DefaultCapacity,
		Length:   length,
		Index:    index.Tree,
	}
}

// Validate checks the config and fills in defaults for the optional fields.
func (c *Config) Validate() error {
	if c.Capacity <= 0 {
		return errors.Errorf("capacity must be positive, got %d", c.Capacity)
	}
	if c.Length <= 0 {
		return errors.Errorf("length must be positive, got %d", c.Length)
	}
	if c.Index == "" {
		c.Index = index.Tree
	}
	if !c.Index.Valid() {
		return errors.Errorf("unknown index type %q", c.Index)
	}
	if c.Metrics == nil {
		c.Metrics = types.NoopMetrics{}
	}
	return nil
}
