// Package config provides the fold driver's programmatic options struct and
// its environment-variable overrides, grounded on the teacher's
// utils.Config fluent-builder pattern (DefaultConfig, With*, Validate).
// Per §5's "the only global is configuration read once at entry", this
// package is consulted once at the driver/façade boundary; everything
// downstream takes the resolved values explicitly.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/logannye/sezkp/internal/sezkp/fold"
)

// Recognized environment-variable overrides.
const (
	EnvFoldMode        = "SEZKP_FOLD_MODE"
	EnvWrapCadence     = "SEZKP_WRAP_CADENCE"
	EnvFoldCache       = "SEZKP_FOLD_CACHE"
	EnvProofStreamPath = "SEZKP_PROOF_STREAM_PATH"
)

// Config holds the fold driver's tunables plus a stream artifact path
// (ProofStreamPath) that nothing in the library reads. It is deliberately a flat struct of scalars, the
// same shape the teacher's own Config takes, rather than an interface —
// there is exactly one implementation and no reason to hide its fields
// from a caller that wants to inspect them directly.
type Config struct {
	FoldMode        fold.FoldMode
	WrapCadence     uint32
	EndpointCache   uint32
	ProofStreamPath string
}

// DefaultConfig matches fold.DefaultDriverOptions's defaults, plus an empty
// stream path (the façade requires a caller-supplied path when streaming).
func DefaultConfig() *Config {
	return &Config{
		FoldMode:        fold.Balanced,
		WrapCadence:     0,
		EndpointCache:   64,
		ProofStreamPath: "",
	}
}

// WithFoldMode sets the endpoint-management strategy.
func (c *Config) WithFoldMode(m fold.FoldMode) *Config {
	c.FoldMode = m
	return c
}

// WithWrapCadence sets how many fold merges occur between wrap
// attestations. Zero disables wraps entirely.
func (c *Config) WithWrapCadence(n uint32) *Config {
	c.WrapCadence = n
	return c
}

// WithEndpointCache sets the MinRam mode LRU capacity. Ignored in Balanced
// mode.
func (c *Config) WithEndpointCache(n uint32) *Config {
	c.EndpointCache = n
	return c
}

// WithProofStreamPath sets ProofStreamPath. The value is only carried by
// Config: the streaming façade writes to the io.Writer it is given and
// does not read this field.
func (c *Config) WithProofStreamPath(path string) *Config {
	c.ProofStreamPath = path
	return c
}

// Validate reports whether c's fields are internally consistent.
func (c *Config) Validate() error {
	if c.FoldMode != fold.Balanced && c.FoldMode != fold.MinRam {
		return fmt.Errorf("config: unrecognized fold mode %v", c.FoldMode)
	}
	return nil
}

// DriverOptions projects c onto the shape fold.NewDriver accepts.
func (c *Config) DriverOptions() fold.DriverOptions {
	return fold.DriverOptions{
		FoldMode:      c.FoldMode,
		WrapCadence:   c.WrapCadence,
		EndpointCache: c.EndpointCache,
	}
}

// Clone returns an independent copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// FromEnv starts from DefaultConfig and overlays SEZKP_FOLD_MODE,
// SEZKP_WRAP_CADENCE, SEZKP_FOLD_CACHE, and SEZKP_PROOF_STREAM_PATH where
// set, returning an error on a malformed value rather than silently
// falling back to the default.
func FromEnv() (*Config, error) {
	c := DefaultConfig()

	if v, ok := os.LookupEnv(EnvFoldMode); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "balanced":
			c.FoldMode = fold.Balanced
		case "minram":
			c.FoldMode = fold.MinRam
		default:
			return nil, fmt.Errorf("config: %s: unrecognized fold mode %q (want balanced or minram)", EnvFoldMode, v)
		}
	}

	if v, ok := os.LookupEnv(EnvWrapCadence); ok {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", EnvWrapCadence, err)
		}
		c.WrapCadence = uint32(n)
	}

	if v, ok := os.LookupEnv(EnvFoldCache); ok {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", EnvFoldCache, err)
		}
		c.EndpointCache = uint32(n)
	}

	if v, ok := os.LookupEnv(EnvProofStreamPath); ok {
		c.ProofStreamPath = v
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
