package trapdoor

import (
	"errors"
	"fmt"
)

// TrapdoorBytes is the keystream prefix reduced into the trapdoor
const TrapdoorBytes = 32

// DefaultStreamLen matches the reference run: trapdoor and nullifier halves
const DefaultStreamLen = 64

// ErrStreamTooShort is returned when StreamLen cannot cover the trapdoor bytes
var ErrStreamTooShort = errors.New("trapdoor: stream length must be at least 32 bytes")

// Config represents the configuration of a derivation run
type Config struct {
	// StreamLen is the number of keystream bytes generated and reported
	StreamLen int
}

// DefaultConfig returns the configuration of the reference run
func DefaultConfig() *Config {
	return &Config{
		StreamLen: DefaultStreamLen,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.StreamLen < TrapdoorBytes {
		return fmt.Errorf("%w, got %d", ErrStreamTooShort, c.StreamLen)
	}
	return nil
}

// WithStreamLen sets the keystream length
func (c *Config) WithStreamLen(n int) *Config {
	c.StreamLen = n
	return c
}
