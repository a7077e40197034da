package server

import (
	"errors"
	"time"

	"github.com/subaru-pfs/instdata/server/middleware"
)

// DefaultAddress is the default address for the document service.
const DefaultAddress = ":8080"

// ErrEmptyAddress is returned when the address is empty.
var ErrEmptyAddress = errors.New("address must not be empty")

// ErrInvalidBodyLimit is returned when the body limit is negative.
var ErrInvalidBodyLimit = errors.New("max body bytes must not be negative")

// ErrInvalidTimeout is returned when the request timeout is negative.
var ErrInvalidTimeout = errors.New("request timeout must not be negative")

// ErrListenFailed is returned when the server fails to listen on the configured address.
var ErrListenFailed = errors.New("failed to listen")

// ErrShutdownFailed is returned when the server fails to shut down gracefully.
var ErrShutdownFailed = errors.New("shutdown failed")

// ErrNilHandler is returned when a nil http.Handler is provided.
var ErrNilHandler = errors.New("handler must not be nil")

// ErrNilStore is returned when the handler is built without a store.
var ErrNilStore = errors.New("store must not be nil")

// Config holds the configuration of the document service.
type Config struct {
	Address      string `yaml:"address"`
	ReadOnly     bool   `yaml:"read_only"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`

	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// SetDefaults sets default values for the Config.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.Address == "" {
		c.Address = DefaultAddress
		changed = true
	}

	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = middleware.DefaultMaxBodyBytes
		changed = true
	}

	if c.RequestTimeout == 0 {
		c.RequestTimeout = middleware.DefaultRequestTimeout
		changed = true
	}

	return changed
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrEmptyAddress
	}

	if c.MaxBodyBytes < 0 {
		return ErrInvalidBodyLimit
	}

	if c.RequestTimeout < 0 {
		return ErrInvalidTimeout
	}

	return nil
}
