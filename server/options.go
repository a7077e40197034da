package server

import "time"

// Option defines a function type for configuring the document service.
type Option func(*Config)

// WithAddress sets the listen address.
func WithAddress(addr string) Option {
	return func(cfg *Config) {
		cfg.Address = addr
	}
}

// WithReadOnly rejects PUT requests when enabled.
func WithReadOnly(readOnly bool) Option {
	return func(cfg *Config) {
		cfg.ReadOnly = readOnly
	}
}

// WithMaxBodyBytes limits the size of uploaded documents.
func WithMaxBodyBytes(limit int64) Option {
	return func(cfg *Config) {
		cfg.MaxBodyBytes = limit
	}
}

// WithRequestTimeout bounds how long a single request may take.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(cfg *Config) {
		cfg.RequestTimeout = timeout
	}
}
