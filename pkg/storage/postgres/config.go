package postgres

import "time"

// Config holds the journal database settings. A webhook writes one row
// per call turn, so the pool stays small by default.
type Config struct {
	// DSN is the connection string, e.g.
	// "postgres://dialbridge:secret@db:5432/dialbridge?sslmode=disable".
	DSN string

	MaxConns int32 // default: 10
	MinConns int32 // default: 1

	// MaxConnLifetime bounds how long a pooled connection is reused (default: 30m).
	MaxConnLifetime time.Duration

	// ConnectTimeout bounds the initial ping (default: 10s).
	ConnectTimeout time.Duration

	// MigrateOnStart applies the embedded migrations before first use.
	MigrateOnStart bool
}

func (c *Config) defaults() {
	if c.MaxConns <= 0 {
		c.MaxConns = 10
	}
	if c.MinConns <= 0 {
		c.MinConns = 1
	}
	if c.MinConns > c.MaxConns {
		c.MinConns = c.MaxConns
	}
	if c.MaxConnLifetime == 0 {
		c.MaxConnLifetime = 30 * time.Minute
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 10 * time.Second
	}
}
