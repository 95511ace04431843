// Package storage provides utilities shared across turn journal
// implementations, currently the sentinel errors.
//
// Journal adapters (memory, postgres) implement the transport.TurnStore
// interface defined in pkg/transport/handler.go. This package contains
// only shared types and helpers, not the interface itself.
package storage
