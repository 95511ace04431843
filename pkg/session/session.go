// Package session defines the registry that maps a voice platform call
// identifier to the dialogue engine session serving that call.
//
// The registry is pluggable: the pipeline depends only on [Store], so a
// durable or shared implementation can be substituted without touching
// request handling. The in-memory implementation lives in session/memory.
package session

import "context"

// NoSession is returned by Get for a call that has no engine session yet.
// Providers treat it as "start a new session".
const NoSession = ""

// Store maps call identifiers to engine session identifiers.
//
// Implementations must be safe for concurrent use. Get on an unknown call
// returns NoSession and a nil error. Set overwrites any prior mapping.
type Store interface {
	Get(ctx context.Context, callID string) (string, error)
	Set(ctx context.Context, callID, sessionID string) error
}

// Counter is implemented by stores that can report their entry count.
type Counter interface {
	Len() int
}
