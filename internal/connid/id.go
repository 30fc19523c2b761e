// Package connid issues short correlation identifiers for log lines.
//
// These ids are internal only: they never reach the wire. The user-facing
// identity of a session is its nickname (see internal/petname), assigned
// and tracked by the broker's session registry.
package connid

import "github.com/google/uuid"

// New returns a fresh correlation id for a newly accepted connection.
func New() string {
	return uuid.NewString()
}
