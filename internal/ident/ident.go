// Package ident generates opaque identifiers for queue entities.
//
// Identifiers only need to be collision-resistant within a single queue;
// the uuid v4 layout is cosmetic, not load-bearing.
package ident

import "github.com/google/uuid"

// New returns a fresh random identifier.
func New() string {
	return uuid.NewString()
}
