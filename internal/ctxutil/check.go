// Package ctxutil provides context utility functions.
package ctxutil

import "context"

// Canceled checks if the context has been canceled or exceeded its
// deadline. It returns the context error if done, nil otherwise. Store and
// command entry points use this to fail fast before touching disk.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}
