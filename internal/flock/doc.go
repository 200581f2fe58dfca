// Package flock provides cross-platform file locking utilities.
//
// The store uses an exclusive, non-blocking lock on a file in the data
// directory so two rota processes cannot interleave read-modify-write
// cycles on the same documents. Locks work on both Unix and Windows.
//
// Usage:
//
//	file, _ := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
//	if err := flock.Exclusive(file.Fd()); err != nil {
//	    // Lock not acquired - another process is writing
//	}
//	defer flock.Unlock(file.Fd())
package flock
