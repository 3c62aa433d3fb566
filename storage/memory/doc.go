// Package memory provides an in-memory implementation of the GrantStore interface.
//
// This package implements GrantStore using Go's built-in maps with mutex
// protection for thread safety. It is suitable for development, testing, and
// single-instance deployments where persistence is not required.
//
// Features:
//   - Thread-safe operations using sync.Mutex
//   - Atomic take-and-remove, keeping grants single-use under concurrency
//   - Automatic cleanup of expired grants with configurable intervals
//
// For multi-instance deployments, use the storage/redis package instead.
//
// Example usage:
//
//	store := memory.New()
//	defer store.Stop()
package memory
