// Package inmemorystore provides a thread-safe, in-memory implementation
// of the artifact.Store interface. It is suitable for development, testing,
// or programs that generate their function scripts at runtime.
package inmemorystore
