// Package cache provides the resolution cache that sits in front of handler
// construction.
//
// Lookups of a resident key take no cache lock. A miss enters a single
// cache-wide critical section, re-checks, and only then runs the
// constructor, so each key is built at most once while it stays resident.
// Not-found results and errors are never stored. Retention is a bounded LRU;
// an evicted key is simply rebuilt on its next lookup.
package cache
