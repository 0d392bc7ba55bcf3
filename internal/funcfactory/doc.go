// Package funcfactory resolves function names to callable script functions.
//
// A Factory answers two questions for its caller: which function names a
// store currently offers, and what callable stands behind one name. Lookups
// go through a resolution cache, so each name is resolved and compiled once
// while it stays resident. A name nothing stands behind yields a nil
// function and no error, letting callers fall through to another Source.
// Only a malformed or vanished artifact is reported as an error.
package funcfactory
