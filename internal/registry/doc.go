// Package registry provides the central "glue" between artifacts and the
// script languages that can turn them into functions.
//
// The Registry maps an artifact extension (e.g. "hcl") to the Hook that
// compiles artifacts with that extension. Enumeration uses it to decide which
// artifacts are functions at all, and the handler factory uses it to construct
// them. Hooks are registered once at startup; registering the same extension
// twice is a programmer error and panics.
package registry
