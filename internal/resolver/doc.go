// Package resolver maps a logical function name to the artifact that backs it.
//
// A qualified name (hcl:sum) is a single existence check for "sum.hcl". An
// unqualified name (sum) enumerates the store and takes the first artifact
// whose base name is "sum". When several artifacts share a base name, the
// winner is whichever the store lists first; stores do not promise a stable
// order, so callers that care must qualify the name.
package resolver
