/*
Package fnname provides the logical name under which a script function is
requested: a local part plus an optional namespace.

The canonical string form is `namespace:local` for qualified names and
`local` for unqualified ones, e.g. `hcl:sum` or `sum`. A namespace is the
extension of the backing artifact, so `hcl:sum` refers to the file `sum.hcl`.

Name is a comparable value type and is used directly as a cache key. Two names
that differ only in whether a namespace is present are different keys.
*/
package fnname
