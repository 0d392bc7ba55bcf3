package fnname

import (
	"golang.org/x/text/unicode/norm"
)

// String serializes the Name into its canonical string representation.
func (n Name) String() string {
	if !n.Qualified {
		return n.Local
	}
	return n.Namespace + ":" + n.Local
}

// FileName returns the artifact file name a qualified name refers to, e.g.
// "sum.hcl" for hcl:sum. It returns "" for unqualified names.
func (n Name) FileName() string {
	if !n.Qualified {
		return ""
	}
	return n.Local + "." + n.Namespace
}

// Normalize returns a copy with both parts in Unicode NFC form, so that names
// typed by callers compare equal to names read from a store regardless of how
// the underlying system composed them.
func (n Name) Normalize() Name {
	n.Local = NormalizeComponent(n.Local)
	n.Namespace = NormalizeComponent(n.Namespace)
	return n
}

// NormalizeComponent returns s in Unicode NFC form.
func NormalizeComponent(s string) string {
	return norm.NFC.String(s)
}
