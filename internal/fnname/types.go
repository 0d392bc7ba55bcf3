package fnname

// Name identifies a function by local part and optional namespace.
type Name struct {
	Local     string
	Namespace string
	// Qualified is true when a namespace was given, even an empty one.
	Qualified bool
}

// Local creates an unqualified name.
func Local(local string) Name {
	return Name{Local: local}
}

// Qualified creates a name carrying a namespace.
func Qualified(local, namespace string) Name {
	return Name{Local: local, Namespace: namespace, Qualified: true}
}

// HasNamespace reports whether the name is qualified.
func (n Name) HasNamespace() bool {
	return n.Qualified
}
