package fnname

import (
	"fmt"
	"strings"
)

// Parse creates a Name from its canonical string representation.
func Parse(raw string) (Name, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Name{}, fmt.Errorf("function name cannot be empty")
	}
	if strings.ContainsAny(raw, `/\`) {
		return Name{}, fmt.Errorf("function name %q must not contain path separators", raw)
	}

	ns, local, found := strings.Cut(raw, ":")
	if !found {
		return Local(raw).Normalize(), nil
	}
	if ns == "" {
		return Name{}, fmt.Errorf("function name %q has an empty namespace", raw)
	}
	if local == "" {
		return Name{}, fmt.Errorf("function name %q has an empty local part", raw)
	}
	if strings.Contains(local, ":") {
		return Name{}, fmt.Errorf("function name %q has more than one namespace separator", raw)
	}
	return Qualified(local, ns).Normalize(), nil
}

// MustParse is like Parse but panics on invalid input.
func MustParse(raw string) Name {
	n, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return n
}
