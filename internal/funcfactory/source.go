package funcfactory

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/scriptfunc/internal/fnname"
	"github.com/specialistvlad/scriptfunc/internal/invocable"
	"github.com/zclconf/go-cty/cty"
)

// Source is anything that can enumerate and produce functions.
type Source interface {
	// FunctionNames lists the names the source can currently produce.
	FunctionNames(ctx context.Context) []fnname.Name
	// Function returns the function for name bound to args and fallback, or
	// nil when the source does not recognize the name.
	Function(ctx context.Context, name fnname.Name, args []hcl.Expression, fallback *cty.Value) (*invocable.Function, error)
}

type chain []Source

// Chain tries each source in order. The first non-nil function wins and the
// first error stops the search.
func Chain(sources ...Source) Source {
	return chain(append([]Source(nil), sources...))
}

// FunctionNames concatenates the names of all sources, dropping duplicates.
func (c chain) FunctionNames(ctx context.Context) []fnname.Name {
	seen := make(map[fnname.Name]struct{})
	names := []fnname.Name{}
	for _, s := range c {
		for _, n := range s.FunctionNames(ctx) {
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}
	return names
}

// Function implements Source.
func (c chain) Function(ctx context.Context, name fnname.Name, args []hcl.Expression, fallback *cty.Value) (*invocable.Function, error) {
	for _, s := range c {
		fn, err := s.Function(ctx, name, args, fallback)
		if err != nil {
			return nil, err
		}
		if fn != nil {
			return fn, nil
		}
	}
	return nil, nil
}
