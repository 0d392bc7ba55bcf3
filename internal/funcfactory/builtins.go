package funcfactory

import (
	"context"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/scriptfunc/internal/fnname"
	"github.com/specialistvlad/scriptfunc/internal/handler"
	"github.com/specialistvlad/scriptfunc/internal/invocable"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// BuiltinNamespace is the namespace builtin functions are listed under.
const BuiltinNamespace = "builtin"

// Builtins serves a fixed set of Go functions. They answer to their
// unqualified name and to the builtin namespace.
type Builtins struct {
	handlers map[string]*handler.Handler
	names    []string
}

var _ Source = (*Builtins)(nil)

// NewBuiltins wraps funcs. The map is not retained.
func NewBuiltins(funcs map[string]function.Function) *Builtins {
	b := &Builtins{handlers: make(map[string]*handler.Handler, len(funcs))}
	for name, fn := range funcs {
		name = fnname.NormalizeComponent(name)
		b.handlers[name] = handler.New(BuiltinNamespace, fn)
		b.names = append(b.names, name)
	}
	sort.Strings(b.names)
	return b
}

// FunctionNames implements Source.
func (b *Builtins) FunctionNames(context.Context) []fnname.Name {
	names := make([]fnname.Name, len(b.names))
	for i, n := range b.names {
		names[i] = fnname.Qualified(n, BuiltinNamespace)
	}
	return names
}

// Function implements Source.
func (b *Builtins) Function(_ context.Context, name fnname.Name, args []hcl.Expression, fallback *cty.Value) (*invocable.Function, error) {
	name = name.Normalize()
	if name.HasNamespace() && name.Namespace != BuiltinNamespace {
		return nil, nil
	}
	return invocable.Bind(b.handlers[name.Local], name, args, fallback), nil
}
