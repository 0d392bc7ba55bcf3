// Package invocable binds a constructed handler to the arguments and optional
// fallback of one call site.
package invocable

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/scriptfunc/internal/fnname"
	"github.com/specialistvlad/scriptfunc/internal/handler"
	"github.com/zclconf/go-cty/cty"
)

// ErrArity is returned when a call site passes the wrong number of arguments.
var ErrArity = errors.New("wrong number of arguments")

// Function is a handler bound to call-site arguments. It holds no state
// besides what it was bound with.
type Function struct {
	name     fnname.Name
	handler  *handler.Handler
	args     []hcl.Expression
	fallback *cty.Value
}

// Bind creates the invocable for h. It returns nil when h is nil so callers
// can move on to another function source.
func Bind(h *handler.Handler, name fnname.Name, args []hcl.Expression, fallback *cty.Value) *Function {
	if h == nil {
		return nil
	}
	var fb *cty.Value
	if fallback != nil {
		v := *fallback
		fb = &v
	}
	return &Function{
		name:     name,
		handler:  h,
		args:     append([]hcl.Expression(nil), args...),
		fallback: fb,
	}
}

// Name returns the name the function was requested under.
func (f *Function) Name() fnname.Name { return f.name }

// Args returns the bound argument expressions.
func (f *Function) Args() []hcl.Expression { return f.args }

// Fallback returns the bound fallback value, if any.
func (f *Function) Fallback() (cty.Value, bool) {
	if f.fallback == nil {
		return cty.NilVal, false
	}
	return *f.fallback, true
}

// Handler returns the handler the function delegates to.
func (f *Function) Handler() *handler.Handler { return f.handler }

// Evaluate evaluates the argument expressions in evalCtx and calls the
// handler. Any failure yields the fallback when one is bound.
func (f *Function) Evaluate(evalCtx *hcl.EvalContext) (cty.Value, error) {
	v, err := f.call(evalCtx)
	if err != nil {
		if fb, ok := f.Fallback(); ok {
			return fb, nil
		}
		return cty.NilVal, fmt.Errorf("function %s: %w", f.name, err)
	}
	return v, nil
}

func (f *Function) call(evalCtx *hcl.EvalContext) (cty.Value, error) {
	fixed, variadic := f.handler.Arity()
	if len(f.args) < fixed || (!variadic && len(f.args) > fixed) {
		return cty.NilVal, fmt.Errorf("%w: want %d, got %d", ErrArity, fixed, len(f.args))
	}

	vals := make([]cty.Value, len(f.args))
	for i, expr := range f.args {
		v, diags := expr.Value(evalCtx)
		if diags.HasErrors() {
			return cty.NilVal, fmt.Errorf("argument %d: %w", i+1, diags)
		}
		vals[i] = v
	}
	return f.handler.Call(vals)
}
