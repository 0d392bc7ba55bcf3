package testutil

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/scriptfunc/internal/artifact"
	"github.com/specialistvlad/scriptfunc/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// ErrBrokenScript is returned by StubHook for content starting with "broken".
var ErrBrokenScript = errors.New("broken script")

// StubHook stands in for a script language the module does not ship, such
// as groovy or js. Content is a comma separated list of parameter names; the
// compiled function returns a tuple of its arguments. Content starting with
// "broken" fails to compile.
type StubHook struct {
	Lang string
	// Delay is slept inside Compile to widen race windows.
	Delay    time.Duration
	Compiles atomic.Int64
}

var _ registry.Hook = (*StubHook)(nil)

// Language implements registry.Hook.
func (h *StubHook) Language() string { return h.Lang }

// Compile implements registry.Hook.
func (h *StubHook) Compile(_ context.Context, _ artifact.Artifact, content []byte) (*registry.Compiled, error) {
	h.Compiles.Add(1)
	if h.Delay > 0 {
		time.Sleep(h.Delay)
	}

	src := strings.TrimSpace(string(content))
	if strings.HasPrefix(src, "broken") {
		return nil, ErrBrokenScript
	}

	var names []string
	if src != "" {
		for _, p := range strings.Split(src, ",") {
			names = append(names, strings.TrimSpace(p))
		}
	}
	params := make([]function.Parameter, len(names))
	for i, n := range names {
		params[i] = function.Parameter{Name: n, Type: cty.DynamicPseudoType, AllowNull: true}
	}

	fn := function.New(&function.Spec{
		Params: params,
		Type:   function.StaticReturnType(cty.DynamicPseudoType),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			if len(args) == 0 {
				return cty.EmptyTupleVal, nil
			}
			return cty.TupleVal(args), nil
		},
	})
	return &registry.Compiled{Params: names, Function: fn}, nil
}

// StubModule registers a StubHook for each extension.
type StubModule struct {
	Hooks map[string]*StubHook
}

// NewStubModule creates stub hooks for the given extensions.
func NewStubModule(exts ...string) *StubModule {
	m := &StubModule{Hooks: make(map[string]*StubHook, len(exts))}
	for _, ext := range exts {
		m.Hooks[ext] = &StubHook{Lang: ext}
	}
	return m
}

// Register implements registry.Module.
func (m *StubModule) Register(r *registry.Registry) {
	for ext, h := range m.Hooks {
		r.RegisterHook(ext, h)
	}
}
