package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/specialistvlad/scriptfunc/internal/artifact"
	"github.com/zclconf/go-cty/cty/function"
)

// Compiled is what a Hook produces from one artifact.
type Compiled struct {
	Description string
	Params      []string
	Function    function.Function
}

// Hook compiles artifact content written in one script language.
type Hook interface {
	// Language names the script language, used in logs and diagnostics.
	Language() string
	// Compile turns content into a callable function. It must be
	// deterministic for identical content and must not retain content.
	Compile(ctx context.Context, a artifact.Artifact, content []byte) (*Compiled, error)
}

// Module is the interface that script language packages implement to add
// their hooks to a Registry.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered hooks for a single application instance.
type Registry struct {
	mu    sync.RWMutex
	hooks map[string]Hook
}

// New creates a Registry and lets each module register its hooks.
func New(modules ...Module) *Registry {
	r := &Registry{hooks: make(map[string]Hook)}
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// RegisterHook registers hook for artifacts with extension ext.
func (r *Registry) RegisterHook(ext string, hook Hook) {
	key := normalizeExt(ext)
	if key == "" {
		panic("hook extension must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.hooks[key]; exists {
		panic(fmt.Sprintf("hook for extension '%s' already registered", key))
	}
	slog.Debug("Registering script hook.", "extension", key, "language", hook.Language())
	r.hooks[key] = hook
}

// Lookup returns the hook for an extension. Extensions are matched
// case-insensitively.
func (r *Registry) Lookup(ext string) (Hook, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hooks[normalizeExt(ext)]
	return h, ok
}

// LookupArtifact returns the hook for a's extension.
func (r *Registry) LookupArtifact(a artifact.Artifact) (Hook, bool) {
	return r.Lookup(a.Extension)
}

// Extensions returns the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.hooks))
	for ext := range r.hooks {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	return strings.ToLower(artifact.NormalizeName(strings.TrimPrefix(ext, ".")))
}
