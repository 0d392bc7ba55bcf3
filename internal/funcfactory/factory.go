package funcfactory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/scriptfunc/internal/artifact"
	"github.com/specialistvlad/scriptfunc/internal/cache"
	"github.com/specialistvlad/scriptfunc/internal/ctxlog"
	"github.com/specialistvlad/scriptfunc/internal/fnname"
	"github.com/specialistvlad/scriptfunc/internal/handler"
	"github.com/specialistvlad/scriptfunc/internal/invocable"
	"github.com/specialistvlad/scriptfunc/internal/registry"
	"github.com/specialistvlad/scriptfunc/internal/resolver"
	"github.com/zclconf/go-cty/cty"
)

// Option configures a Factory.
type Option func(*options)

type options struct {
	capacity int
	logger   *slog.Logger
}

// WithCapacity bounds the number of resident handlers.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// WithLogger sets the logger used when a call's context carries none.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Factory produces functions backed by artifacts in a store.
type Factory struct {
	store    artifact.Store
	hooks    *registry.Registry
	resolver *resolver.Resolver
	handlers *handler.Factory
	cache    *cache.Cache[fnname.Name, *handler.Handler]
	logger   *slog.Logger
}

var _ Source = (*Factory)(nil)

// New creates a factory over store, compiling artifacts with hooks.
func New(store artifact.Store, hooks *registry.Registry, opts ...Option) (*Factory, error) {
	o := options{capacity: cache.DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}

	f := &Factory{
		store:    store,
		hooks:    hooks,
		resolver: resolver.New(store),
		handlers: handler.NewFactory(store, hooks),
		logger:   o.logger,
	}

	c, err := cache.New[fnname.Name, *handler.Handler](o.capacity, cache.WithOnEvict(f.evicted))
	if err != nil {
		return nil, fmt.Errorf("failed to create resolution cache: %w", err)
	}
	f.cache = c
	return f, nil
}

// FunctionNames lists a name for every artifact some hook can compile. The
// store is enumerated on every call. A store failure yields an empty list.
func (f *Factory) FunctionNames(ctx context.Context) []fnname.Name {
	ctx = f.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)

	files, err := f.store.List(ctx)
	if err != nil {
		logger.Warn("Store enumeration failed.", "error", err)
		return []fnname.Name{}
	}

	names := make([]fnname.Name, 0, len(files))
	for _, file := range files {
		a := artifact.New(file)
		if _, ok := f.hooks.LookupArtifact(a); !ok {
			logger.Debug("Artifact skipped, no hook.", "file", a.FileName, "extension", a.Extension)
			continue
		}
		names = append(names, a.Name())
	}
	return names
}

// Function returns the function behind name bound to args and fallback.
//
// It returns (nil, nil) when no artifact backs the name, including when the
// store could not be reached during resolution. It returns an error only when
// an artifact was found but could not be turned into a function; see
// IsConfigurationFault.
func (f *Factory) Function(ctx context.Context, name fnname.Name, args []hcl.Expression, fallback *cty.Value) (*invocable.Function, error) {
	ctx = f.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)
	name = name.Normalize()

	h, ok, err := f.cache.GetOrCreate(name, func() (*handler.Handler, bool, error) {
		a, found, err := f.resolver.Resolve(ctx, name)
		if err != nil || !found {
			return nil, false, err
		}
		h, err := f.handlers.Construct(ctx, a)
		if err != nil {
			return nil, false, err
		}
		return h, true, nil
	})
	if err != nil {
		if IsConfigurationFault(err) {
			return nil, err
		}
		logger.Warn("Function lookup failed, treating as not recognized.", "name", name.String(), "error", err)
		return nil, nil
	}
	if !ok {
		logger.Debug("Function not recognized.", "name", name.String())
		return nil, nil
	}
	return invocable.Bind(h, name, args, fallback), nil
}

// FunctionByLocalName is Function for an unqualified name.
func (f *Factory) FunctionByLocalName(ctx context.Context, local string, args []hcl.Expression, fallback *cty.Value) (*invocable.Function, error) {
	return f.Function(ctx, fnname.Local(local), args, fallback)
}

// Stats returns the resolution cache counters.
func (f *Factory) Stats() cache.Stats {
	return f.cache.Stats()
}

// Resident returns the number of cached handlers.
func (f *Factory) Resident() int {
	return f.cache.Len()
}

// IsConfigurationFault reports whether err means an artifact exists but is
// malformed or vanished mid-lookup, as opposed to the name being unknown.
func IsConfigurationFault(err error) bool {
	return errors.Is(err, handler.ErrArtifactInvalid) || errors.Is(err, handler.ErrArtifactUnavailable)
}

func (f *Factory) withLogger(ctx context.Context) context.Context {
	if f.logger == nil {
		return ctx
	}
	if _, ok := ctxlog.Lookup(ctx); ok {
		return ctx
	}
	return ctxlog.WithLogger(ctx, f.logger)
}

func (f *Factory) evicted(name fnname.Name, h *handler.Handler) {
	logger := f.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Handler evicted.", "name", name.String(), "handler_id", h.ID.String())
}
