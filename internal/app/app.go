package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/hashicorp/hcl/v2"
	"github.com/redis/go-redis/v9"
	"github.com/specialistvlad/scriptfunc/internal/artifact"
	"github.com/specialistvlad/scriptfunc/internal/ctxlog"
	"github.com/specialistvlad/scriptfunc/internal/dirstore"
	"github.com/specialistvlad/scriptfunc/internal/fnname"
	"github.com/specialistvlad/scriptfunc/internal/funcfactory"
	"github.com/specialistvlad/scriptfunc/internal/inmemorystore"
	"github.com/specialistvlad/scriptfunc/internal/redisstore"
	"github.com/specialistvlad/scriptfunc/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// ErrNotRecognized is returned by Call when no source knows the name.
var ErrNotRecognized = errors.New("function not recognized")

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	ctx      context.Context
	config   *Config
	store    artifact.Store
	registry *registry.Registry
	factory  *funcfactory.Factory
	source   funcfactory.Source
	closers  []io.Closer
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// When no modules are given the core modules are registered.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.Log.Level, cfg.Log.Format, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:   outW,
		logger: logger,
		ctx:    ctx,
		config: cfg,
	}

	store, err := a.newStore()
	if err != nil {
		return nil, err
	}
	a.store = store
	logger.Debug("Function store configured.", "type", cfg.Store.Type)

	if len(modules) == 0 {
		modules = coreModules
	}
	a.registry = registry.New(modules...)
	logger.Debug("All script hooks registered.", "extensions", a.registry.Extensions())

	factory, err := funcfactory.New(store, a.registry,
		funcfactory.WithCapacity(cfg.Cache.Capacity),
		funcfactory.WithLogger(logger),
	)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.factory = factory
	a.source = funcfactory.Chain(factory, funcfactory.NewBuiltins(builtinFunctions()))
	logger.Debug("Function factory ready.", "cache_capacity", cfg.Cache.Capacity)

	return a, nil
}

func (a *App) newStore() (artifact.Store, error) {
	switch a.config.Store.Type {
	case StoreMemory:
		return inmemorystore.New(), nil
	case StoreRedis:
		rc := a.config.Store.Redis
		s, err := redisstore.New(&redis.Options{
			Addr:     rc.Addr,
			Password: rc.Password,
			DB:       rc.DB,
		}, rc.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis store: %w", err)
		}
		a.closers = append(a.closers, s)
		if err := s.Ping(a.ctx); err != nil {
			a.logger.Warn("Redis store is not reachable yet.", "addr", rc.Addr, "error", err)
		}
		return s, nil
	default:
		return dirstore.New(a.config.Store.Path), nil
	}
}

// Store returns the configured artifact store.
func (a *App) Store() artifact.Store {
	return a.store
}

// Registry returns the application's hook registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Factory returns the store-backed function factory.
func (a *App) Factory() *funcfactory.Factory {
	return a.factory
}

// Source returns the full function source: the store first, then builtins.
func (a *App) Source() funcfactory.Source {
	return a.source
}

// FunctionNames lists every callable function name.
func (a *App) FunctionNames(ctx context.Context) []fnname.Name {
	return a.source.FunctionNames(ctxlog.WithLogger(ctx, a.logger))
}

// Call resolves name and evaluates it with args in evalCtx. It returns
// ErrNotRecognized when no source knows the name.
func (a *App) Call(ctx context.Context, name fnname.Name, args []hcl.Expression, fallback *cty.Value, evalCtx *hcl.EvalContext) (cty.Value, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	fn, err := a.source.Function(ctx, name, args, fallback)
	if err != nil {
		return cty.NilVal, err
	}
	if fn == nil {
		return cty.NilVal, fmt.Errorf("%s: %w", name, ErrNotRecognized)
	}

	a.logger.Debug("Evaluating function.", "name", name.String(), "language", fn.Handler().Language, "args", len(args))
	return fn.Evaluate(evalCtx)
}

// Close releases store connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
