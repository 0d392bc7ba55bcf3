package resolver

import (
	"context"

	"github.com/specialistvlad/scriptfunc/internal/artifact"
	"github.com/specialistvlad/scriptfunc/internal/ctxlog"
	"github.com/specialistvlad/scriptfunc/internal/fnname"
	"github.com/specialistvlad/scriptfunc/internal/fsutil"
)

// Resolver locates artifacts for logical names. It holds no state besides
// the store and is safe for concurrent use.
type Resolver struct {
	store artifact.Store
}

// New creates a resolver over store.
func New(store artifact.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the artifact backing name.
//
// A missing artifact is reported as (zero, false, nil). A store failure is
// reported as (zero, false, err) with err wrapping artifact.ErrStoreUnavailable;
// the lookup itself is still a miss.
func (r *Resolver) Resolve(ctx context.Context, name fnname.Name) (artifact.Artifact, bool, error) {
	logger := ctxlog.FromContext(ctx)
	name = name.Normalize()

	if name.Local == "" || fsutil.HasPathSeparator(name.Local) || fsutil.HasPathSeparator(name.Namespace) {
		logger.Debug("Resolved name has no backing artifact.", "name", name.String(), "reason", "invalid name")
		return artifact.Artifact{}, false, nil
	}

	if name.HasNamespace() {
		return r.resolveQualified(ctx, name)
	}
	return r.resolveByBaseName(ctx, name)
}

func (r *Resolver) resolveQualified(ctx context.Context, name fnname.Name) (artifact.Artifact, bool, error) {
	logger := ctxlog.FromContext(ctx)
	fileName := name.FileName()

	ok, err := r.store.Exists(ctx, fileName)
	if err != nil {
		logger.Warn("Store existence check failed.", "name", name.String(), "file", fileName, "error", err)
		return artifact.Artifact{}, false, err
	}
	if !ok {
		logger.Debug("Resolved name has no backing artifact.", "name", name.String(), "file", fileName)
		return artifact.Artifact{}, false, nil
	}
	return artifact.New(fileName), true, nil
}

func (r *Resolver) resolveByBaseName(ctx context.Context, name fnname.Name) (artifact.Artifact, bool, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := r.store.List(ctx)
	if err != nil {
		logger.Warn("Store enumeration failed.", "name", name.String(), "error", err)
		return artifact.Artifact{}, false, err
	}

	for _, f := range files {
		a := artifact.New(f)
		if a.BaseName == name.Local {
			return a, true, nil
		}
	}

	logger.Debug("Resolved name has no backing artifact.", "name", name.String(), "candidates", len(files))
	return artifact.Artifact{}, false, nil
}
