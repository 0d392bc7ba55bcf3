package handler

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/specialistvlad/scriptfunc/internal/artifact"
	"github.com/specialistvlad/scriptfunc/internal/ctxlog"
	"github.com/specialistvlad/scriptfunc/internal/registry"
)

// Factory builds handlers from artifacts.
type Factory struct {
	store artifact.Store
	hooks *registry.Registry
}

// NewFactory creates a factory reading from store and compiling with hooks.
func NewFactory(store artifact.Store, hooks *registry.Registry) *Factory {
	return &Factory{store: store, hooks: hooks}
}

// Construct builds the handler for a. It returns an error wrapping
// ErrArtifactUnavailable or ErrArtifactInvalid.
func (f *Factory) Construct(ctx context.Context, a artifact.Artifact) (*Handler, error) {
	logger := ctxlog.FromContext(ctx).With("file", a.FileName)

	exists, err := f.store.Exists(ctx, a.FileName)
	if err != nil {
		return nil, unavailable(a.FileName, err)
	}
	if !exists {
		return nil, unavailable(a.FileName, artifact.ErrNotFound)
	}

	hook, ok := f.hooks.LookupArtifact(a)
	if !ok {
		return nil, invalid(a.FileName, fmt.Errorf("no hook registered for extension %q", a.Extension))
	}

	content, err := f.read(ctx, a.FileName)
	if err != nil {
		return nil, unavailable(a.FileName, err)
	}

	compiled, err := hook.Compile(ctx, a, content)
	if err != nil {
		return nil, invalid(a.FileName, err)
	}
	if compiled == nil {
		return nil, invalid(a.FileName, errors.New("hook returned no function"))
	}

	h := &Handler{
		ID:          uuid.New(),
		Artifact:    a,
		Language:    hook.Language(),
		Description: compiled.Description,
		Params:      compiled.Params,
		Function:    compiled.Function,
	}
	logger.Debug("Handler constructed.", "handler_id", h.ID.String(), "language", h.Language, "params", len(h.Params))
	return h, nil
}

func (f *Factory) read(ctx context.Context, name string) ([]byte, error) {
	rc, err := f.store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return content, nil
}
