package handler

import (
	"github.com/google/uuid"
	"github.com/specialistvlad/scriptfunc/internal/artifact"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Handler is a constructed script function.
type Handler struct {
	// ID is unique per construction. Two handlers built from the same
	// content behave the same but have different IDs.
	ID          uuid.UUID
	Artifact    artifact.Artifact
	Language    string
	Description string
	Params      []string
	Function    function.Function
}

// New wraps an already built function. It is used for handlers that have no
// backing artifact, such as builtins.
func New(language string, fn function.Function) *Handler {
	params := fn.Params()
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return &Handler{
		ID:          uuid.New(),
		Language:    language,
		Description: fn.Description(),
		Params:      names,
		Function:    fn,
	}
}

// Arity returns the number of fixed parameters and whether the function
// accepts additional variadic arguments.
func (h *Handler) Arity() (int, bool) {
	return len(h.Function.Params()), h.Function.VarParam() != nil
}

// Call invokes the function.
func (h *Handler) Call(args []cty.Value) (cty.Value, error) {
	return h.Function.Call(args)
}
