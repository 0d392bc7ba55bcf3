package hclhook

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/scriptfunc/internal/artifact"
	"github.com/specialistvlad/scriptfunc/internal/ctxlog"
	"github.com/specialistvlad/scriptfunc/internal/hclexpr"
	"github.com/specialistvlad/scriptfunc/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Extension is the artifact extension handled by this package.
const Extension = "hcl"

// Module registers the HCL hook.
type Module struct{}

// Register implements registry.Module.
func (Module) Register(r *registry.Registry) {
	r.RegisterHook(Extension, Hook{})
}

// Hook compiles HCL function scripts.
type Hook struct{}

var _ registry.Hook = Hook{}

// scriptBody is the decoding schema of a function script.
type scriptBody struct {
	Description string         `hcl:"description,optional"`
	Params      []string       `hcl:"params,optional"`
	Result      hcl.Expression `hcl:"result"`
}

// Language implements registry.Hook.
func (Hook) Language() string { return "hcl" }

// Compile parses content and builds a cty function from it.
func (Hook) Compile(ctx context.Context, a artifact.Artifact, content []byte) (*registry.Compiled, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Compiling HCL function script.", "file", a.FileName, "bytes", len(content))

	// A fresh parser per call: hclparse caches files by name, and the same
	// artifact may be recompiled after it changes.
	file, diags := hclparse.NewParser().ParseHCL(content, a.FileName)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL script %s: %w", a.FileName, diags)
	}

	var body scriptBody
	if diags := gohcl.DecodeBody(file.Body, nil, &body); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL script %s: %w", a.FileName, diags)
	}

	if diags := validate(&body); diags.HasErrors() {
		return nil, fmt.Errorf("invalid HCL script %s: %w", a.FileName, diags)
	}

	return &registry.Compiled{
		Description: body.Description,
		Params:      append([]string(nil), body.Params...),
		Function:    newFunction(&body),
	}, nil
}

// validate checks param names and that result only references params and
// known functions.
func validate(body *scriptBody) hcl.Diagnostics {
	var diags hcl.Diagnostics
	rng := body.Result.Range()

	declared := make(map[string]struct{}, len(body.Params))
	for _, p := range body.Params {
		if !hclsyntax.ValidIdentifier(p) {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid parameter name",
				Detail:   fmt.Sprintf("%q is not a valid identifier.", p),
				Subject:  &rng,
			})
			continue
		}
		if _, dup := declared[p]; dup {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate parameter",
				Detail:   fmt.Sprintf("Parameter %q is declared more than once.", p),
				Subject:  &rng,
			})
			continue
		}
		declared[p] = struct{}{}
	}

	analysis := hclexpr.Analyze(body.Result)
	for _, traversal := range analysis.References {
		root := traversal.RootName()
		if _, ok := declared[root]; !ok {
			r := traversal.SourceRange()
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown variable",
				Detail:   fmt.Sprintf("%q is not a declared parameter.", root),
				Subject:  &r,
			})
		}
	}

	funcs := StdlibFunctions()
	for _, call := range analysis.Calls {
		if _, known := funcs[call.Name]; known {
			continue
		}
		r := call.Range
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Call to unknown function",
			Detail:   fmt.Sprintf("There is no function named %q.", call.Name),
			Subject:  &r,
		})
	}

	return diags
}

// newFunction wraps the result expression as a cty function taking one
// dynamically typed argument per param.
func newFunction(body *scriptBody) function.Function {
	names := append([]string(nil), body.Params...)
	expr := body.Result
	funcs := StdlibFunctions()

	params := make([]function.Parameter, len(names))
	for i, n := range names {
		params[i] = function.Parameter{
			Name:      n,
			Type:      cty.DynamicPseudoType,
			AllowNull: true,
		}
	}

	return function.New(&function.Spec{
		Description: body.Description,
		Params:      params,
		Type:        function.StaticReturnType(cty.DynamicPseudoType),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			vars := make(map[string]cty.Value, len(args))
			for i, v := range args {
				vars[names[i]] = v
			}
			val, diags := expr.Value(&hcl.EvalContext{Variables: vars, Functions: funcs})
			if diags.HasErrors() {
				return cty.NilVal, diags
			}
			return val, nil
		},
	})
}
