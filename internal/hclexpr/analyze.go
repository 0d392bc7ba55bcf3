// Package hclexpr analyzes HCL expressions for the variables they reference
// and the functions they call.
package hclexpr

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// TraversalKey generates a stable, canonical string representation for an
// hcl.Traversal, suitable for use as a map key.
func TraversalKey(t hcl.Traversal) string {
	// e.g., var.foo[0].bar
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

// FunctionCall is one call site found in an expression.
type FunctionCall struct {
	Name  string
	Range hcl.Range
}

// Analysis holds what a set of expressions depends on.
type Analysis struct {
	// References are the unique variable traversals, sorted by key.
	References []hcl.Traversal
	// Calls lists every function call site in source order per expression.
	Calls []FunctionCall
}

// Analyze walks exprs and collects variable references and function calls.
// Nil expressions are ignored. Function calls can only be found in native
// syntax expressions.
func Analyze(exprs ...hcl.Expression) Analysis {
	traversals := make(map[string]hcl.Traversal)
	var calls []FunctionCall

	for _, expr := range exprs {
		if expr == nil {
			continue
		}

		for _, traversal := range expr.Variables() {
			traversals[TraversalKey(traversal)] = traversal
		}

		// Variables() does not report function calls; walk the syntax tree.
		if syntaxExpr, ok := expr.(hclsyntax.Expression); ok {
			hclsyntax.VisitAll(syntaxExpr, func(n hclsyntax.Node) hcl.Diagnostics {
				if call, ok := n.(*hclsyntax.FunctionCallExpr); ok {
					calls = append(calls, FunctionCall{Name: call.Name, Range: call.NameRange})
				}
				return nil
			})
		}
	}

	keys := make([]string, 0, len(traversals))
	for k := range traversals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	refs := make([]hcl.Traversal, 0, len(keys))
	for _, k := range keys {
		refs = append(refs, traversals[k])
	}
	return Analysis{References: refs, Calls: calls}
}

// FunctionNames returns the unique called function names, sorted.
func (a Analysis) FunctionNames() []string {
	seen := make(map[string]struct{}, len(a.Calls))
	names := make([]string, 0, len(a.Calls))
	for _, c := range a.Calls {
		if _, dup := seen[c.Name]; dup {
			continue
		}
		seen[c.Name] = struct{}{}
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

// ReferenceKeys returns the canonical keys of References.
func (a Analysis) ReferenceKeys() []string {
	keys := make([]string, len(a.References))
	for i, r := range a.References {
		keys[i] = TraversalKey(r)
	}
	return keys
}
