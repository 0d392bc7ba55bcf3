package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/scriptfunc/internal/app"
	"github.com/specialistvlad/scriptfunc/internal/fnname"
	"github.com/specialistvlad/scriptfunc/internal/funcfactory"
	"github.com/specialistvlad/scriptfunc/internal/hclexpr"
	"github.com/spf13/cobra"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

func newCallCmd(f *flags, outW, errW io.Writer) *cobra.Command {
	var fallbackSrc string

	cmd := &cobra.Command{
		Use:   "call NAME [ARG_EXPR...]",
		Short: "Call a function and print its result as JSON",
		Long: `Call resolves NAME, evaluates each ARG_EXPR as an HCL expression and
passes the values to the function. The result is printed as JSON.

Examples:
  scriptfunc call hcl:sum 1 2
  scriptfunc call upper '"hello"'
  scriptfunc call sum 1 '"x"' --fallback 0`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := fnname.Parse(args[0])
			if err != nil {
				return usageError("invalid function name: %v", err)
			}
			exprs, err := parseExpressions(args[1:])
			if err != nil {
				return err
			}
			var fallback *cty.Value
			if cmd.Flags().Changed("fallback") {
				v, err := evalLiteral(fallbackSrc)
				if err != nil {
					return err
				}
				fallback = &v
			}

			a, err := f.newApp(cmd, errW)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.Call(cmd.Context(), name, exprs, fallback, nil)
			switch {
			case errors.Is(err, app.ErrNotRecognized):
				warning(errW, "function %s is not recognized", name)
				return &ExitError{Code: ExitNotRecognized, Message: err.Error()}
			case funcfactory.IsConfigurationFault(err):
				failure(errW, "function %s is misconfigured", name)
				return &ExitError{Code: ExitFailure, Message: err.Error()}
			case err != nil:
				return &ExitError{Code: ExitFailure, Message: err.Error()}
			}

			out, err := ctyjson.Marshal(result, result.Type())
			if err != nil {
				return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("failed to encode result: %v", err)}
			}
			fmt.Fprintln(outW, string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&fallbackSrc, "fallback", "", "HCL expression returned when the call fails.")
	return cmd
}

func parseExpressions(srcs []string) ([]hcl.Expression, error) {
	exprs := make([]hcl.Expression, len(srcs))
	for i, src := range srcs {
		expr, diags := hclsyntax.ParseExpression([]byte(src), fmt.Sprintf("<arg %d>", i+1), hcl.InitialPos)
		if diags.HasErrors() {
			return nil, usageError("invalid argument %d: %v", i+1, diags)
		}
		exprs[i] = expr
	}
	if refs := hclexpr.Analyze(exprs...).ReferenceKeys(); len(refs) > 0 {
		return nil, usageError("arguments must be constant expressions, found references to: %s", strings.Join(refs, ", "))
	}
	return exprs, nil
}

func evalLiteral(src string) (cty.Value, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "<fallback>", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.NilVal, usageError("invalid fallback: %v", diags)
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, usageError("invalid fallback: %v", diags)
	}
	return v, nil
}
