// Package env_vars provides builtin functions that read the process
// environment.
package env_vars

import (
	"os"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// EnvFunc returns the value of one environment variable, or null when unset.
var EnvFunc = function.New(&function.Spec{
	Description: "Returns the value of an environment variable, or null when it is unset.",
	Params: []function.Parameter{
		{Name: "name", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		v, ok := os.LookupEnv(args[0].AsString())
		if !ok {
			return cty.NullVal(cty.String), nil
		}
		return cty.StringVal(v), nil
	},
})

// EnvAllFunc returns every environment variable as a map.
var EnvAllFunc = function.New(&function.Spec{
	Description: "Returns all environment variables as a map of strings.",
	Type:        function.StaticReturnType(cty.Map(cty.String)),
	Impl: func(_ []cty.Value, _ cty.Type) (cty.Value, error) {
		envMap := make(map[string]cty.Value)
		for _, e := range os.Environ() {
			pair := strings.SplitN(e, "=", 2)
			if len(pair) == 2 {
				envMap[pair[0]] = cty.StringVal(pair[1])
			}
		}
		if len(envMap) == 0 {
			return cty.MapValEmpty(cty.String), nil
		}
		return cty.MapVal(envMap), nil
	},
})

// Functions returns the functions this package contributes to the builtin
// source.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"env":     EnvFunc,
		"env_all": EnvAllFunc,
	}
}
