package hclhook

import (
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

var stdlibFunctions = map[string]function.Function{
	"abs":      stdlib.AbsoluteFunc,
	"ceil":     stdlib.CeilFunc,
	"floor":    stdlib.FloorFunc,
	"max":      stdlib.MaxFunc,
	"min":      stdlib.MinFunc,
	"upper":    stdlib.UpperFunc,
	"lower":    stdlib.LowerFunc,
	"strlen":   stdlib.StrlenFunc,
	"join":     stdlib.JoinFunc,
	"concat":   stdlib.ConcatFunc,
	"format":   stdlib.FormatFunc,
	"length":   stdlib.LengthFunc,
	"coalesce": stdlib.CoalesceFunc,
}

// StdlibFunctions returns the functions scripts may call. The returned map
// is a copy.
func StdlibFunctions() map[string]function.Function {
	out := make(map[string]function.Function, len(stdlibFunctions))
	for k, v := range stdlibFunctions {
		out[k] = v
	}
	return out
}
