package app

import (
	"github.com/specialistvlad/scriptfunc/internal/hclhook"
	"github.com/specialistvlad/scriptfunc/internal/registry"
	"github.com/specialistvlad/scriptfunc/modules/env_vars"
	"github.com/zclconf/go-cty/cty/function"
)

// coreModules is the definitive list of script hooks compiled into the
// scriptfunc binary.
var coreModules = []registry.Module{
	hclhook.Module{},
}

// builtinFunctions returns the Go functions served after the store.
func builtinFunctions() map[string]function.Function {
	fns := hclhook.StdlibFunctions()
	for name, fn := range env_vars.Functions() {
		fns[name] = fn
	}
	return fns
}
