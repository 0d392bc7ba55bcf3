// Package hclhook is the built-in script language: an artifact with the
// "hcl" extension defines one function as an HCL body.
//
//	description = "adds two numbers"
//	params      = ["a", "b"]
//	result      = a + b
//
// `result` is an HCL expression that may reference the params and call a
// small fixed set of cty standard library functions. Everything is checked
// when the artifact is compiled, so a script that references an unknown
// variable or function is rejected before it is ever cached.
package hclhook
