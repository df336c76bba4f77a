// Package expr evaluates the numeric expressions accepted on the command
// line, such as "PI/2" or "TAU/LAYOUT_END".
//
// Expressions are starlark. PI, TAU and the starlark math module are
// predeclared, along with any integer defines supplied by the caller.
package expr

import (
	"iter"
	"math"
	"strconv"

	starlarkmath "go.starlark.net/lib/math"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Eval evaluates text to a number.
func Eval(text string, defines iter.Seq2[string, string]) (value float64, err error) {
	thread := &starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}

	pred := starlark.StringDict{
		"PI":   starlark.Float(math.Pi),
		"TAU":  starlark.Float(2 * math.Pi),
		"math": starlarkmath.Module,
	}
	if defines != nil {
		for key, str := range defines {
			n, perr := strconv.ParseInt(str, 0, 64)
			if perr != nil {
				// Ignore non-integer defines.
				continue
			}
			pred[key] = starlark.MakeInt64(n)
		}
	}

	prog := "rc=" + text + "\n"
	dict, err := starlark.ExecFileOptions(&opts, thread, "expr", prog, pred)
	if err != nil {
		err = &ErrEval{Expr: text, Err: err}
		return
	}

	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrExpression(text)
		return
	}

	value, ok = starlark.AsFloat(st_rc)
	if !ok {
		err = ErrExpression(text)
		return
	}

	return
}

// Eval32 evaluates text to a float32 phase or step.
func Eval32(text string, defines iter.Seq2[string, string]) (value float32, err error) {
	v, err := Eval(text, defines)
	if err != nil {
		return
	}

	value = float32(v)
	return
}
