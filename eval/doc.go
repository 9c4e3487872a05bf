// Package eval evaluates expressions over dyn values with
// github.com/expr-lang/expr.
//
// The document is visible as doc and, for objects, its top-level members
// are visible by name:
//
//	v, err := eval.Eval(doc, `files["a.txt"].size > 0 && public`)
//
// Besides the expr-lang builtins, expressions may call getpath(p) and
// haspath(p) with a path in dyn.ParsePath syntax, and getenv(name).
package eval
