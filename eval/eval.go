package eval

import (
	"fmt"
	"os"

	"github.com/expr-lang/expr"

	"github.com/gistsapi/dynjson/debug"
	"github.com/gistsapi/dynjson/dyn"
)

// DocName is the variable holding the whole document.
const DocName = "doc"

// Env holds the variables visible to an expression.
type Env map[string]any

type evalOpts struct {
	env            Env
	allowUndefined bool
}

// Option configures Eval.
type Option func(*evalOpts)

// WithEnv adds variables to the environment. They take precedence over
// members of the document.
func WithEnv(env Env) Option {
	return func(o *evalOpts) {
		for k, v := range env {
			o.env[k] = v
		}
	}
}

// AllowUndefined makes unknown names evaluate to nil instead of failing
// compilation.
func AllowUndefined() Option {
	return func(o *evalOpts) { o.allowUndefined = true }
}

// Eval evaluates the expr-lang expression code against doc and returns the
// result as a value. The document is bound to DocName and, when it is an
// object, each top-level member whose key is a label is bound by name.
func Eval(doc *dyn.Value, code string, opts ...Option) (*dyn.Value, error) {
	if doc == nil {
		doc = dyn.Null()
	}
	o := &evalOpts{env: Env{}}
	for _, opt := range opts {
		opt(o)
	}
	env := Env{}
	if doc.Type == dyn.ObjectType {
		for _, m := range doc.Members {
			name := m.Name()
			if _, ok := env[name]; ok || !dyn.IsLabel(name) {
				continue
			}
			env[name] = ToAny(m.Value)
		}
	}
	env[DocName] = ToAny(doc)
	for k, v := range o.env {
		env[k] = v
	}
	if debug.Eval() {
		debug.Logf("eval %q on %s\n", code, debug.JSON{Value: doc})
	}

	exprOpts := append([]expr.Option{expr.Env(map[string]any(env))}, funcs(doc)...)
	if o.allowUndefined {
		exprOpts = append(exprOpts, expr.AllowUndefinedVariables())
	}
	prg, err := expr.Compile(code, exprOpts...)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", code, err)
	}
	res, err := expr.Run(prg, map[string]any(env))
	if err != nil {
		return nil, fmt.Errorf("run %q: %w", code, err)
	}
	return FromAny(res)
}

func funcs(doc *dyn.Value) []expr.Option {
	return []expr.Option{
		expr.Function("getpath", func(params ...any) (any, error) {
			v, err := doc.GetPath(params[0].(string))
			if err != nil {
				return nil, err
			}
			return ToAny(v), nil
		},
			new(func(string) any)),
		expr.Function("haspath", func(params ...any) (any, error) {
			_, err := doc.GetPath(params[0].(string))
			return err == nil, nil
		},
			new(func(string) bool)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}
