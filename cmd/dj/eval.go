package main

import (
	"fmt"
	"strings"

	"github.com/gistsapi/dynjson/dyn"
	"github.com/gistsapi/dynjson/eval"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func evalDocs(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: eval requires an expression", cli.ErrUsage)
	}
	code := args[0]
	opts := []eval.Option{eval.WithEnv(cfg.Env)}
	if cfg.Undefined {
		opts = append(opts, eval.AllowUndefined())
	}
	return cfg.each(cc.Out, args[1:], func(doc *dyn.Value) (*dyn.Value, error) {
		return eval.Eval(doc, code, opts...)
	})
}

// envFunc binds key=val in env. Dots in key name nested maps, and val is
// read as yaml so that numbers and lists keep their types.
func envFunc(env map[string]any, a string) error {
	key, val, ok := strings.Cut(a, "=")
	if !ok {
		return fmt.Errorf("%w: argument %q expected key=val", cli.ErrUsage, a)
	}
	var v any
	if err := yaml.Unmarshal([]byte(val), &v); err != nil {
		return err
	}
	parts := strings.Split(key, ".")
	tmpEnv := env
	for i, part := range parts {
		if part == "" {
			return fmt.Errorf("%w: empty name in %q", cli.ErrUsage, key)
		}
		if i == len(parts)-1 {
			tmpEnv[part] = v
			break
		}
		next, ok := tmpEnv[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			tmpEnv[part] = next
		}
		tmpEnv = next
	}
	return nil
}
