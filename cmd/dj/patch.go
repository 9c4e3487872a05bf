package main

import (
	"fmt"

	"github.com/gistsapi/dynjson/dyn"
	"github.com/gistsapi/dynjson/patch"

	"github.com/scott-cotton/cli"
)

func patchDocs(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch argument", cli.ErrUsage)
	}
	ops := []byte(args[0])
	if cfg.File {
		ops, err = readArg(args[0])
		if err != nil {
			return err
		}
	}
	return cfg.each(cc.Out, args[1:], func(doc *dyn.Value) (*dyn.Value, error) {
		if cfg.Merge {
			return patch.Merge(doc, ops)
		}
		return patch.Apply(doc, ops)
	})
}
