package main

import (
	"fmt"

	"github.com/gistsapi/dynjson/dyn"
	"github.com/gistsapi/dynjson/libdiff"
	"github.com/gistsapi/dynjson/patch"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 arguments, got %d", cli.ErrUsage, len(args))
	}
	if args[0] == "-" && args[1] == "-" {
		return fmt.Errorf("%w: at most one argument may be stdin", cli.ErrUsage)
	}
	from, err := cfg.load(args[0])
	if err != nil {
		return err
	}
	to, err := cfg.load(args[1])
	if err != nil {
		return err
	}
	if cfg.Reverse {
		from, to = to, from
	}
	var res *dyn.Value
	if cfg.Merge {
		res, err = patch.MergeDiff(from, to)
		if err != nil {
			return err
		}
	} else {
		res = libdiff.Diff(from, to)
	}
	if res == nil {
		return nil
	}
	return cfg.write(cc.Out, res)
}
