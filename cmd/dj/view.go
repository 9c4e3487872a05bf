package main

import (
	"fmt"

	"github.com/gistsapi/dynjson/dyn"
	"github.com/gistsapi/dynjson/parse"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	return cfg.each(cc.Out, args, func(doc *dyn.Value) (*dyn.Value, error) {
		return doc, nil
	})
}

func pathArg(name string, args []string) (dyn.Path, []string, error) {
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("%w: %s requires a path", cli.ErrUsage, name)
	}
	p, err := dyn.ParsePath(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return p, args[1:], nil
}

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	p, args, err := pathArg("get", args)
	if err != nil {
		return err
	}
	return cfg.each(cc.Out, args, func(doc *dyn.Value) (*dyn.Value, error) {
		return doc.Walk(p)
	})
}

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: set requires a path and a value", cli.ErrUsage)
	}
	path := args[0]
	if _, err := dyn.ParsePath(path); err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	var val *dyn.Value
	if cfg.String {
		val = dyn.FromString(args[1])
	} else {
		val, err = parse.ParseString(args[1], parse.ParseJSON())
		if err != nil {
			return fmt.Errorf("%w: value %q: %w", cli.ErrUsage, args[1], err)
		}
	}
	return cfg.each(cc.Out, args[2:], func(doc *dyn.Value) (*dyn.Value, error) {
		if err := doc.SetPath(path, val); err != nil {
			return nil, err
		}
		return doc, nil
	})
}

func del(cfg *DeleteConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Delete.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: delete requires a path", cli.ErrUsage)
	}
	path := args[0]
	if _, err := dyn.ParsePath(path); err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return cfg.each(cc.Out, args[1:], func(doc *dyn.Value) (*dyn.Value, error) {
		ok, err := doc.DeletePath(path)
		if err != nil {
			return nil, err
		}
		if !ok {
			theLog.Warn("nothing to delete", "path", path)
		}
		return doc, nil
	})
}

func keys(cfg *KeysConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Keys.Parse(cc, args)
	if err != nil {
		return err
	}
	p, args, err := pathArg("keys", args)
	if err != nil {
		return err
	}
	return cfg.each(cc.Out, args, func(doc *dyn.Value) (*dyn.Value, error) {
		v, err := doc.Walk(p)
		if err != nil {
			return nil, err
		}
		ks, err := v.Keys()
		if err != nil {
			return nil, err
		}
		return dyn.FromObject(ks)
	})
}
