package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gistsapi/dynjson/dyn"
	"github.com/gistsapi/dynjson/encode"
	"github.com/gistsapi/dynjson/parse"

	"github.com/scott-cotton/cli"
)

func djMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if count(cfg.J, cfg.Y) > 1 {
		return fmt.Errorf("%w: must specify at most one of -j[son] -y[aml]", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func count(vs ...bool) int {
	ttl := 0
	for _, v := range vs {
		if v {
			ttl++
		}
	}
	return ttl
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// readArg reads the file named arg, or standard input for "-".
func readArg(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	d, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", arg, err)
	}
	return d, nil
}

func (cfg *MainConfig) load(arg string) (*dyn.Value, error) {
	d, err := readArg(arg)
	if err != nil {
		return nil, err
	}
	v, err := parse.Parse(d, cfg.parseOpts(arg)...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	return v, nil
}

// each runs f on the document of every file in args, or of standard input
// when there are none, writing each result on its own line. A nil result
// writes nothing.
func (cfg *MainConfig) each(w io.Writer, args []string, f func(*dyn.Value) (*dyn.Value, error)) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		doc, err := cfg.load(arg)
		if err != nil {
			return err
		}
		res, err := f(doc)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", arg, err)
		}
		if res == nil {
			continue
		}
		if err := cfg.write(w, res); err != nil {
			return err
		}
	}
	return nil
}

func (cfg *MainConfig) write(w io.Writer, v *dyn.Value) error {
	if err := encode.Encode(v, w, cfg.encOpts(w)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	if !cfg.outFormat().IsJSON() {
		return nil
	}
	_, err := io.WriteString(w, "\n")
	return err
}
