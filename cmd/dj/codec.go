package main

import (
	"fmt"

	"github.com/gistsapi/dynjson/codec"

	"github.com/scott-cotton/cli"
)

func (cfg *CodecConfig) codec() (codec.Codec, error) {
	var (
		c   codec.Codec
		err error
	)
	if cfg.Codec == "cbor" && cfg.Det {
		c, err = codec.NewCBOR(true)
	} else {
		c, err = codec.ByName(cfg.Codec)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return codec.Limit{Inner: c, MaxDecode: cfg.MaxDecode}, nil
}

func fileArg(name string, args []string) (string, error) {
	switch len(args) {
	case 0:
		return "-", nil
	case 1:
		return args[0], nil
	}
	return "", fmt.Errorf("%w: %s takes at most one file", cli.ErrUsage, name)
}

func pack(cfg *CodecConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Pack.Parse(cc, args)
	if err != nil {
		return err
	}
	arg, err := fileArg("pack", args)
	if err != nil {
		return err
	}
	c, err := cfg.codec()
	if err != nil {
		return err
	}
	doc, err := cfg.load(arg)
	if err != nil {
		return err
	}
	d, err := c.Encode(doc)
	if err != nil {
		return fmt.Errorf("error encoding %s with %s: %w", arg, cfg.Codec, err)
	}
	_, err = cc.Out.Write(d)
	return err
}

func unpack(cfg *CodecConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Unpack.Parse(cc, args)
	if err != nil {
		return err
	}
	arg, err := fileArg("unpack", args)
	if err != nil {
		return err
	}
	c, err := cfg.codec()
	if err != nil {
		return err
	}
	d, err := readArg(arg)
	if err != nil {
		return err
	}
	doc, err := c.Decode(d)
	if err != nil {
		return fmt.Errorf("error decoding %s with %s: %w", arg, cfg.Codec, err)
	}
	return cfg.write(cc.Out, doc)
}
