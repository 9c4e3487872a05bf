package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gistsapi/dynjson/encode"
	"github.com/gistsapi/dynjson/format"
	"github.com/gistsapi/dynjson/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color    bool   `cli:"name=color desc='encode with color'"`
	Indent   int    `cli:"name=indent desc='indent output by this many spaces'"`
	Encoding string `cli:"name=encoding desc='input text encoding, such as utf-16le or windows-1252'"`
	MaxDepth int    `cli:"name=depth desc='maximum nesting depth of input documents'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// inFormat is the format of the file arg: the one given by flags, else the
// one its extension names, else json.
func (cfg *MainConfig) inFormat(arg string) format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	if cfg.Y {
		return format.YAMLFormat
	}
	if cfg.J {
		return format.JSONFormat
	}
	f, _ := format.FromPath(arg)
	return f
}

func (cfg *MainConfig) outFormat() format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	if cfg.Y {
		return format.YAMLFormat
	}
	return format.JSONFormat
}

func (cfg *MainConfig) parseOpts(arg string) []parse.ParseOption {
	res := []parse.ParseOption{
		parse.ParseFormat(cfg.inFormat(arg)),
		parse.MaxDepth(cfg.MaxDepth),
	}
	if cfg.Encoding != "" {
		res = append(res, parse.WithEncodingName(cfg.Encoding))
	}
	return res
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodeIndent(cfg.Indent),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	if cfg.colorSet() {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// colorSet reports whether -color was given explicitly, so that -color=false
// turns off terminal detection.
func (cfg *MainConfig) colorSet() bool {
	if cfg.Main == nil {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" {
			return opt.Value != nil
		}
	}
	return false
}

type ViewConfig struct {
	*MainConfig
	View *cli.Command
}

type GetConfig struct {
	*MainConfig
	Get *cli.Command
}

type SetConfig struct {
	*MainConfig
	String bool `cli:"name=s desc='set the value argument as a string'"`
	Set    *cli.Command
}

type DeleteConfig struct {
	*MainConfig
	Delete *cli.Command
}

type KeysConfig struct {
	*MainConfig
	Keys *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Merge   bool `cli:"name=merge desc='output a merge patch instead of a diff'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge bool `cli:"name=merge desc='the patch is a merge patch (RFC 7386)'"`
	File  bool `cli:"name=f desc='patch arg as file'"`

	Patch *cli.Command
}

type EvalConfig struct {
	*MainConfig
	Env       map[string]any
	Undefined bool `cli:"name=u desc='evaluate undefined variables to null'"`

	Eval *cli.Command
}

type CodecConfig struct {
	*MainConfig
	Codec     string `cli:"name=codec desc='binary codec: json, msgpack or cbor'"`
	MaxDecode int    `cli:"name=max desc='maximum payload size to decode, 0 for none'"`
	Det       bool   `cli:"name=det desc='deterministic cbor: sorted keys, shortest forms'"`

	Pack, Unpack *cli.Command
}

type GistConfig struct {
	*MainConfig
	BaseURL string `cli:"name=api desc='GitHub API root'"`

	Gist *cli.Command
}

type GistListConfig struct {
	*GistConfig
	User  string `cli:"name=user desc='list the public gists of this user'"`
	Mode  string `cli:"name=mode desc='public, users, authenticated or starred'"`
	Since string `cli:"name=since desc='only gists updated since this RFC 3339 time'"`
	Next  bool   `cli:"name=next desc='print the next page link after the list'"`

	List *cli.Command
}

type GistGetConfig struct {
	*GistConfig
	Raw   bool `cli:"name=raw desc='output the gist as sent, not mapped'"`
	Files bool `cli:"name=files desc='output file contents, downloading truncated ones'"`

	Get *cli.Command
}

type GistAuthConfig struct {
	*GistConfig
	State string `cli:"name=state desc='state echoed back to the redirect URL'"`

	Auth *cli.Command
}
