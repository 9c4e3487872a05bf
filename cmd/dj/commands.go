package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "dj").
		WithSynopsis("dj [opts] command [opts]").
		WithDescription("dj reads, queries and edits JSON documents keeping their member order.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return djMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			GetCommand(cfg),
			SetCommand(cfg),
			DeleteCommand(cfg),
			KeysCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			EvalCommand(cfg),
			PackCommand(cfg),
			UnpackCommand(cfg),
			GistCommand(cfg))
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("parse documents and write them back normalized").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <path> [files]").
		WithDescription("get the value at a path, such as $.files['a b.txt'].size").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Set, "set").
		WithAliases("s").
		WithSynopsis("set [-s] <path> <value> [files]").
		WithDescription("set the value at a path; the value is json unless -s is given").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
}

func DeleteCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DeleteConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Delete, "delete").
		WithAliases("del", "rm").
		WithSynopsis("delete <path> [files]").
		WithDescription("delete the member or element at a path").
		WithRun(func(cc *cli.Context, args []string) error {
			return del(cfg, cc, args)
		})
}

func KeysCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &KeysConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Keys, "keys").
		WithAliases("k").
		WithSynopsis("keys <path> [files]").
		WithDescription("list the keys of the object or array at a path").
		WithRun(func(cc *cli.Context, args []string) error {
			return keys(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-r] [-merge] <from> <to>").
		WithDescription("show the structural differences between two documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p").
		WithSynopsis("patch [-merge] [-f] <patch> [files]").
		WithDescription("apply a json patch (RFC 6902) or merge patch (RFC 7386) to documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patchDocs(cfg, cc, args)
		})
}

func EvalCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EvalConfig{MainConfig: mainCfg, Env: map[string]any{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "e",
			Description: "bind a variable, the value is read as yaml",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(envOptTypeFunc(cfg.Env)), "(name=val)"),
		})
	return cli.NewCommandAt(&cfg.Eval, "eval").
		WithAliases("e", "ev").
		WithSynopsis("eval [-u] [-e name=val]... <expr> [files]").
		WithDescription("evaluate an expression against documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return evalDocs(cfg, cc, args)
		})
}

func envOptTypeFunc(env map[string]any) func(cc *cli.Context, a string) (any, error) {
	return func(cc *cli.Context, a string) (any, error) {
		if err := envFunc(env, a); err != nil {
			return nil, err
		}
		return 0, nil
	}
}

func PackCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CodecConfig{MainConfig: mainCfg, Codec: "msgpack"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Pack, "pack").
		WithSynopsis("pack [-codec c] [-det] [file]").
		WithDescription("encode a document with a binary codec").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return pack(cfg, cc, args)
		})
}

func UnpackCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CodecConfig{MainConfig: mainCfg, Codec: "msgpack"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Unpack, "unpack").
		WithSynopsis("unpack [-codec c] [-max n] [file]").
		WithDescription("decode a document written by pack").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return unpack(cfg, cc, args)
		})
}

func GistCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GistConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Gist, "gist").
		WithSynopsis("gist [opts] command [opts]").
		WithDescription(gistDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return gistMain(cfg, cc, args)
		}).
		WithSubs(
			GistGetCommand(cfg),
			GistListCommand(cfg),
			GistAuthCommand(cfg))
}

const gistDescription = `gist works with GitHub gists.

Credentials are read from the environment: GITHUB_TOKEN holds an access
token, GITHUB_CLIENT_ID and GITHUB_CLIENT_SECRET name the OAuth application
used by "gist auth".`

func GistGetCommand(gistCfg *GistConfig) *cli.Command {
	cfg := &GistGetConfig{GistConfig: gistCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get [-raw] [-files] <id>...").
		WithDescription("get gists by id").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return gistGet(cfg, cc, args)
		})
}

func GistListCommand(gistCfg *GistConfig) *cli.Command {
	cfg := &GistListConfig{GistConfig: gistCfg, Mode: "public"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.List, "list").
		WithAliases("l", "ls").
		WithSynopsis("list [-user u [-since t]] [-mode m] [-next] [url]").
		WithDescription("list gists; a url argument continues from a page link").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return gistList(cfg, cc, args)
		})
}

func GistAuthCommand(gistCfg *GistConfig) *cli.Command {
	cfg := &GistAuthConfig{GistConfig: gistCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Auth, "auth").
		WithSynopsis("auth [-state s] [code]").
		WithDescription("without a code, print the authorization page; with one, print an access token for it").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return gistAuth(cfg, cc, args)
		})
}
