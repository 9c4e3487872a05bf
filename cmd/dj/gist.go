package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gistsapi/dynjson/dyn"
	"github.com/gistsapi/dynjson/gist"
	"github.com/gistsapi/dynjson/gomap"

	"github.com/scott-cotton/cli"
)

const userAgent = "dynjson-dj"

func gistMain(cfg *GistConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Gist.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Gist.FindSub(cc, args[0])
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

func (cfg *GistConfig) client() *gist.Client {
	opts := []gist.Option{gist.WithLogger(theLog)}
	if cfg.BaseURL != "" {
		opts = append(opts, gist.WithBaseURL(cfg.BaseURL))
	}
	if tok := os.Getenv("GITHUB_TOKEN"); tok != "" {
		opts = append(opts, gist.WithToken(tok))
	}
	return gist.NewClient(os.Getenv("GITHUB_CLIENT_ID"), os.Getenv("GITHUB_CLIENT_SECRET"), userAgent, opts...)
}

func gistContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func gistGet(cfg *GistGetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a gist id", cli.ErrUsage)
	}
	ctx, cancel := gistContext()
	defer cancel()
	c := cfg.client()
	for _, id := range args {
		var res *dyn.Value
		switch {
		case cfg.Raw:
			res, err = c.GetValue(ctx, id)
		case cfg.Files:
			res, err = fileContents(ctx, c, id)
		default:
			var g *gist.Gist
			g, err = c.Get(ctx, id)
			if err == nil {
				res, err = gomap.ToValue(g)
			}
		}
		if err != nil {
			return fmt.Errorf("error getting gist %s: %w", id, err)
		}
		if err := cfg.write(cc.Out, res); err != nil {
			return err
		}
	}
	return nil
}

// fileContents returns an object from file name to content. GitHub
// truncates large files in gist responses; those are downloaded.
func fileContents(ctx context.Context, c *gist.Client, id string) (*dyn.Value, error) {
	g, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	res := dyn.NewObject()
	for _, f := range g.Files {
		content := f.Content
		if f.Truncated || (content == "" && f.Size > 0) {
			theLog.Debug("downloading", "file", f.Filename, "url", f.RawURL)
			content, err = c.DownloadRaw(ctx, f.RawURL)
			if err != nil {
				return nil, err
			}
		}
		if err := res.Append(f.Filename, dyn.FromString(content)); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func gistList(cfg *GistListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: list takes at most one url", cli.ErrUsage)
	}
	var since time.Time
	if cfg.Since != "" {
		since, err = time.Parse(time.RFC3339, cfg.Since)
		if err != nil {
			return fmt.Errorf("%w: -since: %w", cli.ErrUsage, err)
		}
	}
	mode, err := gist.ParseListMode(cfg.Mode)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	ctx, cancel := gistContext()
	defer cancel()
	c := cfg.client()
	var gs []*gist.Gist
	switch {
	case len(args) == 1:
		gs, err = c.ListURL(ctx, args[0])
	case cfg.User != "":
		gs, err = c.ListUser(ctx, cfg.User, since)
	default:
		gs, err = c.List(ctx, mode)
	}
	if err != nil {
		return fmt.Errorf("error listing gists: %w", err)
	}
	res, err := gomap.ToValue(gs)
	if err != nil {
		return err
	}
	if err := cfg.write(cc.Out, res); err != nil {
		return err
	}
	if cfg.Next {
		if next := c.Links().Next; next != "" {
			fmt.Fprintln(cc.Out, next)
		}
	}
	return nil
}

func gistAuth(cfg *GistAuthConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Auth.Parse(cc, args)
	if err != nil {
		return err
	}
	if os.Getenv("GITHUB_CLIENT_ID") == "" {
		return fmt.Errorf("%w: GITHUB_CLIENT_ID is not set", cli.ErrUsage)
	}
	c := cfg.client()
	switch len(args) {
	case 0:
		fmt.Fprintln(cc.Out, c.AuthorizeURL(cfg.State))
		return nil
	case 1:
		ctx, cancel := gistContext()
		defer cancel()
		if err := c.Authorize(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cc.Out, c.Token())
		return nil
	}
	return fmt.Errorf("%w: auth takes at most one code", cli.ErrUsage)
}
