package gist

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/gistsapi/dynjson/debug"
	"github.com/gistsapi/dynjson/dyn"
	"github.com/gistsapi/dynjson/encode"
	"github.com/gistsapi/dynjson/gomap"
	"github.com/gistsapi/dynjson/parse"
)

const (
	// DefaultBaseURL is the GitHub REST API root.
	DefaultBaseURL = "https://api.github.com"
	// Scope is the OAuth scope the client asks for.
	Scope = "gist"
)

// Client talks to the GitHub gists API. A Client is safe for concurrent
// use; Links reports the pagination of whichever list call finished last.
type Client struct {
	userAgent  string
	baseURL    string
	httpClient *http.Client
	oauth      *oauth2.Config
	logger     *slog.Logger

	mu    sync.Mutex
	token string
	links Links
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, such as a GitHub
// Enterprise server or a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHTTPClient sets the HTTP client used for all requests, including the
// OAuth token exchange.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets an access token, skipping Authorize.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithLogger sets the logger for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithOAuthEndpoint replaces the GitHub OAuth endpoint.
func WithOAuthEndpoint(ep oauth2.Endpoint) Option {
	return func(c *Client) { c.oauth.Endpoint = ep }
}

// NewClient returns a client for the OAuth application clientID.
func NewClient(clientID, clientSecret, userAgent string, opts ...Option) *Client {
	c := &Client{
		userAgent:  userAgent,
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     github.Endpoint,
			Scopes:       []string{Scope},
		},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AuthorizeURL returns the page where a user grants the application access
// to their gists. state is echoed back to the redirect URL.
func (c *Client) AuthorizeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// Authorize exchanges the code GitHub passed to the redirect URL for an
// access token and keeps it for later requests.
func (c *Client) Authorize(ctx context.Context, code string) error {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("error exchanging code: %w", err)
	}
	c.mu.Lock()
	c.token = tok.AccessToken
	c.mu.Unlock()
	c.logger.InfoContext(ctx, "authorized", "scope", tok.Extra("scope"))
	return nil
}

// Token returns the current access token, if any.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Links returns the pagination links of the last list response.
func (c *Client) Links() Links {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.links
}

// Create creates a gist holding files.
func (c *Client) Create(ctx context.Context, description string, public bool, files []FileContent) (*Gist, error) {
	fs := dyn.NewObject()
	for _, f := range files {
		file := dyn.NewObject()
		_ = file.Set("filename", f.Filename)
		_ = file.Set("content", f.Content)
		if err := fs.Set(f.Filename, file); err != nil {
			return nil, err
		}
	}
	body := dyn.NewObject()
	_ = body.Set("description", description)
	_ = body.Set("public", public)
	if err := body.Set("files", fs); err != nil {
		return nil, err
	}
	return c.gist(ctx, http.MethodPost, c.endpoint("gists"), body)
}

// Edit replaces the content of one file.
func (c *Client) Edit(ctx context.Context, id, description, filename, content string) (*Gist, error) {
	file := dyn.NewObject()
	_ = file.Set("content", content)
	return c.editFile(ctx, id, description, filename, file)
}

// Rename renames a file and replaces its content.
func (c *Client) Rename(ctx context.Context, id, description, oldName, newName, content string) (*Gist, error) {
	file := dyn.NewObject()
	_ = file.Set("filename", newName)
	_ = file.Set("content", content)
	return c.editFile(ctx, id, description, oldName, file)
}

// DeleteFile removes one file from a gist.
func (c *Client) DeleteFile(ctx context.Context, id, description, filename string) (*Gist, error) {
	return c.editFile(ctx, id, description, filename, dyn.Null())
}

func (c *Client) editFile(ctx context.Context, id, description, filename string, file *dyn.Value) (*Gist, error) {
	fs := dyn.NewObject()
	if err := fs.Set(filename, file); err != nil {
		return nil, err
	}
	body := dyn.NewObject()
	_ = body.Set("description", description)
	if err := body.Set("files", fs); err != nil {
		return nil, err
	}
	return c.gist(ctx, http.MethodPatch, c.endpoint("gists", id), body)
}

// Delete deletes a gist.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, _, err := c.do(ctx, http.MethodDelete, c.endpoint("gists", id), nil)
	return err
}

// Fork forks a gist into the authenticated user's account.
func (c *Client) Fork(ctx context.Context, id string) (*Gist, error) {
	return c.gist(ctx, http.MethodPost, c.endpoint("gists", id, "forks"), nil)
}

// Get returns a single gist.
func (c *Client) Get(ctx context.Context, id string) (*Gist, error) {
	return c.gist(ctx, http.MethodGet, c.endpoint("gists", id), nil)
}

// GetValue returns a single gist as a tree, with nothing dropped.
func (c *Client) GetValue(ctx context.Context, id string) (*dyn.Value, error) {
	d, _, err := c.do(ctx, http.MethodGet, c.endpoint("gists", id), nil)
	if err != nil {
		return nil, err
	}
	return parse.Parse(d)
}

// List returns the first page of gists for mode.
func (c *Client) List(ctx context.Context, mode ListMode) ([]*Gist, error) {
	switch mode {
	case PublicGists:
		return c.ListURL(ctx, c.endpoint("gists", "public"))
	case UsersGists, AuthenticatedUserGists:
		return c.ListURL(ctx, c.endpoint("gists"))
	case StarredGists:
		return c.ListURL(ctx, c.endpoint("gists", "starred"))
	}
	return nil, fmt.Errorf("unknown list mode %s", mode)
}

// ListUser returns the first page of the public gists of user. A non-zero
// since restricts the listing to gists updated at or after that time.
func (c *Client) ListUser(ctx context.Context, user string, since time.Time) ([]*Gist, error) {
	u := c.endpoint("users", user, "gists")
	if !since.IsZero() {
		u += "?" + url.Values{"since": {since.UTC().Format(time.RFC3339)}}.Encode()
	}
	return c.ListURL(ctx, u)
}

// ListURL lists the gists at u, typically a URL from Links.
func (c *Client) ListURL(ctx context.Context, u string) ([]*Gist, error) {
	d, h, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.links = parseLinks(h.Get("Link"))
	c.mu.Unlock()
	v, err := parse.Parse(d)
	if err != nil {
		return nil, err
	}
	if v.Type != dyn.ArrayType {
		return nil, fmt.Errorf("list %s: expected an array, got %s", u, v.Type)
	}
	res := make([]*Gist, 0, v.Len())
	for elt := range v.Elements() {
		g, err := decodeGist(elt)
		if err != nil {
			return nil, err
		}
		res = append(res, g)
	}
	return res, nil
}

// Star stars a gist.
func (c *Client) Star(ctx context.Context, id string) error {
	_, _, err := c.do(ctx, http.MethodPut, c.endpoint("gists", id, "star"), nil)
	return err
}

// Unstar removes the star from a gist.
func (c *Client) Unstar(ctx context.Context, id string) error {
	_, _, err := c.do(ctx, http.MethodDelete, c.endpoint("gists", id, "star"), nil)
	return err
}

// DownloadRaw returns the content behind a file's RawURL.
func (c *Client) DownloadRaw(ctx context.Context, rawURL string) (string, error) {
	d, _, err := c.do(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	return string(d), nil
}

func (c *Client) endpoint(elems ...string) string {
	for i := range elems {
		elems[i] = url.PathEscape(elems[i])
	}
	return c.baseURL + "/" + strings.Join(elems, "/")
}

func (c *Client) gist(ctx context.Context, method, u string, body *dyn.Value) (*Gist, error) {
	d, _, err := c.do(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	v, err := parse.Parse(d)
	if err != nil {
		return nil, err
	}
	return decodeGist(v)
}

// decodeGist maps a gist object. GitHub keys files by name; they are
// turned into a list in document order, taking the key as the file name
// when the entry has none.
func decodeGist(v *dyn.Value) (*Gist, error) {
	if files, ok, _ := v.Get("files"); ok && files.Type == dyn.ObjectType {
		list := dyn.NewArray()
		for name, f := range files.Fields() {
			f = f.Clone()
			if f.Type == dyn.ObjectType {
				if ok, _ := f.IsDefined("filename"); !ok {
					_ = f.Set("filename", name)
				}
			}
			_ = list.Push(f)
		}
		v = v.Clone()
		if err := v.Set("files", list); err != nil {
			return nil, err
		}
	}
	g, err := gomap.As[Gist](v)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *Client) do(ctx context.Context, method, u string, body *dyn.Value) ([]byte, http.Header, error) {
	var rd io.Reader
	if body != nil {
		text, err := encode.ToText(body)
		if err != nil {
			return nil, nil, err
		}
		if debug.HTTP() {
			debug.Logf("%s %s body %s\n", method, u, text)
		}
		rd = strings.NewReader(text)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	// raw file hosts get no credentials
	if tok := c.Token(); tok != "" && strings.HasPrefix(u, c.baseURL+"/") {
		req.Header.Set("Authorization", "token "+tok)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	d, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	c.logger.DebugContext(ctx, "gist request",
		"method", method, "url", u, "status", resp.StatusCode, "duration", time.Since(start))
	if debug.HTTP() {
		debug.Logf("%s %s gave %d: %s\n", method, u, resp.StatusCode, d)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, &StatusError{Method: method, URL: u, Code: resp.StatusCode, Body: string(bytes.TrimSpace(d))}
	}
	return d, resp.Header, nil
}
