package gist

import (
	"fmt"
	"strconv"
	"time"
)

// User is a GitHub account.
type User struct {
	Login      string  `json:"login"`
	ID         float64 `json:"id"`
	AvatarURL  string  `json:"avatar_url"`
	GravatarID string  `json:"gravatar_id"`
	URL        string  `json:"url"`
}

// File describes one file of a gist. Content is only filled by single gist
// requests, and only for files GitHub does not truncate.
type File struct {
	Size      float64 `json:"size"`
	Filename  string  `json:"filename"`
	RawURL    string  `json:"raw_url"`
	Type      string  `json:"type,omitempty"`
	Language  string  `json:"language,omitempty"`
	Truncated bool    `json:"truncated,omitempty"`
	Content   string  `json:"content,omitempty"`
}

// Files holds the files of a gist in the order GitHub lists them.
type Files []File

// Get returns the file called name.
func (fs Files) Get(name string) (File, bool) {
	for _, f := range fs {
		if f.Filename == name {
			return f, true
		}
	}
	return File{}, false
}

type Fork struct {
	User      User      `json:"user"`
	URL       string    `json:"url"`
	ID        string    `json:"id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ChangeStatus struct {
	Deletions float64 `json:"deletions"`
	Additions float64 `json:"additions"`
	Total     float64 `json:"total"`
}

type History struct {
	URL          string       `json:"url"`
	Version      string       `json:"version"`
	User         User         `json:"user"`
	ChangeStatus ChangeStatus `json:"change_status"`
	CommittedAt  time.Time    `json:"committed_at"`
}

// Gist is a gist as returned by the GitHub API.
type Gist struct {
	URL         string    `json:"url"`
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Public      bool      `json:"public"`
	User        User      `json:"user"`
	Owner       *User     `json:"owner,omitempty"`
	Files       Files     `json:"files"`
	Comments    float64   `json:"comments"`
	CommentsURL string    `json:"comments_url"`
	HTMLURL     string    `json:"html_url"`
	GitPullURL  string    `json:"git_pull_url"`
	GitPushURL  string    `json:"git_push_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Forks       []Fork    `json:"forks"`
	History     []History `json:"history"`
}

// FileContent names the content of a file to upload.
type FileContent struct {
	Filename string
	Content  string
}

// ListMode selects the gists List returns.
type ListMode int

const (
	// PublicGists lists all public gists, newest first.
	PublicGists ListMode = iota
	// UsersGists lists the gists of the authenticated user.
	UsersGists
	// AuthenticatedUserGists is the same listing as UsersGists.
	AuthenticatedUserGists
	// StarredGists lists the gists the authenticated user starred.
	StarredGists
)

func (m ListMode) String() string {
	switch m {
	case PublicGists:
		return "public"
	case UsersGists:
		return "users"
	case AuthenticatedUserGists:
		return "authenticated"
	case StarredGists:
		return "starred"
	}
	return "ListMode(" + strconv.Itoa(int(m)) + ")"
}

// ParseListMode is the inverse of ListMode.String.
func ParseListMode(s string) (ListMode, error) {
	for _, m := range []ListMode{PublicGists, UsersGists, AuthenticatedUserGists, StarredGists} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown list mode %q", s)
}
