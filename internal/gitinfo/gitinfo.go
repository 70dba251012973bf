// Package gitinfo derives per-page "last updated" and contributor metadata
// from the git history of the documentation sources.
package gitinfo

import (
	"context"
	stderrors "errors"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/docsitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/docsitecfg/internal/logfields"
)

var errStop = stderrors.New("stop iteration")

// Contributor is an author of a page, with the number of commits touching it.
type Contributor struct {
	Name    string `json:"name" yaml:"name"`
	Email   string `json:"email" yaml:"email"`
	Commits int    `json:"commits" yaml:"commits"`
}

// PageInfo is the git metadata of one page.
type PageInfo struct {
	UpdatedAt    time.Time     `json:"updatedTime" yaml:"updatedTime"`
	Contributors []Contributor `json:"contributors" yaml:"contributors"`
}

// Collector reads page metadata from a repository.
type Collector struct {
	repo     *git.Repository
	worktree string
	// MaxCommits bounds the history walk; zero means unbounded.
	MaxCommits int
}

// Open finds the repository containing dir (searching parent directories).
func Open(dir string) (*Collector, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "failed to open git repository").
			WithSeverity(errors.SeverityWarning).
			WithContext("dir", dir).
			Build()
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "repository has no worktree").
			WithSeverity(errors.SeverityWarning).
			WithContext("dir", dir).
			Build()
	}
	return &Collector{repo: repo, worktree: resolveLinks(wt.Filesystem.Root())}, nil
}

// Collect returns metadata for pages, given as slash paths relative to docsRoot.
// Pages without history are absent from the result. The result is keyed by the
// page paths as given.
func (c *Collector) Collect(ctx context.Context, docsRoot string, pages []string) (map[string]PageInfo, error) {
	absRoot, err := filepath.Abs(docsRoot)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve docs root").Build()
	}
	absRoot = resolveLinks(absRoot)
	rel, err := filepath.Rel(c.worktree, absRoot)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, errors.GitError("docs root is outside the repository").
			WithContext("docs_root", absRoot).
			WithContext("worktree", c.worktree).
			Build()
	}
	prefix := filepath.ToSlash(rel)
	if prefix == "." {
		prefix = ""
	} else {
		prefix += "/"
	}

	wanted := make(map[string]string, len(pages)) // repo path -> page key
	for _, p := range pages {
		wanted[prefix+strings.TrimPrefix(p, "/")] = p
	}

	head, err := c.repo.Head()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "failed to resolve HEAD").
			WithSeverity(errors.SeverityWarning).
			Build()
	}
	iter, err := c.repo.Log(&git.LogOptions{
		From:       head.Hash(),
		Order:      git.LogOrderCommitterTime,
		PathFilter: func(p string) bool { _, ok := wanted[p]; return ok },
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "failed to read history").Build()
	}
	defer iter.Close()

	acc := make(map[string]*pageAcc)
	walked := 0
	err = iter.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.MaxCommits > 0 && walked >= c.MaxCommits {
			return errStop
		}
		walked++

		stats, sErr := commit.Stats()
		if sErr != nil {
			slog.Debug("Skipping commit without stats", slog.String("commit", commit.Hash.String()), logfields.Error(sErr))
			return nil
		}
		for _, stat := range stats {
			name := stat.Name
			// renames are reported as "old => new"
			if i := strings.Index(name, " => "); i >= 0 {
				name = name[i+len(" => "):]
			}
			page, ok := wanted[name]
			if !ok {
				continue
			}
			a := acc[page]
			if a == nil {
				a = &pageAcc{contributors: map[string]*Contributor{}}
				acc[page] = a
			}
			a.add(commit)
		}
		return nil
	})
	if err != nil && !stderrors.Is(err, errStop) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.WrapError(err, errors.CategoryGit, "failed to walk history").Build()
	}

	out := make(map[string]PageInfo, len(acc))
	for page, a := range acc {
		out[page] = a.info()
	}
	slog.Debug("Collected git metadata", logfields.Count(len(out)), slog.Int("commits", walked))
	return out, nil
}

func resolveLinks(p string) string {
	if r, err := filepath.EvalSymlinks(p); err == nil {
		return r
	}
	return p
}

type pageAcc struct {
	updated      time.Time
	contributors map[string]*Contributor
}

func (a *pageAcc) add(commit *object.Commit) {
	if commit.Committer.When.After(a.updated) {
		a.updated = commit.Committer.When
	}
	key := strings.ToLower(commit.Author.Email)
	if key == "" {
		key = commit.Author.Name
	}
	ct := a.contributors[key]
	if ct == nil {
		ct = &Contributor{Name: commit.Author.Name, Email: commit.Author.Email}
		a.contributors[key] = ct
	}
	ct.Commits++
}

func (a *pageAcc) info() PageInfo {
	list := make([]Contributor, 0, len(a.contributors))
	for _, ct := range a.contributors {
		list = append(list, *ct)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Commits != list[j].Commits {
			return list[i].Commits > list[j].Commits
		}
		return list[i].Name < list[j].Name
	})
	return PageInfo{UpdatedAt: a.updated.UTC(), Contributors: list}
}
