// Package gitdiff lists the files changed between two git revisions.
//
// go-git is preferred; when the repository cannot be opened or a revision
// cannot be resolved, the git CLI is used as a fallback and its
// --name-status output parsed.
package gitdiff

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// Status is the single-letter git change status.
type Status byte

const (
	StatusAdded    Status = 'A'
	StatusModified Status = 'M'
	StatusDeleted  Status = 'D'
	StatusRenamed  Status = 'R'
	StatusCopied   Status = 'C'
	StatusTypeChg  Status = 'T'
)

// Change is one changed file between two revisions. Path holds the new path;
// FromPath is set for renames and copies.
type Change struct {
	Status   Status
	Path     string
	FromPath string
}

// Between lists the changes from revision `from` to revision `to` in the
// repository at repoDir. Results are sorted by path for stable output.
func Between(repoDir, from, to string) ([]Change, error) {
	if changes, err := betweenGoGit(repoDir, from, to); err == nil {
		return changes, nil
	}
	return betweenCLI(repoDir, from, to)
}

func betweenGoGit(repoDir, from, to string) ([]Change, error) {
	repo, err := git.PlainOpenWithOptions(repoDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	fromTree, err := resolveTree(repo, from)
	if err != nil {
		return nil, err
	}
	toTree, err := resolveTree(repo, to)
	if err != nil {
		return nil, err
	}

	diffs, err := object.DiffTreeWithOptions(context.Background(), fromTree, toTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, err
	}

	changes := make([]Change, 0, len(diffs))
	for _, d := range diffs {
		action, err := d.Action()
		if err != nil {
			return nil, err
		}
		switch action {
		case merkletrie.Insert:
			changes = append(changes, Change{Status: StatusAdded, Path: toSlash(d.To.Name)})
		case merkletrie.Delete:
			changes = append(changes, Change{Status: StatusDeleted, Path: toSlash(d.From.Name)})
		case merkletrie.Modify:
			if d.From.Name != d.To.Name {
				changes = append(changes, Change{
					Status:   StatusRenamed,
					Path:     toSlash(d.To.Name),
					FromPath: toSlash(d.From.Name),
				})
			} else {
				changes = append(changes, Change{Status: StatusModified, Path: toSlash(d.To.Name)})
			}
		}
	}
	sortChanges(changes)
	return changes, nil
}

func resolveTree(repo *git.Repository, rev string) (*object.Tree, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve revision %q: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, err
	}
	return commit.Tree()
}

func betweenCLI(repoDir, from, to string) ([]Change, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return nil, fmt.Errorf("git executable not found: %w", err)
	}
	cmd := exec.Command("git", "diff", "--name-status", "--find-renames", from, to)
	cmd.Dir = repoDir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("git diff %s %s failed: %s", from, to, msg)
	}
	changes := ParseNameStatus(out)
	sortChanges(changes)
	return changes, nil
}

// ParseNameStatus parses `git diff --name-status` output. Lines are
// status<TAB>path, or status<TAB>old<TAB>new for renames and copies where
// the status carries a similarity score (R100).
func ParseNameStatus(data []byte) []Change {
	var changes []Change
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.Split(line, "\t")
		if len(parts) < 2 || parts[0] == "" {
			continue
		}
		status := Status(parts[0][0])
		switch status {
		case StatusRenamed, StatusCopied:
			if len(parts) < 3 {
				continue
			}
			changes = append(changes, Change{
				Status:   status,
				Path:     strings.TrimSpace(parts[2]),
				FromPath: strings.TrimSpace(parts[1]),
			})
		case StatusAdded, StatusModified, StatusDeleted, StatusTypeChg:
			changes = append(changes, Change{Status: status, Path: strings.TrimSpace(parts[1])})
		}
	}
	return changes
}

func sortChanges(changes []Change) {
	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
}

func toSlash(p string) string {
	return filepath.ToSlash(p)
}
