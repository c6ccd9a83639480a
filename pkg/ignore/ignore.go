// Package ignore filters changed paths through a .forceignore file.
//
// Patterns use gitignore syntax (matched with go-git's pattern engine);
// entries containing "**" are additionally matched as doublestar globs, which
// covers the npm-style globs older ignore files carry.
package ignore

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Matcher decides whether a repo-relative path is excluded from the
// changeset.
type Matcher struct {
	matcher gitignore.Matcher
	globs   []string
}

// NewMatcher loads ignoreFile from repoRoot. A missing file yields a matcher
// that excludes nothing.
func NewMatcher(repoRoot, ignoreFile string) (*Matcher, error) {
	var patterns []gitignore.Pattern
	var globs []string

	lines, err := readIgnoreFile(osfs.New(repoRoot), ignoreFile)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	for _, line := range lines {
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
		if strings.Contains(line, "**") {
			globs = append(globs, strings.TrimPrefix(line, "/"))
		}
	}

	return &Matcher{
		matcher: gitignore.NewMatcher(patterns),
		globs:   globs,
	}, nil
}

// IsIgnored checks if a repo-relative file path matches an ignore pattern.
func (m *Matcher) IsIgnored(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	parts := splitPath(relPath)
	if len(parts) == 0 {
		return false
	}
	if m.matcher.Match(parts, false) {
		return true
	}
	for _, g := range m.globs {
		if ok, err := doublestar.Match(g, relPath); err == nil && ok {
			return true
		}
	}
	return false
}

// readIgnoreFile reads patterns from a text file, dropping blanks and comments.
// The billy filesystem keeps reads rooted at the repository.
func readIgnoreFile(fs billy.Filesystem, name string) ([]string, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, nil
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
