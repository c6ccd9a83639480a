// Package generate turns a list of git changes into a deployable changeset
// plus the file set the materializer must copy.
package generate

import (
	"errors"
	gopath "path"
	"sort"

	"github.com/deployfox/sfdelta/internal/gitdiff"
	"github.com/deployfox/sfdelta/pkg/ignore"
	"github.com/deployfox/sfdelta/pkg/metadata"
)

// CopyItem is one repo-relative file the materializer should copy. Optional
// items are sidecar companions that may not exist in the work tree.
type CopyItem struct {
	Path     string
	Optional bool
}

// SkippedChange records a change the classifier could not place. Unknown is
// set when the path sits under a directory the registry does not know, which
// strict runs treat as fatal.
type SkippedChange struct {
	Path    string
	Reason  string
	Unknown bool
}

// Result is the outcome of classifying a diff.
type Result struct {
	Changeset *metadata.Changeset
	CopyFiles []CopyItem
	CopyDirs  []string
	Skipped   []SkippedChange
}

// Build classifies each change and accumulates the two member mappings.
// Renames contribute the old path as a deletion and the new path as a
// change. The ignore matcher may be nil.
func Build(changes []gitdiff.Change, reg *metadata.Registry, ign *ignore.Matcher, sourceDir string) *Result {
	b := &builder{
		reg:       reg,
		ign:       ign,
		sourceDir: sourceDir,
		result:    &Result{Changeset: metadata.NewChangeset()},
		files:     make(map[string]bool),
		dirs:      make(map[string]struct{}),
	}

	for _, ch := range changes {
		switch ch.Status {
		case gitdiff.StatusDeleted:
			b.addDeletion(ch.Path)
		case gitdiff.StatusRenamed:
			b.addDeletion(ch.FromPath)
			b.addChange(ch.Path)
		default:
			b.addChange(ch.Path)
		}
	}

	b.finish()
	return b.result
}

type builder struct {
	reg       *metadata.Registry
	ign       *ignore.Matcher
	sourceDir string
	result    *Result
	// files maps copy path -> required; a required copy wins over an
	// optional sidecar registration of the same path
	files map[string]bool
	dirs  map[string]struct{}
}

func (b *builder) addChange(path string) {
	c, ok := b.classify(path)
	if !ok {
		return
	}
	b.result.Changeset.AddChange(c)

	if c.Type.Bundle {
		b.dirs[gopath.Join(b.sourceDir, c.Type.Directory, c.Member)] = struct{}{}
		return
	}

	b.files[path] = true
	// A folder descriptor has no primary file, only the -meta.xml itself;
	// its companion path would be the folder directory.
	if c.Type.MetaFile && !c.Folder {
		if metadata.IsMetaFile(path) {
			b.addOptional(metadata.PrimaryFilePath(path))
		} else {
			b.addOptional(metadata.MetaFilePath(path))
		}
	}
}

func (b *builder) addDeletion(path string) {
	c, ok := b.classify(path)
	if !ok {
		return
	}
	b.result.Changeset.AddDeletion(c)
}

func (b *builder) classify(path string) (metadata.Classification, bool) {
	if b.ign != nil && b.ign.IsIgnored(path) {
		b.result.Skipped = append(b.result.Skipped, SkippedChange{Path: path, Reason: "ignored"})
		return metadata.Classification{}, false
	}
	c, err := b.reg.Classify(path, b.sourceDir)
	if err != nil {
		b.result.Skipped = append(b.result.Skipped, SkippedChange{
			Path:    path,
			Reason:  err.Error(),
			Unknown: errors.Is(err, metadata.ErrUnknownDirectory),
		})
		return metadata.Classification{}, false
	}
	return c, true
}

func (b *builder) addOptional(path string) {
	if _, exists := b.files[path]; !exists {
		b.files[path] = false
	}
}

func (b *builder) finish() {
	for path, required := range b.files {
		b.result.CopyFiles = append(b.result.CopyFiles, CopyItem{Path: path, Optional: !required})
	}
	sort.Slice(b.result.CopyFiles, func(i, j int) bool {
		return b.result.CopyFiles[i].Path < b.result.CopyFiles[j].Path
	})
	for dir := range b.dirs {
		b.result.CopyDirs = append(b.result.CopyDirs, dir)
	}
	sort.Strings(b.result.CopyDirs)
}
