// Package materialize persists a generated changeset: the manifest XML files
// plus copies of every changed source file (and sidecars) under the output
// tree.
package materialize

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/deployfox/sfdelta/internal/generate"
	"github.com/deployfox/sfdelta/pkg/logger"
	"github.com/deployfox/sfdelta/pkg/manifest"
	"github.com/deployfox/sfdelta/pkg/safeio"
)

// Materializer writes deployment artifacts for one generate run.
type Materializer struct {
	RepoRoot string
	OutDir   string
	// Workers bounds concurrent file copies. Zero means a small default.
	Workers int
}

// Write persists the package descriptor, the destructive descriptor when
// non-nil, and every copy item from the result. Copies never land outside
// OutDir.
func (m *Materializer) Write(res *generate.Result, packageXML, destructiveXML []byte) error {
	if err := os.MkdirAll(m.OutDir, 0o750); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}

	if err := safeio.WriteFilePreservePerms(filepath.Join(m.OutDir, manifest.PackageFile), packageXML); err != nil {
		return fmt.Errorf("cannot write %s: %w", manifest.PackageFile, err)
	}
	if destructiveXML != nil {
		if err := safeio.WriteFilePreservePerms(filepath.Join(m.OutDir, manifest.DestructiveFile), destructiveXML); err != nil {
			return fmt.Errorf("cannot write %s: %w", manifest.DestructiveFile, err)
		}
	}

	items := make([]generate.CopyItem, 0, len(res.CopyFiles))
	items = append(items, res.CopyFiles...)
	for _, dir := range res.CopyDirs {
		expanded, err := m.expandDir(dir)
		if err != nil {
			return err
		}
		items = append(items, expanded...)
	}

	var g errgroup.Group
	workers := m.Workers
	if workers <= 0 {
		workers = 4
	}
	g.SetLimit(workers)
	for _, item := range items {
		item := item
		g.Go(func() error {
			return m.copyItem(item)
		})
	}
	return g.Wait()
}

func (m *Materializer) copyItem(item generate.CopyItem) error {
	src := filepath.Join(m.RepoRoot, filepath.FromSlash(item.Path))
	if _, err := os.Stat(src); err != nil {
		if item.Optional && os.IsNotExist(err) {
			logger.Debug("sidecar not present, skipping", logger.String("path", item.Path))
			return nil
		}
		return fmt.Errorf("cannot read source file %s: %w", item.Path, err)
	}
	if err := safeio.CopyFileContained(src, m.OutDir, item.Path); err != nil {
		return fmt.Errorf("cannot copy %s: %w", item.Path, err)
	}
	return nil
}

// expandDir lists every file in a bundle directory as a required copy item.
func (m *Materializer) expandDir(dir string) ([]generate.CopyItem, error) {
	root := filepath.Join(m.RepoRoot, filepath.FromSlash(dir))
	var items []generate.CopyItem
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(m.RepoRoot, path)
		if err != nil {
			return err
		}
		items = append(items, generate.CopyItem{Path: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot read bundle directory %s: %w", dir, err)
	}
	return items, nil
}
