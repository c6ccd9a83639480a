package metadata

import (
	"errors"
	"fmt"
	gopath "path"
	"path/filepath"
	"strings"
)

const metaSuffix = "-meta.xml"

// Classification is the result of mapping a source path to a manifest entry.
// Folder is set when the path is the descriptor of a folder rather than a
// component inside one.
type Classification struct {
	Type   Type
	Member string
	Folder bool
}

// Skip reasons returned by Classify. Callers match with errors.Is.
var (
	ErrOutsideSource    = errors.New("path is outside the source directory")
	ErrUnknownDirectory = errors.New("unknown metadata directory")
	ErrNotMetadata      = errors.New("path is not a metadata component")
)

// Classify maps a repo-relative path to its metadata type and member name.
// Paths outside sourceDir, the package manifest itself, and unregistered
// directories return a skip error.
func (r *Registry) Classify(path, sourceDir string) (Classification, error) {
	p := gopath.Clean(filepath.ToSlash(path))
	parts := strings.Split(p, "/")
	if len(parts) < 2 || parts[0] != sourceDir {
		return Classification{}, fmt.Errorf("%w: %s", ErrOutsideSource, path)
	}
	if len(parts) == 2 {
		// src/package.xml and other loose files at the source root
		return Classification{}, fmt.Errorf("%w: %s", ErrNotMetadata, path)
	}

	mt, ok := r.ByDirectory(parts[1])
	if !ok {
		return Classification{}, fmt.Errorf("%w: %s", ErrUnknownDirectory, parts[1])
	}

	rest := parts[2:]
	var member string
	var folder bool
	switch {
	case mt.Bundle:
		// Any file inside the bundle directory names the bundle
		member = rest[0]
		if len(rest) == 1 && strings.Contains(member, ".") {
			return Classification{}, fmt.Errorf("%w: %s", ErrNotMetadata, path)
		}
	case mt.InFolder:
		if len(rest) == 1 {
			// Folder descriptor, e.g. email/MyFolder-meta.xml
			member = strings.TrimSuffix(rest[0], metaSuffix)
			member = trimTypeSuffix(member, mt)
			folder = true
		} else {
			name := trimTypeSuffix(strings.TrimSuffix(rest[len(rest)-1], metaSuffix), mt)
			member = strings.Join(append(rest[:len(rest)-1], name), "/")
		}
	default:
		name := trimTypeSuffix(strings.TrimSuffix(rest[len(rest)-1], metaSuffix), mt)
		member = strings.Join(append(rest[:len(rest)-1], name), "/")
	}

	if member == "" {
		return Classification{}, fmt.Errorf("%w: %s", ErrNotMetadata, path)
	}
	return Classification{Type: mt, Member: member, Folder: folder}, nil
}

// trimTypeSuffix strips the registered file suffix from a member name. Types
// without a registered suffix (documents) lose whatever extension they carry.
func trimTypeSuffix(name string, mt Type) string {
	if mt.Suffix != "" {
		return strings.TrimSuffix(name, "."+mt.Suffix)
	}
	return strings.TrimSuffix(name, gopath.Ext(name))
}

// IsMetaFile reports whether path names a "-meta.xml" sidecar.
func IsMetaFile(path string) bool {
	return strings.HasSuffix(path, metaSuffix)
}

// MetaFilePath returns the sidecar path for a primary component file.
func MetaFilePath(path string) string {
	return path + metaSuffix
}

// PrimaryFilePath returns the component file a sidecar belongs to.
func PrimaryFilePath(metaPath string) string {
	return strings.TrimSuffix(metaPath, metaSuffix)
}
