package materialize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deployfox/sfdelta/internal/generate"
	"github.com/deployfox/sfdelta/internal/gitdiff"
	"github.com/deployfox/sfdelta/pkg/metadata"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func TestWrite(t *testing.T) {
	repo := t.TempDir()
	out := filepath.Join(t.TempDir(), "deploy")
	writeTree(t, repo, map[string]string{
		"src/classes/Foo.cls":             "public class Foo {}",
		"src/classes/Foo.cls-meta.xml":    "<ApexClass/>",
		"src/lwc/hello/hello.js":          "export default class {}",
		"src/lwc/hello/hello.js-meta.xml": "<LightningComponentBundle/>",
	})

	res := &generate.Result{
		Changeset: metadata.NewChangeset(),
		CopyFiles: []generate.CopyItem{
			{Path: "src/classes/Foo.cls"},
			{Path: "src/classes/Foo.cls-meta.xml", Optional: true},
		},
		CopyDirs: []string{"src/lwc/hello"},
	}

	m := &Materializer{RepoRoot: repo, OutDir: out, Workers: 2}
	require.NoError(t, m.Write(res, []byte("<Package/>\n"), []byte("<Package destructive/>\n")))

	pkg, err := os.ReadFile(filepath.Join(out, "package.xml"))
	require.NoError(t, err)
	assert.Equal(t, "<Package/>\n", string(pkg))

	dest, err := os.ReadFile(filepath.Join(out, "destructiveChanges.xml"))
	require.NoError(t, err)
	assert.Equal(t, "<Package destructive/>\n", string(dest))

	for _, rel := range []string{
		"src/classes/Foo.cls",
		"src/classes/Foo.cls-meta.xml",
		"src/lwc/hello/hello.js",
		"src/lwc/hello/hello.js-meta.xml",
	} {
		assert.FileExists(t, filepath.Join(out, filepath.FromSlash(rel)))
	}
}

func TestWriteSkipsMissingOptionalSidecar(t *testing.T) {
	repo := t.TempDir()
	out := filepath.Join(t.TempDir(), "deploy")
	writeTree(t, repo, map[string]string{
		"src/pages/New.page": "<apex:page/>",
	})

	res := &generate.Result{
		Changeset: metadata.NewChangeset(),
		CopyFiles: []generate.CopyItem{
			{Path: "src/pages/New.page"},
			{Path: "src/pages/New.page-meta.xml", Optional: true},
		},
	}

	m := &Materializer{RepoRoot: repo, OutDir: out}
	require.NoError(t, m.Write(res, []byte("<Package/>\n"), nil))

	assert.FileExists(t, filepath.Join(out, "src/pages/New.page"))
	assert.NoFileExists(t, filepath.Join(out, "src/pages/New.page-meta.xml"))
	assert.NoFileExists(t, filepath.Join(out, "destructiveChanges.xml"))
}

func TestWriteFolderDescriptorChange(t *testing.T) {
	repo := t.TempDir()
	out := filepath.Join(t.TempDir(), "deploy")
	// The folder directory exists in the work tree alongside its descriptor
	writeTree(t, repo, map[string]string{
		"src/email/Newsletter-meta.xml":    "<EmailFolder/>",
		"src/email/Newsletter/Promo.email": "Subject: hi",
	})

	changes := []gitdiff.Change{
		{Status: gitdiff.StatusModified, Path: "src/email/Newsletter-meta.xml"},
	}
	res := generate.Build(changes, metadata.NewRegistry(), nil, "src")

	m := &Materializer{RepoRoot: repo, OutDir: out}
	require.NoError(t, m.Write(res, []byte("<Package/>\n"), nil))

	assert.FileExists(t, filepath.Join(out, "src/email/Newsletter-meta.xml"))
	assert.NoDirExists(t, filepath.Join(out, "src/email/Newsletter"))
}

func TestWriteFailsOnMissingRequiredFile(t *testing.T) {
	repo := t.TempDir()
	out := filepath.Join(t.TempDir(), "deploy")

	res := &generate.Result{
		Changeset: metadata.NewChangeset(),
		CopyFiles: []generate.CopyItem{{Path: "src/classes/Gone.cls"}},
	}

	m := &Materializer{RepoRoot: repo, OutDir: out}
	err := m.Write(res, []byte("<Package/>\n"), nil)
	assert.Error(t, err)
}

func TestWriteRejectsEscapingPaths(t *testing.T) {
	repo := t.TempDir()
	out := filepath.Join(t.TempDir(), "deploy")
	writeTree(t, repo, map[string]string{"escape.txt": "x"})

	res := &generate.Result{
		Changeset: metadata.NewChangeset(),
		CopyFiles: []generate.CopyItem{{Path: "../escape.txt"}},
	}

	m := &Materializer{RepoRoot: filepath.Join(repo, "sub"), OutDir: out}
	require.NoError(t, os.MkdirAll(filepath.Join(repo, "sub"), 0o755))
	err := m.Write(res, []byte("<Package/>\n"), nil)
	assert.Error(t, err)
}
