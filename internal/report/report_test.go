package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deployfox/sfdelta/pkg/metadata"
)

func sampleChangeset() *metadata.Changeset {
	cs := metadata.NewChangeset()
	cs.AddChange(metadata.Classification{Type: metadata.Type{Name: "ApexClass"}, Member: "Foo"})
	cs.AddChange(metadata.Classification{Type: metadata.Type{Name: "ApexClass"}, Member: "Bar"})
	cs.AddDeletion(metadata.Classification{Type: metadata.Type{Name: "ApexTrigger"}, Member: "Old"})
	return cs
}

func TestRenderDefaultTemplate(t *testing.T) {
	out, err := Render(sampleChangeset(), "main", "feature/x", "58.0", "")
	require.NoError(t, err)

	assert.Contains(t, out, "main -> feature/x")
	assert.Contains(t, out, "API 58.0")
	assert.Contains(t, out, "Changes: 2 member(s)")
	assert.Contains(t, out, "ApexClass (2)")
	assert.Contains(t, out, "- Foo")
	assert.Contains(t, out, "Deletions: 1 member(s)")
	assert.Contains(t, out, "ApexTrigger (1)")
}

func TestRenderCustomTemplate(t *testing.T) {
	tpl := filepath.Join(t.TempDir(), "summary.hbs")
	require.NoError(t, os.WriteFile(tpl, []byte("{{totalChanges}} changed, {{totalDeletions}} deleted"), 0o644))

	out, err := Render(sampleChangeset(), "a", "b", "58.0", tpl)
	require.NoError(t, err)
	assert.Equal(t, "2 changed, 1 deleted", out)
}

func TestRenderMissingTemplate(t *testing.T) {
	_, err := Render(sampleChangeset(), "a", "b", "58.0", filepath.Join(t.TempDir(), "absent.hbs"))
	assert.Error(t, err)
}
