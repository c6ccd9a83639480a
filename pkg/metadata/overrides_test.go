package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOverrides(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOverridesYAML(t *testing.T) {
	path := writeOverrides(t, "types.yaml", `
types:
  - directory: bots
    name: Bot
    suffix: bot
    meta_file: false
  - directory: classes
    name: ApexClass
    suffix: cls
    meta_file: false
`)

	types, err := LoadOverrides(path)
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "Bot", types[0].Name)
	assert.Equal(t, "bots", types[0].Directory)

	// Merging disables the sidecar on an existing entry
	r := NewRegistry()
	r.Merge(types)
	mt, ok := r.ByDirectory("classes")
	require.True(t, ok)
	assert.False(t, mt.MetaFile)
	_, ok = r.ByDirectory("bots")
	assert.True(t, ok)
}

func TestLoadOverridesTOML(t *testing.T) {
	path := writeOverrides(t, "types.toml", `
[[types]]
directory = "bots"
name = "Bot"
suffix = "bot"
`)

	types, err := LoadOverrides(path)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "Bot", types[0].Name)
	assert.Equal(t, "bot", types[0].Suffix)
}

func TestLoadOverridesSchemaViolation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "types:\n  - directory: bots\n"},
		{"unknown key", "types:\n  - directory: bots\n    name: Bot\n    nope: true\n"},
		{"empty directory", "types:\n  - directory: \"\"\n    name: Bot\n"},
		{"not a list", "types: bots\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeOverrides(t, "types.yaml", tt.content)
			_, err := LoadOverrides(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadOverridesUnsupportedFormat(t *testing.T) {
	path := writeOverrides(t, "types.json", `{"types": []}`)
	_, err := LoadOverrides(path)
	assert.Error(t, err)
}

func TestLoadOverridesMissingFile(t *testing.T) {
	_, err := LoadOverrides(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
