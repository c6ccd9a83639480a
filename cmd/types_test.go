package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypesCommand(t *testing.T) {
	out, err := executeCommand(t, "types")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Greater(t, len(lines), 10)
	assert.Contains(t, lines[0], "DIRECTORY")
	assert.Contains(t, out, "ApexClass")
	assert.Contains(t, out, "AuraDefinitionBundle")
	assert.Contains(t, out, "bundle")
	assert.Contains(t, out, "meta")
}

func TestTypesCommandWithOverrides(t *testing.T) {
	dir := t.TempDir()
	typesFile := filepath.Join(dir, "types.yaml")
	require.NoError(t, os.WriteFile(typesFile,
		[]byte("types:\n  - directory: bots\n    name: Bot\n    suffix: bot\n"), 0o644))

	out, err := executeCommand(t, "types", "--types-file", typesFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Bot")
}

func TestTypesCommandBadOverrides(t *testing.T) {
	dir := t.TempDir()
	typesFile := filepath.Join(dir, "types.yaml")
	require.NoError(t, os.WriteFile(typesFile, []byte("types:\n  - directory: bots\n"), 0o644))

	_, err := executeCommand(t, "types", "--types-file", typesFile)
	assert.Error(t, err)
}
