package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/deployfox/sfdelta/pkg/exitcode"
)

// executeCommand runs the root command with args and captures combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestExitCodeFor(t *testing.T) {
	if got := exitCodeFor(errors.New("plain")); got != exitcode.GeneralError {
		t.Errorf("exitCodeFor(plain error) = %d, expected %d", got, exitcode.GeneralError)
	}
	coded := codedError(exitcode.GitError, errors.New("bad ref"))
	if got := exitCodeFor(coded); got != exitcode.GitError {
		t.Errorf("exitCodeFor(coded) = %d, expected %d", got, exitcode.GitError)
	}
	if coded.Error() != "bad ref" {
		t.Errorf("coded error message = %q", coded.Error())
	}
	var ee *exitError
	if !errors.As(coded, &ee) {
		t.Error("coded error should unwrap to *exitError")
	}
}

func TestRootHelpListsCommands(t *testing.T) {
	out, err := executeCommand(t, "--help")
	if err != nil {
		t.Fatalf("help returned error: %v", err)
	}
	for _, want := range []string{"generate", "classify", "types"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("help output missing %q", want)
		}
	}
}
