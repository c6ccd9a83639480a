/*
Copyright © 2026 Deployfox <oss@deployfox.dev>
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/deployfox/sfdelta/pkg/buildinfo"
	"github.com/deployfox/sfdelta/pkg/exitcode"
	"github.com/deployfox/sfdelta/pkg/logger"
)

// newRootCommand creates a fresh root command instance.
// The factory pattern lets tests build isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sfdelta",
		Short: "Derive deployment manifests from git branch diffs",
		Long: `Sfdelta diffs two git revisions of a metadata source tree, classifies each
changed file into its metadata type and member, and emits a deployment
package: package.xml, destructiveChanges.xml, and copies of the changed
source files with their -meta.xml sidecars.

Examples:
   sfdelta generate --from main --to feature/x   # Build a deployment package
   sfdelta classify src/classes/Foo.cls          # Inspect classification
   sfdelta types                                 # List the known type table`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json-logs", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Wire Cobra's built-in --version
	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("sfdelta {{.Version}}\n")

	return cmd
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitCodeFor(err))
	}
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	noColor, _ := cmd.Flags().GetBool("no-color")

	_ = logger.Initialize(logger.Config{
		Level:    logger.ParseLevel(logLevelStr),
		UseColor: !noColor,
		JSON:     jsonLogs,
	})
}

// exitError carries a typed process exit code up to Execute.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCodeFor(err error) int {
	if ee, ok := err.(*exitError); ok {
		return ee.code
	}
	return exitcode.GeneralError
}

func codedError(code int, err error) error {
	return &exitError{code: code, err: err}
}

func writeLine(w io.Writer, format string, args ...interface{}) (int, error) {
	return fmt.Fprintf(w, format+"\n", args...)
}
