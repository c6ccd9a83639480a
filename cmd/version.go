/*
Copyright © 2026 Deployfox <oss@deployfox.dev>
*/
package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/deployfox/sfdelta/pkg/buildinfo"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("extended", false, "Show build details")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	extended, _ := cmd.Flags().GetBool("extended")
	out := cmd.OutOrStdout()

	if _, err := writeLine(out, "sfdelta %s", buildinfo.BinaryVersion); err != nil {
		return err
	}
	if extended {
		if mv := buildinfo.ModuleVersion(); mv != "" {
			if _, err := writeLine(out, "module:     %s", mv); err != nil {
				return err
			}
		}
		if _, err := writeLine(out, "go runtime: %s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH); err != nil {
			return err
		}
	}
	return nil
}
