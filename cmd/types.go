/*
Copyright © 2026 Deployfox <oss@deployfox.dev>
*/
package cmd

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/deployfox/sfdelta/pkg/exitcode"
	"github.com/deployfox/sfdelta/pkg/metadata"
)

// typesCmd represents the types command
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the metadata type table",
	Long: `List every registered metadata type: its source directory, manifest type
name, file suffix, and whether it carries -meta.xml sidecars, folder
grouping, or one-directory-per-member bundles.`,
	RunE: runTypes,
}

func init() {
	rootCmd.AddCommand(typesCmd)
	typesCmd.Flags().String("types-file", "", "Types override file (.yaml or .toml) to merge before listing")
}

func runTypes(cmd *cobra.Command, _ []string) error {
	registry := metadata.NewRegistry()
	if typesFile, _ := cmd.Flags().GetString("types-file"); typesFile != "" {
		overrides, err := metadata.LoadOverrides(typesFile)
		if err != nil {
			return codedError(exitcode.ConfigError, err)
		}
		registry.Merge(overrides)
	}

	rows := [][]string{{"DIRECTORY", "TYPE", "SUFFIX", "TRAITS"}}
	for _, t := range registry.Types() {
		rows = append(rows, []string{t.Directory, t.Name, t.Suffix, traits(t)})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	out := cmd.OutOrStdout()
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		if _, err := writeLine(out, "%s", strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

func traits(t metadata.Type) string {
	var parts []string
	if t.MetaFile {
		parts = append(parts, "meta")
	}
	if t.InFolder {
		parts = append(parts, "folder")
	}
	if t.Bundle {
		parts = append(parts, "bundle")
	}
	return strings.Join(parts, ",")
}
