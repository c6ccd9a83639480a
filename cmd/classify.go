/*
Copyright © 2026 Deployfox <oss@deployfox.dev>
*/
package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/deployfox/sfdelta/pkg/config"
	"github.com/deployfox/sfdelta/pkg/exitcode"
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <path>...",
	Short: "Show how source paths map to metadata types and members",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().String("source-dir", "", "Metadata source directory inside the repository")
	classifyCmd.Flags().String("types-file", "", "Types override file (.yaml or .toml)")
	classifyCmd.Flags().Bool("json", false, "Output in JSON format")
}

// classification is the machine-readable classify result for one path
type classification struct {
	Path   string `json:"path"`
	Type   string `json:"type,omitempty"`
	Member string `json:"member,omitempty"`
	Skip   string `json:"skip,omitempty"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadProjectConfig()
	if err != nil {
		return codedError(exitcode.ConfigError, err)
	}
	sourceDir := stringFlagOr(cmd.Flags(), "source-dir", cfg.Generate.SourceDir)
	jsonOut, _ := cmd.Flags().GetBool("json")

	registry, err := loadRegistry(cmd, cfg, ".")
	if err != nil {
		return codedError(exitcode.ConfigError, err)
	}
	results := make([]classification, 0, len(args))
	for _, path := range args {
		res := classification{Path: path}
		if c, err := registry.Classify(path, sourceDir); err != nil {
			res.Skip = err.Error()
		} else {
			res.Type = c.Type.Name
			res.Member = c.Member
		}
		results = append(results, res)
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, r := range results {
		if r.Skip != "" {
			if _, err := writeLine(out, "%s: skip (%s)", r.Path, r.Skip); err != nil {
				return err
			}
			continue
		}
		if _, err := writeLine(out, "%s: %s %s", r.Path, r.Type, r.Member); err != nil {
			return err
		}
	}
	return nil
}
