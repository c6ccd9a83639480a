/*
Copyright © 2026 Deployfox <oss@deployfox.dev>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/deployfox/sfdelta/internal/generate"
	"github.com/deployfox/sfdelta/internal/gitdiff"
	"github.com/deployfox/sfdelta/internal/materialize"
	"github.com/deployfox/sfdelta/internal/report"
	"github.com/deployfox/sfdelta/pkg/config"
	"github.com/deployfox/sfdelta/pkg/exitcode"
	"github.com/deployfox/sfdelta/pkg/ignore"
	"github.com/deployfox/sfdelta/pkg/logger"
	"github.com/deployfox/sfdelta/pkg/manifest"
	"github.com/deployfox/sfdelta/pkg/metadata"
	"github.com/deployfox/sfdelta/pkg/safeio"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build a deployment package from the diff between two revisions",
	Long: `Generate diffs two git revisions, classifies every changed file into its
metadata type and member, and writes the deployment package: package.xml for
additions and modifications, destructiveChanges.xml for deletions, plus
copies of the changed source files and their -meta.xml sidecars.`,
	RunE: runGenerate,
}

// candidate type override files probed when --types-file is not given
var defaultTypesFiles = []string{".sfdelta-types.yaml", ".sfdelta-types.yml", ".sfdelta-types.toml"}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("from", "", "Base revision (branch, tag, or SHA)")
	generateCmd.Flags().String("to", "", "Target revision (branch, tag, or SHA)")
	generateCmd.Flags().String("repo", ".", "Repository root")
	generateCmd.Flags().String("source-dir", "", "Metadata source directory inside the repository")
	generateCmd.Flags().String("out", "", "Output directory for the deployment package")
	generateCmd.Flags().String("api-version", "", "Metadata API version written into the manifests")
	generateCmd.Flags().String("types-file", "", "Types override file (.yaml or .toml)")
	generateCmd.Flags().Bool("dry-run", false, "Print the manifests instead of writing the package")
	generateCmd.Flags().Bool("strict", false, "Fail when a changed file sits under an unknown metadata directory")
	generateCmd.Flags().Bool("summary", false, "Print a per-type summary of the changeset")
	generateCmd.Flags().String("summary-template", "", "Handlebars template for the summary output")

	_ = generateCmd.MarkFlagRequired("from")
	_ = generateCmd.MarkFlagRequired("to")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadProjectConfig()
	if err != nil {
		return codedError(exitcode.ConfigError, err)
	}

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	repoDir, _ := cmd.Flags().GetString("repo")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	strict, _ := cmd.Flags().GetBool("strict")
	summary, _ := cmd.Flags().GetBool("summary")
	summaryTpl, _ := cmd.Flags().GetString("summary-template")

	sourceDir := stringFlagOr(cmd.Flags(), "source-dir", cfg.Generate.SourceDir)
	outDir := stringFlagOr(cmd.Flags(), "out", cfg.Generate.OutputDir)
	apiVersion := stringFlagOr(cmd.Flags(), "api-version", cfg.Generate.APIVersion)

	repoDir, err = safeio.CleanUserPath(repoDir)
	if err != nil {
		return codedError(exitcode.ConfigError, err)
	}

	registry, err := loadRegistry(cmd, cfg, repoDir)
	if err != nil {
		return codedError(exitcode.ConfigError, err)
	}

	matcher, err := ignore.NewMatcher(repoDir, cfg.Generate.IgnoreFile)
	if err != nil {
		return codedError(exitcode.FileSystemError, err)
	}

	changes, err := gitdiff.Between(repoDir, from, to)
	if err != nil {
		return codedError(exitcode.GitError, err)
	}
	logger.Debug("collected diff", logger.Int("changes", len(changes)),
		logger.String("from", from), logger.String("to", to))

	res := generate.Build(changes, registry, matcher, sourceDir)
	logSkipped(res.Skipped)
	if strict {
		if unknown := unknownPaths(res.Skipped); len(unknown) > 0 {
			return codedError(exitcode.UnknownMetadata,
				fmt.Errorf("unknown metadata directory for: %s", strings.Join(unknown, ", ")))
		}
	}

	packageXML, err := manifest.Render(res.Changeset.Changes, apiVersion)
	if err != nil {
		return codedError(exitcode.GeneralError, err)
	}
	var destructiveXML []byte
	if res.Changeset.Deletions.Len() > 0 {
		destructiveXML, err = manifest.Render(res.Changeset.Deletions, apiVersion)
		if err != nil {
			return codedError(exitcode.GeneralError, err)
		}
	}

	out := cmd.OutOrStdout()
	if dryRun {
		if _, err := writeLine(out, "--- %s", manifest.PackageFile); err != nil {
			return err
		}
		if _, err := out.Write(packageXML); err != nil {
			return err
		}
		if destructiveXML != nil {
			if _, err := writeLine(out, "--- %s", manifest.DestructiveFile); err != nil {
				return err
			}
			if _, err := out.Write(destructiveXML); err != nil {
				return err
			}
		}
	} else {
		m := &materialize.Materializer{
			RepoRoot: repoDir,
			OutDir:   outDir,
			Workers:  cfg.Generate.CopyWorkers,
		}
		if err := m.Write(res, packageXML, destructiveXML); err != nil {
			return codedError(exitcode.FileSystemError, err)
		}
		logger.Info("deployment package written",
			logger.String("out", outDir),
			logger.Int("changes", res.Changeset.Changes.Len()),
			logger.Int("deletions", res.Changeset.Deletions.Len()))
	}

	if summary {
		text, err := report.Render(res.Changeset, from, to, apiVersion, summaryTpl)
		if err != nil {
			return codedError(exitcode.GeneralError, err)
		}
		if _, err := fmt.Fprintln(out, text); err != nil {
			return err
		}
	}
	return nil
}

// loadRegistry builds the type registry, merging any override file. The
// --types-file flag wins over configuration, which wins over probing the
// repository root for default file names.
func loadRegistry(cmd *cobra.Command, cfg *config.Config, repoDir string) (*metadata.Registry, error) {
	registry := metadata.NewRegistry()

	typesFile := stringFlagOr(cmd.Flags(), "types-file", cfg.Generate.TypesFile)
	if typesFile == "" {
		for _, name := range defaultTypesFiles {
			candidate := filepath.Join(repoDir, name)
			if _, err := os.Stat(candidate); err == nil {
				typesFile = candidate
				break
			}
		}
	}
	if typesFile == "" {
		return registry, nil
	}

	overrides, err := metadata.LoadOverrides(typesFile)
	if err != nil {
		return nil, err
	}
	registry.Merge(overrides)
	logger.Debug("merged types overrides", logger.String("file", typesFile), logger.Int("entries", len(overrides)))
	return registry, nil
}

func logSkipped(skipped []generate.SkippedChange) {
	for _, s := range skipped {
		logger.Debug("skipped change", logger.String("path", s.Path), logger.String("reason", s.Reason))
	}
}

func unknownPaths(skipped []generate.SkippedChange) []string {
	var paths []string
	for _, s := range skipped {
		if s.Unknown {
			paths = append(paths, s.Path)
		}
	}
	return paths
}

// stringFlagOr returns the flag value when set on the command line, falling
// back to the configured default.
func stringFlagOr(flags *pflag.FlagSet, name, fallback string) string {
	if flags.Changed(name) {
		v, _ := flags.GetString(name)
		return v
	}
	if fallback != "" {
		return fallback
	}
	v, _ := flags.GetString(name)
	return v
}
