// Package cli implements the wordfreq command-line interface. Each
// pipeline stage is exposed as its own subcommand so stages can be run
// and inspected independently; build runs the whole pipeline.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spacious-labs/wordfreq-cli/internal/logger"
	"github.com/spacious-labs/wordfreq-cli/internal/registry"
)

// version is overridden at link time via Execute.
var version = "dev"

var (
	verbose      bool
	registryPath string
	dataDirFlag  string

	// reg is loaded once per invocation in the persistent pre-run and
	// read by every command.
	reg *registry.Registry
)

var rootCmd = &cobra.Command{
	Use:   "wordfreq",
	Short: "Build word frequency tables from multi-source corpora",
	Long: `wordfreq normalises and merges word counts from heterogeneous text
corpora into per-language frequency tables. Each stage of the pipeline
(tokenize, count, recount, merge) is available as its own subcommand;
build runs the whole pipeline over every supported language.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)

		var err error
		if registryPath != "" {
			reg, err = registry.LoadFile(registryPath)
		} else {
			reg, err = registry.Embedded()
		}
		if err != nil {
			return fmt.Errorf("loading registry: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&registryPath, "registry", "",
		"path to a registry TOML file (default: embedded configuration)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "",
		"artifact directory (default: ~/.wordfreq/data)")
}

// Execute runs the root command. v is the build version stamped by the
// linker; empty keeps the default.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}

// resolveDataDir returns the artifact directory, defaulting under the
// user's home.
func resolveDataDir() (string, error) {
	if dataDirFlag != "" {
		return dataDirFlag, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".wordfreq", "data"), nil
}
