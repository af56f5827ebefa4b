package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spacious-labs/wordfreq-cli/internal/adapters/driven/countfile"
	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
	"github.com/spacious-labs/wordfreq-cli/internal/core/services"
	"github.com/spacious-labs/wordfreq-cli/internal/logger"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <lang> <output.tsv> <counts.tsv>...",
	Short: "Merge per-source count tables into a frequency table",
	Long: `Combines the count tables of a language's sources into one frequency
distribution. Each source is first normalised to relative frequencies
within itself, the sources are averaged with equal weight, and the
result is rescaled to sum to the target mass, leaving the remainder as
the out-of-vocabulary allowance. The merge is order-independent: the
same tables in any order produce an identical file.`,
	Args: cobra.MinimumNArgs(3),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	lang := domain.LanguageCode(args[0])
	store := countfile.NewStore()

	inputs := make([]domain.SourceCounts, 0, len(args)-2)
	for _, path := range args[2:] {
		counts, total, skipped, err := store.Read(path)
		if err != nil {
			return fmt.Errorf("merge failed: %w", err)
		}
		if skipped > 0 {
			logger.Warn("Skipped %d malformed rows in %s", skipped, path)
		}
		// Tables named <source>_<lang>.txt report under their source name.
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		name = strings.TrimSuffix(name, "_"+string(lang))
		inputs = append(inputs, domain.SourceCounts{Source: name, Counts: counts, Total: total})
	}

	table, err := services.NewMerger().Merge(inputs)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	if err := store.WriteFrequencies(args[1], table); err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	cmd.Printf("Merged %d sources (%d lexemes) for %s into %s\n", len(inputs), len(table), lang, args[1])
	return nil
}
