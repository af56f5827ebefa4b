package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spacious-labs/wordfreq-cli/internal/adapters/driven/countfile"
	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
	"github.com/spacious-labs/wordfreq-cli/internal/core/services"
)

var recountCmd = &cobra.Command{
	Use:   "recount <lang> <input.tsv> <output.tsv>",
	Short: "Re-normalise a pre-aggregated count table",
	Long: `Reads a table of (token, count) rows from a source that delivers
counts rather than raw text, such as an n-gram dataset, normalises every
token and merges rows that collapse to the same canonical lexeme.
Malformed rows are skipped with a warning.`,
	Args: cobra.ExactArgs(3),
	RunE: runRecount,
}

func init() {
	rootCmd.AddCommand(recountCmd)
}

func runRecount(cmd *cobra.Command, args []string) error {
	lang := domain.LanguageCode(args[0])
	store := countfile.NewStore()

	counts, total, err := services.NewCounter().Recount(
		context.Background(), lang, store.OpenRows(args[1]))
	if err != nil {
		return fmt.Errorf("recount failed: %w", err)
	}

	if err := store.Write(args[2], counts, total); err != nil {
		return fmt.Errorf("recount failed: %w", err)
	}

	cmd.Printf("Recounted %d tokens (%d lexemes) into %s\n", total, len(counts), args[2])
	return nil
}
