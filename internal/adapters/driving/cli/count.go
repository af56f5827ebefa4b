package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spacious-labs/wordfreq-cli/internal/adapters/driven/archive"
	"github.com/spacious-labs/wordfreq-cli/internal/adapters/driven/countfile"
	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
	"github.com/spacious-labs/wordfreq-cli/internal/core/services"
)

var countKeepHapaxes bool

var countCmd = &cobra.Command{
	Use:   "count <lang> <archive.zip> <output.tsv>",
	Short: "Count normalised lexemes in a token archive",
	Long: `Streams every token of a token archive, normalises each according to
the language's rules and writes the resulting count table. Lexemes that
occurred only once are dropped unless --keep-hapaxes is given; the
recorded token total still includes them.`,
	Args: cobra.ExactArgs(3),
	RunE: runCount,
}

func init() {
	countCmd.Flags().BoolVar(&countKeepHapaxes, "keep-hapaxes", false,
		"keep lexemes that occurred exactly once")
	rootCmd.AddCommand(countCmd)
}

func runCount(cmd *cobra.Command, args []string) error {
	lang := domain.LanguageCode(args[0])

	stream := archive.Open(args[1]).TokenStream(lang)
	counts, total, err := services.NewCounter().Count(context.Background(), lang, stream)
	if err != nil {
		return fmt.Errorf("count failed: %w", err)
	}

	if !countKeepHapaxes {
		services.DropHapaxes(counts)
	}

	if err := countfile.NewStore().Write(args[2], counts, total); err != nil {
		return fmt.Errorf("count failed: %w", err)
	}

	cmd.Printf("Counted %d tokens (%d lexemes) into %s\n", total, len(counts), args[2])
	return nil
}
