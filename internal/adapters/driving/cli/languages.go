package cli

import (
	"github.com/spf13/cobra"

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
	"github.com/spacious-labs/wordfreq-cli/internal/core/services"
)

var languagesLargeOnly bool

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List languages and their support levels",
	Long: `Lists every language declared by at least one registry source along
with its support level. Support is a function of how many sources cover
the language: diversity of register is what makes a frequency estimate
trustworthy, not corpus size alone.`,
	Args: cobra.NoArgs,
	RunE: runLanguages,
}

func init() {
	languagesCmd.Flags().BoolVar(&languagesLargeOnly, "large", false,
		"list only languages with large support")
	rootCmd.AddCommand(languagesCmd)
}

func runLanguages(cmd *cobra.Command, _ []string) error {
	avail := services.NewAvailability(reg)

	for _, lang := range reg.AllLanguages() {
		level := avail.Classify(lang)
		if level == domain.Unsupported {
			continue
		}
		if languagesLargeOnly && level != domain.Large {
			continue
		}
		cmd.Printf("%s\t%s\t%d sources\n", lang, level, len(reg.SourcesFor(lang)))
	}
	return nil
}
