package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spacious-labs/wordfreq-cli/internal/adapters/driven/archive"
	"github.com/spacious-labs/wordfreq-cli/internal/adapters/driven/countfile"
	"github.com/spacious-labs/wordfreq-cli/internal/adapters/driven/fetch"
	"github.com/spacious-labs/wordfreq-cli/internal/adapters/driven/storage/sqlite"
	"github.com/spacious-labs/wordfreq-cli/internal/adapters/driven/tokenize"
	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
	"github.com/spacious-labs/wordfreq-cli/internal/core/ports/driving"
	"github.com/spacious-labs/wordfreq-cli/internal/core/services"
)

var (
	buildRawDir string
	buildJobs   int
)

var buildCmd = &cobra.Command{
	Use:   "build [lang]",
	Short: "Run the full pipeline for every supported language",
	Long: `Fetches, tokenizes, counts and merges every source of every supported
language (or of one language, if given). Completed artifacts are
recorded in a local ledger, so an interrupted build resumes where it
left off. Sources that declare coverage but have no data are excluded
from the merge without failing the build.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildRawDir, "raw-dir", "",
		"directory of pre-downloaded raw corpus data (required)")
	buildCmd.Flags().IntVar(&buildJobs, "jobs", 0,
		"concurrent count builds (default: 8)")
	buildCmd.MarkFlagRequired("raw-dir")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}

	ledger, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	defer ledger.Close()

	store := countfile.NewStore()
	builder := services.NewBuilder(services.BuilderDeps{
		Registry:    reg,
		Fetcher:     fetch.NewLocal(buildRawDir, fetch.NewLimiterPool(reg.Origin)),
		Tokenizer:   tokenize.New(),
		Documents:   tokenize.NewLineReader(),
		Archives:    archive.NewStore(0),
		Counts:      store,
		Rows:        store,
		Frequencies: store,
		Ledger:      ledger,
		DataDir:     dataDir,
		Jobs:        buildJobs,
	})

	if len(args) > 0 {
		lang := domain.LanguageCode(args[0])
		cmd.Printf("Building frequency table for %s...\n", lang)
		if err := buildWithProgress(ctx, cmd, builder, func() error {
			return builder.BuildLanguage(ctx, lang)
		}); err != nil {
			return fmt.Errorf("build failed: %w", err)
		}
	} else {
		cmd.Println("Building frequency tables for all supported languages...")
		if err := buildWithProgress(ctx, cmd, builder, func() error {
			return builder.BuildAll(ctx)
		}); err != nil {
			return fmt.Errorf("build failed: %w", err)
		}
	}

	status := builder.Status()
	cmd.Printf("Built %d count tables, merged %d languages (%d errors).\n",
		status.CountsBuilt, status.TablesMerged, status.ErrorCount)
	return nil
}

// buildWithProgress runs the build while displaying progress updates.
func buildWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	builder driving.BuildOrchestrator,
	run func() error,
) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- run()
	}()

	// Poll status every 500ms
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCounts := 0
	for {
		select {
		case err := <-errCh:
			return err
		case <-ticker.C:
			status := builder.Status()
			if status.CountsBuilt > lastCounts {
				cmd.Printf("\rCounting... %d tables", status.CountsBuilt)
				lastCounts = status.CountsBuilt
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
