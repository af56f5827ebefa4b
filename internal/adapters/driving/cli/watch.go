package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/spacious-labs/wordfreq-cli/internal/adapters/driven/countfile"
	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
	"github.com/spacious-labs/wordfreq-cli/internal/core/services"
	"github.com/spacious-labs/wordfreq-cli/internal/logger"
)

// watchDebounce coalesces the burst of filesystem events a single
// count-table rewrite produces into one re-merge.
const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch <lang> <counts-dir> <output.tsv>",
	Short: "Re-merge a language whenever its count tables change",
	Long: `Watches a directory of count tables named <source>_<lang>.txt and
re-merges the language's frequency table whenever one of them is
written. Useful while iterating on a single source's counts. Runs until
interrupted.`,
	Args: cobra.ExactArgs(3),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	lang := domain.LanguageCode(args[0])
	countsDir, output := args[1], args[2]

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(countsDir); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	// Merge once up front so the output exists before the first change.
	if err := remergeDir(countsDir, lang, output); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	cmd.Printf("Watching %s for %s count tables...\n", countsDir, lang)

	var debounce *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			cmd.Println("Stopped.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if !strings.HasSuffix(event.Name, "_"+string(lang)+".txt") {
				continue
			}
			logger.Debug("Count table changed: %s", event.Name)
			if debounce == nil {
				debounce = time.NewTimer(watchDebounce)
			} else {
				debounce.Reset(watchDebounce)
			}
			fire = debounce.C

		case <-fire:
			fire = nil
			if err := remergeDir(countsDir, lang, output); err != nil {
				// A half-written table merges again on the next event.
				logger.Warn("Re-merge failed: %v", err)
				continue
			}
			cmd.Printf("Re-merged %s\n", output)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// remergeDir merges every <source>_<lang>.txt table in dir into output.
// Fewer tables than the support threshold means the language is not
// merged, matching the build pipeline's gate.
func remergeDir(dir string, lang domain.LanguageCode, output string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*_"+string(lang)+".txt"))
	if err != nil {
		return err
	}
	if len(paths) < services.MinSupportedSources {
		return fmt.Errorf("only %d count tables for %s: %w", len(paths), lang, domain.ErrNoEligibleSources)
	}

	store := countfile.NewStore()
	inputs := make([]domain.SourceCounts, 0, len(paths))
	for _, path := range paths {
		counts, total, _, err := store.Read(path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(path), "_"+string(lang)+".txt")
		inputs = append(inputs, domain.SourceCounts{Source: name, Counts: counts, Total: total})
	}

	table, err := services.NewMerger().Merge(inputs)
	if err != nil {
		return err
	}
	return store.WriteFrequencies(output, table)
}
