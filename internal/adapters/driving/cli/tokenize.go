package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spacious-labs/wordfreq-cli/internal/adapters/driven/archive"
	"github.com/spacious-labs/wordfreq-cli/internal/adapters/driven/tokenize"
	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
)

var tokenizeChunkSize int

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <lang> <input.txt> <output.zip>",
	Short: "Tokenize a raw corpus file into a token archive",
	Long: `Reads a raw corpus with one document per line, segments each document
into tokens and packages the result as a token archive. Empty documents
produce no entry. An input of "-" reads from stdin.`,
	Args: cobra.ExactArgs(3),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().IntVar(&tokenizeChunkSize, "chunk-size", 0,
		"documents per archive chunk (default: 1000000)")
	rootCmd.AddCommand(tokenizeCmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	lang := domain.LanguageCode(args[0])
	ctx := context.Background()

	w, err := archive.Create(args[2], lang, tokenizeChunkSize)
	if err != nil {
		return fmt.Errorf("tokenize failed: %w", err)
	}

	segmenter := tokenize.New()
	reader := tokenize.NewLineReader()

	var (
		docs <-chan string
		errs <-chan error
	)
	if args[1] == "-" {
		docs, errs = reader.DocumentsFrom(ctx, cmd.InOrStdin())
	} else {
		docs, errs = reader.Documents(ctx, args[1])
	}

	written := 0
	for {
		select {
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				w.Close()
				return fmt.Errorf("tokenize failed: %w", err)
			}

		case doc, ok := <-docs:
			if !ok {
				// The reader reports a terminal error before closing.
				if errs != nil {
					if err, ok := <-errs; ok && err != nil {
						w.Close()
						return fmt.Errorf("tokenize failed: %w", err)
					}
				}
				if err := w.Close(); err != nil {
					return fmt.Errorf("tokenize failed: %w", err)
				}
				cmd.Printf("Tokenized %d documents into %s\n", written, args[2])
				return nil
			}
			tokens := segmenter.Tokenize(doc)
			if len(tokens) == 0 {
				continue
			}
			if err := w.WriteDocument(ctx, tokens); err != nil {
				w.Close()
				return fmt.Errorf("tokenize failed: %w", err)
			}
			written++
		}
	}
}
