package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mivideo/internal/language"
	"mivideo/internal/loader"
)

func newLoadCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var chunkSeconds int
	var languages []string
	var allLanguages bool
	var spanGaps bool

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load course captions as chunked documents",
		Long: "Load retrieves every media entry in the configured course, fetches its " +
			"caption tracks, and emits one JSON document per caption chunk.",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := ctx.newLoader(cmd.Context(), func(cfg *loader.Config) {
				if cmd.Flags().Changed("chunk-seconds") {
					cfg.ChunkSeconds = chunkSeconds
				}
				if cmd.Flags().Changed("span-gaps") {
					cfg.SpanGaps = spanGaps
				}
				if allLanguages {
					cfg.AllLanguages = true
					cfg.Languages = nil
				} else if len(languages) > 0 {
					cfg.Languages = language.NewSet(languages...)
				}
			})
			if err != nil {
				return err
			}

			docs, err := l.Load(cmd.Context())
			if err != nil {
				return err
			}

			if target := strings.TrimSpace(outputPath); target != "" {
				file, err := os.Create(target)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer file.Close()
				if err := writeJSONTo(file, docs); err != nil {
					return fmt.Errorf("write documents: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d documents to %s\n", len(docs), target)
				return nil
			}
			return writeJSON(cmd, docs)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write documents to a file instead of stdout")
	cmd.Flags().IntVar(&chunkSeconds, "chunk-seconds", 0, "Chunk window in seconds (overrides config)")
	cmd.Flags().StringSliceVar(&languages, "language", nil, "Caption language to load (repeatable, overrides config)")
	cmd.Flags().BoolVar(&allLanguages, "all-languages", false, "Load captions in every language")
	cmd.Flags().BoolVar(&spanGaps, "span-gaps", false, "Continue chunking across silent stretches")

	return cmd
}
