package main

import (
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"glosscast/internal/feed"
	"glosscast/internal/llm"
	"glosscast/internal/logging"
	"glosscast/internal/pipeline"
	"glosscast/internal/render"
	"glosscast/internal/selector"
	"glosscast/internal/wordcache"
)

func newGenerateCommand(cmdCtx *commandContext) *cobra.Command {
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetch the feed and write the annotated HTML page",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cmdCtx.newLogger(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// One generate run at a time per cache directory. The SQLite
			// store tolerates concurrent readers but two writers would race
			// on the output file.
			lock := flock.New(filepath.Join(cfg.Paths.CacheDir, "generate.lock"))
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire generate lock: %w", err)
			}
			if !ok {
				return errors.New("another glosscast run is already in progress")
			}
			defer lock.Unlock()

			feedClient := feed.NewClient(cfg.Feed.URL, cfg.Feed.UserAgent,
				time.Duration(cfg.Feed.RequestTimeout)*time.Second, logger)
			episodes, err := feedClient.Fetch(ctx)
			if err != nil {
				return err
			}
			if len(episodes) > cfg.Feed.MaxEpisodes {
				episodes = episodes[:cfg.Feed.MaxEpisodes]
			}

			store, err := wordcache.Open(cfg.Paths.CacheDir)
			if err != nil {
				return fmt.Errorf("open selection cache: %w", err)
			}
			defer store.Close()

			if !cfg.AnnotationEnabled() {
				logger.Warn("no llm credential configured, transcripts will be rendered without annotations")
			}
			client := llm.NewClient(llm.Config{
				APIKey:         cfg.LLM.APIKey,
				BaseURL:        cfg.LLM.BaseURL,
				Model:          cfg.LLM.Model,
				Referer:        cfg.LLM.Referer,
				Title:          cfg.LLM.Title,
				TimeoutSeconds: cfg.LLM.TimeoutSeconds,
			})
			sel := selector.New(client, store, cfg.LLM.Model, logger)

			result, err := pipeline.New(sel, logger).Run(ctx, episodes)
			if err != nil {
				return err
			}

			renderer, err := render.New(logger)
			if err != nil {
				return err
			}
			page, err := renderer.BuildPage(result, cfg.Output.Title, cfg.Feed.URL)
			if err != nil {
				return err
			}
			outputPath := cfg.Output.Path
			if outputFlag != "" {
				outputPath = outputFlag
			}
			if err := renderer.WriteFile(outputPath, page); err != nil {
				return err
			}

			logger.Info("generate complete",
				logging.Args(
					logging.Int("episodes", len(result.Episodes)),
					logging.Int("annotated_words", len(result.Words)),
					logging.String("output", outputPath),
				)...)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s with %d episodes and %d annotated words\n",
				outputPath, len(result.Episodes), len(result.Words))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Override the output file path")
	return cmd
}
