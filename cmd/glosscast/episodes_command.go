package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"glosscast/internal/feed"
)

func newEpisodesCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "episodes",
		Short: "List the episodes currently in the feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cmdCtx.newLogger(cmd)
			if err != nil {
				return err
			}

			client := feed.NewClient(cfg.Feed.URL, cfg.Feed.UserAgent,
				time.Duration(cfg.Feed.RequestTimeout)*time.Second, logger)
			episodes, err := client.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			if len(episodes) > cfg.Feed.MaxEpisodes {
				episodes = episodes[:cfg.Feed.MaxEpisodes]
			}

			rows := make([][]string, 0, len(episodes))
			for _, episode := range episodes {
				rows = append(rows, []string{
					strconv.Itoa(episode.Number),
					episode.Title,
					episode.DisplayDate(),
					episode.DisplayDuration(),
				})
			}
			out := renderTable(
				[]string{"#", "Title", "Published", "Duration"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
			)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
