package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"glosscast/internal/wordcache"
)

func newCacheCommand(cmdCtx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Selection cache maintenance",
	}

	cacheCmd.AddCommand(newCacheListCommand(cmdCtx))
	cacheCmd.AddCommand(newCacheClearCommand(cmdCtx))

	return cacheCmd
}

func withCacheStore(cmdCtx *commandContext, fn func(*wordcache.SQLiteStore) error) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := wordcache.Open(cfg.Paths.CacheDir)
	if err != nil {
		return fmt.Errorf("open selection cache: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func newCacheListCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached word selections",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCacheStore(cmdCtx, func(store *wordcache.SQLiteStore) error {
				entries, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "Selection cache is empty.")
					return nil
				}

				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						entry.Fingerprint,
						strconv.Itoa(entry.Size),
						entry.CreatedAt.Format("2006-01-02 15:04:05"),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Fingerprint", "Bytes", "Created"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft},
				))
				fmt.Fprintf(out, "%d entries in %s\n", len(entries), store.Path())
				return nil
			})
		},
	}
}

func newCacheClearCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached word selections",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCacheStore(cmdCtx, func(store *wordcache.SQLiteStore) error {
				count, err := store.Count(cmd.Context())
				if err != nil {
					return err
				}
				if err := store.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached selections from %s\n", count, store.Path())
				return nil
			})
		},
	}
}
