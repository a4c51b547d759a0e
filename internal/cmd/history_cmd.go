package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iconclip/iconclip/internal/storage"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Cache.Enabled {
		return fmt.Errorf("search history requires cache.enabled")
	}

	store, err := storage.Open(cfg.Cache.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.RecentSearches(context.Background(), historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No searches recorded yet.")
		return nil
	}

	for _, e := range entries {
		ts := time.UnixMilli(e.SearchedAtUnixMs).Format("2006-01-02 15:04")
		fmt.Printf("%s  %-24s  %-16s  %d results\n", ts, e.Query, e.Family, e.ResultCount)
	}
	return nil
}
