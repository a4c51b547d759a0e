package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iconclip/iconclip/internal/catalog"
)

var (
	searchJSON bool
	searchPage int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog and print matching icons",
	Long: `Search the icon catalog without opening the picker.

Examples:
  iconclip search arrow              # List icons matching "arrow"
  iconclip search --json arrow       # Output the raw results as JSON
  iconclip search --page 2 arrow     # Fetch the second result page`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "result page to fetch")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	resp, err := client.Search(context.Background(), args[0], searchPage, cfg.Catalog.PerPage)
	if err != nil {
		return err
	}

	if searchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Print(renderSearchResults(resp))
	return nil
}

// renderSearchResults formats a search response for plain output: the
// results-count line followed by one row per icon.
func renderSearchResults(resp *catalog.SearchResponse) string {
	var b strings.Builder

	b.WriteString(countLine(resp.Pagination))
	b.WriteString("\n")

	for _, ic := range resp.Icons() {
		b.WriteString(fmt.Sprintf("%-40s  %-12s  %s\n", ic.Name, ic.Hash, ic.Category))
	}
	return b.String()
}

// countLine mirrors the picker's results-count label.
func countLine(p catalog.Pagination) string {
	switch p.Total {
	case 0:
		return "No icons found"
	case 1:
		return "1 icon found"
	}
	page := p.Offset/catalog.DefaultPerPage + 1
	pages := (p.Total + catalog.DefaultPerPage - 1) / catalog.DefaultPerPage
	return fmt.Sprintf("%d icons found (Page %d of %d)", p.Total, page, pages)
}
