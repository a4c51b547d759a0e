// Package cmd implements the iconclip command tree.
package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/iconclip/iconclip/internal/catalog"
	"github.com/iconclip/iconclip/internal/clipboard"
	"github.com/iconclip/iconclip/internal/config"
	"github.com/iconclip/iconclip/internal/picker"
)

var (
	rootFamily  string
	rootBaseURL string
	rootQuery   string
	rootNoCache bool
)

var rootCmd = &cobra.Command{
	Use:   "iconclip",
	Short: "search an icon catalog and copy SVGs to the clipboard",
	Long: `iconclip - icon search for your terminal
  - type a query, browse the matching icons
  - hit enter on a tile to copy its SVG, ready to paste into slides`,
	SilenceUsage: true,
	RunE:         runPicker,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFamily, "family", "", "icon family slug (overrides config)")
	rootCmd.PersistentFlags().StringVar(&rootBaseURL, "base-url", "", "catalog proxy base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&rootNoCache, "no-cache", false, "disable the local SVG cache")
	rootCmd.Flags().StringVarP(&rootQuery, "query", "q", "", "initial search query")
}

// loadConfig loads the configuration and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if rootFamily != "" {
		cfg.Catalog.Family = rootFamily
	}
	if rootBaseURL != "" {
		cfg.Catalog.BaseURL = rootBaseURL
	}
	if rootNoCache {
		cfg.Cache.Enabled = false
	}
	return cfg, nil
}

// newClient builds the catalog client from the configuration.
func newClient(cfg *config.Config) (*catalog.Client, error) {
	return catalog.New(cfg.Catalog.BaseURL, cfg.Catalog.Origin, cfg.Catalog.Family)
}

func runPicker(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	if err := checkTTY(); err != nil {
		return err
	}
	if err := checkTERM(); err != nil {
		return err
	}

	paths := config.DefaultPaths()
	lockFd, err := acquireLock(paths.LockFile())
	if err != nil {
		return err
	}
	defer releaseLock(lockFd)

	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	writer, err := clipboard.New(cfg.Clipboard.Command)
	if err != nil {
		return err
	}

	archive, closeArchive, err := openArchive(cfg)
	if err != nil {
		return err
	}
	defer closeArchive()

	model := picker.New(client, writer, archive, picker.Options{
		Debounce:     time.Duration(cfg.UI.DebounceMs) * time.Millisecond,
		PerPage:      cfg.Catalog.PerPage,
		Columns:      cfg.UI.Columns,
		InitialQuery: rootQuery,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("picker failed: %w", err)
	}
	return nil
}
