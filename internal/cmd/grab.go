package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iconclip/iconclip/internal/clipboard"
	"github.com/iconclip/iconclip/internal/config"
	"github.com/iconclip/iconclip/internal/storage"
)

var grabStdout bool

var grabCmd = &cobra.Command{
	Use:   "grab <hash> [name]",
	Short: "Download one icon by hash and copy its SVG to the clipboard",
	Long: `Download an icon's SVG markup and copy it to the clipboard.

The hash comes from "iconclip search" output or the picker. An optional
display name is used in the confirmation message.

Examples:
  iconclip grab abc123                  # Copy the icon to the clipboard
  iconclip grab abc123 "Arrow Right"    # Same, with a nicer message
  iconclip grab --stdout abc123         # Print the markup instead`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGrab,
}

func init() {
	grabCmd.Flags().BoolVar(&grabStdout, "stdout", false, "print the SVG markup instead of copying it")

	rootCmd.AddCommand(grabCmd)
}

func runGrab(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	hash := args[0]
	name := hash
	if len(args) > 1 {
		name = args[1]
	}

	ctx := context.Background()
	markup, err := fetchMarkup(ctx, cfg, hash, name)
	if err != nil {
		return err
	}

	if grabStdout {
		fmt.Print(markup)
		return nil
	}

	writer, err := clipboard.New(cfg.Clipboard.Command)
	if err != nil {
		return err
	}
	outcome, err := writer.Copy(ctx, markup)
	if err != nil {
		return err
	}

	fmt.Println(outcome.Message(name))
	return nil
}

// fetchMarkup returns the icon's SVG, consulting the local cache first
// when enabled.
func fetchMarkup(ctx context.Context, cfg *config.Config, hash, name string) (string, error) {
	var store *storage.Store
	if cfg.Cache.Enabled {
		var err error
		store, err = storage.Open(cfg.Cache.Path)
		if err != nil {
			return "", err
		}
		defer store.Close()

		if cached, err := store.GetSVG(ctx, hash); err == nil {
			return cached.Markup, nil
		} else if !errors.Is(err, storage.ErrNotCached) {
			return "", err
		}
	}

	client, err := newClient(cfg)
	if err != nil {
		return "", err
	}
	markup, err := client.Download(ctx, hash)
	if err != nil {
		return "", err
	}

	if store != nil {
		if err := store.PutSVG(ctx, hash, name, markup); err != nil {
			return "", err
		}
	}
	return markup, nil
}
