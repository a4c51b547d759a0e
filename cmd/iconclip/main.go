// Package main is the entry point for the iconclip CLI.
package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/iconclip/iconclip/internal/cmd"
)

func main() {
	// Respect NO_COLOR and dumb terminals before any styled output.
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
