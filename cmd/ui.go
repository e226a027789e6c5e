// ABOUTME: UI command launching the interactive terminal application
// ABOUTME: Wires the API client, storage, theme store, and feed config

package cmd

import (
	"fmt"
	"os"

	"github.com/parlor-golf/parlor-cli/internal/config"
	"github.com/parlor-golf/parlor-cli/internal/theme"
	"github.com/parlor-golf/parlor-cli/internal/tui"
	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive terminal UI",
	Long:  `Open the full-screen Parlor interface: feed, round recording, leagues, rankings, and settings.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runUI(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

// runUI builds the dependency graph and starts the TUI
func runUI() error {
	cfg := config.Load()
	kv := openStore()
	c := newClient(kv)
	storageClient := newStorage(cfg, kv)
	themes := theme.New(kv, detectAmbientScheme())

	return tui.Run(c, storageClient, kv, themes, cfg.FeedLimit)
}

// detectAmbientScheme guesses the terminal's color scheme. Terminals
// rarely report it; dark is the safer default.
func detectAmbientScheme() theme.Scheme {
	if bg := os.Getenv("COLORFGBG"); bg != "" {
		// COLORFGBG is "fg;bg"; high bg numbers mean a light palette
		if len(bg) > 0 {
			last := bg[len(bg)-1]
			if last == '7' || last == '5' {
				return theme.SchemeLight
			}
		}
	}
	return theme.SchemeDark
}
