// ABOUTME: Rankings command for the parlor CLI
// ABOUTME: Prints the friends leaderboard ordered by average score

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/parlor-golf/parlor-cli/internal/client"
	"github.com/spf13/cobra"
)

var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Show the friends leaderboard",
	Long:  `Print the leaderboard of you and your friends, best average score first.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRankings(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(rankingsCmd)
}

// runRankings fetches and prints the leaderboard, returning exit code
func runRankings(ctx context.Context, w io.Writer) int {
	kv := openStore()
	if _, ok := kv.Token(); !ok {
		fmt.Fprintln(w, "Error: not signed in (run `parlor login`)")
		return 1
	}

	c := newClient(kv)
	entries, err := c.Rankings(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(entries, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatRankingsHuman(entries))
	return 0
}

// formatRankingsHuman renders the leaderboard as ranked rows
func formatRankingsHuman(entries []client.RankingEntry) string {
	if len(entries) == 0 {
		return "No rankings yet."
	}

	var sb strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&sb, "%2d. %-20s %.1f avg\n", i+1, e.Name, e.AverageScore)
	}
	return strings.TrimRight(sb.String(), "\n")
}
