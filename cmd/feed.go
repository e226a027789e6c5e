// ABOUTME: Feed command for the parlor CLI
// ABOUTME: Prints the social feed for scripts and quick checks

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

var feedLimit int

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the social feed",
	Long:  `Print recent rounds from you and your friends, newest first.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runFeed(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	feedCmd.Flags().IntVar(&feedLimit, "limit", 20, "Maximum number of rounds to show")
	rootCmd.AddCommand(feedCmd)
}

// runFeed fetches and prints the feed, returning exit code
func runFeed(ctx context.Context, w io.Writer) int {
	kv := openStore()
	if _, ok := kv.Token(); !ok {
		fmt.Fprintln(w, "Error: not signed in (run `parlor login`)")
		return 1
	}

	c := newClient(kv)
	sessions, err := c.Feed(ctx, feedLimit)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(sessions, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatFeedHuman(sessions))
	return 0
}

// formatFeedHuman renders the feed as aligned text rows
func formatFeedHuman(sessions []client.Session) string {
	if len(sessions) == 0 {
		return "No rounds in the feed yet."
	}

	var sb strings.Builder
	for _, s := range sessions {
		likes := ""
		if s.LikeCount > 0 {
			likes = fmt.Sprintf("  ♥ %d", s.LikeCount)
		}
		comments := ""
		if s.CommentCount > 0 {
			comments = fmt.Sprintf("  💬 %d", s.CommentCount)
		}
		fmt.Fprintf(&sb, "%-20s %-24s %3d strokes  %d holes%s%s\n",
			s.Username, s.CourseName, s.TotalScore, s.Holes, likes, comments)
	}
	return strings.TrimRight(sb.String(), "\n")
}
