// ABOUTME: Friends command for the parlor CLI
// ABOUTME: Prints friends' recent scores, newest first

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

var friendsCmd = &cobra.Command{
	Use:   "friends",
	Short: "Show friends' recent scores",
	Long:  `Print your friends' most recent rounds, newest first.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runFriends(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(friendsCmd)
}

// runFriends fetches and prints friends' scores, returning exit code
func runFriends(ctx context.Context, w io.Writer) int {
	kv := openStore()
	if _, ok := kv.Token(); !ok {
		fmt.Fprintln(w, "Error: not signed in (run `parlor login`)")
		return 1
	}

	c := newClient(kv)
	scores, err := c.FriendsScores(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(scores, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatFriendsHuman(scores))
	return 0
}

// formatFriendsHuman renders friends' scores as aligned text rows
func formatFriendsHuman(scores []client.FriendScore) string {
	if len(scores) == 0 {
		return "No friend scores yet. Add friends from your profile."
	}

	var sb strings.Builder
	for _, s := range scores {
		fmt.Fprintf(&sb, "%-20s %-24s %3d strokes\n", s.Name, s.Course, s.Score)
	}
	return strings.TrimRight(sb.String(), "\n")
}
