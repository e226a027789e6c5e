// ABOUTME: Sessions command for the parlor CLI
// ABOUTME: Lists and deletes the caller's recorded rounds

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

var sessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List your recorded rounds",
	Long:  `Print your recorded rounds, newest first.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSessions(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete one of your rounds",
	Long:  `Delete a recorded round. The round's likes and comments are removed with it.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSessionsDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	sessionsCmd.Flags().IntVar(&sessionsLimit, "limit", 20, "Maximum number of rounds to show")
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}

// runSessions lists the caller's rounds, returning exit code
func runSessions(ctx context.Context, w io.Writer) int {
	kv := openStore()
	if _, ok := kv.Token(); !ok {
		fmt.Fprintln(w, "Error: not signed in (run `parlor login`)")
		return 1
	}

	c := newClient(kv)
	sessions, err := c.Sessions(ctx, sessionsLimit)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(sessions, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatSessionsHuman(sessions))
	return 0
}

// runSessionsDelete deletes one round, returning exit code
func runSessionsDelete(ctx context.Context, w io.Writer, sessionID string) int {
	kv := openStore()
	if _, ok := kv.Token(); !ok {
		fmt.Fprintln(w, "Error: not signed in (run `parlor login`)")
		return 1
	}

	c := newClient(kv)
	if err := c.DeleteSession(ctx, sessionID); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Deleted round %s\n", sessionID)
	return 0
}

// formatSessionsHuman renders rounds as aligned text rows
func formatSessionsHuman(sessions []client.Session) string {
	if len(sessions) == 0 {
		return "No rounds recorded yet."
	}

	var sb strings.Builder
	for _, s := range sessions {
		fmt.Fprintf(&sb, "%-12s %-24s %3d strokes  %d holes  %s\n",
			s.ID, s.CourseName, s.TotalScore, s.Holes, s.Privacy)
	}
	return strings.TrimRight(sb.String(), "\n")
}
