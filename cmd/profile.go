// ABOUTME: Profile command for the parlor CLI
// ABOUTME: Shows the signed-in profile and uploads a profile photo

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/parlor-golf/parlor-cli/internal/config"
	"github.com/parlor-golf/parlor-cli/internal/store"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile",
	Long:  `Print the signed-in user's profile: handicap, rounds, average score, and friends.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProfile(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var profilePhotoCmd = &cobra.Command{
	Use:   "photo <image-file>",
	Short: "Upload a profile photo",
	Long:  `Upload a JPEG as your profile photo. Replaces any previous photo.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProfilePhoto(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	profileCmd.AddCommand(profilePhotoCmd)
	rootCmd.AddCommand(profileCmd)
}

// runProfile fetches and prints the caller's profile, returning exit code
func runProfile(ctx context.Context, w io.Writer) int {
	kv := openStore()
	if _, ok := kv.Token(); !ok {
		fmt.Fprintln(w, "Error: not signed in (run `parlor login`)")
		return 1
	}
	uid, ok := kv.Get(store.KeyUID)
	if !ok {
		fmt.Fprintln(w, "Error: no stored user id (run `parlor login` again)")
		return 1
	}

	c := newClient(kv)
	profile, err := c.ProfileByID(ctx, uid)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(profile, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "%s <%s>\n", profile.Name, profile.Email)
	fmt.Fprintf(w, "  Handicap:  %.1f\n", profile.Handicap)
	fmt.Fprintf(w, "  Rounds:    %d\n", profile.TotalRounds)
	fmt.Fprintf(w, "  Average:   %.1f strokes\n", profile.AverageScore)
	fmt.Fprintf(w, "  Friends:   %d\n", profile.FriendsCount)
	return 0
}

// runProfilePhoto uploads a new profile photo, returning exit code
func runProfilePhoto(ctx context.Context, w io.Writer, path string) int {
	kv := openStore()
	if _, ok := kv.Token(); !ok {
		fmt.Fprintln(w, "Error: not signed in (run `parlor login`)")
		return 1
	}
	uid, ok := kv.Get(store.KeyUID)
	if !ok {
		fmt.Fprintln(w, "Error: no stored user id (run `parlor login` again)")
		return 1
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "Error: cannot read %s: %v\n", path, err)
		return 1
	}

	sc := newStorage(config.Load(), kv)

	// Best-effort cleanup of the previous photo; the upload proceeds
	// either way.
	if old, ok := kv.Get(store.KeyProfilePhoto); ok {
		if err := sc.DeleteByURL(ctx, old); err != nil {
			slog.Warn("failed to delete previous profile photo", "error", err)
		}
	}

	url, err := sc.UploadProfilePhoto(ctx, uid, data)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if err := kv.Set(store.KeyProfilePhoto, url); err != nil {
		fmt.Fprintf(w, "Error: failed to store photo URL: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		out := map[string]string{"url": url}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Uploaded profile photo: %s\n", url)
	}
	return 0
}
