// ABOUTME: Logout command for the parlor CLI
// ABOUTME: Clears stored credentials while keeping local preferences

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear stored credentials",
	Long:  `Remove the stored session token and identity. Preferences such as the theme are kept.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears credentials and returns exit code
func runLogout(w io.Writer) int {
	kv := openStore()
	if err := kv.ClearCredentials(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(w, "Signed out")
	return 0
}
