// ABOUTME: Login command for the parlor CLI
// ABOUTME: Signs in against the backend and persists credentials locally

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

	"github.com/charmbracelet/huh"
	"github.com/parlor-golf/parlor-cli/internal/client"
	"github.com/parlor-golf/parlor-cli/internal/store"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
	loginSignUp   bool
	loginName     string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store credentials",
	Long: `Sign in to Parlor and store the session token locally.

Without flags an interactive prompt collects the credentials. Use
--sign-up to create a new account; a fresh account is signed in
immediately.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted if omitted)")
	loginCmd.Flags().BoolVar(&loginSignUp, "sign-up", false, "Create a new account instead of signing in")
	loginCmd.Flags().StringVar(&loginName, "name", "", "Display name for a new account")
	rootCmd.AddCommand(loginCmd)
}

// runLogin executes the login flow and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	if loginEmail == "" || loginPassword == "" || (loginSignUp && loginName == "") {
		if err := promptCredentials(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
	}

	kv := openStore()
	c := newClient(kv)

	var payload *client.AuthPayload
	var err error
	if loginSignUp {
		payload, err = c.SignUp(ctx, loginEmail, loginPassword, loginName)
	} else {
		payload, err = c.SignIn(ctx, loginEmail, loginPassword)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := kv.Set(store.KeyIDToken, payload.IDToken); err != nil {
		fmt.Fprintf(w, "Error: failed to store credentials: %v\n", err)
		return 1
	}
	kv.Set(store.KeyUID, payload.UID)
	kv.Set(store.KeyName, payload.Name)

	if IsJSONOutput() {
		out := map[string]string{"uid": payload.UID, "name": payload.Name}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Signed in as %s\n", payload.Name)
	}
	return 0
}

// promptCredentials fills the missing login flags interactively
func promptCredentials() error {
	fields := []huh.Field{}
	if loginSignUp && loginName == "" {
		fields = append(fields, huh.NewInput().Title("Name").Value(&loginName))
	}
	if loginEmail == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&loginEmail))
	}
	if loginPassword == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&loginPassword))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeBase())
	if err := form.Run(); err != nil {
		return err
	}

	if strings.TrimSpace(loginEmail) == "" || strings.TrimSpace(loginPassword) == "" {
		return fmt.Errorf("email and password are required")
	}
	return nil
}
