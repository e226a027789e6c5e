// ABOUTME: Root command for the parlor CLI
// ABOUTME: Handles global flags and shared client construction

package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/parlor-golf/parlor-cli/internal/client"
	"github.com/parlor-golf/parlor-cli/internal/config"
	"github.com/parlor-golf/parlor-cli/internal/storage"
	"github.com/parlor-golf/parlor-cli/internal/store"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:5000"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "parlor",
	Short: "CLI for Parlor, the social golf round tracker",
	Long: `parlor is a command-line interface for Parlor.

Track rounds, follow your friends' golf, and climb the rankings from
the terminal. Run without a subcommand to launch the interactive UI.

Environment Variables:
  PARLOR_API_URL      Backend API URL (default: http://localhost:5000)
  PARLOR_STORAGE_URL  Photo storage URL (default: http://localhost:9199)
  PARLOR_FEED_LIMIT   Feed page size (default: 20)`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(config.Load())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI()
	},
}

// setupLogging configures the process-wide slog logger from
// LOG_LEVEL/LOG_FORMAT. Logs go to stderr so --json output stays clean.
func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides PARLOR_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("PARLOR_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// openStore opens the local key-value store at the default location
func openStore() *store.Store {
	return store.New(store.DefaultConfigDir())
}

// newClient builds an API client backed by the local credential store
func newClient(kv *store.Store) *client.Client {
	cfg := config.Load()
	url := GetAPIURL()
	if apiURL == "" && os.Getenv("PARLOR_API_URL") == "" {
		url = cfg.APIURL
	}
	c := client.New(url, kv)
	c.SetTimeout(time.Duration(cfg.RequestTimeout) * time.Second)
	c.EnableCache(time.Duration(cfg.CacheTTL) * time.Second)
	return c
}

// newStorage builds an object storage client from the loaded config
func newStorage(cfg *config.Config, kv *store.Store) *storage.Client {
	sc := storage.New(cfg.StorageURL, kv)
	sc.SetTimeout(time.Duration(cfg.RequestTimeout) * time.Second)
	return sc
}
