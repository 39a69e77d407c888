package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pullcheck/pullcheck-bot/internal/core/config"
	"github.com/pullcheck/pullcheck-bot/internal/core/rules"
	"github.com/pullcheck/pullcheck-bot/internal/dispatch"
	"github.com/pullcheck/pullcheck-bot/internal/integrations/github"
	"github.com/pullcheck/pullcheck-bot/internal/server"
)

var addr string

// serveCmd runs the webhook HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook server",
	Long: `Run the HTTP server that receives GitHub pull request webhooks on
/github/payload. Set GITHUB_USERNAME and GITHUB_TOKEN so the bot can
authenticate its API calls.`,
	Run: func(cmd *cobra.Command, args []string) {
		runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
}

func runServe() {
	cfg := loadConfig()

	if cfg.GitHub.Username == "" || cfg.GitHub.Token == "" {
		fmt.Println("Warning: GITHUB_USERNAME / GITHUB_TOKEN not set; API calls will be unauthenticated")
	}

	if addr != "" {
		cfg.Server.Addr = addr
	}

	ghClient := github.NewClient(context.Background(), cfg.GitHub.Username, cfg.GitHub.Token)
	if cfg.GitHub.APIBaseURL != "" {
		var err error
		ghClient, err = ghClient.WithBaseURL(cfg.GitHub.APIBaseURL)
		if err != nil {
			fmt.Printf("Error configuring API base URL: %v\n", err)
			os.Exit(1)
		}
	}

	dispatcher, err := dispatch.New(ghClient, rules.DefaultSet(), cfg)
	if err != nil {
		fmt.Printf("Error initializing dispatcher: %v\n", err)
		os.Exit(1)
	}

	srv := server.New(dispatcher, cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil {
		fmt.Printf("Server error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the config file (flag, then standard locations) and
// falls back to environment variables when none is found.
func loadConfig() *config.Config {
	path := config.FindConfigPath(cfgFile)
	if path == "" {
		if verbose {
			fmt.Println("No configuration file found. Using defaults and environment variables.")
		}
		return config.FromEnv()
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Printf("Warning: Failed to load config from %s: %v. Proceeding with env vars.\n", path, err)
		return config.FromEnv()
	}
	if verbose {
		fmt.Printf("Loaded config from %s\n", path)
	}
	return cfg
}
