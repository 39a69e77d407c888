// Package commands defines the Pullcheck CLI commands.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd is the base command for the Pullcheck CLI.
var rootCmd = &cobra.Command{
	Use:   "pullcheck",
	Short: "GitHub pull request description bot",
	Long: `Pullcheck reacts to GitHub pull request webhooks: it prefixes new
pull request descriptions with a tracker story link derived from the branch
name, and validates edited descriptions against a fixed rule set, posting
the verdict as a comment.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
