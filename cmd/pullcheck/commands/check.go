package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pullcheck/pullcheck-bot/internal/core/rules"
)

var (
	descFile    string
	ignoreRules []string
)

// checkCmd validates a description locally, without any GitHub calls.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a pull request description locally",
	Long: `Validate a pull request description against the rule set without
talking to GitHub. Reads the description from --file, or from stdin when no
file is given. Exits non-zero when the description has violations.`,
	Run: func(cmd *cobra.Command, args []string) {
		runCheck()
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&descFile, "file", "", "Path to a file holding the description")
	checkCmd.Flags().StringSliceVar(&ignoreRules, "ignore", nil, "Rule names to skip")
}

func runCheck() {
	var description []byte
	var err error

	if descFile != "" {
		description, err = os.ReadFile(descFile)
	} else {
		description, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Printf("Error reading description: %v\n", err)
		os.Exit(1)
	}

	set := rules.DefaultSet()
	result, err := set.Qualify(string(description), ignoreRules)
	if err != nil {
		fmt.Printf("Error: %v (known rules: %v)\n", err, set.Names())
		os.Exit(1)
	}

	if result.OK {
		fmt.Println("Description looks good.")
		return
	}

	fmt.Println("Description has issues:")
	for _, v := range result.Violations {
		fmt.Printf("- %s\n", v)
	}
	os.Exit(1)
}
