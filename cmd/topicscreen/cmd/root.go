package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "topicscreen",
	Short: "Topic detail screen state demo",
	Long: `topicscreen runs the topic detail state holder against seeded
in-memory repositories and prints every state emission.

Available commands:
  watch    Observe the screen state for a topic

Use "topicscreen [command] --help" for more information about a specific command.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
