package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skyscholar",
	Short: "Aviation ground school in your terminal",
	Long: "Sky Scholar — a terminal study companion for student pilots, mechanics and " +
		"instructors: a tutor chat, practice quizzes and a study-material library.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default: ./skyscholar.yaml or $XDG_CONFIG_HOME/skyscholar/skyscholar.yaml)")
	rootCmd.PersistentFlags().String("log-file", "", "Path to the log file (overrides log.file)")
	rootCmd.PersistentFlags().String("provider", "", "Answer provider: keyword, auto, anthropic, openai, gemini, openrouter or mock")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
