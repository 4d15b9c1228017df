package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Ask the tutor a single question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		answers, _, err := rt.answerProvider(cmd.Context())
		if err != nil {
			return err
		}

		question := strings.TrimSpace(strings.Join(args, " "))
		if question == "" {
			return fmt.Errorf("question must not be empty")
		}
		reply, err := answers.Answer(cmd.Context(), question)
		if err != nil {
			return fmt.Errorf("answer: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, reply.Content)
		if len(reply.Sources) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Sources:")
			for _, s := range reply.Sources {
				fmt.Fprintf(out, "  • %s — %s\n", s.Title, s.Reference)
			}
		}
		return nil
	},
}
