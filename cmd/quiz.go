package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skyscholar/skyscholar/internal/content"
	"github.com/skyscholar/skyscholar/internal/quiz"
	"github.com/skyscholar/skyscholar/internal/ui/components"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Browse or take the practice quiz",
}

var quizListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the quiz questions (answers hidden)",
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := loadBank(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, bank.Title)
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for i, q := range bank.Questions {
			fmt.Fprintf(out, "%d. %s", i+1, q.Text)
			if q.Topic != "" {
				fmt.Fprintf(out, "  [%s]", q.Topic)
			}
			fmt.Fprintln(out)
			for j, o := range q.Options {
				fmt.Fprintf(out, "     %s) %s\n", components.OptionLetter(j), o)
			}
		}
		fmt.Fprintf(out, "\n%d questions\n", len(bank.Questions))
		return nil
	},
}

var quizTakeCmd = &cobra.Command{
	Use:   "take",
	Short: "Answer the quiz on the command line",
	Long: `Answer each question by letter (A, B, ...) or number (1, 2, ...).
Type "back" to return to the previous question.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := loadBank(cmd)
		if err != nil {
			return err
		}
		s, err := quiz.New(bank.Questions)
		if err != nil {
			return err
		}
		return takeQuiz(s, bank.Title, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// takeQuiz runs s to submission, reading answers from in.
func takeQuiz(s *quiz.Session, title string, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintf(out, "%s — %d questions\n\n", title, s.Len())

	for !s.Submitted() {
		q := s.Current()
		fmt.Fprintf(out, "── Question %d/%d ──\n", s.Index()+1, s.Len())
		fmt.Fprintln(out, q.Text)
		for j, o := range q.Options {
			fmt.Fprintf(out, "  %s) %s\n", components.OptionLetter(j), o)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			return scanner.Err()
		}
		answer := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(answer, "back") {
			s.Retreat()
			fmt.Fprintln(out)
			continue
		}

		option, ok := parseOption(answer)
		if ok {
			if err := s.Select(option); err != nil {
				fmt.Fprintf(out, "%v\n\n", err)
				continue
			}
		}
		if _, err := s.Advance(); err != nil {
			if errors.Is(err, quiz.ErrNoSelection) {
				fmt.Fprintln(out, "Please select an answer before proceeding.")
				fmt.Fprintln(out)
				continue
			}
			return err
		}
		fmt.Fprintln(out)
	}

	score := s.Score()
	fmt.Fprintf(out, "── Your score: %d/%d (%d%%) ──\n\n", score.Correct, score.Total, score.Percentage)
	for i, o := range s.Review() {
		mark := "✓"
		if !o.Correct {
			mark = "✗"
		}
		fmt.Fprintf(out, "%s %d. %s\n", mark, i+1, o.Question.Text)
		if !o.Correct {
			fmt.Fprintf(out, "    Answer: %s) %s\n", components.OptionLetter(o.Question.Correct), o.Question.Options[o.Question.Correct])
		}
		if o.Question.Explanation != "" {
			fmt.Fprintf(out, "    %s\n", o.Question.Explanation)
		}
	}
	return nil
}

// parseOption accepts "A"-"I" or "1"-"9".
func parseOption(s string) (int, bool) {
	if len(s) != 1 {
		return 0, false
	}
	c := strings.ToUpper(s)[0]
	switch {
	case c >= 'A' && c <= 'I':
		return int(c - 'A'), true
	case c >= '1' && c <= '9':
		return int(c - '1'), true
	}
	return 0, false
}

func loadBank(cmd *cobra.Command) (content.QuizBank, error) {
	rt, err := setup(cmd)
	if err != nil {
		return content.QuizBank{}, err
	}
	defer rt.Close()
	return content.LoadQuestions(rt.cfg.Content.QuestionsFile)
}

func init() {
	quizCmd.AddCommand(quizListCmd)
	quizCmd.AddCommand(quizTakeCmd)
}
