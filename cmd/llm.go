package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/skyscholar/skyscholar/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the model-backed answer provider",
}

var llmStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which answer provider the tutor will use",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "chat.provider:  %s\n", rt.cfg.Chat.Provider)

		mc, ok := rt.cfg.ModelConfig()
		if !ok {
			fmt.Fprintln(out, "Answers:        keyword (offline)")
			return nil
		}

		model, key := providerModel(mc)
		fmt.Fprintf(out, "Provider:       %s\n", mc.Provider)
		fmt.Fprintf(out, "Model:          %s\n", model)
		if mc.Provider != llm.ProviderMock {
			fmt.Fprintf(out, "API key:        %s\n", maskKey(key))
		}
		fmt.Fprintf(out, "Timeout:        %s\n", mc.Timeout)
		fmt.Fprintf(out, "Retry:          %d attempts, %s-%s backoff\n",
			mc.Retry.MaxAttempts, mc.Retry.InitialWait, mc.Retry.MaxWait)
		if err := mc.Validate(); err != nil {
			fmt.Fprintf(out, "Problem:        %v\n", err)
		}
		return nil
	},
}

var llmPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Send one small request and report latency, tokens and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		mc, ok := rt.cfg.ModelConfig()
		if !ok {
			return fmt.Errorf("no model provider configured (chat.provider is %q)", rt.cfg.Chat.Provider)
		}
		p, err := llm.NewProvider(cmd.Context(), mc, rt.logger)
		if err != nil {
			return err
		}

		ctx := llm.WithPurpose(cmd.Context(), "ping")
		start := time.Now()
		resp, err := p.Generate(ctx, llm.Request{
			System:    "You are a connectivity check. Reply with the single word: ready",
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "ping"}},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("ping %s: %w", mc.Provider, err)
		}
		elapsed := time.Since(start)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Model:     %s\n", resp.Model)
		fmt.Fprintf(out, "Latency:   %dms\n", elapsed.Milliseconds())
		fmt.Fprintf(out, "Tokens:    %d in / %d out\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
		if cost := llm.LookupCost(resp.Model); cost != nil {
			fmt.Fprintf(out, "Cost:      %s\n", formatCost(cost.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens)))
		} else {
			fmt.Fprintln(out, "Cost:      ?")
		}
		fmt.Fprintf(out, "Reply:     %s\n", truncate(strings.TrimSpace(string(resp.Content)), 60))
		return nil
	},
}

// providerModel returns the configured model and key for mc.Provider.
func providerModel(mc llm.Config) (model, key string) {
	switch mc.Provider {
	case llm.ProviderAnthropic:
		return mc.Anthropic.Model, mc.Anthropic.APIKey
	case llm.ProviderOpenAI:
		return mc.OpenAI.Model, mc.OpenAI.APIKey
	case llm.ProviderGemini:
		return mc.Gemini.Model, mc.Gemini.APIKey
	case llm.ProviderOpenRouter:
		return mc.OpenRouter.Model, mc.OpenRouter.APIKey
	}
	return "mock", ""
}

func maskKey(key string) string {
	switch {
	case key == "":
		return "(not set)"
	case len(key) <= 8:
		return "****"
	}
	return key[:4] + "…" + key[len(key)-4:]
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmCmd.AddCommand(llmStatusCmd)
	llmCmd.AddCommand(llmPingCmd)
}
