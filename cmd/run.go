package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/skyscholar/skyscholar/internal/activity"
	"github.com/skyscholar/skyscholar/internal/app"
	"github.com/skyscholar/skyscholar/internal/auth"
	"github.com/skyscholar/skyscholar/internal/chat"
	"github.com/skyscholar/skyscholar/internal/config"
	"github.com/skyscholar/skyscholar/internal/content"
	"github.com/skyscholar/skyscholar/internal/llm"
	"github.com/skyscholar/skyscholar/internal/screen"
)

// activityCapacity bounds the in-memory activity log.
const activityCapacity = 50

// runtime is what every command needs: settings and a logger.
type runtime struct {
	cfg    config.Config
	logger *slog.Logger
	closer io.Closer
}

func (r *runtime) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// setup loads configuration, applies the persistent flags and opens the
// log file.
func setup(cmd *cobra.Command) (*runtime, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if f, _ := cmd.Flags().GetString("log-file"); f != "" {
		cfg.Log.File = f
	}
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.Chat.Provider = p
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logger, closer, err := config.OpenLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, logger: logger, closer: closer}, nil
}

// answerProvider builds the tutor backend. Model-backed providers fall
// back to the keyword provider when a request fails. The returned name
// describes the backend for display.
func (r *runtime) answerProvider(ctx context.Context) (chat.AnswerProvider, string, error) {
	keyword := chat.NewKeywordProvider()
	mc, ok := r.cfg.ModelConfig()
	if !ok {
		return keyword, config.ProviderKeyword, nil
	}

	p, err := llm.NewProvider(ctx, mc, r.logger)
	if err != nil {
		if r.cfg.Chat.Provider == config.ProviderAuto {
			r.logger.Warn("model provider unavailable, using keyword answers", "error", err)
			return keyword, config.ProviderKeyword, nil
		}
		return nil, "", fmt.Errorf("answer provider: %w", err)
	}

	model := chat.NewModelProvider(p, chat.DefaultModelConfig())
	name := fmt.Sprintf("%s (%s)", mc.Provider, p.ModelID())
	return chat.WithFallback(model, keyword, r.logger), name, nil
}

// buildEnv assembles the services the screens share.
func (r *runtime) buildEnv(ctx context.Context) (*screen.Env, error) {
	bank, err := content.LoadQuestions(r.cfg.Content.QuestionsFile)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	catalog, err := content.LoadCatalog(r.cfg.Content.DocumentsFile)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	answers, name, err := r.answerProvider(ctx)
	if err != nil {
		return nil, err
	}

	return &screen.Env{
		Catalog:      catalog,
		QuizBank:     bank,
		Answers:      answers,
		ReplyDelay:   r.cfg.Chat.ReplyDelay,
		Auth:         auth.NewService(r.cfg.Auth, auth.WithLogger(r.logger)),
		Activity:     activity.New(activityCapacity),
		Logger:       r.logger,
		ProviderName: name,
	}, nil
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	env, err := rt.buildEnv(cmd.Context())
	if err != nil {
		return err
	}
	rt.logger.Info("starting", "version", version, "provider", env.ProviderName)
	return app.Run(env)
}
