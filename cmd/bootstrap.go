package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zyralabs/zyra/internal/feedback"
	"github.com/zyralabs/zyra/internal/interview"
	"github.com/zyralabs/zyra/internal/llm"
	"github.com/zyralabs/zyra/internal/prompts"
	"github.com/zyralabs/zyra/internal/question"
	"github.com/zyralabs/zyra/internal/sessions"
	"github.com/zyralabs/zyra/internal/store"
	"github.com/zyralabs/zyra/internal/transcribe"
)

// app holds the wired dependencies behind the interview and serve commands.
type app struct {
	manager *interview.Manager
	store   *store.Store
	sess    *sessions.Store
}

func (a *app) Close() {
	a.sess.Close()
	a.store.Close()
}

// buildApp opens the event store, discovers a model provider from the
// environment, and assembles the interview manager. A missing API key is a
// startup error, not a degraded mode.
func buildApp(cmd *cobra.Command) (*app, error) {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		st.Close()
		return nil, err
	}

	registry, err := prompts.NewRegistry()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load prompt templates: %w", err)
	}
	if p, _ := cmd.Flags().GetString("prompts"); p != "" {
		if err := registry.LoadOverrides(p); err != nil {
			st.Close()
			return nil, err
		}
	}

	sess := sessions.New()
	manager := interview.NewManager(
		sess,
		question.New(provider, registry, question.DefaultConfig()),
		transcribe.New(provider, registry),
		feedback.New(provider, registry),
		provider.ModelID(),
	)

	return &app{manager: manager, store: st, sess: sess}, nil
}
