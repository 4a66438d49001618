package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/zyralabs/zyra/internal/interview"
	"github.com/zyralabs/zyra/internal/voice"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run a mock interview in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInterview(cmd)
	},
}

func init() {
	interviewCmd.Flags().String("role", "", "Pre-select the job role and skip role selection")
}

// runInterview drives one typed-text interview session to completion.
func runInterview(cmd *cobra.Command) error {
	a, err := buildApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	role, _ := cmd.Flags().GetString("role")
	io := voice.NewTextIO(os.Stdin, os.Stdout, "> ")
	sessionID := uuid.NewString()

	result := a.manager.Start(ctx, sessionID, role)
	if err := io.Speak(result.Text); err != nil {
		return err
	}

	for {
		utterance, err := io.Capture()
		if errors.Is(err, voice.ErrNoInput) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if isQuit(utterance) {
			return io.Speak("Goodbye! Good luck with your interview.")
		}

		result, err := a.manager.Message(ctx, sessionID, utterance, "")
		if err != nil {
			var genErr *interview.GenerationError
			if errors.As(err, &genErr) {
				if speakErr := io.Speak(genErr.Class.Message); speakErr != nil {
					return speakErr
				}
				// Retryable: the next message attempts the same slot again.
				continue
			}
			return err
		}

		if err := io.Speak(result.Text); err != nil {
			return err
		}
		if result.State == interview.StateCompleted {
			return nil
		}
	}
}

func isQuit(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quit", "exit", "q":
		return true
	}
	return false
}
