package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback <session-id>",
	Short: "Fetch the feedback report for a session from a running server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		body, err := json.Marshal(map[string]string{"session_id": args[0]})
		if err != nil {
			return err
		}

		client := &http.Client{Timeout: 60 * time.Second}
		resp, err := client.Post(addr+"/api/feedback", "application/json", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("request feedback: %w", err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		var parsed struct {
			Response string `json:"response"`
			Error    string `json:"error"`
		}
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			if parsed.Error != "" {
				return fmt.Errorf("%s", parsed.Error)
			}
			if parsed.Response != "" {
				return fmt.Errorf("%s", parsed.Response)
			}
			return fmt.Errorf("server returned %s", resp.Status)
		}

		fmt.Println(parsed.Response)
		return nil
	},
}

func init() {
	feedbackCmd.Flags().String("addr", "http://localhost:5000", "Base URL of the running zyra server")
	rootCmd.AddCommand(feedbackCmd)
}
