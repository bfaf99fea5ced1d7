package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/calscribe/calscribe/internal/calendar"
	"github.com/calscribe/calscribe/internal/llm"
	"github.com/calscribe/calscribe/internal/model"
	"github.com/calscribe/calscribe/internal/pipeline"
)

func newExtractCmd() *cobra.Command {
	var (
		owner   string
		account string
		dryRun  bool
		nowStr  string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "extract <transcript.txt>",
		Short: "Extract calendar events from a transcript file",
		Long: `Run the extraction pipeline on a conversation transcript.

The transcript is parsed, existing calendar events are fetched for context,
an LLM proposes calendar actions, and the validated events are synced into
Google Calendar. Without a stored calendar token the run is a dry run.

Provider selection via environment:
  CALSCRIBE_LLM_PROVIDER  openai (default), anthropic or ollama
  CALSCRIBE_LLM_MODEL     model name override
  OPENAI_API_KEY / ANTHROPIC_API_KEY / OLLAMA_HOST`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if nowStr != "" {
				parsed, err := model.ParseTimestamp(nowStr)
				if err != nil {
					return fmt.Errorf("invalid --now: %w", err)
				}
				now = parsed
			}

			extractor, err := llm.NewClient(llm.ConfigFromEnv())
			if err != nil {
				return fmt.Errorf("failed to configure LLM provider: %w", err)
			}

			ctx := context.Background()

			p := &pipeline.Pipeline{
				Extractor: extractor,
				Owner:     owner,
				DryRun:    dryRun,
			}
			if calendar.HasTokenForAccount(account) {
				client, err := calendar.NewClientForAccount(ctx, account)
				if err != nil {
					return fmt.Errorf("failed to create calendar client: %w", err)
				}
				p.Calendar = client
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(),
					"No calendar token for account %q, running without calendar (dry run)\n", account)
			}

			result, err := p.RunFile(ctx, args[0], now)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			printExtractResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Name of the calendar owner whose commitments should be extracted")
	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report planned calendar operations without executing them")
	cmd.Flags().StringVar(&nowStr, "now", "", "Reference time for resolving relative dates (ISO 8601). Defaults to the current time.")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")

	return cmd
}

func printExtractResult(cmd *cobra.Command, result *pipeline.Result) {
	out := cmd.OutOrStdout()

	if result.Extraction.Summary != "" {
		fmt.Fprintf(out, "Summary: %s\n\n", result.Extraction.Summary)
	}

	fmt.Fprintf(out, "Extracted %d event(s), %d valid:\n",
		len(result.Extraction.Events), len(result.Events))
	for _, e := range result.Events {
		fmt.Fprintf(out, "  [%s] %s", e.Action, e.Title)
		if !e.Start.IsZero() {
			fmt.Fprintf(out, " @ %s", e.Start.Format("2006-01-02 15:04"))
		}
		fmt.Fprintf(out, " (%s confidence)\n", e.Confidence)
	}

	fmt.Fprintf(out, "\nSync: %d created, %d updated, %d deleted, %d skipped, %d failed\n",
		result.Sync.Created, result.Sync.Updated, result.Sync.Deleted,
		result.Sync.Skipped, result.Sync.Failed)
	for _, o := range result.Sync.Outcomes {
		fmt.Fprintf(out, "  %s: %s", o.Title, o.Status)
		if o.Reason != "" {
			fmt.Fprintf(out, " (%s)", o.Reason)
		}
		fmt.Fprintln(out)
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "\nWarnings:\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", w)
		}
	}
}
