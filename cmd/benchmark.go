package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/calscribe/calscribe/internal/bench"
	"github.com/calscribe/calscribe/internal/llm"
)

func newBenchmarkCmd() *cobra.Command {
	var (
		live        bool
		delay       time.Duration
		outputFile  string
		historyFile string
	)

	cmd := &cobra.Command{
		Use:   "benchmark <samples-dir>",
		Short: "Score extraction quality over a directory of samples",
		Long: `Run the extraction benchmark over every sample in a directory.

Each sample is a transcript file with an .expected.json sidecar describing
the expected events. Extractions are scored against the expected events with
tolerance-aware matching; the run reports per-category precision/recall/F1,
confidence calibration and cost.

By default each sample replays its canned mock LLM response, which is
deterministic and free. With --live the configured LLM provider is called
for every sample.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &bench.Runner{Delay: delay}

			if live {
				cfg := llm.ConfigFromEnv()
				client, err := llm.NewClient(cfg)
				if err != nil {
					return fmt.Errorf("failed to configure LLM provider: %w", err)
				}
				runner.Extractor = client
				runner.Provider = cfg.Provider
				runner.Model = client.Model()
			}

			run, err := runner.Run(context.Background(), args[0])
			if err != nil {
				return err
			}

			bench.WriteSummary(cmd.OutOrStdout(), run)

			if outputFile != "" {
				if err := os.WriteFile(outputFile, []byte(bench.Markdown(run)), 0o644); err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nMarkdown report written to %s\n", outputFile)
			}

			if historyFile != "" {
				if err := bench.AppendHistory(historyFile, run); err != nil {
					return fmt.Errorf("failed to append history: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&live, "live", false, "Call the configured LLM provider instead of replaying mock responses")
	cmd.Flags().DurationVar(&delay, "delay", 0, "Delay between live extraction calls (e.g. 2s) to stay under rate limits")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write a markdown report to this file")
	cmd.Flags().StringVar(&historyFile, "history", "", "Append a JSONL history line for this run to this file")

	return cmd
}
