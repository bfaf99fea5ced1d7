package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calscribe/calscribe/internal/bench"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <samples-dir>",
		Short: "Assert extraction correctness over a directory of samples",
		Long: `Replay every sample's canned mock LLM response and assert the
extraction against the expected events under the sample's tolerance level.

Unlike benchmark, where mismatches are data, verify treats every mismatch
as a failure: all samples are checked, every violation is listed, and the
command exits non-zero if any sample failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checked, violations, err := bench.RunAssertions(context.Background(), args[0])
			if err != nil {
				return err
			}

			if len(violations) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "OK: %d sample(s) verified\n", checked)
				return nil
			}

			for _, v := range violations {
				fmt.Fprintf(cmd.ErrOrStderr(), "FAIL %s:\n%v\n\n", v.Sample, v.Err)
			}
			return fmt.Errorf("%d sample(s) failed verification (%d checked)",
				len(violations), checked)
		},
	}

	return cmd
}
