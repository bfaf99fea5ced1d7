package bench

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/calscribe/calscribe/internal/model"
)

// worstSampleLimit bounds how many low-F1 samples the reports call out.
const worstSampleLimit = 5

const runLatencyPrecision = time.Millisecond

// WriteSummary renders the console summary of a run.
func WriteSummary(w io.Writer, run *RunResult) {
	agg := run.Aggregate

	fmt.Fprintf(w, "Benchmark: %d samples", agg.SampleCount)
	if run.Model != "" {
		fmt.Fprintf(w, " (%s)", run.Model)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Precision %.3f  Recall %.3f  F1 %.3f  (TP %d / FP %d / FN %d)\n",
		agg.Precision, agg.Recall, agg.F1, agg.TP, agg.FP, agg.FN)

	for _, cat := range agg.PerCategory {
		fmt.Fprintf(w, "  %-24s P %.3f  R %.3f  F1 %.3f  (%d samples)\n",
			cat.Category, cat.Precision, cat.Recall, cat.F1, cat.SampleCount)
	}

	if len(run.Calibration) > 0 {
		fmt.Fprintln(w, "Confidence calibration:")
		for _, conf := range confidenceOrder {
			if acc, ok := run.Calibration[conf]; ok {
				fmt.Fprintf(w, "  %-8s %.1f%% correct\n", conf, acc*100)
			}
		}
	}

	for _, s := range worstSamples(run) {
		fmt.Fprintf(w, "  worst: %s F1 %.3f\n", s.Name, s.Score.F1)
	}

	if run.TotalUsage.TotalTokens > 0 {
		fmt.Fprintf(w, "Tokens: %d in / %d out, estimated cost $%.4f, total latency %s\n",
			run.TotalUsage.InputTokens, run.TotalUsage.OutputTokens,
			run.EstimatedCost, run.TotalLatency.Round(runLatencyPrecision))
	}
}

// Markdown renders the full benchmark report.
func Markdown(run *RunResult) string {
	var b strings.Builder
	agg := run.Aggregate

	b.WriteString("# Extraction Benchmark Report\n\n")
	fmt.Fprintf(&b, "Run: %s", run.Timestamp.Format("2006-01-02 15:04 MST"))
	if run.Model != "" {
		fmt.Fprintf(&b, " — %s/%s", run.Provider, run.Model)
	}
	b.WriteString("\n\n")

	b.WriteString("## Overall\n\n")
	b.WriteString("| Samples | TP | FP | FN | Precision | Recall | F1 |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %.3f | %.3f | %.3f |\n\n",
		agg.SampleCount, agg.TP, agg.FP, agg.FN, agg.Precision, agg.Recall, agg.F1)

	if len(agg.PerCategory) > 0 {
		b.WriteString("## Per category\n\n")
		b.WriteString("| Category | Samples | TP | FP | FN | Precision | Recall | F1 |\n")
		b.WriteString("|---|---|---|---|---|---|---|---|\n")
		for _, cat := range agg.PerCategory {
			fmt.Fprintf(&b, "| %s | %d | %d | %d | %d | %.3f | %.3f | %.3f |\n",
				cat.Category, cat.SampleCount, cat.TP, cat.FP, cat.FN,
				cat.Precision, cat.Recall, cat.F1)
		}
		b.WriteString("\n")
	}

	if worst := worstSamples(run); len(worst) > 0 {
		b.WriteString("## Worst samples\n\n")
		for _, s := range worst {
			fmt.Fprintf(&b, "- **%s** (%s): F1 %.3f", s.Name, s.Category, s.Score.F1)
			if s.Error != "" {
				fmt.Fprintf(&b, " — error: %s", s.Error)
			}
			b.WriteString("\n")
			for _, d := range s.Score.Details {
				if len(d.MismatchReasons) == 0 {
					continue
				}
				fmt.Fprintf(&b, "  - %s: %s\n", d.Classification,
					strings.Join(d.MismatchReasons, "; "))
			}
		}
		b.WriteString("\n")
	}

	if len(run.Calibration) > 0 {
		b.WriteString("## Confidence calibration\n\n")
		b.WriteString("| Confidence | Accuracy |\n|---|---|\n")
		for _, conf := range confidenceOrder {
			if acc, ok := run.Calibration[conf]; ok {
				fmt.Fprintf(&b, "| %s | %.1f%% |\n", conf, acc*100)
			}
		}
		b.WriteString("\n")
	}

	if run.TotalUsage.TotalTokens > 0 {
		b.WriteString("## Cost\n\n")
		fmt.Fprintf(&b, "- Tokens: %d input / %d output\n",
			run.TotalUsage.InputTokens, run.TotalUsage.OutputTokens)
		fmt.Fprintf(&b, "- Estimated cost: $%.4f\n", run.EstimatedCost)
		fmt.Fprintf(&b, "- Total latency: %s\n", run.TotalLatency.Round(runLatencyPrecision))
	}

	return b.String()
}

var confidenceOrder = []model.Confidence{
	model.ConfidenceHigh,
	model.ConfidenceMedium,
	model.ConfidenceLow,
}

// worstSamples returns the lowest-F1 samples that actually missed
// something, worst first.
func worstSamples(run *RunResult) []SampleResult {
	var candidates []SampleResult
	for _, s := range run.Samples {
		if s.Score.F1 < 1 || s.Error != "" {
			candidates = append(candidates, s)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score.F1 < candidates[j].Score.F1
	})

	if len(candidates) > worstSampleLimit {
		candidates = candidates[:worstSampleLimit]
	}
	return candidates
}
