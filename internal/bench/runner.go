package bench

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/calscribe/calscribe/internal/fixture"
	"github.com/calscribe/calscribe/internal/llm"
	"github.com/calscribe/calscribe/internal/logging"
	"github.com/calscribe/calscribe/internal/model"
	"github.com/calscribe/calscribe/internal/prompt"
	"github.com/calscribe/calscribe/internal/score"
	"github.com/calscribe/calscribe/internal/transcript"
)

// Pricing per million tokens, used for the cost estimate in reports.
const (
	costPerMillionInputTokens  = 1.25
	costPerMillionOutputTokens = 10.0
)

// SampleResult is the outcome of one benchmarked sample.
type SampleResult struct {
	Name     string            `json:"name"`
	Category string            `json:"category"`
	Score    score.SampleScore `json:"score"`
	Latency  time.Duration     `json:"latency"`
	Usage    model.Usage       `json:"usage"`

	// Error records an extraction failure. The sample is still scored,
	// with every reference counting as a false negative.
	Error string `json:"error,omitempty"`
}

// RunResult is one full benchmark run.
type RunResult struct {
	Timestamp   time.Time                    `json:"timestamp"`
	Provider    string                       `json:"provider,omitempty"`
	Model       string                       `json:"model,omitempty"`
	Samples     []SampleResult               `json:"samples"`
	Aggregate   score.AggregateScore         `json:"aggregate"`
	Calibration map[model.Confidence]float64 `json:"calibration,omitempty"`

	TotalLatency  time.Duration `json:"total_latency"`
	TotalUsage    model.Usage   `json:"total_usage"`
	EstimatedCost float64       `json:"estimated_cost_usd"`
}

// Runner executes the benchmark. With a nil Extractor each sample replays
// its canned mock response, which makes the run deterministic and free.
type Runner struct {
	Extractor llm.Extractor

	// Delay is inserted between live extraction calls to stay under
	// provider rate limits.
	Delay time.Duration

	Provider string
	Model    string
	Logger   *slog.Logger
}

// Run benchmarks every sample under samplesDir.
func (r *Runner) Run(ctx context.Context, samplesDir string) (*RunResult, error) {
	samples, err := fixture.Discover(samplesDir)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples found in %s", samplesDir)
	}

	log := logging.WithOperation(r.logger(), "benchmark")
	run := &RunResult{
		Timestamp: time.Now().UTC(),
		Provider:  r.Provider,
		Model:     r.Model,
	}

	var scores []score.SampleScore
	for i, sample := range samples {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 && r.Delay > 0 && r.Extractor != nil {
			time.Sleep(r.Delay)
		}

		result := r.runSample(ctx, sample)
		scores = append(scores, result.Score)
		run.Samples = append(run.Samples, result)
		run.TotalLatency += result.Latency
		run.TotalUsage.InputTokens += result.Usage.InputTokens
		run.TotalUsage.OutputTokens += result.Usage.OutputTokens
		run.TotalUsage.TotalTokens += result.Usage.TotalTokens

		log.Info("sample scored",
			logging.Sample(sample.Name),
			logging.Category(result.Category),
			slog.Float64("f1", result.Score.F1),
			logging.Duration(result.Latency))
	}

	run.Aggregate = score.Aggregate(scores)
	run.Calibration = score.CalibrateConfidence(scores)
	run.EstimatedCost = estimateCost(run.TotalUsage)

	log.Info("benchmark complete",
		slog.Int("samples", len(run.Samples)),
		slog.Float64("f1", run.Aggregate.F1),
		slog.Float64("cost_usd", run.EstimatedCost))

	return run, nil
}

func (r *Runner) runSample(ctx context.Context, sample fixture.Sample) SampleResult {
	result := SampleResult{Name: sample.Name, Category: sample.Category}
	sidecar := sample.Sidecar

	tol, err := score.ToleranceFor(sidecar.Tolerance)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	cc := fixture.BuildContext(sidecar)
	in := score.SampleInput{
		Name:         sample.Name,
		Category:     sample.Category,
		Tolerance:    tol,
		ValidIDCount: cc.EventCount,
	}

	extraction, latency, err := r.extract(ctx, sample, cc.EventsText)
	result.Latency = latency
	if err != nil {
		result.Error = err.Error()
		result.Score = score.ScoreSample(nil, sidecar.References(), in)
		return result
	}

	result.Usage = extraction.Usage
	result.Score = score.ScoreSample(extraction.Events, sidecar.References(), in)
	return result
}

func (r *Runner) extract(ctx context.Context, sample fixture.Sample, contextText string) (*model.ExtractionResult, time.Duration, error) {
	extractor := r.Extractor
	if extractor == nil {
		if len(sample.Sidecar.MockLLMResponse) == 0 {
			return nil, 0, fmt.Errorf("sample %s has no mock_llm_response", sample.Name)
		}
		extractor = &llm.MockExtractor{Response: sample.Sidecar.MockLLMResponse}
	}

	data, err := os.ReadFile(sample.TranscriptPath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read transcript: %w", err)
	}
	parsed := transcript.Parse(string(data), sample.TranscriptPath)
	if len(parsed.Utterances) == 0 {
		return nil, 0, fmt.Errorf("transcript %s contains no utterances", sample.TranscriptPath)
	}

	now, err := sample.Sidecar.ReferenceTime()
	if err != nil {
		return nil, 0, err
	}

	started := time.Now()
	extraction, err := extractor.ExtractEvents(ctx, llm.ExtractRequest{
		Transcript:      prompt.FormatTranscript(parsed.Utterances),
		Owner:           sample.Sidecar.Owner,
		Now:             now,
		CalendarContext: contextText,
	})
	return extraction, time.Since(started), err
}

func estimateCost(u model.Usage) float64 {
	return float64(u.InputTokens)/1e6*costPerMillionInputTokens +
		float64(u.OutputTokens)/1e6*costPerMillionOutputTokens
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
