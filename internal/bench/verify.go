package bench

import (
	"context"
	"fmt"

	"github.com/calscribe/calscribe/internal/fixture"
	"github.com/calscribe/calscribe/internal/llm"
	"github.com/calscribe/calscribe/internal/score"
)

// Violation is one failed sample in an assertion run.
type Violation struct {
	Sample string
	Err    error
}

// RunAssertions replays every fixture under samplesDir through its canned
// mock response and asserts the extraction against the expected events.
// All samples run to completion; the returned violations cover every
// failure, not just the first.
func RunAssertions(ctx context.Context, samplesDir string) (checked int, violations []Violation, err error) {
	samples, err := fixture.Discover(samplesDir)
	if err != nil {
		return 0, nil, err
	}
	if len(samples) == 0 {
		return 0, nil, fmt.Errorf("no samples found in %s", samplesDir)
	}

	for _, sample := range samples {
		if err := ctx.Err(); err != nil {
			return checked, violations, err
		}

		sidecar := sample.Sidecar
		if len(sidecar.MockLLMResponse) == 0 {
			violations = append(violations, Violation{
				Sample: sample.Name,
				Err:    fmt.Errorf("sample has no mock_llm_response to replay"),
			})
			continue
		}

		mock := &llm.MockExtractor{Response: sidecar.MockLLMResponse}
		extraction, err := mock.ExtractEvents(ctx, llm.ExtractRequest{})
		if err != nil {
			violations = append(violations, Violation{Sample: sample.Name, Err: err})
			continue
		}

		tol, err := score.ToleranceFor(sidecar.Tolerance)
		if err != nil {
			violations = append(violations, Violation{Sample: sample.Name, Err: err})
			continue
		}

		checked++
		if err := score.AssertEvents(extraction.Events, sidecar.References(), score.AssertInput{
			Name:      sample.Name,
			Tolerance: tol,
			Context:   sidecar.ScoreContext(),
		}); err != nil {
			violations = append(violations, Violation{Sample: sample.Name, Err: err})
		}
	}

	return checked, violations, nil
}
