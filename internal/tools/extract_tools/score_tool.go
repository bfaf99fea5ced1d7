package extract_tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/calscribe/calscribe/internal/fixture"
	"github.com/calscribe/calscribe/internal/model"
	"github.com/calscribe/calscribe/internal/score"
	"github.com/calscribe/calscribe/internal/server"
)

// assertResult is the JSON shape returned by score_extraction in assert
// mode.
type assertResult struct {
	Passed     bool     `json:"passed"`
	Tolerance  string   `json:"tolerance"`
	Violations []string `json:"violations,omitempty"`
}

// handleScoreExtraction reconciles extracted events against expected events.
// In score mode mismatches are data and the result carries metrics; in
// assert mode the result lists every violation.
func handleScoreExtraction(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	extractedJSON, err := requiredStringArg(args, "extracted")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	expectedJSON, err := requiredStringArg(args, "expected")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	candidates, err := parseCandidates(extractedJSON)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid extracted: %v", err)), nil
	}

	var expected []fixture.ExpectedEvent
	if err := json.Unmarshal([]byte(expectedJSON), &expected); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid expected: %v", err)), nil
	}
	references := make([]score.Reference, len(expected))
	for i, e := range expected {
		references[i] = e.Reference()
	}

	level := score.DefaultLevel
	if tolArg := stringArg(args, "tolerance"); tolArg != "" {
		level = score.Level(tolArg)
	}
	tolerance, err := score.ToleranceFor(level)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var calendarContext []fixture.ContextEvent
	if ctxArg := stringArg(args, "calendarContext"); ctxArg != "" {
		if err := json.Unmarshal([]byte(ctxArg), &calendarContext); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid calendarContext: %v", err)), nil
		}
	}
	scoreContext := make([]score.ContextEvent, len(calendarContext))
	for i, e := range calendarContext {
		scoreContext[i] = score.ContextEvent{Start: e.Start, End: e.End}
	}

	if boolArg(args, "assert") {
		result := assertResult{Passed: true, Tolerance: string(level)}
		err := score.AssertEvents(candidates, references, score.AssertInput{
			Tolerance: tolerance,
			Context:   scoreContext,
		})
		if err != nil {
			var assertErr *score.AssertionError
			if !errors.As(err, &assertErr) {
				return nil, err
			}
			result.Passed = false
			result.Violations = assertErr.Violations
		}
		return marshalResult(result)
	}

	sampleScore := score.ScoreSample(candidates, references, score.SampleInput{
		Tolerance:    tolerance,
		ValidIDCount: len(scoreContext),
	})
	return marshalResult(sampleScore)
}

// parseCandidates accepts either a bare JSON array of events or a full
// extraction result object.
func parseCandidates(raw string) ([]model.ExtractedEvent, error) {
	var events []model.ExtractedEvent
	if err := json.Unmarshal([]byte(raw), &events); err == nil {
		return events, nil
	}

	var result model.ExtractionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, err
	}
	return result.Events, nil
}

func marshalResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
