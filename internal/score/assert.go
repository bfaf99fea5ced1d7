package score

import (
	"fmt"
	"strings"

	"github.com/calscribe/calscribe/internal/model"
)

// ContextEvent carries the timestamps of one calendar context entry, indexed
// by its 1-based position.
type ContextEvent struct {
	Start string
	End   string
}

// AssertInput carries the parameters for hard assertion of one sample.
type AssertInput struct {
	Name      string
	Tolerance Tolerance

	// Context holds the calendar context events shown to the model, in ID
	// order. Its length bounds the valid existing_event_id domain, and its
	// timestamps replace the expected times for delete actions that
	// reference a context event.
	Context []ContextEvent
}

// AssertionError aggregates every violation found in one sample.
type AssertionError struct {
	Level      Level
	Violations []string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("extraction assertion failures [%s] (%d issue(s)):\n  %s",
		e.Level, len(e.Violations), strings.Join(e.Violations, "\n  "))
}

// AssertEvents verifies extracted candidates against reference events and
// returns nil or a single *AssertionError listing every violation.
//
// The event count is checked first and short-circuits on failure: with the
// wrong number of events, per-pair diagnostics would mislead more than they
// inform. Otherwise candidates are paired with references exactly as in
// scoring and every failed check across every pair is collected before
// returning.
func AssertEvents(candidates []model.ExtractedEvent, references []Reference, in AssertInput) error {
	countDiff := len(candidates) - len(references)
	if countDiff < 0 {
		countDiff = -countDiff
	}
	if countDiff > in.Tolerance.EventCountTolerance {
		return &AssertionError{
			Level: in.Tolerance.Level,
			Violations: []string{fmt.Sprintf("event count mismatch: expected %d (+-%d), got %d",
				len(references), in.Tolerance.EventCountTolerance, len(candidates))},
		}
	}

	var violations []string

	matched := make([]bool, len(references))
	for _, p := range matchPairs(candidates, references) {
		matched[p.Col] = true
		candidate := candidates[p.Row]
		reference := resolveDeleteTimes(candidate, references[p.Col], in.Context)

		label := fmt.Sprintf("[%s] %q", reference.Action, reference.Title)
		for _, reason := range classifyPair(candidate, reference, in.Tolerance, len(in.Context)) {
			violations = append(violations, fmt.Sprintf("%s: %s", label, reason))
		}
	}

	// References left without a partner slip past the count tolerance;
	// surplus extracted events are what the count tolerance is for.
	for i, reference := range references {
		if !matched[i] {
			violations = append(violations, fmt.Sprintf("[%s] %q: no extracted event matches",
				reference.Action, reference.Title))
		}
	}

	if len(violations) > 0 {
		return &AssertionError{Level: in.Tolerance.Level, Violations: violations}
	}
	return nil
}

// resolveDeleteTimes substitutes the expected times for delete actions that
// reference a calendar context event: the check should compare against the
// referenced event's own times, not whatever the reference carries.
func resolveDeleteTimes(candidate model.ExtractedEvent, reference Reference, ctx []ContextEvent) Reference {
	if candidate.Action != model.ActionDelete || candidate.ExistingEventID == nil || len(ctx) == 0 {
		return reference
	}

	idx := *candidate.ExistingEventID - 1
	if idx < 0 || idx >= len(ctx) {
		return reference
	}

	if ctx[idx].Start != "" {
		reference.StartTime = ctx[idx].Start
	}
	if ctx[idx].End != "" {
		reference.EndTime = ctx[idx].End
	}
	return reference
}
