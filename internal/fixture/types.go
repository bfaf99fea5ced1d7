package fixture

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/calscribe/calscribe/internal/model"
	"github.com/calscribe/calscribe/internal/score"
)

// Defaults applied when a sidecar omits the field.
const (
	DefaultOwner             = "Alice"
	DefaultReferenceDatetime = "2026-02-20T10:00:00"
)

// ContextEvent is one pre-existing calendar event in the sidecar's
// calendar_context. The ID is the real calendar event ID; prompts use the
// 1-based position instead.
type ContextEvent struct {
	ID       string `json:"id"`
	Summary  string `json:"summary"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Location string `json:"location,omitempty"`
}

// ExpectedEvent is one expected extraction result in a sidecar.
type ExpectedEvent struct {
	Action                  model.Action `json:"action"`
	Title                   string       `json:"title"`
	StartTime               string       `json:"start_time"`
	EndTime                 string       `json:"end_time,omitempty"`
	ExistingEventIDRequired bool         `json:"existing_event_id_required,omitempty"`
	Location                string       `json:"location,omitempty"`
	AttendeesContain        []string     `json:"attendees_contain,omitempty"`
}

// Reference converts the expected event into the scorer's reference form.
func (e ExpectedEvent) Reference() score.Reference {
	return score.Reference{
		Action:                  e.Action,
		Title:                   e.Title,
		StartTime:               e.StartTime,
		EndTime:                 e.EndTime,
		ExistingEventIDRequired: e.ExistingEventIDRequired,
		Location:                e.Location,
		AttendeesContain:        e.AttendeesContain,
	}
}

// Sidecar is the top-level schema of a `.expected.json` file.
type Sidecar struct {
	Description       string          `json:"description"`
	Category          string          `json:"category"`
	Tolerance         score.Level     `json:"tolerance,omitempty"`
	Owner             string          `json:"owner,omitempty"`
	ReferenceDatetime string          `json:"reference_datetime,omitempty"`
	CalendarContext   []ContextEvent  `json:"calendar_context,omitempty"`
	ExpectedEvents    []ExpectedEvent `json:"expected_events,omitempty"`
	MockLLMResponse   json.RawMessage `json:"mock_llm_response,omitempty"`
	Notes             string          `json:"notes,omitempty"`
}

// References converts all expected events into scorer references.
func (s *Sidecar) References() []score.Reference {
	refs := make([]score.Reference, len(s.ExpectedEvents))
	for i, e := range s.ExpectedEvents {
		refs[i] = e.Reference()
	}
	return refs
}

// ScoreContext converts the calendar context into the scorer's form,
// keeping the 1-based ID order.
func (s *Sidecar) ScoreContext() []score.ContextEvent {
	ctx := make([]score.ContextEvent, len(s.CalendarContext))
	for i, e := range s.CalendarContext {
		ctx[i] = score.ContextEvent{Start: e.Start, End: e.End}
	}
	return ctx
}

// ReferenceTime parses the sidecar's reference datetime, the instant the
// pipeline treats as "now".
func (s *Sidecar) ReferenceTime() (time.Time, error) {
	return model.ParseTimestamp(s.ReferenceDatetime)
}

// validate checks the sidecar after defaults have been applied.
func (s *Sidecar) validate() error {
	if _, err := score.ToleranceFor(s.Tolerance); err != nil {
		return err
	}
	if _, err := s.ReferenceTime(); err != nil {
		return fmt.Errorf("invalid reference_datetime: %w", err)
	}
	for i, e := range s.ExpectedEvents {
		if !e.Action.Valid() {
			return fmt.Errorf("expected_events[%d]: invalid action %q", i, e.Action)
		}
		if e.Title == "" {
			return fmt.Errorf("expected_events[%d]: missing title", i)
		}
		if e.StartTime == "" {
			return fmt.Errorf("expected_events[%d]: missing start_time", i)
		}
	}
	for i, e := range s.CalendarContext {
		if e.ID == "" || e.Summary == "" {
			return fmt.Errorf("calendar_context[%d]: missing id or summary", i)
		}
	}
	return nil
}
