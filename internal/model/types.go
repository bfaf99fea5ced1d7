package model

import (
	"fmt"
	"time"
)

// Action is the calendar operation an extracted event asks for.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// Confidence is the model's self-reported certainty for an extracted event.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Valid reports whether c is one of the known confidence levels.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// ExtractedEvent is a single calendar-relevant event as produced by the
// language model. Timestamps stay ISO 8601 strings exactly as emitted; an
// empty string means the model did not provide the value. ExistingEventID
// refers to the 1-based integer IDs of the calendar context shown in the
// prompt and is nil when the model did not reference one.
type ExtractedEvent struct {
	Action          Action     `json:"action"`
	Title           string     `json:"title"`
	StartTime       string     `json:"start_time"`
	EndTime         string     `json:"end_time,omitempty"`
	Location        string     `json:"location,omitempty"`
	Attendees       []string   `json:"attendees,omitempty"`
	Confidence      Confidence `json:"confidence"`
	Reasoning       string     `json:"reasoning,omitempty"`
	Assumptions     []string   `json:"assumptions,omitempty"`
	ExistingEventID *int       `json:"existing_event_id,omitempty"`
}

// Usage captures token accounting for one extraction call.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// ExtractionResult is the full output of one extraction call.
type ExtractionResult struct {
	Events  []ExtractedEvent `json:"events"`
	Summary string           `json:"summary,omitempty"`
	Usage   Usage            `json:"usage"`
}

// ValidatedEvent is an ExtractedEvent whose timestamps parsed successfully.
// End is always set: events without an end time get a one hour default
// duration.
type ValidatedEvent struct {
	ExtractedEvent

	Start time.Time
	End   time.Time
}

// DefaultDuration is applied when an event has a start but no end time.
const DefaultDuration = time.Hour

// timestampLayouts are accepted in addition to RFC 3339. The language model
// usually emits local timestamps without a zone offset.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ParseTimestamp parses an ISO 8601 timestamp with or without a zone offset.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// Validate parses the event's timestamps and returns the validated form.
// Delete actions may legitimately omit the start time when the event is
// identified through an existing event ID; in that case Start and End stay
// zero.
func (e ExtractedEvent) Validate() (ValidatedEvent, error) {
	v := ValidatedEvent{ExtractedEvent: e}

	if !e.Action.Valid() {
		return v, fmt.Errorf("invalid action %q", e.Action)
	}
	if e.Title == "" {
		return v, fmt.Errorf("event has no title")
	}

	if e.StartTime == "" {
		if e.Action == ActionDelete && e.ExistingEventID != nil {
			return v, nil
		}
		return v, fmt.Errorf("event %q has no start time", e.Title)
	}

	start, err := ParseTimestamp(e.StartTime)
	if err != nil {
		return v, fmt.Errorf("event %q: invalid start time: %w", e.Title, err)
	}
	v.Start = start

	if e.EndTime == "" {
		v.End = start.Add(DefaultDuration)
		return v, nil
	}

	end, err := ParseTimestamp(e.EndTime)
	if err != nil {
		return v, fmt.Errorf("event %q: invalid end time: %w", e.Title, err)
	}
	if end.Before(start) {
		return v, fmt.Errorf("event %q: end time before start time", e.Title)
	}
	v.End = end

	return v, nil
}

// ValidateAll validates every event, returning the validated events and the
// per-event errors for those that failed. A failure on one event never
// discards the others.
func ValidateAll(events []ExtractedEvent) ([]ValidatedEvent, []error) {
	var (
		valid []ValidatedEvent
		errs  []error
	)
	for _, e := range events {
		v, err := e.Validate()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		valid = append(valid, v)
	}
	return valid, errs
}
