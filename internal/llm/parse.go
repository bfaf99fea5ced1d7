package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/calscribe/calscribe/internal/model"
)

// stringList accepts either a JSON array of strings or a single
// comma-separated string; models emit both forms.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("expected string or array of strings")
	}
	if strings.TrimSpace(single) == "" {
		*l = nil
		return nil
	}

	for _, part := range strings.Split(single, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

// wireEvent is the JSON shape events arrive in.
type wireEvent struct {
	Action          string     `json:"action"`
	Title           string     `json:"title"`
	StartTime       string     `json:"start_time"`
	EndTime         string     `json:"end_time"`
	Location        string     `json:"location"`
	Attendees       stringList `json:"attendees"`
	Confidence      string     `json:"confidence"`
	Reasoning       string     `json:"reasoning"`
	Assumptions     stringList `json:"assumptions"`
	ExistingEventID *int       `json:"existing_event_id"`
}

type wireResponse struct {
	Events  []wireEvent `json:"events"`
	Summary string      `json:"summary"`
}

// ParseResponse parses a model reply into an ExtractionResult. A fenced
// ```json block around the payload is tolerated. Events with an unknown
// action or confidence fail the parse; an omitted action defaults to create.
func ParseResponse(raw []byte) (*model.ExtractionResult, error) {
	payload := stripFences(string(raw))
	if strings.TrimSpace(payload) == "" {
		return nil, fmt.Errorf("empty model response")
	}

	var wire wireResponse
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return nil, fmt.Errorf("malformed model response: %w", err)
	}

	result := &model.ExtractionResult{Summary: wire.Summary}

	var errs []error
	for i, w := range wire.Events {
		action := model.Action(w.Action)
		if w.Action == "" {
			action = model.ActionCreate
		}
		if !action.Valid() {
			errs = append(errs, fmt.Errorf("events[%d]: invalid action %q", i, w.Action))
			continue
		}

		confidence := model.Confidence(w.Confidence)
		if !confidence.Valid() {
			errs = append(errs, fmt.Errorf("events[%d]: invalid confidence %q", i, w.Confidence))
			continue
		}

		result.Events = append(result.Events, model.ExtractedEvent{
			Action:          action,
			Title:           w.Title,
			StartTime:       w.StartTime,
			EndTime:         w.EndTime,
			Location:        w.Location,
			Attendees:       w.Attendees,
			Confidence:      confidence,
			Reasoning:       w.Reasoning,
			Assumptions:     w.Assumptions,
			ExistingEventID: w.ExistingEventID,
		})
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("model response validation failed: %w", errors.Join(errs...))
	}
	return result, nil
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		// Drop the language tag line.
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
