package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	calendar "google.golang.org/api/calendar/v3"

	"github.com/calscribe/calscribe/internal/model"
)

func validated(title string, start, end time.Time) model.ValidatedEvent {
	return model.ValidatedEvent{
		ExtractedEvent: model.ExtractedEvent{Title: title},
		Start:          start,
		End:            end,
	}
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		bStart, bEnd   time.Time
		wantOverlap    bool
	}{
		{"identical range", base, base.Add(time.Hour), true},
		{"partial overlap", base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
		{"containment", base.Add(10 * time.Minute), base.Add(20 * time.Minute), true},
		{"adjacent ranges do not overlap", base.Add(time.Hour), base.Add(2 * time.Hour), false},
		{"disjoint", base.Add(3 * time.Hour), base.Add(4 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := overlaps(base, base.Add(time.Hour), tt.bStart, tt.bEnd)
			assert.Equal(t, tt.wantOverlap, got)
		})
	}
}

func TestIsDuplicate(t *testing.T) {
	start := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)
	ev := validated("Team Lunch", start, start.Add(time.Hour))

	t.Run("same title and overlapping time", func(t *testing.T) {
		existing := EventSummary{Summary: "team lunch", Start: start.Add(30 * time.Minute), End: start.Add(90 * time.Minute)}
		assert.True(t, isDuplicate(ev, existing))
	})

	t.Run("title comparison ignores surrounding whitespace", func(t *testing.T) {
		existing := EventSummary{Summary: "  Team Lunch ", Start: start, End: start.Add(time.Hour)}
		assert.True(t, isDuplicate(ev, existing))
	})

	t.Run("different title", func(t *testing.T) {
		existing := EventSummary{Summary: "Planning", Start: start, End: start.Add(time.Hour)}
		assert.False(t, isDuplicate(ev, existing))
	})

	t.Run("same title but no overlap", func(t *testing.T) {
		existing := EventSummary{Summary: "Team Lunch", Start: start.Add(2 * time.Hour), End: start.Add(3 * time.Hour)}
		assert.False(t, isDuplicate(ev, existing))
	})

	t.Run("existing event without parsable times", func(t *testing.T) {
		existing := EventSummary{Summary: "Team Lunch"}
		assert.False(t, isDuplicate(ev, existing))
	})
}

func TestToEventResource(t *testing.T) {
	start := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)
	ev := model.ValidatedEvent{
		ExtractedEvent: model.ExtractedEvent{
			Title:     "Design Review",
			Location:  "Room 3",
			Reasoning: "mentioned twice in the call",
			Attendees: []string{"bob@example.com", "Carol"},
		},
		Start: start,
		End:   start.Add(time.Hour),
	}

	resource := toEventResource(ev)

	assert.Equal(t, "Design Review", resource.Summary)
	assert.Equal(t, "Room 3", resource.Location)
	assert.Equal(t, start.Format(time.RFC3339), resource.Start.DateTime)
	assert.Equal(t, start.Add(time.Hour).Format(time.RFC3339), resource.End.DateTime)

	// Attendees without an email address are dropped.
	require.Len(t, resource.Attendees, 1)
	assert.Equal(t, "bob@example.com", resource.Attendees[0].Email)
}

func TestToEventSummary(t *testing.T) {
	t.Run("nil event", func(t *testing.T) {
		assert.Equal(t, EventSummary{}, toEventSummary(nil))
	})

	t.Run("timed event", func(t *testing.T) {
		summary := toEventSummary(&calendar.Event{
			Id:      "ev-1",
			Summary: "Standup",
			Start:   &calendar.EventDateTime{DateTime: "2026-02-20T10:00:00Z"},
			End:     &calendar.EventDateTime{DateTime: "2026-02-20T10:15:00Z"},
			Attendees: []*calendar.EventAttendee{
				{Email: "alice@example.com"},
			},
		})

		assert.Equal(t, "ev-1", summary.ID)
		assert.Equal(t, "Standup", summary.Summary)
		assert.Equal(t, time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC), summary.Start)
		assert.Equal(t, []string{"alice@example.com"}, summary.Attendees)
	})

	t.Run("all-day event uses the date", func(t *testing.T) {
		summary := toEventSummary(&calendar.Event{
			Id:    "ev-2",
			Start: &calendar.EventDateTime{Date: "2026-02-21"},
			End:   &calendar.EventDateTime{Date: "2026-02-22"},
		})

		assert.Equal(t, time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC), summary.Start)
		assert.Equal(t, time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC), summary.End)
	})
}

func TestHasTokenForAccountWithProvider(t *testing.T) {
	assert.False(t, HasTokenForAccountWithProvider("default", nil))
}
