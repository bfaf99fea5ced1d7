package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// EventSummary is a simplified calendar event as read from the API.
type EventSummary struct {
	ID        string
	Summary   string
	Location  string
	Start     time.Time
	End       time.Time
	Status    string
	Attendees []string
}

// toEventSummary converts a Google Calendar event resource.
// Timed events carry DateTime, all-day events carry Date.
func toEventSummary(event *calendar.Event) EventSummary {
	if event == nil {
		return EventSummary{}
	}

	summary := EventSummary{
		ID:       event.Id,
		Summary:  event.Summary,
		Location: event.Location,
		Status:   event.Status,
	}

	if event.Start != nil {
		summary.Start = parseEventTime(event.Start)
	}
	if event.End != nil {
		summary.End = parseEventTime(event.End)
	}

	for _, att := range event.Attendees {
		summary.Attendees = append(summary.Attendees, att.Email)
	}

	return summary
}

func parseEventTime(edt *calendar.EventDateTime) time.Time {
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t
		}
	}
	if edt.Date != "" {
		if t, err := time.Parse("2006-01-02", edt.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}

// overlaps reports whether [aStart,aEnd) and [bStart,bEnd) intersect.
// Adjacent ranges do not overlap.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
