package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// contextWindowDays is how far ahead the calendar context looks when
// gathering events for the extraction prompt.
const contextWindowDays = 14

const contextTimeLayout = "2006-01-02 15:04"

// Context is the upcoming-events snapshot handed to the extraction prompt:
// one text line per event with a 1-based integer ID, plus the map back to
// the real calendar event IDs so sync can resolve references.
type Context struct {
	EventsText string
	IDMap      map[int]string
	EventCount int
}

// FetchContext lists upcoming events and renders them into prompt lines.
// Line format: [ID] Title | Start - End | Location.
func (c *Client) FetchContext(now time.Time) (Context, error) {
	events, err := c.ListEvents(now, now.AddDate(0, 0, contextWindowDays))
	if err != nil {
		return Context{}, fmt.Errorf("failed to fetch calendar context: %w", err)
	}
	return buildContext(events), nil
}

func buildContext(events []EventSummary) Context {
	if len(events) == 0 {
		return Context{}
	}

	// Chronological order, events without a parsable start last.
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Start.IsZero() {
			return false
		}
		if events[j].Start.IsZero() {
			return true
		}
		return events[i].Start.Before(events[j].Start)
	})

	idMap := make(map[int]string, len(events))
	lines := make([]string, 0, len(events))

	for i, event := range events {
		id := i + 1
		idMap[id] = event.ID

		parts := []string{
			fmt.Sprintf("[%d] %s", id, event.Summary),
			fmt.Sprintf("%s - %s", formatContextTime(event.Start), formatContextTime(event.End)),
		}
		if event.Location != "" {
			parts = append(parts, event.Location)
		}
		lines = append(lines, strings.Join(parts, " | "))
	}

	return Context{
		EventsText: strings.Join(lines, "\n"),
		IDMap:      idMap,
		EventCount: len(events),
	}
}

func formatContextTime(t time.Time) string {
	if t.IsZero() {
		return "?"
	}
	return t.Format(contextTimeLayout)
}
