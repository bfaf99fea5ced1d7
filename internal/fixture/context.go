package fixture

import (
	"fmt"
	"strings"
)

// Context is the calendar context in the shape the prompt and the sync layer
// consume: one text line per event with a 1-based integer ID, plus the map
// back to the real calendar event IDs.
type Context struct {
	EventsText string
	IDMap      map[int]string
	EventCount int
}

// BuildContext renders the sidecar's calendar context the same way the live
// calendar fetch does, so mocked and live extractions see identical prompts.
// Line format: [ID] Title | Start - End | Location.
func BuildContext(s *Sidecar) Context {
	if len(s.CalendarContext) == 0 {
		return Context{}
	}

	idMap := make(map[int]string, len(s.CalendarContext))
	lines := make([]string, 0, len(s.CalendarContext))

	for i, event := range s.CalendarContext {
		id := i + 1
		idMap[id] = event.ID

		parts := []string{
			fmt.Sprintf("[%d] %s", id, event.Summary),
			fmt.Sprintf("%s - %s", event.Start, event.End),
		}
		if event.Location != "" {
			parts = append(parts, event.Location)
		}
		lines = append(lines, strings.Join(parts, " | "))
	}

	return Context{
		EventsText: strings.Join(lines, "\n"),
		IDMap:      idMap,
		EventCount: len(s.CalendarContext),
	}
}
