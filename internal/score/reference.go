package score

import "github.com/calscribe/calscribe/internal/model"

// Reference is a single expected event that extracted candidates are
// reconciled against. Timestamps are ISO 8601 strings; an empty string means
// the field is unspecified and the corresponding check is skipped. An empty
// Location likewise disables the location check.
type Reference struct {
	Action                  model.Action
	Title                   string
	StartTime               string
	EndTime                 string
	ExistingEventIDRequired bool
	Location                string
	AttendeesContain        []string
}
