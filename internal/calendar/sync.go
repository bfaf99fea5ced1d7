package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/calscribe/calscribe/internal/logging"
	"github.com/calscribe/calscribe/internal/model"
)

// API is the calendar surface the sync layer needs. *Client implements it;
// tests substitute a fake.
type API interface {
	CreateEvent(ev model.ValidatedEvent) (*EventSummary, bool, error)
	UpdateEventByID(eventID string, ev model.ValidatedEvent) (*EventSummary, error)
	DeleteEventByID(eventID string) error
	FindAndUpdateEvent(ev model.ValidatedEvent) (*EventSummary, error)
	FindAndDeleteEvent(ev model.ValidatedEvent) (bool, error)
}

// Outcome records what happened to a single event during sync.
type Outcome struct {
	Title  string       `json:"title"`
	Action model.Action `json:"action"`
	Status string       `json:"status"`
	// EventID is the calendar event ID touched, when known.
	EventID string `json:"event_id,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// SyncResult aggregates the outcomes of a sync run. A failure on one event
// never aborts the rest.
type SyncResult struct {
	Created  int       `json:"created"`
	Updated  int       `json:"updated"`
	Deleted  int       `json:"deleted"`
	Skipped  int       `json:"skipped"`
	Failed   int       `json:"failed"`
	Outcomes []Outcome `json:"outcomes"`
}

// SyncEvents applies extracted events to the calendar. idMap translates the
// 1-based context IDs the extractor references into real calendar event IDs.
// With dryRun set, no calendar call is made and each outcome reports what
// would have happened.
func SyncEvents(ctx context.Context, api API, events []model.ValidatedEvent, idMap map[int]string, dryRun bool) SyncResult {
	log := logging.WithOperation(slog.Default(), "calendar_sync")

	var result SyncResult
	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			result.record(Outcome{Title: ev.Title, Action: ev.Action, Status: "failed", Reason: err.Error()})
			continue
		}

		var outcome Outcome
		if dryRun {
			outcome = Outcome{Title: ev.Title, Action: ev.Action, Status: "would_" + string(ev.Action)}
		} else {
			outcome = syncOne(api, ev, idMap)
		}

		if outcome.Status == "failed" {
			log.Warn("event sync failed",
				slog.String("title", ev.Title),
				slog.String("action", string(ev.Action)),
				slog.String("reason", outcome.Reason))
		} else {
			log.Info("event synced",
				slog.String("title", ev.Title),
				slog.String("action", string(ev.Action)),
				logging.Status(outcome.Status))
		}
		result.record(outcome)
	}
	return result
}

func (r *SyncResult) record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case "created":
		r.Created++
	case "updated":
		r.Updated++
	case "deleted":
		r.Deleted++
	case "failed":
		r.Failed++
	case "skipped":
		r.Skipped++
	}
}

func syncOne(api API, ev model.ValidatedEvent, idMap map[int]string) Outcome {
	outcome := Outcome{Title: ev.Title, Action: ev.Action}

	switch ev.Action {
	case model.ActionCreate:
		summary, created, err := api.CreateEvent(ev)
		if err != nil {
			return outcome.fail(err)
		}
		if !created {
			outcome.Status = "skipped"
			outcome.Reason = "duplicate of an existing event"
			if summary != nil {
				outcome.EventID = summary.ID
			}
			return outcome
		}
		outcome.Status = "created"
		outcome.EventID = summary.ID
		return outcome

	case model.ActionUpdate:
		return syncUpdate(api, ev, idMap)

	case model.ActionDelete:
		return syncDelete(api, ev, idMap)

	default:
		return outcome.fail(fmt.Errorf("unknown action %q", ev.Action))
	}
}

func syncUpdate(api API, ev model.ValidatedEvent, idMap map[int]string) Outcome {
	outcome := Outcome{Title: ev.Title, Action: ev.Action}

	if eventID, ok := resolveEventID(ev, idMap); ok {
		summary, err := api.UpdateEventByID(eventID, ev)
		if isNotFound(err) {
			// The referenced event vanished since the context was
			// fetched. Create the event instead of losing it.
			created, _, cerr := api.CreateEvent(ev)
			if cerr != nil {
				return outcome.fail(cerr)
			}
			outcome.Status = "created"
			if created != nil {
				outcome.EventID = created.ID
			}
			return outcome
		}
		if err != nil {
			return outcome.fail(err)
		}
		outcome.Status = "updated"
		outcome.EventID = summary.ID
		return outcome
	}

	summary, err := api.FindAndUpdateEvent(ev)
	if err != nil {
		return outcome.fail(err)
	}
	if summary == nil {
		outcome.Status = "skipped"
		outcome.Reason = "no matching event found to update"
		return outcome
	}
	outcome.Status = "updated"
	outcome.EventID = summary.ID
	return outcome
}

func syncDelete(api API, ev model.ValidatedEvent, idMap map[int]string) Outcome {
	outcome := Outcome{Title: ev.Title, Action: ev.Action}

	if eventID, ok := resolveEventID(ev, idMap); ok {
		err := api.DeleteEventByID(eventID)
		if isNotFound(err) {
			// Already gone, which is what a delete wants anyway.
			outcome.Status = "skipped"
			outcome.Reason = "event already deleted"
			outcome.EventID = eventID
			return outcome
		}
		if err != nil {
			return outcome.fail(err)
		}
		outcome.Status = "deleted"
		outcome.EventID = eventID
		return outcome
	}

	deleted, err := api.FindAndDeleteEvent(ev)
	if err != nil {
		return outcome.fail(err)
	}
	if !deleted {
		outcome.Status = "skipped"
		outcome.Reason = "no matching event found to delete"
		return outcome
	}
	outcome.Status = "deleted"
	return outcome
}

// resolveEventID maps the extractor's context ID to a calendar event ID.
// An ID outside the map falls back to title/time lookup.
func resolveEventID(ev model.ValidatedEvent, idMap map[int]string) (string, bool) {
	if ev.ExistingEventID == nil {
		return "", false
	}
	eventID, ok := idMap[*ev.ExistingEventID]
	return eventID, ok
}

func (o Outcome) fail(err error) Outcome {
	o.Status = "failed"
	o.Reason = err.Error()
	return o
}

func isNotFound(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusNotFound
}
