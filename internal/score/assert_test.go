package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calscribe/calscribe/internal/model"
)

func TestAssertEventsCountMismatchShortCircuits(t *testing.T) {
	candidates := []model.ExtractedEvent{
		{Action: model.ActionCreate, Title: "Nonsense A", StartTime: "bad"},
		{Action: model.ActionCreate, Title: "Nonsense B", StartTime: "bad"},
		{Action: model.ActionCreate, Title: "Nonsense C", StartTime: "bad"},
	}
	references := []Reference{
		{Action: model.ActionCreate, Title: "Team lunch", StartTime: "2026-02-20T12:00:00"},
	}

	tol, err := ToleranceFor(LevelModerate)
	require.NoError(t, err)

	err = AssertEvents(candidates, references, AssertInput{Tolerance: tol})

	var asserr *AssertionError
	require.ErrorAs(t, err, &asserr)
	require.Len(t, asserr.Violations, 1)
	assert.Contains(t, asserr.Violations[0], "event count mismatch")
	assert.Contains(t, asserr.Violations[0], "expected 1 (+-1), got 3")
}

func TestAssertEventsAggregatesAllViolations(t *testing.T) {
	candidates := []model.ExtractedEvent{
		{Action: model.ActionCreate, Title: "Team lunch", StartTime: "2026-02-20T18:00:00"},
		{Action: model.ActionCreate, Title: "Dentist", StartTime: "2026-02-23T09:00:00"},
	}
	references := []Reference{
		{Action: model.ActionCreate, Title: "Team lunch", StartTime: "2026-02-20T12:00:00"},
		{Action: model.ActionCreate, Title: "Dentist", StartTime: "2026-02-21T09:00:00"},
	}

	tol, err := ToleranceFor(LevelModerate)
	require.NoError(t, err)

	err = AssertEvents(candidates, references, AssertInput{Tolerance: tol})

	var asserr *AssertionError
	require.ErrorAs(t, err, &asserr)
	// Both bad pairs are reported, never just the first.
	require.Len(t, asserr.Violations, 2)
	assert.Contains(t, asserr.Violations[0], `[create] "Team lunch"`)
	assert.Contains(t, asserr.Violations[1], `[create] "Dentist"`)
	assert.Contains(t, err.Error(), "2 issue(s)")
}

func TestAssertEventsPasses(t *testing.T) {
	candidates := []model.ExtractedEvent{
		{Action: model.ActionCreate, Title: "Team lunch", StartTime: "2026-02-20T12:30:00"},
	}
	references := []Reference{
		{Action: model.ActionCreate, Title: "Team lunch", StartTime: "2026-02-20T12:00:00"},
	}

	tol, err := ToleranceFor(LevelModerate)
	require.NoError(t, err)

	assert.NoError(t, AssertEvents(candidates, references, AssertInput{Tolerance: tol}))
}

func TestAssertEventsCountWithinToleranceIsFine(t *testing.T) {
	candidates := []model.ExtractedEvent{
		{Action: model.ActionCreate, Title: "Team lunch", StartTime: "2026-02-20T12:00:00"},
		{Action: model.ActionCreate, Title: "Extra", StartTime: "2026-02-22T12:00:00"},
	}
	references := []Reference{
		{Action: model.ActionCreate, Title: "Team lunch", StartTime: "2026-02-20T12:00:00"},
	}

	tol, err := ToleranceFor(LevelModerate)
	require.NoError(t, err)

	// One extra event sits within the moderate count tolerance; the
	// unmatched candidate is not a violation in assertion mode.
	assert.NoError(t, AssertEvents(candidates, references, AssertInput{Tolerance: tol}))
}

func TestAssertEventsFlagsUnmatchedReference(t *testing.T) {
	references := []Reference{
		{Action: model.ActionCreate, Title: "Dentist", StartTime: "2026-02-23T09:00:00"},
	}

	tol, err := ToleranceFor(LevelModerate)
	require.NoError(t, err)

	// Zero candidates against one reference slips past the moderate count
	// tolerance, but the missed event must still fail the assertion.
	err = AssertEvents(nil, references, AssertInput{Tolerance: tol})

	var asserr *AssertionError
	require.ErrorAs(t, err, &asserr)
	require.Len(t, asserr.Violations, 1)
	assert.Contains(t, asserr.Violations[0], `[create] "Dentist": no extracted event matches`)
}

func TestAssertEventsResolvesDeleteTimesFromContext(t *testing.T) {
	id := 2
	candidates := []model.ExtractedEvent{
		{
			Action:          model.ActionDelete,
			Title:           "Old sync",
			StartTime:       "2026-02-24T15:00:00",
			ExistingEventID: &id,
		},
	}
	references := []Reference{
		{
			Action:                  model.ActionDelete,
			Title:                   "Old sync",
			StartTime:               "2026-02-20T09:00:00", // stale; context wins
			ExistingEventIDRequired: true,
		},
	}
	ctx := []ContextEvent{
		{Start: "2026-02-21T10:00:00", End: "2026-02-21T11:00:00"},
		{Start: "2026-02-24T15:00:00", End: "2026-02-24T16:00:00"},
	}

	tol, err := ToleranceFor(LevelStrict)
	require.NoError(t, err)

	assert.NoError(t, AssertEvents(candidates, references, AssertInput{Tolerance: tol, Context: ctx}))
}

func TestAssertEventsFlagsInvalidContextID(t *testing.T) {
	id := 9
	candidates := []model.ExtractedEvent{
		{
			Action:          model.ActionDelete,
			Title:           "Old sync",
			StartTime:       "2026-02-24T15:00:00",
			ExistingEventID: &id,
		},
	}
	references := []Reference{
		{
			Action:                  model.ActionDelete,
			Title:                   "Old sync",
			StartTime:               "2026-02-24T15:00:00",
			ExistingEventIDRequired: true,
		},
	}
	ctx := []ContextEvent{
		{Start: "2026-02-21T10:00:00", End: "2026-02-21T11:00:00"},
	}

	tol, err := ToleranceFor(LevelModerate)
	require.NoError(t, err)

	err = AssertEvents(candidates, references, AssertInput{Tolerance: tol, Context: ctx})

	var asserr *AssertionError
	require.ErrorAs(t, err, &asserr)
	require.Len(t, asserr.Violations, 1)
	assert.Contains(t, asserr.Violations[0], "outside the valid context IDs 1..1")
}
