package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calscribe/calscribe/internal/model"
)

func moderate(t *testing.T) Tolerance {
	t.Helper()
	tol, err := ToleranceFor(LevelModerate)
	require.NoError(t, err)
	return tol
}

func strict(t *testing.T) Tolerance {
	t.Helper()
	tol, err := ToleranceFor(LevelStrict)
	require.NoError(t, err)
	return tol
}

func TestToleranceProfiles(t *testing.T) {
	s := strict(t)
	assert.Equal(t, 0, s.EventCountTolerance)
	assert.Equal(t, "30m0s", s.TimeTolerance.String())
	assert.Equal(t, 95.0, s.TitleRatioMin)

	m := moderate(t)
	assert.Equal(t, 1, m.EventCountTolerance)
	assert.Equal(t, "2h0m0s", m.TimeTolerance.String())
	assert.Equal(t, 80.0, m.TitleRatioMin)

	r, err := ToleranceFor(LevelRelaxed)
	require.NoError(t, err)
	assert.Equal(t, 2, r.EventCountTolerance)
	assert.Equal(t, "24h0m0s", r.TimeTolerance.String())
	assert.Equal(t, 60.0, r.TitleRatioMin)

	_, err = ToleranceFor(Level("lenient"))
	assert.Error(t, err)
}

func TestClassifyPairActionMismatchShortCircuits(t *testing.T) {
	candidate := model.ExtractedEvent{
		Action:    model.ActionDelete,
		Title:     "Entirely different",
		StartTime: "2027-01-01T00:00:00",
	}
	reference := Reference{
		Action:                  model.ActionCreate,
		Title:                   "Team lunch",
		StartTime:               "2026-02-20T12:00:00",
		ExistingEventIDRequired: true,
	}

	reasons := classifyPair(candidate, reference, moderate(t), 3)

	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "action")
}

func TestClassifyPairPerfectMatch(t *testing.T) {
	candidate := model.ExtractedEvent{
		Action:    model.ActionCreate,
		Title:     "Team lunch",
		StartTime: "2026-02-20T12:00:00",
		EndTime:   "2026-02-20T13:00:00",
	}
	reference := Reference{
		Action:    model.ActionCreate,
		Title:     "Team lunch",
		StartTime: "2026-02-20T12:00:00",
		EndTime:   "2026-02-20T13:00:00",
	}

	assert.Empty(t, classifyPair(candidate, reference, moderate(t), 0))
}

func TestClassifyPairStrictTitleIsExactCaseFolded(t *testing.T) {
	candidate := model.ExtractedEvent{
		Action:    model.ActionCreate,
		Title:     "  TEAM LUNCH  ",
		StartTime: "2026-02-20T12:00:00",
	}
	reference := Reference{
		Action:    model.ActionCreate,
		Title:     "Team lunch",
		StartTime: "2026-02-20T12:00:00",
	}

	assert.Empty(t, classifyPair(candidate, reference, strict(t), 0))

	candidate.Title = "Team lunch with the crew"
	reasons := classifyPair(candidate, reference, strict(t), 0)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "strict exact")
}

func TestClassifyPairFuzzyTitleThreshold(t *testing.T) {
	candidate := model.ExtractedEvent{
		Action:    model.ActionCreate,
		Title:     "Lunch with the team",
		StartTime: "2026-02-20T12:00:00",
	}
	reference := Reference{
		Action:    model.ActionCreate,
		Title:     "Team lunch",
		StartTime: "2026-02-20T12:00:00",
	}

	// Token-set overlap keeps these above the moderate threshold.
	assert.Empty(t, classifyPair(candidate, reference, moderate(t), 0))

	candidate.Title = "Dentist appointment"
	reasons := classifyPair(candidate, reference, moderate(t), 0)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "title: ratio=")
}

func TestClassifyPairStartAndEndCheckedIndependently(t *testing.T) {
	candidate := model.ExtractedEvent{
		Action:    model.ActionCreate,
		Title:     "Team lunch",
		StartTime: "2026-02-20T18:00:00", // 6h off
		EndTime:   "2026-02-21T13:00:00", // 24h off
	}
	reference := Reference{
		Action:    model.ActionCreate,
		Title:     "Team lunch",
		StartTime: "2026-02-20T12:00:00",
		EndTime:   "2026-02-20T13:00:00",
	}

	reasons := classifyPair(candidate, reference, moderate(t), 0)

	require.Len(t, reasons, 2)
	assert.Contains(t, reasons[0], "start_time")
	assert.Contains(t, reasons[1], "end_time")
}

func TestClassifyPairUnspecifiedEndSkipsCheck(t *testing.T) {
	candidate := model.ExtractedEvent{
		Action:    model.ActionCreate,
		Title:     "Team lunch",
		StartTime: "2026-02-20T12:00:00",
		EndTime:   "2026-02-20T23:59:00",
	}
	reference := Reference{
		Action:    model.ActionCreate,
		Title:     "Team lunch",
		StartTime: "2026-02-20T12:00:00",
	}

	assert.Empty(t, classifyPair(candidate, reference, moderate(t), 0))
}

func TestClassifyPairExistingEventID(t *testing.T) {
	reference := Reference{
		Action:                  model.ActionDelete,
		Title:                   "Old sync",
		ExistingEventIDRequired: true,
	}
	base := model.ExtractedEvent{
		Action: model.ActionDelete,
		Title:  "Old sync",
	}

	t.Run("missing id", func(t *testing.T) {
		reasons := classifyPair(base, reference, moderate(t), 3)
		require.Len(t, reasons, 1)
		assert.Contains(t, reasons[0], "required but was not set")
	})

	t.Run("out of domain id", func(t *testing.T) {
		id := 7
		candidate := base
		candidate.ExistingEventID = &id
		reasons := classifyPair(candidate, reference, moderate(t), 3)
		require.Len(t, reasons, 1)
		assert.Contains(t, reasons[0], "outside the valid context IDs 1..3")
	})

	t.Run("valid id", func(t *testing.T) {
		id := 2
		candidate := base
		candidate.ExistingEventID = &id
		assert.Empty(t, classifyPair(candidate, reference, moderate(t), 3))
	})

	t.Run("empty context skips range check", func(t *testing.T) {
		id := 99
		candidate := base
		candidate.ExistingEventID = &id
		assert.Empty(t, classifyPair(candidate, reference, moderate(t), 0))
	})
}

func TestClassifyPairAttendees(t *testing.T) {
	candidate := model.ExtractedEvent{
		Action:    model.ActionCreate,
		Title:     "Planning",
		StartTime: "2026-02-20T12:00:00",
		Attendees: []string{"Alice Example <alice@example.com>", "bob@example.com"},
	}
	reference := Reference{
		Action:           model.ActionCreate,
		Title:            "Planning",
		StartTime:        "2026-02-20T12:00:00",
		AttendeesContain: []string{"ALICE", "bob"},
	}

	assert.Empty(t, classifyPair(candidate, reference, moderate(t), 0))

	reference.AttendeesContain = append(reference.AttendeesContain, "carol")
	reasons := classifyPair(candidate, reference, moderate(t), 0)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], `"carol" not found`)
}

func TestClassifyPairLocationOnlyWhenReferenceSetsIt(t *testing.T) {
	candidate := model.ExtractedEvent{
		Action:    model.ActionCreate,
		Title:     "Planning",
		StartTime: "2026-02-20T12:00:00",
		Location:  "Cafeteria",
	}
	reference := Reference{
		Action:    model.ActionCreate,
		Title:     "Planning",
		StartTime: "2026-02-20T12:00:00",
	}

	assert.Empty(t, classifyPair(candidate, reference, moderate(t), 0))

	reference.Location = "Main office, room 4"
	reasons := classifyPair(candidate, reference, moderate(t), 0)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "location")
}

func TestClassifyPairAccumulatesNonActionFailures(t *testing.T) {
	candidate := model.ExtractedEvent{
		Action:    model.ActionCreate,
		Title:     "Dentist",
		StartTime: "2026-02-21T12:00:00",
	}
	reference := Reference{
		Action:                  model.ActionCreate,
		Title:                   "Team lunch",
		StartTime:               "2026-02-20T12:00:00",
		ExistingEventIDRequired: true,
		AttendeesContain:        []string{"alice"},
		Location:                "Cafeteria",
	}

	reasons := classifyPair(candidate, reference, moderate(t), 2)

	assert.Len(t, reasons, 5)
}
