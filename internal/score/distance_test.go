package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calscribe/calscribe/internal/model"
)

func TestActionDistance(t *testing.T) {
	assert.Equal(t, 0.0, actionDistance(model.ActionCreate, model.ActionCreate))
	assert.Equal(t, 1000.0, actionDistance(model.ActionCreate, model.ActionDelete))
}

func TestTitleDistance(t *testing.T) {
	assert.Equal(t, 0.0, titleDistance("Team lunch", "Team lunch"))

	// Token-set similarity ignores word order.
	assert.Equal(t, 0.0, titleDistance("lunch Team", "Team lunch"))

	assert.Greater(t, titleDistance("Quarterly review", "Dentist appointment"), 50.0)
}

func TestTimeDistance(t *testing.T) {
	tests := []struct {
		name     string
		actual   string
		expected string
		want     float64
	}{
		{"both absent", "", "", 0},
		{"actual absent", "", "2026-02-20T12:00:00", 10000},
		{"expected absent", "2026-02-20T12:00:00", "", 10000},
		{"actual unparsable", "noonish", "2026-02-20T12:00:00", 10000},
		{"expected unparsable", "2026-02-20T12:00:00", "noonish", 10000},
		{"equal", "2026-02-20T12:00:00", "2026-02-20T12:00:00", 0},
		{"ninety minutes", "2026-02-20T12:00:00", "2026-02-20T13:30:00", 90},
		{"symmetric", "2026-02-20T13:30:00", "2026-02-20T12:00:00", 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, timeDistance(tt.actual, tt.expected), 1e-9)
		})
	}
}

func TestPairDistanceSumsComponentsOnStartOnly(t *testing.T) {
	candidate := model.ExtractedEvent{
		Action:    model.ActionDelete,
		Title:     "Team lunch",
		StartTime: "2026-02-20T12:30:00",
		EndTime:   "2026-02-20T23:00:00", // must not contribute
	}
	reference := Reference{
		Action:    model.ActionCreate,
		Title:     "Team lunch",
		StartTime: "2026-02-20T12:00:00",
		EndTime:   "2026-02-20T13:00:00",
	}

	assert.InDelta(t, 1000+0+30, pairDistance(candidate, reference), 1e-9)
}

func TestMatchPairsPrefersGlobalOptimum(t *testing.T) {
	// A greedy matcher would grab the closer start for the first reference
	// and leave the second with a worse partner; the assignment solver
	// minimizes the total cost instead.
	candidates := []model.ExtractedEvent{
		{Action: model.ActionCreate, Title: "Sync", StartTime: "2026-02-20T10:30:00"},
		{Action: model.ActionCreate, Title: "Sync", StartTime: "2026-02-20T11:00:00"},
	}
	references := []Reference{
		{Action: model.ActionCreate, Title: "Sync", StartTime: "2026-02-20T11:00:00"},
		{Action: model.ActionCreate, Title: "Sync", StartTime: "2026-02-20T10:00:00"},
	}

	pairs := matchPairs(candidates, references)
	require.Len(t, pairs, 2)

	assignment := map[int]int{}
	for _, p := range pairs {
		assignment[p.Row] = p.Col
	}
	assert.Equal(t, map[int]int{0: 1, 1: 0}, assignment)
}

func TestMatchPairsEmptySides(t *testing.T) {
	assert.Empty(t, matchPairs(nil, []Reference{{Title: "x"}}))
	assert.Empty(t, matchPairs([]model.ExtractedEvent{{Title: "x"}}, nil))
}
