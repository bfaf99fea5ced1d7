package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calscribe/calscribe/internal/score"
)

const minimalSidecar = `{
	"description": "simple lunch",
	"category": "crud",
	"expected_events": [
		{"action": "create", "title": "Team lunch", "start_time": "2026-02-20T12:00:00"}
	]
}`

func writeSample(t *testing.T, dir, name, sidecar string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[Alice]: lunch tomorrow at noon?\n"), 0o644))
	if sidecar != "" {
		require.NoError(t, os.WriteFile(SidecarPath(path), []byte(sidecar), 0o644))
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir, "lunch.txt", minimalSidecar)

	s, err := Load(SidecarPath(path))
	require.NoError(t, err)

	assert.Equal(t, score.LevelModerate, s.Tolerance)
	assert.Equal(t, "Alice", s.Owner)
	assert.Equal(t, "2026-02-20T10:00:00", s.ReferenceDatetime)

	now, err := s.ReferenceTime()
	require.NoError(t, err)
	assert.Equal(t, 2026, now.Year())
}

func TestLoadRejectsInvalidSidecars(t *testing.T) {
	tests := []struct {
		name    string
		sidecar string
		wantErr string
	}{
		{
			name:    "bad json",
			sidecar: `{"description": `,
			wantErr: "failed to parse",
		},
		{
			name:    "unknown tolerance",
			sidecar: `{"description": "x", "category": "crud", "tolerance": "lenient"}`,
			wantErr: "unknown tolerance level",
		},
		{
			name: "expected event without start",
			sidecar: `{"description": "x", "category": "crud",
				"expected_events": [{"action": "create", "title": "Lunch"}]}`,
			wantErr: "missing start_time",
		},
		{
			name: "expected event with bad action",
			sidecar: `{"description": "x", "category": "crud",
				"expected_events": [{"action": "reschedule", "title": "Lunch", "start_time": "2026-02-20T12:00:00"}]}`,
			wantErr: "invalid action",
		},
		{
			name: "context event without id",
			sidecar: `{"description": "x", "category": "crud",
				"calendar_context": [{"summary": "Sync", "start": "2026-02-21T10:00:00", "end": "2026-02-21T11:00:00"}]}`,
			wantErr: "missing id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeSample(t, dir, "bad.txt", tt.sidecar)

			_, err := Load(SidecarPath(path))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, "crud/lunch.txt", minimalSidecar)
	writeSample(t, dir, "ambiguity/vague.txt", `{
		"description": "vague",
		"category": "",
		"expected_events": []
	}`)
	// Orphan transcript without a sidecar is skipped.
	writeSample(t, dir, "crud/orphan.txt", "")

	samples, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, samples, 2)

	// Sorted by transcript path.
	assert.Equal(t, "ambiguity/vague", samples[0].Name)
	assert.Equal(t, "crud/lunch", samples[1].Name)

	// Category falls back to the first path element when empty.
	assert.Equal(t, "ambiguity", samples[0].Category)
	assert.Equal(t, "crud", samples[1].Category)
}

func TestBuildContext(t *testing.T) {
	s := &Sidecar{
		CalendarContext: []ContextEvent{
			{ID: "uuid-a", Summary: "Weekly sync", Start: "2026-02-21T10:00:00", End: "2026-02-21T11:00:00"},
			{ID: "uuid-b", Summary: "Gym", Start: "2026-02-22T18:00:00", End: "2026-02-22T19:00:00", Location: "City gym"},
		},
	}

	ctx := BuildContext(s)

	assert.Equal(t, 2, ctx.EventCount)
	assert.Equal(t, map[int]string{1: "uuid-a", 2: "uuid-b"}, ctx.IDMap)
	assert.Equal(t,
		"[1] Weekly sync | 2026-02-21T10:00:00 - 2026-02-21T11:00:00\n"+
			"[2] Gym | 2026-02-22T18:00:00 - 2026-02-22T19:00:00 | City gym",
		ctx.EventsText)
}

func TestBuildContextEmpty(t *testing.T) {
	ctx := BuildContext(&Sidecar{})
	assert.Equal(t, 0, ctx.EventCount)
	assert.Empty(t, ctx.EventsText)
	assert.Empty(t, ctx.IDMap)
}

func TestReferencesConversion(t *testing.T) {
	s := &Sidecar{
		ExpectedEvents: []ExpectedEvent{
			{Action: "delete", Title: "Old sync", StartTime: "2026-02-21T10:00:00", ExistingEventIDRequired: true},
		},
	}

	refs := s.References()
	require.Len(t, refs, 1)
	assert.True(t, refs[0].ExistingEventIDRequired)
	assert.Equal(t, "Old sync", refs[0].Title)
}
