package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calscribe/calscribe/internal/model"
)

func sampleInput(t *testing.T, level Level) SampleInput {
	t.Helper()
	tol, err := ToleranceFor(level)
	require.NoError(t, err)
	return SampleInput{Name: "test/sample", Category: "test", Tolerance: tol}
}

func TestScoreSampleEmptyIsVacuouslyPerfect(t *testing.T) {
	s := ScoreSample(nil, nil, sampleInput(t, LevelModerate))

	assert.Equal(t, 0, s.TP)
	assert.Equal(t, 0, s.FP)
	assert.Equal(t, 0, s.FN)
	assert.Equal(t, 1.0, s.Precision)
	assert.Equal(t, 1.0, s.Recall)
	assert.Equal(t, 1.0, s.F1)
	assert.Empty(t, s.Details)
}

func TestScoreSamplePerfectMatchIgnoresOrder(t *testing.T) {
	candidates := []model.ExtractedEvent{
		{Action: model.ActionCreate, Title: "Dentist", StartTime: "2026-02-21T09:00:00"},
		{Action: model.ActionCreate, Title: "Team lunch", StartTime: "2026-02-20T12:00:00"},
	}
	references := []Reference{
		{Action: model.ActionCreate, Title: "Team lunch", StartTime: "2026-02-20T12:00:00"},
		{Action: model.ActionCreate, Title: "Dentist", StartTime: "2026-02-21T09:00:00"},
	}

	s := ScoreSample(candidates, references, sampleInput(t, LevelModerate))

	assert.Equal(t, 2, s.TP)
	assert.Equal(t, 0, s.FP)
	assert.Equal(t, 0, s.FN)
	assert.Equal(t, 1.0, s.F1)
}

func TestScoreSampleFailedPairEmitsFPAndFNSharingReasons(t *testing.T) {
	candidates := []model.ExtractedEvent{
		{Action: model.ActionCreate, Title: "Team lunch", StartTime: "2026-02-20T18:00:00"},
	}
	references := []Reference{
		{Action: model.ActionCreate, Title: "Team lunch", StartTime: "2026-02-20T12:00:00"},
	}

	s := ScoreSample(candidates, references, sampleInput(t, LevelModerate))

	assert.Equal(t, 0, s.TP)
	assert.Equal(t, 1, s.FP)
	assert.Equal(t, 1, s.FN)
	require.Len(t, s.Details, 2)

	fp, fn := s.Details[0], s.Details[1]
	assert.Equal(t, ClassFalsePositive, fp.Classification)
	require.NotNil(t, fp.Candidate)
	require.NotNil(t, fp.Reference)

	assert.Equal(t, ClassFalseNegative, fn.Classification)
	assert.Nil(t, fn.Candidate)
	require.NotNil(t, fn.Reference)

	assert.Equal(t, fp.MismatchReasons, fn.MismatchReasons)
	assert.NotEmpty(t, fp.MismatchReasons)
}

func TestScoreSampleUnmatchedResidue(t *testing.T) {
	candidates := []model.ExtractedEvent{
		{Action: model.ActionCreate, Title: "Team lunch", StartTime: "2026-02-20T12:00:00"},
		{Action: model.ActionCreate, Title: "Hallucinated gala", StartTime: "2026-02-22T20:00:00"},
	}
	references := []Reference{
		{Action: model.ActionCreate, Title: "Team lunch", StartTime: "2026-02-20T12:00:00"},
	}

	s := ScoreSample(candidates, references, sampleInput(t, LevelModerate))

	assert.Equal(t, 1, s.TP)
	assert.Equal(t, 1, s.FP)
	assert.Equal(t, 0, s.FN)

	var unmatched *MatchDetail
	for i := range s.Details {
		if s.Details[i].Reference == nil {
			unmatched = &s.Details[i]
		}
	}
	require.NotNil(t, unmatched)
	assert.Equal(t, ClassFalsePositive, unmatched.Classification)
	assert.Empty(t, unmatched.MismatchReasons)
	assert.Equal(t, "Hallucinated gala", unmatched.Candidate.Title)
}

func TestScoreSampleMissedReferenceIsFN(t *testing.T) {
	references := []Reference{
		{Action: model.ActionCreate, Title: "Team lunch", StartTime: "2026-02-20T12:00:00"},
	}

	s := ScoreSample(nil, references, sampleInput(t, LevelModerate))

	assert.Equal(t, 0, s.TP)
	assert.Equal(t, 0, s.FP)
	assert.Equal(t, 1, s.FN)
	assert.Equal(t, 1.0, s.Precision)
	assert.Equal(t, 0.0, s.Recall)
	assert.Equal(t, 0.0, s.F1)
	require.Len(t, s.Details, 1)
	assert.Nil(t, s.Details[0].Candidate)
}

func TestScoreSampleCarriesMetadata(t *testing.T) {
	in := sampleInput(t, LevelStrict)
	in.Name = "crud/simple_lunch"
	in.Category = "crud"

	s := ScoreSample(nil, nil, in)

	assert.Equal(t, "crud/simple_lunch", s.SampleName)
	assert.Equal(t, "crud", s.Category)
	assert.Equal(t, LevelStrict, s.Tolerance)
}
