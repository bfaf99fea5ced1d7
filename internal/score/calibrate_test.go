package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calscribe/calscribe/internal/model"
)

func detail(class Classification, conf model.Confidence) MatchDetail {
	return MatchDetail{
		Classification: class,
		Candidate:      &model.ExtractedEvent{Confidence: conf},
	}
}

func TestCalibrateConfidence(t *testing.T) {
	samples := []SampleScore{
		{Details: []MatchDetail{
			detail(ClassTruePositive, model.ConfidenceHigh),
			detail(ClassTruePositive, model.ConfidenceHigh),
			detail(ClassFalsePositive, model.ConfidenceHigh),
			detail(ClassTruePositive, model.ConfidenceLow),
		}},
		{Details: []MatchDetail{
			detail(ClassFalsePositive, model.ConfidenceLow),
			// FN records carry no candidate and must not count.
			{Classification: ClassFalseNegative, Reference: &Reference{}},
		}},
	}

	result := CalibrateConfidence(samples)

	assert.InDelta(t, 2.0/3.0, result[model.ConfidenceHigh], 1e-9)
	assert.InDelta(t, 0.5, result[model.ConfidenceLow], 1e-9)

	// No medium-confidence observations: the level is omitted entirely.
	_, ok := result[model.ConfidenceMedium]
	assert.False(t, ok)
}

func TestCalibrateConfidenceEmpty(t *testing.T) {
	assert.Empty(t, CalibrateConfidence(nil))
}
