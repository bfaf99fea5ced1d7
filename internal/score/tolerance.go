package score

import (
	"fmt"
	"time"
)

// Level names a tolerance profile.
type Level string

const (
	LevelStrict   Level = "strict"
	LevelModerate Level = "moderate"
	LevelRelaxed  Level = "relaxed"
)

// DefaultLevel is used when a fixture does not specify a tolerance.
const DefaultLevel = LevelModerate

// Tolerance bundles the thresholds for one tolerance level. Profiles are
// plain values passed through the scoring entry points; nothing in this
// package consults shared state.
type Tolerance struct {
	Level Level

	// EventCountTolerance is the maximum allowed difference between the
	// number of extracted and expected events.
	EventCountTolerance int

	// TimeTolerance is the maximum allowed start/end time difference.
	TimeTolerance time.Duration

	// TitleRatioMin is the minimum token-set similarity (0-100) for titles
	// and locations.
	TitleRatioMin float64
}

// ToleranceFor returns the profile for a level.
func ToleranceFor(level Level) (Tolerance, error) {
	switch level {
	case LevelStrict:
		return Tolerance{
			Level:               LevelStrict,
			EventCountTolerance: 0,
			TimeTolerance:       30 * time.Minute,
			TitleRatioMin:       95.0,
		}, nil
	case LevelModerate:
		return Tolerance{
			Level:               LevelModerate,
			EventCountTolerance: 1,
			TimeTolerance:       2 * time.Hour,
			TitleRatioMin:       80.0,
		}, nil
	case LevelRelaxed:
		return Tolerance{
			Level:               LevelRelaxed,
			EventCountTolerance: 2,
			TimeTolerance:       24 * time.Hour,
			TitleRatioMin:       60.0,
		}, nil
	}
	return Tolerance{}, fmt.Errorf("unknown tolerance level %q", level)
}
