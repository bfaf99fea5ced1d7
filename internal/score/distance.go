package score

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/calscribe/calscribe/internal/assign"
	"github.com/calscribe/calscribe/internal/model"
)

const (
	// actionPenalty dominates the pairing cost so that events with the
	// wrong action only pair up when nothing better exists.
	actionPenalty = 1000.0

	// timePenalty applies when exactly one side has a start time, or when
	// a timestamp does not parse. It outweighs any realistic time
	// difference.
	timePenalty = 10000.0
)

// titleRatio is the fuzzy similarity used for titles and locations,
// token-order insensitive on a 0-100 scale. Indirected so tests can pin it.
var titleRatio = func(a, b string) float64 {
	return float64(fuzzy.TokenSetRatio(a, b))
}

func actionDistance(actual, expected model.Action) float64 {
	if actual == expected {
		return 0
	}
	return actionPenalty
}

// titleDistance is 100 minus the similarity ratio, so identical titles cost
// nothing.
func titleDistance(actual, expected string) float64 {
	return 100.0 - titleRatio(actual, expected)
}

// timeDistance is the absolute difference in minutes. Two absent timestamps
// cost nothing; a one-sided or unparsable timestamp costs the full penalty.
func timeDistance(actualISO, expectedISO string) float64 {
	if actualISO == "" && expectedISO == "" {
		return 0
	}
	if actualISO == "" || expectedISO == "" {
		return timePenalty
	}

	actual, err := model.ParseTimestamp(actualISO)
	if err != nil {
		return timePenalty
	}
	expected, err := model.ParseTimestamp(expectedISO)
	if err != nil {
		return timePenalty
	}

	diff := expected.Sub(actual)
	if diff < 0 {
		diff = -diff
	}
	return diff.Minutes()
}

// pairDistance is the composite pairing cost: action plus title plus start
// time. End times do not influence pairing.
func pairDistance(actual model.ExtractedEvent, expected Reference) float64 {
	return actionDistance(actual.Action, expected.Action) +
		titleDistance(actual.Title, expected.Title) +
		timeDistance(actual.StartTime, expected.StartTime)
}

// matchPairs pairs candidates (rows) with references (columns) by
// minimum-cost assignment.
func matchPairs(actual []model.ExtractedEvent, expected []Reference) []assign.Pair {
	if len(actual) == 0 || len(expected) == 0 {
		return nil
	}

	cost := make([][]float64, len(actual))
	for i, a := range actual {
		cost[i] = make([]float64, len(expected))
		for j, e := range expected {
			cost[i][j] = pairDistance(a, e)
		}
	}

	return assign.Solve(cost)
}
