package score

import "github.com/calscribe/calscribe/internal/model"

// CalibrateConfidence maps each confidence level to the fraction of its
// predictions that were true positives. Only detail records carrying a
// candidate count as predictions; false negatives have none. Levels with no
// observations are omitted from the result.
func CalibrateConfidence(samples []SampleScore) map[model.Confidence]float64 {
	counts := make(map[model.Confidence]int)
	correct := make(map[model.Confidence]int)

	for _, s := range samples {
		for _, d := range s.Details {
			if d.Candidate == nil {
				continue
			}
			conf := d.Candidate.Confidence
			counts[conf]++
			if d.Classification == ClassTruePositive {
				correct[conf]++
			}
		}
	}

	result := make(map[model.Confidence]float64)
	for _, level := range []model.Confidence{model.ConfidenceHigh, model.ConfidenceMedium, model.ConfidenceLow} {
		if counts[level] > 0 {
			result[level] = float64(correct[level]) / float64(counts[level])
		}
	}
	return result
}
