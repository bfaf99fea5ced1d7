package score

import "github.com/calscribe/calscribe/internal/model"

// Classification labels one reconciliation outcome.
type Classification string

const (
	ClassTruePositive  Classification = "tp"
	ClassFalsePositive Classification = "fp"
	ClassFalseNegative Classification = "fn"
)

// MatchDetail records the outcome for a single event. A true positive
// carries both sides. A pairing that failed the tolerance checks produces
// two records sharing the same mismatch reasons: a false positive carrying
// both sides and a false negative carrying only the reference. Unmatched
// candidates and references produce one-sided records without reasons.
type MatchDetail struct {
	Classification  Classification        `json:"classification"`
	Candidate       *model.ExtractedEvent `json:"candidate,omitempty"`
	Reference       *Reference            `json:"reference,omitempty"`
	MismatchReasons []string              `json:"mismatch_reasons,omitempty"`
}

// SampleScore is the scoring result for one sample.
type SampleScore struct {
	SampleName string        `json:"sample_name"`
	Category   string        `json:"category"`
	Tolerance  Level         `json:"tolerance"`
	TP         int           `json:"tp"`
	FP         int           `json:"fp"`
	FN         int           `json:"fn"`
	Precision  float64       `json:"precision"`
	Recall     float64       `json:"recall"`
	F1         float64       `json:"f1"`
	Details    []MatchDetail `json:"details,omitempty"`
}

// SampleInput carries the per-sample scoring parameters.
type SampleInput struct {
	Name      string
	Category  string
	Tolerance Tolerance

	// ValidIDCount is the size of the calendar context shown to the model,
	// bounding the valid existing_event_id domain 1..ValidIDCount.
	ValidIDCount int
}

// ScoreSample reconciles extracted candidates against reference events.
// Candidates and references are paired by minimum-cost assignment; each
// pair within tolerance counts as a true positive, each failed pair counts
// as one false positive and one false negative, and leftover candidates and
// references count as false positives and false negatives respectively.
// Mismatches are data, never errors.
func ScoreSample(candidates []model.ExtractedEvent, references []Reference, in SampleInput) SampleScore {
	s := SampleScore{
		SampleName: in.Name,
		Category:   in.Category,
		Tolerance:  in.Tolerance.Level,
	}

	if len(candidates) == 0 && len(references) == 0 {
		s.Precision, s.Recall, s.F1 = computePRF(0, 0, 0)
		return s
	}

	pairs := matchPairs(candidates, references)

	pairedCandidates := make(map[int]bool, len(pairs))
	pairedReferences := make(map[int]bool, len(pairs))

	for _, p := range pairs {
		pairedCandidates[p.Row] = true
		pairedReferences[p.Col] = true

		candidate := candidates[p.Row]
		reference := references[p.Col]

		reasons := classifyPair(candidate, reference, in.Tolerance, in.ValidIDCount)
		if len(reasons) == 0 {
			s.TP++
			s.Details = append(s.Details, MatchDetail{
				Classification: ClassTruePositive,
				Candidate:      &candidate,
				Reference:      &reference,
			})
			continue
		}

		s.FP++
		s.FN++
		s.Details = append(s.Details,
			MatchDetail{
				Classification:  ClassFalsePositive,
				Candidate:       &candidate,
				Reference:       &reference,
				MismatchReasons: reasons,
			},
			MatchDetail{
				Classification:  ClassFalseNegative,
				Reference:       &reference,
				MismatchReasons: reasons,
			},
		)
	}

	for i := range candidates {
		if pairedCandidates[i] {
			continue
		}
		s.FP++
		s.Details = append(s.Details, MatchDetail{
			Classification: ClassFalsePositive,
			Candidate:      &candidates[i],
		})
	}

	for i := range references {
		if pairedReferences[i] {
			continue
		}
		s.FN++
		s.Details = append(s.Details, MatchDetail{
			Classification: ClassFalseNegative,
			Reference:      &references[i],
		})
	}

	s.Precision, s.Recall, s.F1 = computePRF(s.TP, s.FP, s.FN)
	return s
}
