package score

import "sort"

// CategoryScore is the micro-averaged result for one sample category.
type CategoryScore struct {
	Category    string  `json:"category"`
	TP          int     `json:"tp"`
	FP          int     `json:"fp"`
	FN          int     `json:"fn"`
	Precision   float64 `json:"precision"`
	Recall      float64 `json:"recall"`
	F1          float64 `json:"f1"`
	SampleCount int     `json:"sample_count"`
}

// AggregateScore is the micro-averaged result across all samples.
type AggregateScore struct {
	TP          int             `json:"tp"`
	FP          int             `json:"fp"`
	FN          int             `json:"fn"`
	Precision   float64         `json:"precision"`
	Recall      float64         `json:"recall"`
	F1          float64         `json:"f1"`
	PerCategory []CategoryScore `json:"per_category,omitempty"`
	SampleCount int             `json:"sample_count"`
}

// computePRF derives precision, recall and F1 from raw counts.
//
// With no observations at all the result is vacuously perfect (1, 1, 1).
// Precision is 1 when no predictions were made, recall is 1 when nothing
// was expected, and F1 is 0 when precision and recall are both 0.
func computePRF(tp, fp, fn int) (precision, recall, f1 float64) {
	if tp == 0 && fp == 0 && fn == 0 {
		return 1, 1, 1
	}

	precision = 1
	if tp+fp > 0 {
		precision = float64(tp) / float64(tp+fp)
	}

	recall = 1
	if tp+fn > 0 {
		recall = float64(tp) / float64(tp+fn)
	}

	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}

	return precision, recall, f1
}

// Aggregate micro-averages sample scores: counts are summed across samples
// and the metrics recomputed from the totals, overall and per category.
// Categories are sorted by name. No samples yields a vacuous aggregate.
func Aggregate(samples []SampleScore) AggregateScore {
	agg := AggregateScore{SampleCount: len(samples)}
	if len(samples) == 0 {
		agg.Precision, agg.Recall, agg.F1 = 1, 1, 1
		return agg
	}

	byCategory := make(map[string][]SampleScore)
	for _, s := range samples {
		agg.TP += s.TP
		agg.FP += s.FP
		agg.FN += s.FN
		byCategory[s.Category] = append(byCategory[s.Category], s)
	}
	agg.Precision, agg.Recall, agg.F1 = computePRF(agg.TP, agg.FP, agg.FN)

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cat := CategoryScore{Category: name, SampleCount: len(byCategory[name])}
		for _, s := range byCategory[name] {
			cat.TP += s.TP
			cat.FP += s.FP
			cat.FN += s.FN
		}
		cat.Precision, cat.Recall, cat.F1 = computePRF(cat.TP, cat.FP, cat.FN)
		agg.PerCategory = append(agg.PerCategory, cat)
	}

	return agg
}
