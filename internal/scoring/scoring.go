// Package scoring turns Likert answers into per-category means and a
// burnout classification. Every function is pure and total: an incomplete
// answer map yields a degraded result over whatever was answered.
package scoring

import (
	"math"

	"github.com/abhisek/pbi/internal/catalog"
)

// DecimalPlaces is the precision of every reported mean.
const DecimalPlaces = 2

// Answers maps question ID to a Likert value (1-5).
type Answers map[int]int

// Clone returns an independent copy of a.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Scores holds the three category means.
type Scores struct {
	Exhaustion    float64 `json:"exhaustion"`
	Disengagement float64 `json:"disengagement"`
	Efficacy      float64 `json:"efficacy"`
}

// For returns the mean for a category.
func (s Scores) For(cat catalog.Category) float64 {
	switch cat {
	case catalog.CategoryExhaustion:
		return s.Exhaustion
	case catalog.CategoryDisengagement:
		return s.Disengagement
	case catalog.CategoryEfficacy:
		return s.Efficacy
	default:
		return 0
	}
}

// Assessment is the complete outcome for one answer map.
type Assessment struct {
	Scores
	Level Level `json:"level"`
}

// CategoryMean returns the mean Likert value of the answered questions in
// cat, rounded half-up to two decimals. Unanswered questions are skipped, not
// counted as zero. Returns 0 when nothing in the category has been answered;
// callers must treat 0 as "no data" rather than a Likert mean.
func CategoryMean(cat catalog.Category, answers Answers, questions []catalog.Question) float64 {
	sum, n := 0, 0
	for _, q := range questions {
		if q.Category != cat {
			continue
		}
		v, ok := answers[q.ID]
		if !ok {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return round(float64(sum)/float64(n), DecimalPlaces)
}

// ComputeAllScores computes the mean of each category.
func ComputeAllScores(answers Answers, questions []catalog.Question) Scores {
	return Scores{
		Exhaustion:    CategoryMean(catalog.CategoryExhaustion, answers, questions),
		Disengagement: CategoryMean(catalog.CategoryDisengagement, answers, questions),
		Efficacy:      CategoryMean(catalog.CategoryEfficacy, answers, questions),
	}
}

// Assess scores the answers and classifies the result.
func Assess(answers Answers, questions []catalog.Question) Assessment {
	s := ComputeAllScores(answers, questions)
	return Assessment{
		Scores: s,
		Level:  Classify(s.Exhaustion, s.Disengagement, s.Efficacy),
	}
}

// round rounds x half-up to the given number of decimal places.
func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(x*p+0.5) / p
}
