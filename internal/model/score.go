package model

// ScoreBreakdown holds the three bounded sub-scores, the weighted overall
// score, and the verdict derived from it. Recomputed fresh on every request,
// never persisted.
type ScoreBreakdown struct {
	MarketOpportunity int     `json:"marketOpportunity"` // 0-10
	Competition       int     `json:"competition"`       // 0-10
	EntryFeasibility  int     `json:"entryFeasibility"`  // 0-10
	Overall           float64 `json:"overall"`           // 0-10, one decimal
	Verdict           Verdict `json:"verdict"`
}

// RatingLevel buckets a SuccessRating score.
type RatingLevel string

const (
	RatingHigh        RatingLevel = "high"
	RatingModerate    RatingLevel = "moderate"
	RatingChallenging RatingLevel = "challenging"
)

// SuccessRating is the second, independent heuristic scorer on a 0-100
// scale. It encodes a different product decision from ScoreBreakdown and is
// deliberately kept on its own scale.
type SuccessRating struct {
	Score   int         `json:"score"` // 0-100
	Level   RatingLevel `json:"level"`
	Factors []string    `json:"factors"`
}
