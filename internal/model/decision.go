package model

// PivotExample is a company that pivoted away from a crowded idea, with a
// one-line story.
type PivotExample struct {
	Company string `json:"company"`
	Story   string `json:"story"`
}

// Decision is the terminal verdict object. Alternatives are populated only
// when the verdict is not YES.
type Decision struct {
	Verdict       Verdict        `json:"verdict"`
	Reasons       []string       `json:"reasons"`       // ≤3
	Alternatives  []string       `json:"alternatives"`  // ≤3
	PivotExamples []PivotExample `json:"pivotExamples"` // ≤3
}

// SimpleResult is the caller-facing payload of the simple decision path.
type SimpleResult struct {
	Success       bool           `json:"success"`
	Decision      Verdict        `json:"decision"`
	Reasons       []string       `json:"reasons"`
	Competitors   []Competitor   `json:"competitors"`
	Alternatives  []string       `json:"alternatives"`
	PivotExamples []PivotExample `json:"pivotExamples"`
}

// ScoreSummary nests the overall score with its breakdown in results.
type ScoreSummary struct {
	Overall   float64        `json:"overall"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// MarketAnalysis summarizes the market signal for detailed results.
type MarketAnalysis struct {
	Size    string `json:"size"`
	Growth  string `json:"growth"`
	Funding string `json:"funding"`
}

// CustomerPain summarizes the pain signal for detailed results.
type CustomerPain struct {
	Level      int      `json:"level"`
	UnmetNeeds []string `json:"unmetNeeds"`
}

// CompetitorAnalysis summarizes the competitive landscape for detailed
// results.
type CompetitorAnalysis struct {
	Count         int          `json:"count"`
	Quality       int          `json:"quality"`
	Concentration string       `json:"concentration"`
	Competitors   []Competitor `json:"competitors"`
}

// DetailedResult is the caller-facing payload of the detailed decision path.
type DetailedResult struct {
	Success            bool               `json:"success"`
	Decision           Verdict            `json:"decision"`
	Scores             ScoreSummary       `json:"scores"`
	MarketAnalysis     MarketAnalysis     `json:"marketAnalysis"`
	CustomerPain       CustomerPain       `json:"customerPain"`
	CompetitorAnalysis CompetitorAnalysis `json:"competitorAnalysis"`
	Reasons            []string           `json:"reasons"`
	Alternatives       []string           `json:"alternatives"`
	PivotExamples      []PivotExample     `json:"pivotExamples"`
	Strategy           string             `json:"strategy"`
}
