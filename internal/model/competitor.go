package model

// Competitor is a fully researched competitor record, built by parsing one
// LLM response per competitor.
type Competitor struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Pricing      string   `json:"pricing"` // "unknown" when not found
	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
	TargetMarket string   `json:"targetMarket"`
	Features     []string `json:"features"`
}

// NamedCompetitor is a lightweight competitor reference produced by the
// quick discovery path: a name and a one-line description, no detail fetch.
type NamedCompetitor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ResearchResult holds the outcome of the rich research path: up to three
// fully detailed competitors plus up to three additional bare names for
// which no detail round was run.
type ResearchResult struct {
	Competitors           []Competitor `json:"competitors"`
	AdditionalCompetitors []string     `json:"additionalCompetitors"`
}
