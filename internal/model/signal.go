package model

import "time"

// SignalKind identifies one of the three market analyses.
type SignalKind string

const (
	SignalMarketSize        SignalKind = "market_size"
	SignalCustomerPain      SignalKind = "customer_pain"
	SignalCompetitorQuality SignalKind = "competitor_quality"
)

// Confidence grades how well a signal's key fields resolved.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// MarketData is the structured result of the market size/growth/funding
// analysis. Unresolved fields hold "Unknown".
type MarketData struct {
	Size       string     `json:"size"`
	GrowthRate string     `json:"growth_rate"`
	Funding    string     `json:"funding"`
	Confidence Confidence `json:"confidence"`
	RawText    string     `json:"raw_text,omitempty"`
	ComputedAt time.Time  `json:"computed_at"`
}

// PainData is the structured result of the customer pain analysis.
type PainData struct {
	PainLevel  int        `json:"pain_level"` // 5-10
	UnmetNeeds []string   `json:"unmet_needs"`
	Confidence Confidence `json:"confidence"`
	RawText    string     `json:"raw_text,omitempty"`
	ComputedAt time.Time  `json:"computed_at"`
}

// QualityData is the structured result of the competitor quality analysis.
type QualityData struct {
	Satisfaction  int        `json:"satisfaction"` // 1-10
	Concentration string     `json:"concentration"`
	Confidence    Confidence `json:"confidence"`
	RawText       string     `json:"raw_text,omitempty"`
	ComputedAt    time.Time  `json:"computed_at"`
}
