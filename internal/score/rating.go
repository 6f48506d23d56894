package score

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sells-group/venturelens/internal/extract"
	"github.com/sells-group/venturelens/internal/model"
)

var aiKeywordRe = regexp.MustCompile(`(?i)\bai\b`)

// Product describes the caller's own offering for the success rating.
type Product struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Differentiator string `json:"differentiator"`
	TargetMarket   string `json:"targetMarket"`
	Price          int    `json:"price"`
}

// SuccessRating scores a product's entry chances on the independent 0-100
// scale: a baseline of 50 shifted by additive adjustments, clamped, then
// bucketed. This scale is distinct from ScoreBreakdown and must stay so.
func SuccessRating(product Product, competitors []model.Competitor) model.SuccessRating {
	scoreVal := 50
	var factors []string

	switch diff := len(strings.TrimSpace(product.Differentiator)); {
	case diff >= 80:
		scoreVal += 15
		factors = append(factors, "strong differentiator")
	case diff >= 30:
		scoreVal += 10
		factors = append(factors, "clear differentiator")
	case diff > 0:
		scoreVal += 5
		factors = append(factors, "weak differentiator")
	default:
		scoreVal -= 10
		factors = append(factors, "no differentiator")
	}

	if avg := averagePrice(competitors); avg > 0 && product.Price > 0 {
		switch {
		case float64(product.Price) < avg:
			scoreVal += 10
			factors = append(factors, "priced below competitor average")
		case float64(product.Price) > avg*1.5:
			scoreVal -= 10
			factors = append(factors, "priced well above competitor average")
		}
	}

	targetLower := strings.ToLower(product.TargetMarket)
	if strings.Contains(targetLower, "enterprise") {
		scoreVal += 10
		factors = append(factors, "enterprise target market")
	} else if strings.Contains(targetLower, "individual") || strings.Contains(targetLower, "consumer") {
		scoreVal -= 5
		factors = append(factors, "consumer target market")
	}

	if len(competitors) >= 3 {
		scoreVal -= 10
		factors = append(factors, fmt.Sprintf("%d established competitors", len(competitors)))
	}

	if len(CommonWeaknesses(competitors)) >= 2 {
		scoreVal += 10
		factors = append(factors, "shared competitor weaknesses to exploit")
	}

	if aiKeywordRe.MatchString(product.Name + " " + product.Description) {
		scoreVal += 5
		factors = append(factors, "ai positioning")
	}

	if scoreVal > 100 {
		scoreVal = 100
	}
	if scoreVal < 0 {
		scoreVal = 0
	}

	return model.SuccessRating{
		Score:   scoreVal,
		Level:   ratingLevel(scoreVal),
		Factors: factors,
	}
}

func ratingLevel(score int) model.RatingLevel {
	switch {
	case score >= 70:
		return model.RatingHigh
	case score >= 40:
		return model.RatingModerate
	default:
		return model.RatingChallenging
	}
}

func averagePrice(competitors []model.Competitor) float64 {
	prices := extract.Prices(competitors)
	if len(prices) == 0 {
		return 0
	}
	sum := 0
	for _, p := range prices {
		sum += p
	}
	return float64(sum) / float64(len(prices))
}

// CommonWeaknesses returns up to three weakness phrases that appear in more
// than one competitor's weakness list, matched case-insensitively on the
// exact phrase, in order of first appearance.
func CommonWeaknesses(competitors []model.Competitor) []string {
	counts := make(map[string]int)
	first := make(map[string]string)
	var order []string

	for _, c := range competitors {
		seen := make(map[string]struct{})
		for _, w := range c.Weaknesses {
			key := strings.ToLower(strings.TrimSpace(w))
			if key == "" {
				continue
			}
			// Count each phrase once per competitor.
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if counts[key] == 0 {
				first[key] = strings.TrimSpace(w)
				order = append(order, key)
			}
			counts[key]++
		}
	}

	var common []string
	for _, key := range order {
		if counts[key] < 2 {
			continue
		}
		common = append(common, first[key])
		if len(common) == 3 {
			break
		}
	}
	return common
}
