package extract

import (
	"regexp"
	"strings"
)

const (
	painBaseline  = 5
	painCap       = 10
	satBaseline   = 5
	satFloor      = 1
	satCap        = 10
	maxUnmetNeeds = 3
	minNeedLen    = 10
	maxNeedLen    = 100
)

var bulletPrefixRe = regexp.MustCompile(`^[\s\-*•\d.)]+`)

// PainLevel scores customer pain in [5,10]: baseline 5 plus one point per
// distinct pain keyword present, capped at 10.
func PainLevel(text string) int {
	lower := strings.ToLower(text)
	level := painBaseline
	for _, kw := range painKeywords {
		if strings.Contains(lower, kw) {
			level++
			if level >= painCap {
				return painCap
			}
		}
	}
	return level
}

// Satisfaction scores competitor-user satisfaction in [1,10]: baseline 5,
// +1 per positive keyword present, -1 per negative keyword present.
func Satisfaction(text string) int {
	lower := strings.ToLower(text)
	score := satBaseline
	for _, kw := range positiveKeywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	for _, kw := range negativeKeywords {
		if strings.Contains(lower, kw) {
			score--
		}
	}
	if score > satCap {
		return satCap
	}
	if score < satFloor {
		return satFloor
	}
	return score
}

// UnmetNeeds pulls up to three cleaned bullet or line items describing
// unmet customer needs, filtering boilerplate lead-ins and entries outside
// the [10,100) character band.
func UnmetNeeds(text string) []string {
	var needs []string
	for _, line := range strings.Split(text, "\n") {
		item := strings.TrimSpace(bulletPrefixRe.ReplaceAllString(line, ""))
		if len(item) < minNeedLen || len(item) >= maxNeedLen {
			continue
		}
		if isBoilerplate(item) {
			continue
		}
		needs = append(needs, item)
		if len(needs) == maxUnmetNeeds {
			break
		}
	}
	return needs
}

func isBoilerplate(line string) bool {
	lower := strings.ToLower(line)
	for _, b := range needBoilerplate {
		if strings.Contains(lower, b) {
			return true
		}
	}
	return false
}

// Concentration classifies market concentration by keyword presence; rules
// are evaluated in fixed priority order and the first hit wins.
func Concentration(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range concentrationRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Label
			}
		}
	}
	return Unknown
}
