// Package extract converts freeform LLM/search responses into structured
// facts. Every extractor tries an ordered list of strategies, each more
// permissive than the last, stopping at the first success, and returns a
// safe default rather than an error: upstream text is unpredictable
// free-form output and must never break the pipeline.
package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

const (
	minNameLen = 2
	maxNameLen = 50
)

// nameStrategy pulls candidate competitor names out of text. A strategy is
// only consulted when every earlier one produced zero results.
type nameStrategy func(text string) []string

// nameStrategies is the fixed fallback chain for CompetitorNames.
var nameStrategies = []nameStrategy{
	namesFromNumberedBold,
	namesFromNumberedPlain,
	namesFromSentence,
}

var (
	numberedBoldRe  = regexp.MustCompile(`(?m)^\s*\d+\.\s*\*\*(.+?)\*\*`)
	numberedPlainRe = regexp.MustCompile(`(?m)^\s*\d+\.\s+([A-Z][A-Za-z0-9&.'\- ]{1,60})`)
	sentenceListRe  = regexp.MustCompile(`(?i)(?:companies like|such as|including)\s+([^.\n]+)`)
	trailingDescRe  = regexp.MustCompile(`\s+[-–—:]\s+.*$`)
)

// CompetitorNames extracts an ordered, deduplicated list of competitor
// names. Order of first appearance is preserved; the empty slice means no
// strategy matched and the caller must fall back deterministically.
func CompetitorNames(text string) []string {
	for _, strategy := range nameStrategies {
		if names := dedupeNames(strategy(text)); len(names) > 0 {
			return names
		}
	}
	return nil
}

// namesFromNumberedBold matches "1. **Name** – description" entries.
func namesFromNumberedBold(text string) []string {
	var names []string
	for _, m := range numberedBoldRe.FindAllStringSubmatch(text, -1) {
		names = append(names, stripTrailingDescription(m[1]))
	}
	return names
}

// namesFromNumberedPlain matches "1. Name" entries that start with a
// capital letter, skipping lines that open with a generic word.
func namesFromNumberedPlain(text string) []string {
	var names []string
	for _, m := range numberedPlainRe.FindAllStringSubmatch(text, -1) {
		name := stripTrailingDescription(m[1])
		if leadWordIsGeneric(name) {
			continue
		}
		names = append(names, name)
	}
	return names
}

// namesFromSentence matches "companies like X, Y, and Z" phrasing.
func namesFromSentence(text string) []string {
	m := sentenceListRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	var names []string
	for _, part := range strings.Split(m[1], ",") {
		for _, piece := range regexp.MustCompile(`(?i)\band\b`).Split(part, -1) {
			names = append(names, strings.TrimSpace(piece))
		}
	}
	return names
}

func stripTrailingDescription(name string) string {
	return strings.TrimSpace(trailingDescRe.ReplaceAllString(strings.TrimSpace(name), ""))
}

func leadWordIsGeneric(name string) bool {
	first, _, _ := strings.Cut(name, " ")
	for _, w := range genericLeadWords {
		if first == w {
			return true
		}
	}
	return false
}

// dedupeNames filters invalid entries and removes case-insensitive
// duplicates while preserving first-appearance order.
func dedupeNames(names []string) []string {
	fold := cases.Fold()
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if len(name) < minNameLen || len(name) > maxNameLen {
			continue
		}
		key := fold.String(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}
