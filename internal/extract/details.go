package extract

import (
	"regexp"
	"strings"

	"github.com/sells-group/venturelens/internal/model"
)

const (
	maxFeatures   = 4
	maxStrengths  = 3
	maxWeaknesses = 3
	minItemLen    = 5
)

var (
	emphasisRe = regexp.MustCompile(`\*{1,3}|_{1,3}`)
	headingRe  = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	footnoteRe = regexp.MustCompile(`\[\^?\d+\]`)

	descriptionLabelRe = regexp.MustCompile(`(?im)^(?:overview|description|about)\s*:?\s*(\S.*)$`)
	isASentenceRe      = regexp.MustCompile(`(?i)([^.\n]*\bis an?\b[^.\n]*)\.?`)
	firstSentenceRe    = regexp.MustCompile(`(?s)^\s*(.+?[.!?])(?:\s|$)`)

	// Longest alternative first: Go regexps take the leftmost match, so
	// "mo|month" would truncate "$8/month" to "$8/mo".
	pricingTokenRe = regexp.MustCompile(`(?i)\$\d+(?:\.\d+)?(?:/(?:month|mo|user|seat|year|yr))?|\bfreemium\b|\bfree\b`)

	targetMarketRe = regexp.MustCompile(`(?im)^(?:target market|target audience|audience)\s*:?\s*(\S.*)$`)

	featureLabels  = []string{"features", "key features", "capabilities"}
	strengthLabels = []string{"strengths", "pros", "advantages"}
	weaknessLabels = []string{"weaknesses", "cons", "drawbacks", "limitations"}
)

// stripMarkup removes markdown emphasis, heading markers and footnote
// references so downstream extractors see plain text.
func stripMarkup(text string) string {
	text = headingRe.ReplaceAllString(text, "")
	text = footnoteRe.ReplaceAllString(text, "")
	text = emphasisRe.ReplaceAllString(text, "")
	return text
}

// ParseCompetitorDetails builds a Competitor from the raw detail response
// for one competitor. Each field is extracted independently so a miss on
// one never poisons the others.
func ParseCompetitorDetails(name, raw string) model.Competitor {
	clean := stripMarkup(raw)

	c := model.Competitor{
		Name:         strings.TrimSpace(stripMarkup(name)),
		Description:  extractDescription(name, clean),
		Pricing:      extractPricing(clean),
		Features:     labeledItems(clean, featureLabels, maxFeatures),
		Strengths:    labeledItems(clean, strengthLabels, maxStrengths),
		Weaknesses:   labeledItems(clean, weaknessLabels, maxWeaknesses),
		TargetMarket: extractTargetMarket(clean),
	}

	if len(c.Strengths) == 0 {
		c.Strengths = fallbackTraits(clean, fallbackStrengths, maxStrengths)
	}
	if len(c.Weaknesses) == 0 {
		c.Weaknesses = fallbackTraits(clean, fallbackWeaknesses, maxWeaknesses)
	}

	return c
}

// extractDescription prefers a labeled overview/description/about section,
// then an "X is a ..." sentence, then the first sentence of the text.
func extractDescription(name, text string) string {
	if m := descriptionLabelRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := isASentenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := firstSentenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(name)
}

// extractPricing joins the first run of currency or Free/Freemium tokens.
func extractPricing(text string) string {
	tokens := pricingTokenRe.FindAllString(text, 4)
	if len(tokens) == 0 {
		return "unknown"
	}
	seen := make(map[string]struct{}, len(tokens))
	var out []string
	for _, t := range tokens {
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return strings.Join(out, ", ")
}

func extractTargetMarket(text string) string {
	if m := targetMarketRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// labeledItems finds the first section introduced by one of the labels and
// splits it into short list items.
func labeledItems(text string, labels []string, limit int) []string {
	section := labeledSection(text, labels)
	if section == "" {
		return nil
	}
	return splitItems(section, limit)
}

// sectionLabelRe matches a line that introduces a new section, e.g.
// "Strengths:". Sections often follow each other with no blank line in
// between, so the next label line terminates the current section too.
var sectionLabelRe = regexp.MustCompile(`(?i)^[a-z][a-z /&-]{0,40}:`)

// labeledSection returns the content following "Label:" up to the next
// blank line or the next label line, or the remainder of the label's own
// line when the items are inline.
func labeledSection(text string, labels []string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		inline, ok := matchLabel(line, labels)
		if !ok {
			continue
		}
		if inline != "" {
			return inline
		}
		var body []string
		for _, next := range lines[i+1:] {
			trimmed := strings.TrimSpace(next)
			if trimmed == "" || sectionLabelRe.MatchString(trimmed) {
				break
			}
			body = append(body, next)
		}
		return strings.Join(body, "\n")
	}
	return ""
}

// matchLabel reports whether the line starts with one of the labels and
// returns any content on the label's own line.
func matchLabel(line string, labels []string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	lower := strings.ToLower(trimmed)
	for _, label := range labels {
		if !strings.HasPrefix(lower, label) {
			continue
		}
		rest := trimmed[len(label):]
		if rest != "" && rest[0] != ':' && rest[0] != ' ' {
			continue
		}
		rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), ":"))
		return rest, true
	}
	return "", false
}

// splitItems breaks a section on bullets, dashes and newlines, keeping
// entries longer than minItemLen characters, up to limit items.
func splitItems(section string, limit int) []string {
	parts := regexp.MustCompile(`[\n;]|(?:\s-\s)|[•]`).Split(section, -1)
	var items []string
	for _, p := range parts {
		item := strings.TrimSpace(bulletPrefixRe.ReplaceAllString(p, ""))
		item = strings.TrimSuffix(item, ".")
		if len(item) <= minItemLen {
			continue
		}
		items = append(items, item)
		if len(items) == limit {
			break
		}
	}
	return items
}

// fallbackTraits derives canned strengths/weaknesses from keyword presence
// when no labeled section exists.
func fallbackTraits(text string, table []struct{ Keyword, Trait string }, limit int) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	var traits []string
	for _, row := range table {
		if !strings.Contains(lower, row.Keyword) {
			continue
		}
		if _, dup := seen[row.Trait]; dup {
			continue
		}
		seen[row.Trait] = struct{}{}
		traits = append(traits, row.Trait)
		if len(traits) == limit {
			break
		}
	}
	return traits
}
