package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sells-group/venturelens/internal/model"
)

// Unknown is the sentinel for string facts that could not be extracted.
const Unknown = "Unknown"

var (
	dollarIntRe   = regexp.MustCompile(`\$(\d+)`)
	marketValueRe = regexp.MustCompile(`(?i)\$\s*(\d+(?:\.\d+)?)\s*(T|B|M)`)

	// marketSizePatterns are tried in order; the first full match is
	// returned verbatim. Normalization happens later via ParseMarketValue.
	marketSizePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\$\d+(?:\.\d+)?\s*(?:trillion|billion|million|[TBM])\b`),
		regexp.MustCompile(`(?i)TAM[^.\n]*?\$\d+(?:\.\d+)?\s*[TBM]\b`),
		regexp.MustCompile(`(?i)valued at[^.\n]*?\$\d+(?:\.\d+)?\s*[TBM]\b`),
	}

	growthPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:CAGR|growth(?: rate)?|growing)(?:\s+(?:of|at|by))?[^.\n%]*?(\d+(?:\.\d+)?%)`),
		regexp.MustCompile(`(\d+(?:\.\d+)?%)\s*(?:CAGR|annual|per year|year-over-year|yoy)`),
	}

	fundingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)raised[^.\n]*?(\$\d+(?:\.\d+)?\s*(?:million|billion|[MBK]))`),
		regexp.MustCompile(`(?i)(\$\d+(?:\.\d+)?\s*(?:million|billion|[MB]))\s+(?:in\s+)?(?:funding|investment|venture)`),
		regexp.MustCompile(`(?i)series\s+[A-F][^.\n]*?(\$\d+(?:\.\d+)?\s*(?:million|billion|[MB]))`),
	}
)

// Price returns the first "$<integer>" amount found, or 0 when absent.
// No currency conversion is attempted.
func Price(text string) int {
	m := dollarIntRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// Prices flattens every "$<integer>" amount found across all competitors'
// pricing fields.
func Prices(competitors []model.Competitor) []int {
	var prices []int
	for _, c := range competitors {
		for _, m := range dollarIntRe.FindAllStringSubmatch(c.Pricing, -1) {
			if n, err := strconv.Atoi(m[1]); err == nil {
				prices = append(prices, n)
			}
		}
	}
	return prices
}

// MarketSize returns the first currency-magnitude match verbatim, or
// Unknown.
func MarketSize(text string) string {
	for _, re := range marketSizePatterns {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return Unknown
}

// ParseMarketValue normalizes a "$<number><B|M|T>" market-size string into
// millions of USD. Unparseable input yields 0.
func ParseMarketValue(s string) float64 {
	m := marketValueRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	switch strings.ToUpper(m[2]) {
	case "T":
		return n * 1_000_000
	case "B":
		return n * 1_000
	default: // M
		return n
	}
}

// GrowthRate returns the first growth percentage found, or Unknown.
func GrowthRate(text string) string {
	for _, re := range growthPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return Unknown
}

// Funding returns the first funding amount found, "Bootstrapped" when the
// text mentions self-funding, or Unknown.
func Funding(text string) string {
	lower := strings.ToLower(text)
	for _, kw := range bootstrapKeywords {
		if strings.Contains(lower, kw) {
			return "Bootstrapped"
		}
	}
	for _, re := range fundingPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return Unknown
}
