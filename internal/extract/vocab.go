package extract

// Keyword vocabularies used by the heuristic extractors. Kept as named
// tables so tests can exercise them directly.

// painKeywords each add one point to the pain level when present.
var painKeywords = []string{
	"frustrat", "difficult", "pain", "problem", "issue", "complain",
	"lack", "missing", "need", "want", "wish", "expensive", "slow",
}

// positiveKeywords raise the satisfaction score by one each.
var positiveKeywords = []string{
	"love", "great", "excellent", "amazing", "satisfied", "happy",
	"reliable", "intuitive", "polished",
}

// negativeKeywords lower the satisfaction score by one each.
var negativeKeywords = []string{
	"hate", "terrible", "awful", "frustrat", "disappoint", "buggy",
	"clunky", "overpriced", "abandon",
}

// bootstrapKeywords mark a company as self-funded.
var bootstrapKeywords = []string{
	"bootstrap", "self-funded", "self funded", "no outside funding",
}

// genericLeadWords disqualify a numbered line from being a competitor name.
var genericLeadWords = []string{
	"The", "Best", "Top", "Leading", "Popular", "Main", "These",
}

// needBoilerplate filters lead-in lines out of unmet-need lists.
var needBoilerplate = []string{
	"here are", "list of", "unmet needs", "customers report", "in summary",
}

// concentrationRules are checked in priority order; the first rule whose
// keywords match wins.
var concentrationRules = []struct {
	Label    string
	Keywords []string
}{
	{"Highly concentrated", []string{"monopoly", "dominant", "dominates", "dominated by"}},
	{"Fragmented", []string{"fragmented", "many players", "many competitors", "crowded", "no clear leader"}},
	{"Moderately concentrated", []string{"few leaders", "oligopoly", "few major", "handful of", "consolidating"}},
}

// fallbackTraits map a keyword in the raw competitor text to a canned
// strength or weakness when no labeled section was found.
var fallbackStrengths = []struct {
	Keyword string
	Trait   string
}{
	{"popular", "Popular and trusted"},
	{"established", "Established brand"},
	{"easy", "Easy to use"},
	{"integrat", "Broad integrations"},
}

var fallbackWeaknesses = []struct {
	Keyword string
	Trait   string
}{
	{"expensive", "Expensive for small teams"},
	{"complex", "Steep learning curve"},
	{"complicated", "Steep learning curve"},
	{"slow", "Performance complaints"},
	{"limited", "Limited feature set"},
}
