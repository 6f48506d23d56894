package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notionDetail = `# Notion

**Notion** is an all-in-one workspace for notes and docs[1].

Pricing: Free, $8/month per user

Key Features:
- Notes and documents
- Relational databases
- Kanban boards
- Calendar views
- Public API

Strengths:
- Flexible workspace customization
- Strong template community
- Generous free tier
- Huge third-party ecosystem

Weaknesses:
- Slow with large workspaces
- Steep learning curve
`

func TestParseCompetitorDetails(t *testing.T) {
	c := ParseCompetitorDetails("**Notion**", notionDetail)

	assert.Equal(t, "Notion", c.Name)
	assert.NotContains(t, c.Name, "*")
	assert.Contains(t, c.Description, "all-in-one workspace")
	assert.Contains(t, c.Pricing, "$8/month")
	assert.Contains(t, c.Pricing, "Free")

	assert.LessOrEqual(t, len(c.Features), 4)
	assert.LessOrEqual(t, len(c.Strengths), 3)
	assert.LessOrEqual(t, len(c.Weaknesses), 3)

	require.NotEmpty(t, c.Features)
	assert.Equal(t, "Notes and documents", c.Features[0])
	assert.Contains(t, c.Weaknesses, "Steep learning curve")
}

func TestParseCompetitorDetailsAdjacentSections(t *testing.T) {
	// Replies often list the sections back to back with no blank lines;
	// each label line must end the previous section.
	raw := `Acme is a project tracker.
Key Features:
- Kanban boards
- List views
Strengths:
- Fast UI
- Good mobile app
Weaknesses:
- No offline mode
`
	c := ParseCompetitorDetails("Acme", raw)

	assert.Equal(t, []string{"Kanban boards", "List views"}, c.Features)
	assert.Equal(t, []string{"Fast UI", "Good mobile app"}, c.Strengths)
	assert.Equal(t, []string{"No offline mode"}, c.Weaknesses)
	assert.NotContains(t, c.Features, "Strengths:")
	assert.NotContains(t, c.Strengths, "Weaknesses:")
}

func TestParseCompetitorDetailsInlineSection(t *testing.T) {
	raw := "Strengths: Fast UI; Good mobile app\nWeaknesses: No offline mode"
	c := ParseCompetitorDetails("Acme", raw)

	assert.Equal(t, []string{"Fast UI", "Good mobile app"}, c.Strengths)
	assert.Equal(t, []string{"No offline mode"}, c.Weaknesses)
}

func TestParseCompetitorDetailsUnlabeled(t *testing.T) {
	raw := "Trello is a popular kanban tool. Some find it limited for complex projects."
	c := ParseCompetitorDetails("Trello", raw)

	assert.Equal(t, "Trello", c.Name)
	assert.Contains(t, c.Description, "Trello is a popular kanban tool")
	assert.Equal(t, "unknown", c.Pricing)

	// No labeled sections: keyword-triggered defaults kick in.
	assert.Contains(t, c.Strengths, "Popular and trusted")
	assert.Contains(t, c.Weaknesses, "Limited feature set")
}

func TestParseCompetitorDetailsEmpty(t *testing.T) {
	c := ParseCompetitorDetails("Acme", "")

	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, "unknown", c.Pricing)
	assert.Empty(t, c.Features)
}

func TestParseCompetitorDetailsTargetMarket(t *testing.T) {
	raw := "Linear is a fast issue tracker.\nTarget market: engineering teams at startups"
	c := ParseCompetitorDetails("Linear", raw)
	assert.Equal(t, "engineering teams at startups", c.TargetMarket)
}

func TestStripMarkup(t *testing.T) {
	assert.Equal(t, "Notion rocks", stripMarkup("## **Notion** _rocks_[^2]"))
}
