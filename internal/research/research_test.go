package research

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/venturelens/internal/cache"
	"github.com/sells-group/venturelens/internal/config"
	"github.com/sells-group/venturelens/internal/model"
)

const testIdea = "a project management tool for remote design agencies"

func testCfg() config.ResearchConfig {
	return config.ResearchConfig{MaxConcurrentDetails: 2, CacheTTLHours: 24}
}

const discoveryText = `Here are the main competitors:

1. **Asana** - work management platform
2. **Trello** - kanban boards for small teams
3. **Monday.com** - customizable workflows
4. **ClickUp** - all-in-one productivity suite
5. **Notion** - docs and databases
6. **Linear** - issue tracking for software teams`

func TestFindCompetitors(t *testing.T) {
	mock := &mockPerplexity{fallback: discoveryText}
	r := New(mock, nil, testCfg())

	got, err := r.FindCompetitors(context.Background(), testIdea)
	require.NoError(t, err)

	require.Len(t, got, 5)
	assert.Equal(t, "Asana", got[0].Name)
	assert.Equal(t, "work management platform", got[0].Description)
	assert.Equal(t, "Notion", got[4].Name)
	assert.Equal(t, 1, mock.callCount())
}

func TestFindCompetitorsRejectsShortIdea(t *testing.T) {
	mock := &mockPerplexity{}
	r := New(mock, nil, testCfg())

	_, err := r.FindCompetitors(context.Background(), "an app")
	assert.ErrorIs(t, err, model.ErrIdeaTooShort)
	assert.Zero(t, mock.callCount(), "validation must run before any network call")
}

func TestFindCompetitorsOffline(t *testing.T) {
	r := New(nil, nil, testCfg())

	got, err := r.FindCompetitors(context.Background(), testIdea)
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestFindCompetitorsCached(t *testing.T) {
	mock := &mockPerplexity{fallback: discoveryText}
	r := New(mock, cache.NewMemory(), testCfg())

	first, err := r.FindCompetitors(context.Background(), testIdea)
	require.NoError(t, err)
	second, err := r.FindCompetitors(context.Background(), "  A Project Management Tool for Remote Design Agencies  ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, mock.callCount(), "second call must be served from cache")
}

func TestResearchSeedsKnownCompetitorsVerbatim(t *testing.T) {
	mock := &mockPerplexity{
		responses: map[string]string{
			"Exclude these companies": "1. **Basecamp** - project communication\n2. **Wrike** - enterprise work management\n3. **Smartsheet** - spreadsheet-style planning\n4. **Airtable** - flexible databases",
		},
		fallback: "Description: A project tool for teams.\nPricing: $10/month per user.",
	}
	r := New(mock, nil, testCfg())

	result, err := r.Research(context.Background(), Context{
		Idea:             testIdea,
		KnownCompetitors: []string{"Asana", "Trello"},
	})
	require.NoError(t, err)

	require.Len(t, result.Competitors, 3)
	assert.Equal(t, "Asana", result.Competitors[0].Name)
	assert.Equal(t, "Trello", result.Competitors[1].Name)
	assert.Equal(t, "Basecamp", result.Competitors[2].Name)
	assert.Equal(t, []string{"Wrike", "Smartsheet", "Airtable"}, result.AdditionalCompetitors)

	assert.Equal(t, 1, mock.promptsContaining("Exclude these companies"), "at most one supplemental round")
	assert.Equal(t, 3, mock.promptsContaining("Research the company"))
}

func TestResearchDetailFailureDropsRecordOnly(t *testing.T) {
	mock := &mockPerplexity{
		errors: map[string]error{
			`company "Wrike"`: eris.New("upstream timeout"),
		},
		fallback: "Description: A project tool.\nPricing: $12/month.",
	}
	r := New(mock, nil, testCfg())

	result, err := r.Research(context.Background(), Context{
		Idea:             testIdea,
		KnownCompetitors: []string{"Asana", "Wrike", "Basecamp", "Smartsheet", "Airtable", "ClickUp"},
	})
	require.NoError(t, err)

	require.Len(t, result.Competitors, 2)
	assert.Equal(t, "Asana", result.Competitors[0].Name)
	assert.Equal(t, "Basecamp", result.Competitors[1].Name)
	assert.Equal(t, []string{"Smartsheet", "Airtable", "ClickUp"}, result.AdditionalCompetitors)
}

func TestResearchAllDetailsFail(t *testing.T) {
	mock := &mockPerplexity{
		errors: map[string]error{
			"Research the company": eris.New("upstream down"),
		},
	}
	r := New(mock, nil, testCfg())

	_, err := r.Research(context.Background(), Context{
		Idea:             testIdea,
		KnownCompetitors: []string{"Asana", "Trello", "Basecamp", "Wrike", "Smartsheet", "Airtable"},
	})
	assert.ErrorIs(t, err, ErrResearchFailed)
}

func TestResearchNoNamesFound(t *testing.T) {
	mock := &mockPerplexity{fallback: "I could not find any relevant companies."}
	r := New(mock, nil, testCfg())

	_, err := r.Research(context.Background(), Context{Idea: testIdea})
	assert.ErrorIs(t, err, ErrResearchFailed)
}

func TestResearchCached(t *testing.T) {
	mock := &mockPerplexity{
		responses: map[string]string{
			"List 6 direct competitors": discoveryText,
		},
		fallback: "Description: A project tool.\nPricing: $10/month.",
	}
	r := New(mock, cache.NewMemory(), testCfg())

	first, err := r.Research(context.Background(), Context{Idea: testIdea})
	require.NoError(t, err)
	calls := mock.callCount()

	second, err := r.Research(context.Background(), Context{Idea: testIdea})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, calls, mock.callCount(), "second call must be served from cache")
}

func TestResearchOffline(t *testing.T) {
	r := New(nil, nil, testCfg())

	result, err := r.Research(context.Background(), Context{Idea: testIdea})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Competitors)
}

func TestResearchRejectsShortIdea(t *testing.T) {
	mock := &mockPerplexity{}
	r := New(mock, nil, testCfg())

	_, err := r.Research(context.Background(), Context{Idea: "too short"})
	assert.ErrorIs(t, err, model.ErrIdeaTooShort)
	assert.Zero(t, mock.callCount())
}

func TestDedupe(t *testing.T) {
	got := dedupe([]string{"Asana", "asana", " Trello ", "", "Trello", "Basecamp"})
	assert.Equal(t, []string{"Asana", "Trello", "Basecamp"}, got)
}
