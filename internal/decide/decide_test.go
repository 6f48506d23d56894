package decide

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/venturelens/internal/model"
	"github.com/sells-group/venturelens/internal/research"
	"github.com/sells-group/venturelens/internal/score"
	"github.com/sells-group/venturelens/internal/signals"
	"github.com/sells-group/venturelens/pkg/anthropic"
)

const testIdea = "an AI-powered todo app for software developers"

type mockResearcher struct {
	named       []model.NamedCompetitor
	result      *model.ResearchResult
	findErr     error
	researchErr error
}

func (m *mockResearcher) FindCompetitors(context.Context, string) ([]model.NamedCompetitor, error) {
	return m.named, m.findErr
}

func (m *mockResearcher) Research(context.Context, research.Context) (*model.ResearchResult, error) {
	return m.result, m.researchErr
}

type mockAnalyzer struct {
	bundle signals.Bundle
}

func (m *mockAnalyzer) AnalyzeAll(context.Context, string, []model.Competitor) signals.Bundle {
	return m.bundle
}

type mockLLM struct {
	text  string
	err   error
	calls int
}

func (m *mockLLM) CreateMessage(context.Context, anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: m.text}},
	}, nil
}

func named(n int) []model.NamedCompetitor {
	out := make([]model.NamedCompetitor, n)
	for i := range out {
		out[i] = model.NamedCompetitor{Name: "Comp", Description: "a competitor"}
	}
	return out
}

func comps(n int) []model.Competitor {
	out := make([]model.Competitor, n)
	for i := range out {
		out[i] = model.Competitor{Name: "Comp"}
	}
	return out
}

func yesBundle() signals.Bundle {
	// mo 8 + comp 8 + entry 6 weighted = 7.4 -> YES
	return signals.Bundle{
		Market: model.MarketData{Size: "$5.2B", GrowthRate: "Unknown", Funding: "Unknown"},
		Pain:   model.PainData{PainLevel: 6},
	}
}

func TestSimpleOfflineCrowdedMarket(t *testing.T) {
	s := New(nil, "", &mockResearcher{named: named(6)}, &mockAnalyzer{}, score.DefaultConfig())

	got, err := s.Simple(context.Background(), testIdea, false)
	require.NoError(t, err)

	assert.True(t, got.Success)
	assert.Equal(t, model.VerdictNo, got.Decision)
	assert.Len(t, got.Reasons, 3)
	assert.Len(t, got.Alternatives, 3)
	assert.Len(t, got.PivotExamples, 3)
	assert.Len(t, got.Competitors, 6)
}

func TestSimpleOfflineSparseMarket(t *testing.T) {
	s := New(nil, "", &mockResearcher{named: named(2)}, &mockAnalyzer{}, score.DefaultConfig())

	got, err := s.Simple(context.Background(), testIdea, false)
	require.NoError(t, err)
	assert.Equal(t, model.VerdictMaybe, got.Decision)
	assert.Len(t, got.Reasons, 3)
}

func TestSimpleOfflineDeterministic(t *testing.T) {
	s := New(nil, "", &mockResearcher{named: named(6)}, &mockAnalyzer{}, score.DefaultConfig())

	a, err := s.Simple(context.Background(), testIdea, false)
	require.NoError(t, err)
	b, err := s.Simple(context.Background(), testIdea, false)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSimpleRoastChangesOnlyTone(t *testing.T) {
	s := New(nil, "", &mockResearcher{named: named(6)}, &mockAnalyzer{}, score.DefaultConfig())

	plain, err := s.Simple(context.Background(), testIdea, false)
	require.NoError(t, err)
	roast, err := s.Simple(context.Background(), testIdea, true)
	require.NoError(t, err)

	assert.Equal(t, plain.Decision, roast.Decision)
	assert.NotEqual(t, plain.Reasons, roast.Reasons)
}

func TestSimpleRejectsShortIdea(t *testing.T) {
	s := New(nil, "", &mockResearcher{}, &mockAnalyzer{}, score.DefaultConfig())

	_, err := s.Simple(context.Background(), "an app", false)
	assert.ErrorIs(t, err, model.ErrIdeaTooShort)
}

func TestSimpleDiscoveryFailureStillDecides(t *testing.T) {
	s := New(nil, "", &mockResearcher{findErr: eris.New("upstream down")}, &mockAnalyzer{}, score.DefaultConfig())

	got, err := s.Simple(context.Background(), testIdea, false)
	require.NoError(t, err)
	assert.Equal(t, model.VerdictMaybe, got.Decision)
	assert.Empty(t, got.Competitors)
}

func TestSimpleLLMStructuredResponse(t *testing.T) {
	llm := &mockLLM{text: "```json\n{\"verdict\":\"YES\",\"reasons\":[\"strong niche\",\"clear pain\"],\"alternatives\":[\"ignored\"],\"pivotExamples\":[]}\n```"}
	s := New(llm, "test-model", &mockResearcher{named: named(2)}, &mockAnalyzer{}, score.DefaultConfig())

	got, err := s.Simple(context.Background(), testIdea, false)
	require.NoError(t, err)

	assert.Equal(t, model.VerdictYes, got.Decision)
	assert.Equal(t, []string{"strong niche", "clear pain"}, got.Reasons)
	assert.Empty(t, got.Alternatives, "alternatives are only populated when the verdict is not YES")
	assert.Equal(t, 1, llm.calls)
}

func TestSimpleLLMCapsLists(t *testing.T) {
	llm := &mockLLM{text: `{"verdict":"NO","reasons":["a","b","c","d","e"],"alternatives":["1","2","3","4"],"pivotExamples":[{"company":"A","story":"s"},{"company":"B","story":"s"},{"company":"C","story":"s"},{"company":"D","story":"s"}]}`}
	s := New(llm, "test-model", &mockResearcher{named: named(2)}, &mockAnalyzer{}, score.DefaultConfig())

	got, err := s.Simple(context.Background(), testIdea, false)
	require.NoError(t, err)
	assert.Len(t, got.Reasons, 3)
	assert.Len(t, got.Alternatives, 3)
	assert.Len(t, got.PivotExamples, 3)
}

func TestSimpleLLMParseFailureSniffsText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.Verdict
	}{
		{"affirmative", `My verdict is "YES" because the niche is underserved.`, model.VerdictYes},
		{"negative", "This idea faces too much competition to recommend.", model.VerdictNo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &mockLLM{text: tt.text}
			s := New(llm, "test-model", &mockResearcher{named: named(2)}, &mockAnalyzer{}, score.DefaultConfig())

			got, err := s.Simple(context.Background(), testIdea, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Decision)
		})
	}
}

func TestSimpleLLMCallFailure(t *testing.T) {
	llm := &mockLLM{err: eris.New("api down")}
	s := New(llm, "test-model", &mockResearcher{named: named(2)}, &mockAnalyzer{}, score.DefaultConfig())

	got, err := s.Simple(context.Background(), testIdea, false)
	require.NoError(t, err)
	assert.Equal(t, model.VerdictUnclear, got.Decision)
	assert.NotEmpty(t, got.Reasons)
}

func TestDetailedVerdictNeverOverridden(t *testing.T) {
	llm := &mockLLM{text: `{"verdict":"NO","reasons":["the model disagrees"],"strategy":"from the model"}`}
	r := &mockResearcher{result: &model.ResearchResult{Competitors: comps(4)}}
	s := New(llm, "test-model", r, &mockAnalyzer{bundle: yesBundle()}, score.DefaultConfig())

	got, err := s.Detailed(context.Background(), DetailedRequest{Idea: testIdea})
	require.NoError(t, err)

	assert.Equal(t, model.VerdictYes, got.Decision, "computed verdict must win over the model's")
	assert.Equal(t, []string{"the model disagrees"}, got.Reasons)
	assert.Equal(t, "from the model", got.Strategy)
	assert.InDelta(t, 7.4, got.Scores.Overall, 0.001)
}

func TestDetailedParseFailureFallsBackToBreakdown(t *testing.T) {
	llm := &mockLLM{text: "I think this is a promising idea overall."}
	r := &mockResearcher{result: &model.ResearchResult{Competitors: comps(4)}}
	s := New(llm, "test-model", r, &mockAnalyzer{bundle: yesBundle()}, score.DefaultConfig())

	got, err := s.Detailed(context.Background(), DetailedRequest{Idea: testIdea})
	require.NoError(t, err)

	assert.Equal(t, model.VerdictYes, got.Decision)
	assert.Len(t, got.Reasons, 3)
	assert.Contains(t, got.Reasons[0], "market opportunity")
}

func TestDetailedOffline(t *testing.T) {
	r := &mockResearcher{result: &model.ResearchResult{
		Competitors:           comps(3),
		AdditionalCompetitors: []string{"Extra"},
	}}
	bundle := signals.Bundle{
		Market:  model.MarketData{Size: "Unknown", GrowthRate: "Unknown", Funding: "Unknown"},
		Pain:    model.PainData{PainLevel: 5, UnmetNeeds: []string{"offline support"}},
		Quality: model.QualityData{Satisfaction: 6, Concentration: "Fragmented"},
	}
	s := New(nil, "", r, &mockAnalyzer{bundle: bundle}, score.DefaultConfig())

	got, err := s.Detailed(context.Background(), DetailedRequest{Idea: testIdea})
	require.NoError(t, err)

	assert.True(t, got.Success)
	assert.Equal(t, model.VerdictMaybe, got.Decision)
	assert.Len(t, got.Reasons, 3)
	assert.NotEmpty(t, got.Alternatives)
	assert.NotEmpty(t, got.Strategy)
	assert.Equal(t, 4, got.CompetitorAnalysis.Count, "count covers detailed plus additional names")
	assert.Equal(t, 6, got.CompetitorAnalysis.Quality)
	assert.Equal(t, "Fragmented", got.CompetitorAnalysis.Concentration)
	assert.Equal(t, []string{"offline support"}, got.CustomerPain.UnmetNeeds)
}

func TestDetailedResearchFailurePropagates(t *testing.T) {
	r := &mockResearcher{researchErr: research.ErrResearchFailed}
	s := New(nil, "", r, &mockAnalyzer{}, score.DefaultConfig())

	_, err := s.Detailed(context.Background(), DetailedRequest{Idea: testIdea})
	assert.ErrorIs(t, err, research.ErrResearchFailed)
}

func TestDetailedProductStrategy(t *testing.T) {
	r := &mockResearcher{result: &model.ResearchResult{Competitors: comps(3)}}
	s := New(nil, "", r, &mockAnalyzer{bundle: yesBundle()}, score.DefaultConfig())

	got, err := s.Detailed(context.Background(), DetailedRequest{
		Idea:    testIdea,
		Product: &score.Product{Name: "MyTool", Differentiator: "offline-first sync built for agencies"},
	})
	require.NoError(t, err)
	assert.Contains(t, got.Strategy, "Estimated entry success")
}

func TestDetailedRoastKeepsScores(t *testing.T) {
	r := &mockResearcher{result: &model.ResearchResult{Competitors: comps(4)}}
	s := New(nil, "", r, &mockAnalyzer{bundle: yesBundle()}, score.DefaultConfig())

	plain, err := s.Detailed(context.Background(), DetailedRequest{Idea: testIdea})
	require.NoError(t, err)
	roast, err := s.Detailed(context.Background(), DetailedRequest{Idea: testIdea, Roast: true})
	require.NoError(t, err)

	assert.Equal(t, plain.Scores, roast.Scores)
	assert.Equal(t, plain.Decision, roast.Decision)
}
