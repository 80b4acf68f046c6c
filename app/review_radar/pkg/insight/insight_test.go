package insight

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/logger"
	rmodel "github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
)

func init() {
	logger.InitLogger("error", "")
}

// mockChatModel 模拟聊天模型
type mockChatModel struct {
	content string
	err     error
	calls   int
	prompt  string
	input   []*schema.Message
}

func (m *mockChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.calls++
	m.input = input
	if len(input) > 0 {
		m.prompt = input[len(input)-1].Content
	}
	if m.err != nil {
		return nil, m.err
	}
	return &schema.Message{Role: schema.Assistant, Content: m.content}, nil
}

func reviews(n int) []rmodel.Review {
	out := make([]rmodel.Review, n)
	for i := range out {
		out[i] = rmodel.Review{Source: rmodel.SourceAmazon, Author: "a", Text: fmt.Sprintf("review number %d", i), Rating: 4, Sentiment: rmodel.Positive}
	}
	return out
}

func TestGenerateInsights(t *testing.T) {
	cm := &mockChatModel{content: "```json\n" + `{
		"executive_summary":"Customers love the look.",
		"key_themes":[{"theme":"Style","sentiment":"positive","frequency":"high","description":"Iconic"}],
		"strengths":[{"strength":"Design","impact":"high","examples":"looks great"}],
		"pain_points":[{"issue":"Break-in","severity":"medium","recommendation":"Add insoles"}],
		"recommendations":[{"priority":"high","action":"Ship insoles","expected_impact":"fewer returns"}],
		"sentiment_drivers":{"positive_drivers":["look"],"negative_drivers":["stiffness"]}
	}` + "\n```"}
	g := NewGenerator(cm, nil)

	report, err := g.GenerateInsights(context.Background(), "dr martens", reviews(40))
	require.NoError(t, err)
	assert.Equal(t, "Customers love the look.", report.ExecutiveSummary)
	require.Len(t, report.KeyThemes, 1)
	assert.Equal(t, "Style", report.KeyThemes[0].Theme)
	assert.Equal(t, []string{"stiffness"}, report.SentimentDrivers.NegativeDrivers)
	assert.Equal(t, 1, cm.calls)

	// 只带入前 30 条
	assert.Contains(t, cm.prompt, "review number 29")
	assert.NotContains(t, cm.prompt, "review number 30")
	assert.Contains(t, cm.prompt, `"dr martens"`)
}

func TestGenerateInsightsFailure(t *testing.T) {
	tests := []struct {
		name string
		cm   *mockChatModel
	}{
		{"model error", &mockChatModel{err: errors.New("429 too many requests")}},
		{"invalid json", &mockChatModel{content: "sorry, I can't"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(tt.cm, nil).GenerateInsights(context.Background(), "q", reviews(2))
			assert.ErrorIs(t, err, ErrInsightGeneration)
			// 不重试
			assert.Equal(t, 1, tt.cm.calls)
		})
	}

	_, err := NewGenerator(&mockChatModel{}, nil).GenerateInsights(context.Background(), "q", nil)
	assert.ErrorIs(t, err, ErrInsightGeneration)

	_, err = NewGenerator(nil, nil).GenerateInsights(context.Background(), "q", reviews(1))
	assert.ErrorIs(t, err, ErrInsightGeneration)
}

func TestGenerateCompetitiveInsights(t *testing.T) {
	cm := &mockChatModel{content: `{
		"head_to_head_comparison":{
			"durability":{"winner":"Dr Martens","reasoning":"Dr Martens soles last for years. Timberland leather creases early."},
			"color":{"winner":"Timberland","reasoning":"n/a"}
		},
		"subject_a_strengths":["Extremely durable soles"],
		"subject_a_weaknesses":["Painful break-in"],
		"subject_b_strengths":["Comfortable out of the box"],
		"subject_b_weaknesses":["Leather wears quickly"],
		"executive_summary":"Close contest."
	}`}
	g := NewGenerator(cm, nil)

	a := Subject{Name: "Dr Martens", Reviews: reviews(3), Statistics: rmodel.AggregateStatistics{Total: 3, Positive: 3}}
	b := Subject{Name: "Timberland", Reviews: reviews(2), Statistics: rmodel.AggregateStatistics{Total: 2, Positive: 1, Negative: 1}}

	out, err := g.GenerateCompetitiveInsights(context.Background(), a, b)
	require.NoError(t, err)
	require.Len(t, out.HeadToHead, 1)
	assert.Equal(t, "Dr Martens", out.HeadToHead[rmodel.AttrDurability].Winner)
	assert.Equal(t, []string{"Painful break-in"}, out.WeaknessesA)
	assert.Equal(t, []string{"Comfortable out of the box"}, out.StrengthsB)

	assert.Contains(t, cm.prompt, "Product A: Dr Martens (3 reviews, 100.0% positive, 0.0% negative)")
	assert.Contains(t, cm.prompt, "value_for_money")
}
