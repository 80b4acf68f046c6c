package insight

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rmodel "github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
)

func TestChat(t *testing.T) {
	cm := &mockChatModel{content: "  Most reviewers mention a long break-in period.\n"}
	g := NewGenerator(cm, nil)

	var history []ChatTurn
	for i := 0; i < 8; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		history = append(history, ChatTurn{Role: role, Content: fmt.Sprintf("turn %d", i)})
	}

	answer, err := g.Chat(context.Background(), " How is the comfort? ", history, reviews(40))
	require.NoError(t, err)
	assert.Equal(t, "Most reviewers mention a long break-in period.", answer)

	// system + 最近 6 轮 + 问题
	require.Len(t, cm.input, 8)
	system := cm.input[0]
	assert.Equal(t, schema.System, system.Role)
	assert.Contains(t, system.Content, "review number 29")
	assert.NotContains(t, system.Content, "review number 30")

	assert.Equal(t, "turn 2", cm.input[1].Content)
	assert.Equal(t, schema.User, cm.input[1].Role)
	assert.Equal(t, schema.Assistant, cm.input[2].Role)
	assert.Equal(t, "turn 7", cm.input[6].Content)
	assert.Equal(t, schema.User, cm.input[7].Role)
	assert.Equal(t, "How is the comfort?", cm.input[7].Content)
}

func TestChatErrors(t *testing.T) {
	g := NewGenerator(&mockChatModel{content: "ok"}, nil)
	_, err := g.Chat(context.Background(), "   ", nil, reviews(1))
	assert.ErrorIs(t, err, ErrEmptyQuestion)

	_, err = NewGenerator(nil, nil).Chat(context.Background(), "why?", nil, reviews(1))
	assert.ErrorIs(t, err, ErrLLMNotConfigured)

	boom := errors.New("429 too many requests")
	_, err = NewGenerator(&mockChatModel{err: boom}, nil).Chat(context.Background(), "why?", nil, reviews(1))
	assert.ErrorIs(t, err, boom)
}

func TestGenerateReport(t *testing.T) {
	cm := &mockChatModel{content: "# Executive Report\n\n## Executive Summary\nCustomers love the look."}
	g := NewGenerator(cm, nil)

	insights := &rmodel.InsightReport{ExecutiveSummary: "Customers love the look."}
	report, err := g.GenerateReport(context.Background(), insights, "dr martens")
	require.NoError(t, err)
	assert.Contains(t, report, "## Executive Summary")

	require.Len(t, cm.input, 2)
	assert.Equal(t, schema.System, cm.input[0].Role)
	assert.Contains(t, cm.prompt, "for dr martens:")
	assert.Contains(t, cm.prompt, `"executive_summary": "Customers love the look."`)
}

func TestGenerateReportErrors(t *testing.T) {
	_, err := NewGenerator(nil, nil).GenerateReport(context.Background(), &rmodel.InsightReport{}, "x")
	assert.ErrorIs(t, err, ErrLLMNotConfigured)

	_, err = NewGenerator(&mockChatModel{content: "  "}, nil).GenerateReport(context.Background(), &rmodel.InsightReport{}, "x")
	assert.Error(t, err)
}
