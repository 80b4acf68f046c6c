package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/config"
)

type fakeModel struct {
	content string
	err     error
}

func (f *fakeModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &schema.Message{Role: schema.Assistant, Content: f.content}, nil
}

func TestCleanJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, CleanJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, CleanJSON("```{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, CleanJSON(`  {"a":1} `))
}

func TestGenerateJSON(t *testing.T) {
	limiter := NewLimiter(config.ConcurrencyConfig{RPM: 6000, QPS: 10})

	var out struct {
		Sentiment string `json:"sentiment"`
	}
	err := GenerateJSON(context.Background(), &fakeModel{content: "```json\n{\"sentiment\":\"positive\"}\n```"}, limiter, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "positive", out.Sentiment)

	err = GenerateJSON(context.Background(), &fakeModel{content: "not json"}, limiter, nil, &out)
	assert.Error(t, err)

	boom := errors.New("boom")
	err = GenerateJSON(context.Background(), &fakeModel{err: boom}, limiter, nil, &out)
	assert.ErrorIs(t, err, boom)
}

func TestGenerateText(t *testing.T) {
	out, err := GenerateText(context.Background(), &fakeModel{content: "  ## Report\n\nAll good.\n"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "## Report\n\nAll good.", out)

	_, err = GenerateText(context.Background(), &fakeModel{content: "   "}, nil, nil)
	assert.Error(t, err)
}
