package sentiment

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/llm"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/logger"
	rmodel "github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
)

const systemPrompt = `You are a sentiment analyzer. Analyze the overall sentiment of product reviews considering context, sarcasm, and mixed emotions. Respond with ONLY a JSON object: {"sentiment": "positive"|"negative"|"neutral", "confidence": 0.0-1.0, "reasoning": "brief explanation"}`

type llmVerdict struct {
	Sentiment  string   `json:"sentiment"`
	Confidence *float64 `json:"confidence"`
}

// LLMAnalyzer 使用聊天模型判断情感，失败时退回 fallback
type LLMAnalyzer struct {
	chatModel llm.ChatModel
	limiter   *rate.Limiter
	fallback  Analyzer
}

// NewLLMAnalyzer 创建 LLM 分析器，fallback 为 nil 时使用 KeywordAnalyzer
func NewLLMAnalyzer(cm llm.ChatModel, limiter *rate.Limiter, fallback Analyzer) *LLMAnalyzer {
	if fallback == nil {
		fallback = NewKeywordAnalyzer()
	}
	return &LLMAnalyzer{chatModel: cm, limiter: limiter, fallback: fallback}
}

// Analyze 实现 Analyzer
func (a *LLMAnalyzer) Analyze(ctx context.Context, text string, rating float64) Result {
	res, err := a.classify(ctx, text)
	if err != nil {
		logger.Log.Warnf("LLM 情感分析失败，使用关键词分析: %v", err)
		return a.fallback.Analyze(ctx, text, rating)
	}
	return res
}

func (a *LLMAnalyzer) classify(ctx context.Context, text string) (Result, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: "Analyze this review sentiment:\n\n" + text},
	}

	var v llmVerdict
	err := llm.GenerateJSON(ctx, a.chatModel, a.limiter, messages, &v,
		model.WithTemperature(0.3), model.WithMaxTokens(100))
	if err != nil {
		return Result{}, err
	}

	label, ok := rmodel.ParseSentiment(v.Sentiment)
	if !ok {
		return Result{}, fmt.Errorf("unexpected sentiment label %q", v.Sentiment)
	}
	confidence := 0.5
	if v.Confidence != nil {
		confidence = clamp01(*v.Confidence)
	}

	var polarity float64
	switch label {
	case rmodel.Positive:
		polarity = 0.3 + confidence*0.7
	case rmodel.Negative:
		polarity = -0.3 - confidence*0.7
	}

	return Result{
		Sentiment:    label,
		Polarity:     round2(polarity),
		Subjectivity: 0.5,
		Method:       MethodLLM,
	}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
