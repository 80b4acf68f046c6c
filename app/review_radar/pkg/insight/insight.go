// Package insight 调用 LLM 生成评论洞察报告与对比结论。
package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/llm"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/logger"
	rmodel "github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
)

// ErrInsightGeneration 洞察生成失败，调用方只降级展示，不影响评论与统计
var ErrInsightGeneration = errors.New("insight generation failed")

// maxPromptReviews 每次提示词最多带入的评论数
const maxPromptReviews = 30

const systemPrompt = "You are a business intelligence analyst specializing in customer sentiment analysis. Always respond with valid JSON only."

// Subject 对比模式下的一个对象
type Subject struct {
	Name       string
	Reviews    []rmodel.Review
	Statistics rmodel.AggregateStatistics
}

// Generator 洞察生成器
type Generator struct {
	chatModel llm.ChatModel
	limiter   *rate.Limiter
}

// NewGenerator 创建洞察生成器
func NewGenerator(cm llm.ChatModel, limiter *rate.Limiter) *Generator {
	return &Generator{chatModel: cm, limiter: limiter}
}

// GenerateInsights 为单对象搜索生成洞察报告，只调用一次，不重试
func (g *Generator) GenerateInsights(ctx context.Context, query string, reviews []rmodel.Review) (*rmodel.InsightReport, error) {
	if len(reviews) == 0 {
		return nil, fmt.Errorf("%w: no reviews provided", ErrInsightGeneration)
	}

	prompt := fmt.Sprintf(singlePrompt, query, formatReviews(reviews))
	var report rmodel.InsightReport
	if err := g.generate(ctx, prompt, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// GenerateCompetitiveInsights 为两个对象生成逐维度的胜负判断与优缺点
func (g *Generator) GenerateCompetitiveInsights(ctx context.Context, a, b Subject) (*rmodel.CompetitiveInsights, error) {
	if len(a.Reviews) == 0 && len(b.Reviews) == 0 {
		return nil, fmt.Errorf("%w: no reviews provided", ErrInsightGeneration)
	}

	attrs := make([]string, len(rmodel.Taxonomy))
	for i, attr := range rmodel.Taxonomy {
		attrs[i] = string(attr)
	}

	prompt := fmt.Sprintf(competitivePrompt,
		a.Name, describe(a), formatReviews(a.Reviews),
		b.Name, describe(b), formatReviews(b.Reviews),
		strings.Join(attrs, ", "), a.Name, b.Name)

	var out rmodel.CompetitiveInsights
	if err := g.generate(ctx, prompt, &out); err != nil {
		return nil, err
	}

	// 只保留固定维度
	for attr := range out.HeadToHead {
		if !known(attr) {
			delete(out.HeadToHead, attr)
		}
	}
	return &out, nil
}

func (g *Generator) generate(ctx context.Context, prompt string, out any) error {
	if g == nil || g.chatModel == nil {
		return fmt.Errorf("%w: llm not configured", ErrInsightGeneration)
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: prompt},
	}
	if err := llm.GenerateJSON(ctx, g.chatModel, g.limiter, messages, out, model.WithTemperature(0.7)); err != nil {
		logger.Log.Errorf("生成洞察失败: %v", err)
		return fmt.Errorf("%w: %v", ErrInsightGeneration, err)
	}
	return nil
}

func formatReviews(reviews []rmodel.Review) string {
	if len(reviews) > maxPromptReviews {
		reviews = reviews[:maxPromptReviews]
	}

	parts := make([]string, 0, len(reviews))
	for _, r := range reviews {
		rating := "N/A"
		if r.Rated() {
			rating = fmt.Sprintf("%.1f", r.Rating)
		}
		parts = append(parts, fmt.Sprintf("Rating: %s/5\nReview: %s\nSentiment: %s", rating, r.Text, r.Sentiment))
	}
	return strings.Join(parts, "\n\n")
}

func describe(s Subject) string {
	p := s.Statistics.Percentages()
	return fmt.Sprintf("%d reviews, %.1f%% positive, %.1f%% negative", s.Statistics.Total, p.Positive, p.Negative)
}

func known(attr rmodel.Attribute) bool {
	for _, a := range rmodel.Taxonomy {
		if a == attr {
			return true
		}
	}
	return false
}
