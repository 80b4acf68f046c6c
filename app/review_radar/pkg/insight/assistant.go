package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/llm"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/logger"
	rmodel "github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
)

var (
	// ErrLLMNotConfigured 未配置聊天模型
	ErrLLMNotConfigured = errors.New("llm not configured")
	// ErrEmptyQuestion 问题为空
	ErrEmptyQuestion = errors.New("no question provided")
)

// maxChatHistory 问答时带入的最近对话轮数
const maxChatHistory = 6

// ChatTurn 一轮历史对话，Role 为 user 或 assistant
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat 以前 30 条评论为上下文回答问题，只带入最近 6 轮历史
func (g *Generator) Chat(ctx context.Context, question string, history []ChatTurn, reviews []rmodel.Review) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}
	if g == nil || g.chatModel == nil {
		return "", ErrLLMNotConfigured
	}

	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}
	messages := make([]*schema.Message, 0, len(history)+2)
	messages = append(messages, &schema.Message{Role: schema.System, Content: fmt.Sprintf(chatPrompt, formatReviews(reviews))})
	for _, turn := range history {
		if strings.TrimSpace(turn.Content) == "" {
			continue
		}
		role := schema.User
		if turn.Role == string(schema.Assistant) {
			role = schema.Assistant
		}
		messages = append(messages, &schema.Message{Role: role, Content: turn.Content})
	}
	messages = append(messages, &schema.Message{Role: schema.User, Content: question})

	answer, err := llm.GenerateText(ctx, g.chatModel, g.limiter, messages, model.WithTemperature(0.7), model.WithMaxTokens(1500))
	if err != nil {
		logger.Log.Errorf("评论问答失败: %v", err)
		return "", fmt.Errorf("chat failed: %w", err)
	}
	return answer, nil
}

// GenerateReport 根据洞察生成 markdown 格式的管理层报告，subject 为报告对象
func (g *Generator) GenerateReport(ctx context.Context, insights any, subject string) (string, error) {
	if g == nil || g.chatModel == nil {
		return "", ErrLLMNotConfigured
	}
	data, err := json.MarshalIndent(insights, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal insights: %w", err)
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: reportSystemPrompt},
		{Role: schema.User, Content: fmt.Sprintf(reportPrompt, subject, data)},
	}
	report, err := llm.GenerateText(ctx, g.chatModel, g.limiter, messages, model.WithTemperature(0.7), model.WithMaxTokens(3000))
	if err != nil {
		logger.Log.Errorf("生成报告失败: %v", err)
		return "", fmt.Errorf("report failed: %w", err)
	}
	return report, nil
}
