// Package llm 封装聊天模型的创建与 JSON 响应处理。
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/config"
)

// ChatModel 只依赖 Generate，便于测试替换
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// NewChatModel 初始化 OpenAI 兼容的聊天模型
func NewChatModel(ctx context.Context, cfg config.LLMConfig) (ChatModel, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return cm, nil
}

// NewLimiter 按 RPM 和 QPS 创建限流器
func NewLimiter(cfg config.ConcurrencyConfig) *rate.Limiter {
	limit := rate.Limit(float64(cfg.RPM) / 60.0)
	burst := cfg.QPS
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(limit, burst)
}

// CleanJSON 去掉模型输出中的 markdown 代码块标记
func CleanJSON(content string) string {
	clean := strings.TrimSpace(content)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// GenerateText 限流后调用模型，返回去掉首尾空白的文本
func GenerateText(ctx context.Context, cm ChatModel, limiter *rate.Limiter, messages []*schema.Message, opts ...model.Option) (string, error) {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return "", err
		}
	}
	resp, err := cm.Generate(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", fmt.Errorf("empty response")
	}
	return strings.TrimSpace(resp.Content), nil
}

// GenerateJSON 限流后调用模型，并将响应解码到 out
func GenerateJSON(ctx context.Context, cm ChatModel, limiter *rate.Limiter, messages []*schema.Message, out any, opts ...model.Option) error {
	content, err := GenerateText(ctx, cm, limiter, messages, opts...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(CleanJSON(content)), out); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	return nil
}
