// Package sentiment 为未带情感数据的原始记录打分。
package sentiment

import (
	"context"
	"math"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/source"
)

// Method 打分方式
type Method string

const (
	MethodKeyword Method = "keyword"
	MethodLLM     Method = "llm"
)

// Result 单条文本的情感结果
type Result struct {
	Sentiment    model.Sentiment
	Polarity     float64
	Subjectivity float64
	Method       Method
}

// Analyzer 情感分析器
type Analyzer interface {
	// Analyze rating 为 0 表示没有星级评分
	Analyze(ctx context.Context, text string, rating float64) Result
}

// Score 给尚未打分的记录写入嵌套情感字段，返回是否写入
func Score(ctx context.Context, a Analyzer, rec source.Record) bool {
	data := rec.SentimentData()
	if data == nil || data.Scored() || a == nil {
		return false
	}
	res := a.Analyze(ctx, rec.Body(), rec.StarRating())
	data.SetNested(string(res.Sentiment), res.Polarity, res.Subjectivity)
	return true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
