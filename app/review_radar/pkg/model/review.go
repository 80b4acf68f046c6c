package model

import (
	"fmt"
	"strings"
)

// Source 评论来源标签（封闭集合）
type Source string

const (
	SourceAmazon     Source = "amazon"
	SourceReddit     Source = "reddit"
	SourceYouTube    Source = "youtube"
	SourceTrustpilot Source = "trustpilot"
	SourceWeb        Source = "web"
)

// AllSources 固定的来源顺序，汇总结果时按此顺序展开
var AllSources = []Source{SourceAmazon, SourceReddit, SourceYouTube, SourceTrustpilot, SourceWeb}

// ParseSource 将字符串解析为受支持的来源
func ParseSource(s string) (Source, error) {
	src := Source(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllSources {
		if src == known {
			return src, nil
		}
	}
	return "", fmt.Errorf("unknown source: %q", s)
}

// Sentiment 情感分类
type Sentiment string

const (
	Positive Sentiment = "positive"
	Neutral  Sentiment = "neutral"
	Negative Sentiment = "negative"
)

// ParseSentiment 解析情感标签，无法识别时返回 Neutral 和 false
func ParseSentiment(s string) (Sentiment, bool) {
	switch Sentiment(strings.ToLower(strings.TrimSpace(s))) {
	case Positive:
		return Positive, true
	case Negative:
		return Negative, true
	case Neutral:
		return Neutral, true
	}
	return Neutral, false
}

// Review 统一后的评论实体
type Review struct {
	Source    Source `json:"source"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	Title     string `json:"title,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	// Rating 为 0 表示未评分，此时参考 PopularitySignal
	Rating           float64           `json:"rating"`
	PopularitySignal *int              `json:"popularity_signal,omitempty"`
	Verified         bool              `json:"verified"`
	Sentiment        Sentiment         `json:"sentiment"`
	Polarity         float64           `json:"polarity"`
	Subjectivity     float64           `json:"subjectivity"`
	Extra            map[string]string `json:"source_extra,omitempty"`
}

// Rated 是否带有星级评分
func (r Review) Rated() bool {
	return r.Rating > 0
}
