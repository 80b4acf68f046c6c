package model

import "strings"

// Attribute 对比维度
type Attribute string

const (
	AttrQuality             Attribute = "quality"
	AttrComfort             Attribute = "comfort"
	AttrDurability          Attribute = "durability"
	AttrStyle               Attribute = "style"
	AttrPrice               Attribute = "price"
	AttrValueForMoney       Attribute = "value_for_money"
	AttrBreakInPeriod       Attribute = "break_in_period"
	AttrOverallSatisfaction Attribute = "overall_satisfaction"
)

// Taxonomy 固定的维度列表，顺序即展示顺序
var Taxonomy = []Attribute{
	AttrQuality,
	AttrComfort,
	AttrDurability,
	AttrStyle,
	AttrPrice,
	AttrValueForMoney,
	AttrBreakInPeriod,
	AttrOverallSatisfaction,
}

// Label 人类可读的维度名，如 "value for money"
func (a Attribute) Label() string {
	return strings.ReplaceAll(string(a), "_", " ")
}

// PointOrigin 要点的来源
type PointOrigin string

const (
	// OriginMatched 从优缺点文本中按关键词匹配得到
	OriginMatched PointOrigin = "matched"
	// OriginReasoning 从胜负理由中截取
	OriginReasoning PointOrigin = "reasoning"
	// OriginFiller 没有证据时的占位语句
	OriginFiller PointOrigin = "filler"
)

// Point 单条要点
type Point struct {
	Text   string      `json:"text"`
	Origin PointOrigin `json:"origin"`
}

// SubjectPoints 某个对象在某维度下的正负要点
type SubjectPoints struct {
	Positive []Point `json:"positive"`
	Negative []Point `json:"negative"`
}

// SentimentBreakdown 某维度下归类评论的正负统计，百分比以 Mentions 为分母
type SentimentBreakdown struct {
	Mentions      int     `json:"mentions"`
	PositiveCount int     `json:"positive_count"`
	NegativeCount int     `json:"negative_count"`
	PositivePct   float64 `json:"positive_pct"`
	NegativePct   float64 `json:"negative_pct"`
}

// Evidence 有明确倾向的评论数
func (b SentimentBreakdown) Evidence() int {
	return b.PositiveCount + b.NegativeCount
}

// AttributeComparison 单个维度的对比结论
type AttributeComparison struct {
	Attribute Attribute                     `json:"attribute"`
	Winner    string                        `json:"winner"`
	Reasoning string                        `json:"reasoning"`
	Breakdown map[string]SentimentBreakdown `json:"sentiment_breakdown"`
	Points    map[string]SubjectPoints      `json:"points"`
	// Derived 为 true 表示胜负由评论统计推导，而非洞察服务给出
	Derived bool `json:"derived"`
}
