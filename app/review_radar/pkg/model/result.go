package model

import "time"

// Mode 搜索模式
type Mode string

const (
	ModeSingle      Mode = "single"
	ModeComparative Mode = "comparative"
)

// SourceStatus 单个来源的查询结果状态
type SourceStatus string

const (
	StatusOK    SourceStatus = "ok"
	StatusEmpty SourceStatus = "empty"
	StatusError SourceStatus = "error"
)

// SourceMeta 单个来源的元信息
type SourceMeta struct {
	Status SourceStatus `json:"status"`
	// Name 来源匹配到的商品或店铺名
	Name    string  `json:"name,omitempty"`
	Rating  float64 `json:"rating,omitempty"`
	Total   int     `json:"total,omitempty"`
	Count   int     `json:"count"`
	Dropped int     `json:"dropped"`
	Error   string  `json:"error,omitempty"`
}

// SubjectResult 对比模式下单个对象的汇总
type SubjectResult struct {
	Name       string                `json:"name"`
	Reviews    []Review              `json:"reviews"`
	Statistics AggregateStatistics   `json:"statistics"`
	SourceMeta map[Source]SourceMeta `json:"source_meta"`
}

// Result 一次搜索交给展示层的结果
type Result struct {
	ID         string              `json:"id"`
	Generation uint64              `json:"generation"`
	Query      string              `json:"query"`
	Mode       Mode                `json:"mode"`
	Subjects   []string            `json:"subjects,omitempty"`
	Reviews    []Review            `json:"reviews"`
	Statistics AggregateStatistics `json:"statistics"`

	Insights     *InsightReport        `json:"insights,omitempty"`
	Comparison   []AttributeComparison `json:"comparison,omitempty"`
	Competitive  *CompetitiveInsights  `json:"competitive_insights,omitempty"`
	PerSubject   []SubjectResult       `json:"per_subject,omitempty"`
	Summary      *ComparisonSummary    `json:"comparison_summary,omitempty"`
	InsightError string                `json:"insight_error,omitempty"`

	SourceMeta map[Source]SourceMeta `json:"source_meta"`
	// SourceErrors 单对象模式下失败来源的错误信息，对比模式见 PerSubject
	SourceErrors map[Source]string `json:"source_errors,omitempty"`
	Error        string            `json:"error,omitempty"`
	StartedAt    time.Time         `json:"started_at"`
	Duration     time.Duration     `json:"duration"`
}
