package model

// Theme 评论主题
type Theme struct {
	Theme       string `json:"theme"`
	Sentiment   string `json:"sentiment"`
	Frequency   string `json:"frequency"`
	Description string `json:"description"`
}

// Strength 用户认可的优点
type Strength struct {
	Strength string `json:"strength"`
	Impact   string `json:"impact"`
	Examples string `json:"examples"`
}

// PainPoint 用户痛点
type PainPoint struct {
	Issue          string `json:"issue"`
	Severity       string `json:"severity"`
	Recommendation string `json:"recommendation"`
}

// Recommendation 行动建议
type Recommendation struct {
	Priority       string `json:"priority"`
	Action         string `json:"action"`
	ExpectedImpact string `json:"expected_impact"`
}

// SentimentDrivers 情感驱动因素
type SentimentDrivers struct {
	PositiveDrivers []string `json:"positive_drivers"`
	NegativeDrivers []string `json:"negative_drivers"`
}

// InsightReport 单对象模式下的洞察报告
type InsightReport struct {
	ExecutiveSummary string           `json:"executive_summary"`
	KeyThemes        []Theme          `json:"key_themes"`
	Strengths        []Strength       `json:"strengths"`
	PainPoints       []PainPoint      `json:"pain_points"`
	Recommendations  []Recommendation `json:"recommendations"`
	SentimentDrivers SentimentDrivers `json:"sentiment_drivers"`
}

// HeadToHead 洞察服务给出的单维度胜负
type HeadToHead struct {
	Winner    string `json:"winner"`
	Reasoning string `json:"reasoning"`
}

// CompetitiveInsights 对比模式下的洞察
type CompetitiveInsights struct {
	HeadToHead       map[Attribute]HeadToHead `json:"head_to_head_comparison"`
	StrengthsA       []string                 `json:"subject_a_strengths"`
	WeaknessesA      []string                 `json:"subject_a_weaknesses"`
	StrengthsB       []string                 `json:"subject_b_strengths"`
	WeaknessesB      []string                 `json:"subject_b_weaknesses"`
	ExecutiveSummary string                   `json:"executive_summary"`
}
