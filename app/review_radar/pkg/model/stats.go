package model

// AggregateStatistics 评论集合的汇总统计
type AggregateStatistics struct {
	Total    int `json:"total"`
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
	// AverageRating 仅统计 rating>0 的评论，没有则为 nil
	AverageRating       *float64       `json:"average_rating"`
	AveragePolarity     float64        `json:"average_polarity"`
	AverageSubjectivity float64        `json:"average_subjectivity"`
	BySource            map[Source]int `json:"by_source"`
}

// Percentages 各情感占比
type Percentages struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// Percentages 计算各情感百分比，Total 为 0 时全部为 0
func (s AggregateStatistics) Percentages() Percentages {
	if s.Total == 0 {
		return Percentages{}
	}
	total := float64(s.Total)
	return Percentages{
		Positive: float64(s.Positive) / total * 100,
		Neutral:  float64(s.Neutral) / total * 100,
		Negative: float64(s.Negative) / total * 100,
	}
}

// ComparisonSummary 对比模式下两个对象的整体差异
type ComparisonSummary struct {
	// SentimentDifference 正面占比之差（百分点），A 减 B
	SentimentDifference float64 `json:"sentiment_difference"`
	TotalReviews        int     `json:"total_reviews_compared"`
}
