// Package stats 计算评论集合的情感统计。
package stats

import (
	"math"
	"strings"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
)

// FilterAll 不过滤
const FilterAll = "all"

// Aggregate 单次遍历重新计算全部统计
func Aggregate(reviews []model.Review) model.AggregateStatistics {
	s := model.AggregateStatistics{
		Total:    len(reviews),
		BySource: make(map[model.Source]int),
	}
	if len(reviews) == 0 {
		return s
	}

	var (
		ratingSum, polaritySum, subjectivitySum float64
		rated                                   int
		direct                                  bool
	)
	for _, r := range reviews {
		switch r.Sentiment {
		case model.Positive:
			s.Positive++
		case model.Negative:
			s.Negative++
		default:
			s.Neutral++
		}
		s.BySource[r.Source]++

		if r.Rated() {
			ratingSum += r.Rating
			rated++
		}
		if r.Polarity != 0 {
			direct = true
		}
		polaritySum += r.Polarity
		subjectivitySum += r.Subjectivity
	}

	total := float64(s.Total)
	if rated > 0 {
		avg := Round2(ratingSum / float64(rated))
		s.AverageRating = &avg
	}
	if direct {
		s.AveragePolarity = Round2(polaritySum / total)
	} else {
		// 没有极性数据时按情感计数估算
		s.AveragePolarity = Round2(float64(s.Positive-s.Negative) / total)
	}
	s.AverageSubjectivity = Round2(subjectivitySum / total)
	return s
}

// Filter 按情感标签筛选，"all" 返回原集合，未知标签返回空集合
func Filter(reviews []model.Review, tag string) []model.Review {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == FilterAll || tag == "" {
		return reviews
	}
	want, ok := model.ParseSentiment(tag)
	if !ok {
		return []model.Review{}
	}

	out := make([]model.Review, 0, len(reviews))
	for _, r := range reviews {
		if r.Sentiment == want {
			out = append(out, r)
		}
	}
	return out
}

// CompareSummary 两个对象的整体差异
func CompareSummary(a, b model.AggregateStatistics) model.ComparisonSummary {
	return model.ComparisonSummary{
		SentimentDifference: Round1(a.Percentages().Positive - b.Percentages().Positive),
		TotalReviews:        a.Total + b.Total,
	}
}

// RoundedPercentages 保留一位小数的百分比
func RoundedPercentages(s model.AggregateStatistics) model.Percentages {
	p := s.Percentages()
	return model.Percentages{
		Positive: Round1(p.Positive),
		Neutral:  Round1(p.Neutral),
		Negative: Round1(p.Negative),
	}
}

// Round1 保留一位小数
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 保留两位小数
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
