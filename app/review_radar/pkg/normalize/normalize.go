// Package normalize 将各来源的原生记录转换为统一的 model.Review。
package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/source"
)

// ErrMalformedRecord 记录缺少必填字段
var ErrMalformedRecord = errors.New("malformed record")

// Normalize 将单条原生记录转换为统一评论，纯函数
func Normalize(rec source.Record) (model.Review, error) {
	var r model.Review

	switch v := rec.(type) {
	case *source.AmazonReview:
		r = model.Review{
			Source:    model.SourceAmazon,
			Author:    v.Author,
			Text:      v.Text,
			Title:     v.Title,
			Timestamp: v.Date,
			Rating:    clamp(v.Rating, 0, 5),
			Verified:  v.Verified,
		}
	case *source.TrustpilotReview:
		r = model.Review{
			Source:    model.SourceTrustpilot,
			Author:    v.Author,
			Text:      v.Text,
			Title:     v.Title,
			Timestamp: v.Date,
			Rating:    clamp(v.Rating, 0, 5),
			Verified:  v.Verified,
			Extra:     extra("url", v.URL),
		}
	case *source.RedditPost:
		score := v.Score
		r = model.Review{
			Source:           model.SourceReddit,
			Author:           v.Author,
			Text:             v.Text,
			Title:            v.Title,
			Timestamp:        v.Date,
			PopularitySignal: &score,
			Extra:            extra("subreddit", v.Subreddit, "url", v.URL, "type", v.Type),
		}
	case *source.YouTubeComment:
		likes := v.Likes
		r = model.Review{
			Source:           model.SourceYouTube,
			Author:           v.Author,
			Text:             v.Text,
			Timestamp:        v.Date,
			PopularitySignal: &likes,
			Extra:            extra("video_title", v.VideoTitle, "video_url", v.VideoURL, "channel", v.Channel),
		}
	case *source.WebArticle:
		r = model.Review{
			Source:    model.SourceWeb,
			Author:    v.Site,
			Text:      v.Content,
			Title:     v.Title,
			Timestamp: v.PublishedDate,
			Extra:     extra("url", v.URL, "relevance", formatScore(v.Score)),
		}
	case nil:
		return model.Review{}, fmt.Errorf("%w: nil record", ErrMalformedRecord)
	default:
		return model.Review{}, fmt.Errorf("%w: unsupported record type %T", ErrMalformedRecord, rec)
	}

	r.Author = strings.TrimSpace(r.Author)
	r.Text = strings.TrimSpace(r.Text)
	r.Title = strings.TrimSpace(r.Title)
	if r.Author == "" {
		return model.Review{}, fmt.Errorf("%w: %s record without author", ErrMalformedRecord, r.Source)
	}
	if r.Text == "" {
		return model.Review{}, fmt.Errorf("%w: %s record without text", ErrMalformedRecord, r.Source)
	}

	applySentiment(&r, rec.SentimentData())
	return r, nil
}

// NormalizeAll 批量转换，缺少必填字段的记录被静默丢弃
func NormalizeAll(recs []source.Record) (reviews []model.Review, dropped int) {
	reviews = make([]model.Review, 0, len(recs))
	for _, rec := range recs {
		r, err := Normalize(rec)
		if err != nil {
			dropped++
			continue
		}
		reviews = append(reviews, r)
	}
	return reviews, dropped
}

// applySentiment 合并嵌套与扁平的情感字段，嵌套优先
func applySentiment(r *model.Review, a *source.Analysis) {
	r.Sentiment = model.Neutral
	if a == nil {
		return
	}

	label := a.Sentiment.Label
	polarity, subjectivity := a.Polarity, a.Subjectivity
	if n := a.Sentiment.Nested; n != nil {
		if n.Sentiment != "" {
			label = n.Sentiment
		}
		if n.Polarity != nil {
			polarity = n.Polarity
		}
		if n.Subjectivity != nil {
			subjectivity = n.Subjectivity
		}
	}

	sentiment, ok := model.ParseSentiment(label)
	if !ok {
		// 未知情感：中性，极性为 0
		return
	}
	r.Sentiment = sentiment
	if polarity != nil {
		r.Polarity = clamp(*polarity, -1, 1)
	}
	if subjectivity != nil {
		r.Subjectivity = clamp(*subjectivity, 0, 1)
	}
}

func extra(kv ...string) map[string]string {
	var m map[string]string
	for i := 0; i+1 < len(kv); i += 2 {
		v := strings.TrimSpace(kv[i+1])
		if v == "" {
			continue
		}
		if m == nil {
			m = make(map[string]string)
		}
		m[kv[i]] = v
	}
	return m
}

func formatScore(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
