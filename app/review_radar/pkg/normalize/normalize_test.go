package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/source"
)

func decode(t *testing.T, src model.Source, raw string) source.Record {
	t.Helper()
	rec, ok := source.NewRecord(src)
	require.True(t, ok)
	require.NoError(t, json.Unmarshal([]byte(raw), rec))
	return rec
}

func TestNormalizeAmazon(t *testing.T) {
	rec := decode(t, model.SourceAmazon, `{
		"author":"  Jane ","rating":4,"title":"Solid","text":"Great boots, very durable.",
		"date":"2024-01-02","verified":true,"sentiment":"positive","polarity":0.6,"subjectivity":0.4}`)

	r, err := Normalize(rec)
	require.NoError(t, err)
	assert.Equal(t, model.SourceAmazon, r.Source)
	assert.Equal(t, "Jane", r.Author)
	assert.Equal(t, 4.0, r.Rating)
	assert.True(t, r.Verified)
	assert.Nil(t, r.PopularitySignal)
	assert.Equal(t, model.Positive, r.Sentiment)
	assert.InDelta(t, 0.6, r.Polarity, 1e-9)
	assert.InDelta(t, 0.4, r.Subjectivity, 1e-9)
	assert.Nil(t, r.Extra)
}

func TestNormalizePopularitySources(t *testing.T) {
	reddit := decode(t, model.SourceReddit, `{"author":"u1","title":"Thoughts","text":"they fell apart",
		"score":42,"subreddit":"BuyItForLife","url":"https://reddit.com/r/x","type":"post"}`)
	r, err := Normalize(reddit)
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.Rating)
	require.NotNil(t, r.PopularitySignal)
	assert.Equal(t, 42, *r.PopularitySignal)
	assert.Equal(t, "BuyItForLife", r.Extra["subreddit"])
	assert.Equal(t, "post", r.Extra["type"])

	yt := decode(t, model.SourceYouTube, `{"author":"viewer","text":"nice review","likes":7,
		"video_title":"Boot review","video_url":"https://youtube.com/watch?v=1","channel":"Gear"}`)
	r, err = Normalize(yt)
	require.NoError(t, err)
	assert.Equal(t, 7, *r.PopularitySignal)
	assert.Equal(t, "Boot review", r.Extra["video_title"])
	assert.Equal(t, "Gear", r.Extra["channel"])
	assert.False(t, r.Verified)
}

func TestNormalizeSentimentCoalescing(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantLabel    model.Sentiment
		wantPolarity float64
		wantSubj     float64
	}{
		{
			name:         "nested wins over flat",
			raw:          `{"author":"a","text":"t","sentiment":{"sentiment":"negative","polarity":-0.5,"subjectivity":0.8},"polarity":0.9}`,
			wantLabel:    model.Negative,
			wantPolarity: -0.5,
			wantSubj:     0.8,
		},
		{
			name:         "nested label falls back to flat scores",
			raw:          `{"author":"a","text":"t","sentiment":{"sentiment":"positive"},"polarity":0.3,"subjectivity":0.2}`,
			wantLabel:    model.Positive,
			wantPolarity: 0.3,
			wantSubj:     0.2,
		},
		{
			name:      "missing sentiment",
			raw:       `{"author":"a","text":"t","polarity":0.7}`,
			wantLabel: model.Neutral,
		},
		{
			name:      "unknown label",
			raw:       `{"author":"a","text":"t","sentiment":"ecstatic","polarity":0.7}`,
			wantLabel: model.Neutral,
		},
		{
			name:         "clamped",
			raw:          `{"author":"a","text":"t","sentiment":"POSITIVE","polarity":3,"subjectivity":-1}`,
			wantLabel:    model.Positive,
			wantPolarity: 1,
			wantSubj:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Normalize(decode(t, model.SourceTrustpilot, tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, r.Sentiment)
			assert.InDelta(t, tt.wantPolarity, r.Polarity, 1e-9)
			assert.InDelta(t, tt.wantSubj, r.Subjectivity, 1e-9)
		})
	}
}

func TestNormalizeRatingClamp(t *testing.T) {
	r, err := Normalize(&source.AmazonReview{Author: "a", Text: "t", Rating: 7})
	require.NoError(t, err)
	assert.Equal(t, 5.0, r.Rating)

	r, err = Normalize(&source.AmazonReview{Author: "a", Text: "t", Rating: -2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.Rating)
}

func TestNormalizeMalformed(t *testing.T) {
	tests := []struct {
		name string
		rec  source.Record
	}{
		{"nil", nil},
		{"empty text", &source.AmazonReview{Author: "a", Text: "   "}},
		{"empty author", &source.RedditPost{Text: "hello"}},
		{"empty web content", &source.WebArticle{Site: "example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.rec)
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	recs := []source.Record{
		decode(t, model.SourceAmazon, `{"author":"a","text":"fine","rating":3,"sentiment":"neutral"}`),
		decode(t, model.SourceReddit, `{"author":"b","text":"meh","score":-3,"subreddit":"x"}`),
		decode(t, model.SourceWeb, `{"site":"example.com","content":"review body","url":"https://example.com/r","score":0.87}`),
	}
	for _, rec := range recs {
		first, err := Normalize(rec)
		require.NoError(t, err)
		second, err := Normalize(rec)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestNormalizeAll(t *testing.T) {
	recs := []source.Record{
		&source.AmazonReview{Author: "a", Text: "ok"},
		&source.AmazonReview{Author: "b"},
		&source.YouTubeComment{Author: "c", Text: "cool", Likes: 1},
	}
	reviews, dropped := NormalizeAll(recs)
	assert.Len(t, reviews, 2)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "a", reviews[0].Author)
	assert.Equal(t, "c", reviews[1].Author)
}
