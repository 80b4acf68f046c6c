package source

import "github.com/iWorld-y/review_radar/app/review_radar/pkg/model"

// Record 来源原生记录，按 Origin 区分具体类型
type Record interface {
	Origin() model.Source
	// Body 用于情感分析的正文
	Body() string
	// StarRating 星级评分，没有则为 0
	StarRating() float64
	SentimentData() *Analysis
}

// AmazonReview 电商评论
type AmazonReview struct {
	Author   string  `json:"author"`
	Rating   float64 `json:"rating"`
	Title    string  `json:"title"`
	Text     string  `json:"text"`
	Date     string  `json:"date"`
	Verified bool    `json:"verified"`
	Analysis
}

func (r *AmazonReview) Origin() model.Source     { return model.SourceAmazon }
func (r *AmazonReview) Body() string             { return r.Text }
func (r *AmazonReview) StarRating() float64      { return r.Rating }
func (r *AmazonReview) SentimentData() *Analysis { return &r.Analysis }

// TrustpilotReview 评价站评论
type TrustpilotReview struct {
	Author   string  `json:"author"`
	Rating   float64 `json:"rating"`
	Title    string  `json:"title"`
	Text     string  `json:"text"`
	Date     string  `json:"date"`
	Verified bool    `json:"verified"`
	URL      string  `json:"url"`
	Analysis
}

func (r *TrustpilotReview) Origin() model.Source     { return model.SourceTrustpilot }
func (r *TrustpilotReview) Body() string             { return r.Text }
func (r *TrustpilotReview) StarRating() float64      { return r.Rating }
func (r *TrustpilotReview) SentimentData() *Analysis { return &r.Analysis }

// RedditPost 论坛帖子或评论，以 Score（点赞）代替评分
type RedditPost struct {
	Author    string `json:"author"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Date      string `json:"date"`
	Score     int    `json:"score"`
	URL       string `json:"url"`
	Subreddit string `json:"subreddit"`
	Type      string `json:"type"`
	Analysis
}

func (r *RedditPost) Origin() model.Source     { return model.SourceReddit }
func (r *RedditPost) Body() string             { return r.Text }
func (r *RedditPost) StarRating() float64      { return 0 }
func (r *RedditPost) SentimentData() *Analysis { return &r.Analysis }

// YouTubeComment 评测视频下的评论，以 Likes 代替评分
type YouTubeComment struct {
	Author     string `json:"author"`
	Text       string `json:"text"`
	Date       string `json:"date"`
	Likes      int    `json:"likes"`
	VideoTitle string `json:"video_title"`
	VideoURL   string `json:"video_url"`
	Channel    string `json:"channel"`
	Analysis
}

func (r *YouTubeComment) Origin() model.Source     { return model.SourceYouTube }
func (r *YouTubeComment) Body() string             { return r.Text }
func (r *YouTubeComment) StarRating() float64      { return 0 }
func (r *YouTubeComment) SentimentData() *Analysis { return &r.Analysis }

// WebArticle 网页评测文章
type WebArticle struct {
	Site          string  `json:"site"`
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	PublishedDate string  `json:"published_date"`
	Score         float64 `json:"score"`
	Analysis
}

func (r *WebArticle) Origin() model.Source     { return model.SourceWeb }
func (r *WebArticle) Body() string             { return r.Content }
func (r *WebArticle) StarRating() float64      { return 0 }
func (r *WebArticle) SentimentData() *Analysis { return &r.Analysis }

// NewRecord 按来源返回一个空的原生记录，用于 JSON 解码
func NewRecord(src model.Source) (Record, bool) {
	switch src {
	case model.SourceAmazon:
		return &AmazonReview{}, true
	case model.SourceTrustpilot:
		return &TrustpilotReview{}, true
	case model.SourceReddit:
		return &RedditPost{}, true
	case model.SourceYouTube:
		return &YouTubeComment{}, true
	case model.SourceWeb:
		return &WebArticle{}, true
	}
	return nil, false
}
