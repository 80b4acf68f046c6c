// Package reddit 通过公开的 search.json 接口抓取讨论帖及其热门评论。
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/config"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/logger"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/source"
)

const (
	searchLimit    = 20
	maxTextLen     = 1500
	minPostLen     = 50
	minCommentLen  = 30
	anonymous      = "Anonymous"
	permalinkHost  = "https://reddit.com"
	commentTitleLn = 50
)

// Client Reddit 连接器
type Client struct {
	baseURL         string
	userAgent       string
	subreddits      []string
	commentsPerPost int
	httpClient      *http.Client
	limiter         *rate.Limiter
}

// NewClient 创建 Reddit 连接器
func NewClient(cfg config.RedditConfig, limiter *rate.Limiter) *Client {
	return &Client{
		baseURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent:       cfg.UserAgent,
		subreddits:      cfg.Subreddits,
		commentsPerPost: cfg.CommentsPerPost,
		httpClient:      &http.Client{Timeout: 10 * time.Second},
		limiter:         limiter,
	}
}

var _ source.Connector = (*Client)(nil)

// Name implements source.Connector
func (c *Client) Name() model.Source { return model.SourceReddit }

// thing listing 中的单条数据，帖子与评论共用
type thing struct {
	ID         string  `json:"id"`
	Author     string  `json:"author"`
	Title      string  `json:"title"`
	SelfText   string  `json:"selftext"`
	Body       string  `json:"body"`
	Score      int     `json:"score"`
	Permalink  string  `json:"permalink"`
	Subreddit  string  `json:"subreddit"`
	CreatedUTC float64 `json:"created_utc"`
}

type listing struct {
	Kind string `json:"kind"`
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Kind string `json:"kind"`
			Data thing  `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Search implements source.Connector
func (c *Client) Search(ctx context.Context, req *source.Request) (*source.Response, error) {
	posts, err := c.searchPosts(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	var records []source.Record
	full := func() bool { return req.MaxResults > 0 && len(records) >= req.MaxResults }

	for _, p := range posts {
		if full() {
			break
		}
		if text := strings.TrimSpace(p.SelfText); len(text) > minPostLen && text != "[removed]" {
			records = append(records, &source.RedditPost{
				Author:    authorOf(p.Author),
				Text:      source.Truncate(text, maxTextLen),
				Title:     p.Title,
				Date:      formatDate(p.CreatedUTC),
				Score:     p.Score,
				URL:       permalinkHost + p.Permalink,
				Subreddit: p.Subreddit,
				Type:      "post",
			})
		}

		if c.commentsPerPost <= 0 || p.ID == "" {
			continue
		}
		comments, err := c.topComments(ctx, p)
		if err != nil {
			// 单个帖子的评论失败不影响整体
			logger.Log.Warnf("获取 Reddit 评论失败 [%s]: %v", p.ID, err)
			continue
		}
		for _, cm := range comments {
			if full() {
				break
			}
			body := strings.TrimSpace(cm.Body)
			if len(body) <= minCommentLen || body == "[deleted]" || body == "[removed]" {
				continue
			}
			records = append(records, &source.RedditPost{
				Author:    authorOf(cm.Author),
				Text:      source.Truncate(body, maxTextLen),
				Title:     fmt.Sprintf("Comment on: %s...", source.Truncate(p.Title, commentTitleLn)),
				Date:      formatDate(cm.CreatedUTC),
				Score:     cm.Score,
				URL:       permalinkHost + cm.Permalink,
				Subreddit: p.Subreddit,
				Type:      "comment",
			})
		}
	}

	logger.Log.Infof("Reddit 返回 %d 条记录 [%s]", len(records), req.Query)
	return &source.Response{Records: records}, nil
}

func (c *Client) searchPosts(ctx context.Context, query string) ([]thing, error) {
	path := "/search.json"
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", fmt.Sprint(searchLimit))
	q.Set("sort", "relevance")
	q.Set("t", "all")
	if len(c.subreddits) > 0 {
		path = "/r/" + strings.Join(c.subreddits, "+") + "/search.json"
		q.Set("restrict_sr", "1")
	}

	var resp listing
	if err := c.getJSON(ctx, c.baseURL+path+"?"+q.Encode(), &resp); err != nil {
		return nil, err
	}

	posts := make([]thing, 0, len(resp.Data.Children))
	for _, child := range resp.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, nil
}

// topComments 评论接口返回 [帖子 listing, 评论 listing]
func (c *Client) topComments(ctx context.Context, p thing) ([]thing, error) {
	q := url.Values{}
	q.Set("limit", fmt.Sprint(c.commentsPerPost))
	q.Set("sort", "top")
	q.Set("depth", "1")

	var resp []listing
	if err := c.getJSON(ctx, fmt.Sprintf("%s/comments/%s.json?%s", c.baseURL, p.ID, q.Encode()), &resp); err != nil {
		return nil, err
	}
	if len(resp) < 2 {
		return nil, nil
	}

	var comments []thing
	for _, child := range resp[1].Data.Children {
		if child.Kind != "t1" {
			continue
		}
		comments = append(comments, child.Data)
		if len(comments) >= c.commentsPerPost {
			break
		}
	}
	return comments, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to Reddit API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("reddit api returned status code %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode Reddit API response: %w", err)
	}
	return nil
}

func authorOf(name string) string {
	if name == "" || name == "[deleted]" {
		return anonymous
	}
	return name
}

func formatDate(ts float64) string {
	if ts <= 0 {
		return ""
	}
	return time.Unix(int64(ts), 0).UTC().Format(time.DateOnly)
}
