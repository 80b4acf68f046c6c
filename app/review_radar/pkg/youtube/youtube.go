// Package youtube 通过 YouTube Data API v3 抓取评测视频下的评论。
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
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

const minCommentLen = 30

// Client YouTube 连接器
type Client struct {
	baseURL          string
	apiKey           string
	maxVideos        int
	commentsPerVideo int
	httpClient       *http.Client
	limiter          *rate.Limiter
}

// NewClient 创建 YouTube 连接器，缺少 API key 时返回错误
func NewClient(cfg config.YouTubeConfig, limiter *rate.Limiter) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("youtube api key is missing")
	}
	return &Client{
		baseURL:          strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:           cfg.APIKey,
		maxVideos:        cfg.MaxVideos,
		commentsPerVideo: cfg.CommentsPerVideo,
		httpClient:       &http.Client{Timeout: 15 * time.Second},
		limiter:          limiter,
	}, nil
}

var _ source.Connector = (*Client)(nil)

// Name implements source.Connector
func (c *Client) Name() model.Source { return model.SourceYouTube }

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

type commentThreadsResponse struct {
	Items []struct {
		Snippet struct {
			TopLevelComment struct {
				Snippet struct {
					AuthorDisplayName string `json:"authorDisplayName"`
					TextDisplay       string `json:"textDisplay"`
					PublishedAt       string `json:"publishedAt"`
					LikeCount         int    `json:"likeCount"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

// apiError 非 200 响应
type apiError struct {
	Status int
	Body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("youtube api error (status %d): %s", e.Status, e.Body)
}

type video struct {
	id, title, channel string
}

// Search implements source.Connector
func (c *Client) Search(ctx context.Context, req *source.Request) (*source.Response, error) {
	videos, err := c.searchVideos(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	var records []source.Record
	for _, v := range videos {
		remaining := c.commentsPerVideo
		if req.MaxResults > 0 {
			if len(records) >= req.MaxResults {
				break
			}
			remaining = min(remaining, req.MaxResults-len(records))
		}

		comments, err := c.comments(ctx, v, remaining)
		if err != nil {
			var apiErr *apiError
			if errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden {
				// 评论被关闭
				logger.Log.Debugf("视频 [%s] 评论不可用: %v", v.id, err)
				continue
			}
			return nil, err
		}
		records = append(records, comments...)
	}

	logger.Log.Infof("YouTube 返回 %d 条评论 [%s]", len(records), req.Query)
	return &source.Response{Records: records}, nil
}

func (c *Client) searchVideos(ctx context.Context, query string) ([]video, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("q", query+" review")
	q.Set("type", "video")
	q.Set("maxResults", fmt.Sprint(c.maxVideos))
	q.Set("order", "relevance")
	q.Set("relevanceLanguage", "en")

	var resp searchResponse
	if err := c.getJSON(ctx, "/search", q, &resp); err != nil {
		return nil, err
	}

	videos := make([]video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, video{id: item.ID.VideoID, title: item.Snippet.Title, channel: item.Snippet.ChannelTitle})
	}
	return videos, nil
}

func (c *Client) comments(ctx context.Context, v video, limit int) ([]source.Record, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("videoId", v.id)
	q.Set("maxResults", fmt.Sprint(limit))
	q.Set("order", "relevance")
	q.Set("textFormat", "plainText")

	var resp commentThreadsResponse
	if err := c.getJSON(ctx, "/commentThreads", q, &resp); err != nil {
		return nil, err
	}

	var records []source.Record
	for _, item := range resp.Items {
		s := item.Snippet.TopLevelComment.Snippet
		if len(s.TextDisplay) < minCommentLen {
			continue
		}
		records = append(records, &source.YouTubeComment{
			Author:     s.AuthorDisplayName,
			Text:       s.TextDisplay,
			Date:       dateOf(s.PublishedAt),
			Likes:      s.LikeCount,
			VideoTitle: v.title,
			VideoURL:   "https://www.youtube.com/watch?v=" + v.id,
			Channel:    v.channel,
		})
		if len(records) >= limit {
			break
		}
	}
	return records, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	q.Set("key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return &apiError{Status: res.StatusCode, Body: string(body)}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response failed: %w", err)
	}
	return nil
}

func dateOf(publishedAt string) string {
	if len(publishedAt) >= 10 {
		return publishedAt[:10]
	}
	return publishedAt
}
