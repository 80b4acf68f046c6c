// Package tavily 通过 Tavily 检索网页评测文章。
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/search"
)

const (
	defaultBaseURL    = "https://api.tavily.com/search"
	defaultMaxResults = 5
)

// Client Tavily API 客户端
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// Option 客户端选项
type Option func(*Client)

// WithBaseURL 替换 API 地址
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient 替换 HTTP 客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient 创建 Tavily 客户端
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{apiKey: apiKey, baseURL: defaultBaseURL, http: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ search.Searcher = (*Client)(nil)

// SearchRequest Tavily 搜索请求参数
type SearchRequest struct {
	Query string `json:"query"`
	// SearchDepth basic 或 advanced，需要原文时用 advanced
	SearchDepth       string   `json:"search_depth"`
	Topic             string   `json:"topic"`
	MaxResults        int      `json:"max_results"`
	IncludeRawContent bool     `json:"include_raw_content,omitempty"`
	ExcludeDomains    []string `json:"exclude_domains,omitempty"`
}

// SearchResponse Tavily 搜索响应
type SearchResponse struct {
	Query   string `json:"query"`
	Results []struct {
		Title         string  `json:"title"`
		URL           string  `json:"url"`
		Content       string  `json:"content"`
		RawContent    string  `json:"raw_content"`
		Score         float64 `json:"score"`
		PublishedDate string  `json:"published_date"`
	} `json:"results"`
}

// Search 实现 search.Searcher
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	body := SearchRequest{
		Query:             req.Query,
		SearchDepth:       "basic",
		Topic:             "general",
		MaxResults:        req.MaxResults,
		IncludeRawContent: req.IncludeRawContent,
		ExcludeDomains:    req.ExcludeDomains,
	}
	if body.MaxResults <= 0 {
		body.MaxResults = defaultMaxResults
	}
	if req.IncludeRawContent {
		body.SearchDepth = "advanced"
	}

	var out SearchResponse
	if err := c.post(ctx, body, &out); err != nil {
		return nil, err
	}

	results := make([]search.Result, 0, len(out.Results))
	for _, r := range out.Results {
		results = append(results, search.Result{
			Title:         r.Title,
			URL:           r.URL,
			Content:       r.Content,
			RawContent:    r.RawContent,
			Score:         r.Score,
			PublishedDate: r.PublishedDate,
		})
	}
	return &search.Response{Results: search.Collect(results, body.MaxResults)}, nil
}

func (c *Client) post(ctx context.Context, in any, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("tavily request failed: %w", err)
	}
	defer res.Body.Close()

	if err := search.CheckStatus("tavily", res); err != nil {
		return err
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tavily response failed: %w", err)
	}
	return nil
}
