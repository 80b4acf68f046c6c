// Package searxng 通过自建 SearXNG 实例检索网页评测文章。
package searxng

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/search"
)

const (
	userAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	defaultTimeout = 30 * time.Second
)

// Client SearXNG API 客户端
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient 创建 SearXNG 客户端，timeout 单位为秒，0 使用默认值
func NewClient(baseURL string, timeout int) *Client {
	t := time.Duration(timeout) * time.Second
	if t <= 0 {
		t = defaultTimeout
	}
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: t}}
}

var _ search.Searcher = (*Client)(nil)

type searchResponse struct {
	Results []struct {
		Title         string  `json:"title"`
		URL           string  `json:"url"`
		Content       string  `json:"content"`
		PublishedDate string  `json:"publishedDate"`
		Score         float64 `json:"score"`
	} `json:"results"`
}

// endpoint 拼出 /search 地址，SearXNG 不支持排除站点参数，改用 -site: 语法
func (c *Client) endpoint(req *search.Request) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid searxng base url: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/search"

	terms := []string{req.Query}
	for _, d := range req.ExcludeDomains {
		terms = append(terms, "-site:"+d)
	}
	u.RawQuery = url.Values{
		"q":          {strings.Join(terms, " ")},
		"format":     {"json"},
		"categories": {"general"},
	}.Encode()
	return u.String(), nil
}

// Search 实现 search.Searcher，SearXNG 不返回原文，RawContent 为空
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	endpoint, err := c.endpoint(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("searxng request failed: %w", err)
	}
	defer res.Body.Close()

	if err := search.CheckStatus("searxng", res); err != nil {
		return nil, err
	}

	var out searchResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode searxng response failed: %w", err)
	}

	results := make([]search.Result, 0, len(out.Results))
	for _, r := range out.Results {
		results = append(results, search.Result{
			Title:         r.Title,
			URL:           r.URL,
			Content:       r.Content,
			Score:         r.Score,
			PublishedDate: r.PublishedDate,
		})
	}
	return &search.Response{Results: search.Collect(results, req.MaxResults)}, nil
}
