// Package web 通过网页搜索找到评测文章，并用 readability 提取正文。
package web

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/config"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/logger"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/search"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/source"
)

const (
	minContentLen = 100
	fetchTimeout  = 30 * time.Second
)

// excludedDomains 已有专门连接器的站点
var excludedDomains = []string{"amazon.com", "reddit.com", "youtube.com", "trustpilot.com"}

// Fetcher 抓取网页正文
type Fetcher func(ctx context.Context, pageURL string) (string, error)

// ReadabilityFetch 使用 readability 抓取并清洗正文
func ReadabilityFetch(_ context.Context, pageURL string) (string, error) {
	article, err := readability.FromURL(pageURL, fetchTimeout)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}

// Client 网页评测连接器
type Client struct {
	searcher   search.Searcher
	fetch      Fetcher
	fetchBelow int
	maxContent int
	limiter    *rate.Limiter
}

// NewClient 创建网页评测连接器，fetch 为 nil 时使用 ReadabilityFetch
func NewClient(searcher search.Searcher, cfg config.WebSourceConfig, fetch Fetcher, limiter *rate.Limiter) *Client {
	if fetch == nil {
		fetch = ReadabilityFetch
	}
	return &Client{
		searcher:   searcher,
		fetch:      fetch,
		fetchBelow: cfg.FetchBelow,
		maxContent: cfg.MaxContent,
		limiter:    limiter,
	}
}

var _ source.Connector = (*Client)(nil)

// Name implements source.Connector
func (c *Client) Name() model.Source { return model.SourceWeb }

// Search implements source.Connector
func (c *Client) Search(ctx context.Context, req *source.Request) (*source.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := c.searcher.Search(ctx, &search.Request{
		Query:             req.Query + " review",
		MaxResults:        req.MaxResults,
		IncludeRawContent: true,
		ExcludeDomains:    excludedDomains,
	})
	if err != nil {
		return nil, fmt.Errorf("web search failed: %w", err)
	}

	var records []source.Record
	for _, item := range resp.Results {
		if req.MaxResults > 0 && len(records) >= req.MaxResults {
			break
		}

		content := item.RawContent
		if len(content) < len(item.Content) {
			content = item.Content
		}
		if len(content) < c.fetchBelow && item.URL != "" {
			fetched, err := c.fetch(ctx, item.URL)
			if err != nil {
				logger.Log.Debugf("抓取正文失败 [%s]: %v", item.URL, err)
			} else if len(fetched) > len(content) {
				content = fetched
			}
		}
		content = source.Truncate(strings.TrimSpace(content), c.maxContent)
		if len(content) <= minContentLen {
			continue
		}

		records = append(records, &source.WebArticle{
			Site:          siteOf(item.URL),
			Title:         item.Title,
			URL:           item.URL,
			Content:       content,
			PublishedDate: item.PublishedDate,
			Score:         item.Score,
		})
	}

	logger.Log.Infof("网页评测返回 %d 篇文章 [%s]", len(records), req.Query)
	return &source.Response{Records: records}, nil
}

func siteOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return "web"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
