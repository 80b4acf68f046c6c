// Package gateway 是外部抓取服务的客户端，电商与评价站的评论经由它获取。
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/logger"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/source"
)

// Client 单个来源的抓取服务连接器
type Client struct {
	src        model.Source
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient 创建连接器，src 只能是抓取服务支持的来源
func NewClient(src model.Source, baseURL string, timeout time.Duration, limiter *rate.Limiter) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("gateway base url is missing")
	}
	if _, ok := source.NewRecord(src); !ok {
		return nil, fmt.Errorf("unsupported gateway source: %s", src)
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		src:        src,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
	}, nil
}

var _ source.Connector = (*Client)(nil)

// Name implements source.Connector
func (c *Client) Name() model.Source { return c.src }

// SearchRequest 抓取服务请求体
type SearchRequest struct {
	Query      string `json:"query"`
	MaxReviews int    `json:"max_reviews,omitempty"`
}

// SearchResponse 抓取服务响应体
type SearchResponse struct {
	Success     bool              `json:"success"`
	Reviews     []json.RawMessage `json:"reviews"`
	ProductInfo *source.Meta      `json:"product_info,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// Search implements source.Connector
func (c *Client) Search(ctx context.Context, req *source.Request) (*source.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	payload, err := json.Marshal(SearchRequest{Query: req.Query, MaxReviews: req.MaxResults})
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}

	u := fmt.Sprintf("%s/api/%s/search", c.baseURL, c.src)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway error (status %d): %s", res.StatusCode, string(body))
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("gateway %s search failed: %s", c.src, resp.Error)
	}
	if resp.Error != "" && len(resp.Reviews) == 0 {
		logger.Log.Infof("抓取服务 [%s] 无结果: %s", c.src, resp.Error)
	}

	records := make([]source.Record, 0, len(resp.Reviews))
	dropped := 0
	for i, raw := range resp.Reviews {
		rec, _ := source.NewRecord(c.src)
		if err := json.Unmarshal(raw, rec); err != nil {
			// 单条记录解析失败只跳过该条
			logger.Log.Warnf("抓取服务 [%s] 第 %d 条记录无法解析: %v", c.src, i, err)
			dropped++
			continue
		}
		defaultAuthor(rec)
		records = append(records, rec)
	}

	return &source.Response{Records: records, Meta: resp.ProductInfo, Dropped: dropped}, nil
}

func defaultAuthor(rec source.Record) {
	switch v := rec.(type) {
	case *source.AmazonReview:
		if strings.TrimSpace(v.Author) == "" {
			v.Author = "Anonymous"
		}
	case *source.TrustpilotReview:
		if strings.TrimSpace(v.Author) == "" {
			v.Author = "Anonymous"
		}
	}
}
