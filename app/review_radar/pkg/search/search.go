// Package search 定义网页搜索接口，供网页评测来源使用。
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Searcher 定义通用的搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query             string
	MaxResults        int
	IncludeRawContent bool
	// ExcludeDomains 已有专门连接器的站点，避免重复收录
	ExcludeDomains []string
}

// Response 通用搜索响应
type Response struct {
	Results []Result
}

// Result 单条搜索结果
type Result struct {
	Title         string
	URL           string
	Content       string
	RawContent    string
	Score         float64
	PublishedDate string
}

// StatusError 搜索服务返回非 200
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s api error (status %d): %s", e.Provider, e.Code, e.Body)
}

// CheckStatus 非 200 时读取响应体并返回 *StatusError
func CheckStatus(provider string, res *http.Response) error {
	if res.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return &StatusError{Provider: provider, Code: res.StatusCode, Body: strings.TrimSpace(string(body))}
}

// Collect 按 URL 去重并截取前 max 条，max<=0 表示不截取，没有 URL 的结果丢弃
func Collect(results []Result, max int) []Result {
	seen := make(map[string]struct{}, len(results))
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if r.URL == "" {
			continue
		}
		if _, ok := seen[r.URL]; ok {
			continue
		}
		seen[r.URL] = struct{}{}
		out = append(out, r)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}
