// Package source 定义评论来源连接器接口及各来源的原生记录类型。
package source

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
)

// Connector 定义通用的评论来源接口
type Connector interface {
	Name() model.Source
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用来源查询请求
type Request struct {
	Query      string
	MaxResults int
}

// Response 通用来源查询响应，Records 为空表示没有结果
type Response struct {
	Records []Record
	Meta    *Meta
	// Dropped 连接器层面已丢弃的记录数
	Dropped int
}

// Meta 来源级别的描述信息
type Meta struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
	Total  int     `json:"total_ratings"`
}

// NewLimiter 按每分钟请求数创建来源限流器，rpm<=0 时不限流
func NewLimiter(rpm int) *rate.Limiter {
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1)
}

// Truncate 按 rune 截断文本
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
