package domain

import (
	"time"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/insight"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
)

// SearchRequest 搜索请求
type SearchRequest struct {
	Query string `json:"query"`
}

// ReviewsRequest 按情感筛选当前结果的评论
type ReviewsRequest struct {
	Sentiment string `json:"sentiment"`
}

// ReviewsReply 筛选后的评论
type ReviewsReply struct {
	Generation uint64         `json:"generation"`
	Sentiment  string         `json:"sentiment"`
	Count      int            `json:"count"`
	Reviews    []model.Review `json:"reviews"`
}

// Health 服务状态
type Health struct {
	Status  string         `json:"status"`
	Sources []model.Source `json:"sources"`
}

// ChatRequest 针对当前结果的提问，History 为之前的对话
type ChatRequest struct {
	Question string             `json:"question"`
	History  []insight.ChatTurn `json:"history"`
}

// ChatReply 问答结果
type ChatReply struct {
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// ReportReply markdown 格式的管理层报告
type ReportReply struct {
	Generation  uint64    `json:"generation"`
	Subject     string    `json:"subject"`
	Report      string    `json:"report"`
	GeneratedAt time.Time `json:"generated_at"`
}
