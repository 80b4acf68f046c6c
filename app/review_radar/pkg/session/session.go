// Package session 维护当前搜索会话，迟到的旧搜索结果不会覆盖新结果。
package session

import (
	"sync/atomic"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/logger"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/stats"
)

// Ticket 一次搜索开始时领取的代号
type Ticket struct {
	Generation uint64
	Query      string
}

// Tracker 保存当前代号与最近一次提交的结果，结果提交后不再修改
type Tracker struct {
	generation atomic.Uint64
	current    atomic.Pointer[model.Result]
}

// NewTracker 创建会话
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin 开始一次新搜索，之前尚未提交的搜索全部作废
func (t *Tracker) Begin(query string) Ticket {
	return Ticket{Generation: t.generation.Add(1), Query: query}
}

// Generation 当前代号
func (t *Tracker) Generation() uint64 {
	return t.generation.Load()
}

// Commit 仅当 ticket 仍是最新一次搜索时保存结果，返回是否保存
func (t *Tracker) Commit(ticket Ticket, res *model.Result) bool {
	if res == nil {
		return false
	}
	if ticket.Generation != t.generation.Load() {
		logger.Log.Warnf("丢弃过期的搜索结果 [%s]，代号 %d，当前 %d", ticket.Query, ticket.Generation, t.generation.Load())
		return false
	}
	res.Generation = ticket.Generation
	for {
		prev := t.current.Load()
		if prev != nil && prev.Generation > ticket.Generation {
			return false
		}
		if t.current.CompareAndSwap(prev, res) {
			return true
		}
	}
}

// Current 最近一次提交的结果，没有则为 nil
func (t *Tracker) Current() *model.Result {
	return t.current.Load()
}

// Filter 按情感标签筛选当前结果的评论，"all" 返回全部
func (t *Tracker) Filter(tag string) []model.Review {
	res := t.current.Load()
	if res == nil {
		return nil
	}
	return stats.Filter(res.Reviews, tag)
}
