// Package engine 并发查询各评论来源并汇集统一后的评论。
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/logger"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/normalize"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/sentiment"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/source"
)

// Options 查询选项
type Options struct {
	MaxResults int
	// Timeout 单个来源的超时，0 表示不限制
	Timeout time.Duration
	Metrics *Metrics
}

// Orchestrator 来源查询编排器
type Orchestrator struct {
	connectors map[model.Source]source.Connector
	analyzer   sentiment.Analyzer
	opts       Options
}

// NewOrchestrator 创建编排器，analyzer 为 nil 时使用关键词分析
func NewOrchestrator(connectors map[model.Source]source.Connector, analyzer sentiment.Analyzer, opts Options) *Orchestrator {
	if analyzer == nil {
		analyzer = sentiment.NewKeywordAnalyzer()
	}
	return &Orchestrator{connectors: connectors, analyzer: analyzer, opts: opts}
}

// Sources 已配置的来源，按固定顺序
func (o *Orchestrator) Sources() []model.Source {
	var out []model.Source
	for _, src := range model.AllSources {
		if _, ok := o.connectors[src]; ok {
			out = append(out, src)
		}
	}
	return out
}

// Collection 一次查询的汇集结果，按来源分组
type Collection struct {
	Query   string
	Sources []model.Source
	Reviews map[model.Source][]model.Review
	Meta    map[model.Source]model.SourceMeta
	Errors  map[model.Source]error
}

// All 按固定来源顺序展开全部评论，与返回先后无关
func (c *Collection) All() []model.Review {
	var out []model.Review
	for _, src := range model.AllSources {
		out = append(out, c.Reviews[src]...)
	}
	return out
}

// Total 评论总数
func (c *Collection) Total() int {
	n := 0
	for _, rs := range c.Reviews {
		n += len(rs)
	}
	return n
}

// outcome 每个来源独占的结果槽位
type outcome struct {
	reviews []model.Review
	meta    model.SourceMeta
	err     error
}

// Collect 并发查询所有来源，等待全部完成后汇总，单个来源失败不影响其他来源。
// sources 为空时查询全部已配置来源。
func (o *Orchestrator) Collect(ctx context.Context, query string, sources []model.Source) *Collection {
	if len(sources) == 0 {
		sources = o.Sources()
	}
	sources = dedupe(sources)

	slots := make([]outcome, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src model.Source) {
			defer wg.Done()
			start := time.Now()
			defer func() {
				if p := recover(); p != nil {
					logger.WithSource(string(src)).Errorf("来源查询 panic: %v", p)
					slots[i] = failed(src, fmt.Errorf("panic: %v", p))
				}
				o.opts.Metrics.observe(src, slots[i].meta, time.Since(start).Seconds())
			}()
			slots[i] = o.query(ctx, query, src)
		}(i, src)
	}
	wg.Wait()

	c := &Collection{
		Query:   query,
		Sources: sources,
		Reviews: make(map[model.Source][]model.Review, len(sources)),
		Meta:    make(map[model.Source]model.SourceMeta, len(sources)),
		Errors:  make(map[model.Source]error),
	}
	for i, src := range sources {
		c.Reviews[src] = slots[i].reviews
		c.Meta[src] = slots[i].meta
		if slots[i].err != nil {
			c.Errors[src] = slots[i].err
		}
	}

	logger.Log.Infof("查询 [%s] 完成: %d 个来源, %d 条评论, %d 个来源失败", query, len(sources), c.Total(), len(c.Errors))
	return c
}

func (o *Orchestrator) query(ctx context.Context, query string, src model.Source) outcome {
	conn, ok := o.connectors[src]
	if !ok {
		return failed(src, fmt.Errorf("source not configured"))
	}

	// 超时只约束抓取，打分使用调用方的 ctx
	searchCtx := ctx
	if o.opts.Timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, o.opts.Timeout)
		defer cancel()
	}

	log := logger.WithSource(string(src))
	resp, err := conn.Search(searchCtx, &source.Request{Query: query, MaxResults: o.opts.MaxResults})
	if err != nil {
		log.Errorf("来源查询失败: %v", err)
		return failed(src, err)
	}

	reviews := make([]model.Review, 0, len(resp.Records))
	dropped := resp.Dropped
	for _, rec := range resp.Records {
		sentiment.Score(ctx, o.analyzer, rec)
		r, err := normalize.Normalize(rec)
		if err != nil {
			log.Debugf("丢弃记录: %v", err)
			dropped++
			continue
		}
		reviews = append(reviews, r)
	}

	meta := model.SourceMeta{Status: model.StatusOK, Count: len(reviews), Dropped: dropped}
	if len(reviews) == 0 {
		meta.Status = model.StatusEmpty
	}
	if resp.Meta != nil {
		meta.Name = resp.Meta.Name
		meta.Rating = resp.Meta.Rating
		meta.Total = resp.Meta.Total
	}
	log.Debugf("返回 %d 条，丢弃 %d 条", len(reviews), dropped)
	return outcome{reviews: reviews, meta: meta}
}

func failed(src model.Source, err error) outcome {
	serr := &SourceError{Source: src, Err: err}
	return outcome{
		reviews: []model.Review{},
		meta:    model.SourceMeta{Status: model.StatusError, Error: serr.Error()},
		err:     serr,
	}
}

func dedupe(sources []model.Source) []model.Source {
	seen := make(map[model.Source]bool, len(sources))
	out := make([]model.Source, 0, len(sources))
	for _, s := range sources {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
