// Package router 根据查询语法分派到单对象或对比两条处理流程。
package router

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/compare"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/engine"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/insight"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/logger"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/stats"
)

var (
	// ErrEmptyQuery 查询为空
	ErrEmptyQuery = errors.New("empty query")
	// ErrNoResults 所有来源都没有返回评论
	ErrNoResults = errors.New("no reviews found from any source")
)

const noResultsMessage = "No reviews found from any source. Try a different query."

// Collector 来源查询
type Collector interface {
	Collect(ctx context.Context, query string, sources []model.Source) *engine.Collection
}

// InsightGenerator 洞察生成
type InsightGenerator interface {
	GenerateInsights(ctx context.Context, query string, reviews []model.Review) (*model.InsightReport, error)
	GenerateCompetitiveInsights(ctx context.Context, a, b insight.Subject) (*model.CompetitiveInsights, error)
}

// Router 查询模式路由
type Router struct {
	collector Collector
	insights  InsightGenerator
}

// New 创建路由，insights 为 nil 时跳过洞察生成
func New(collector Collector, insights InsightGenerator) *Router {
	return &Router{collector: collector, insights: insights}
}

// Search 执行一次完整搜索。没有任何评论时返回 ErrNoResults，
// 同时返回带 Error 字段的结果供展示层使用。
func (r *Router) Search(ctx context.Context, query string) (*model.Result, error) {
	mode, subjects := DetectMode(query)
	if subjects[0] == "" {
		return nil, ErrEmptyQuery
	}

	res := &model.Result{
		ID:        uuid.NewString(),
		Query:     subjects[0],
		Mode:      mode,
		Subjects:  subjects,
		StartedAt: time.Now(),
	}
	if mode == model.ModeComparative {
		res.Query = strings.TrimSpace(query)
	}
	logger.Log.Infof("搜索 [%s] 模式: %s", query, mode)

	var err error
	if mode == model.ModeComparative {
		err = r.comparative(ctx, res)
	} else {
		err = r.single(ctx, res)
	}
	res.Duration = time.Since(res.StartedAt)
	return res, err
}

func (r *Router) single(ctx context.Context, res *model.Result) error {
	c := r.collector.Collect(ctx, res.Query, nil)
	res.Reviews = c.All()
	res.Statistics = stats.Aggregate(res.Reviews)
	res.SourceMeta = c.Meta
	for src, err := range c.Errors {
		if res.SourceErrors == nil {
			res.SourceErrors = make(map[model.Source]string, len(c.Errors))
		}
		res.SourceErrors[src] = err.Error()
	}

	if c.Total() == 0 {
		res.Error = noResultsMessage
		return ErrNoResults
	}

	if r.insights == nil {
		return nil
	}
	report, err := r.insights.GenerateInsights(ctx, res.Query, res.Reviews)
	if err != nil {
		res.InsightError = err.Error()
		return nil
	}
	res.Insights = report
	return nil
}

func (r *Router) comparative(ctx context.Context, res *model.Result) error {
	// 两个对象各自独立查询
	var (
		collections [2]*engine.Collection
		wg          sync.WaitGroup
	)
	for i, subject := range res.Subjects {
		wg.Add(1)
		go func(i int, subject string) {
			defer wg.Done()
			collections[i] = r.collector.Collect(ctx, subject, nil)
		}(i, subject)
	}
	wg.Wait()

	subjects := make([]insight.Subject, 2)
	for i, c := range collections {
		reviews := c.All()
		st := stats.Aggregate(reviews)
		subjects[i] = insight.Subject{Name: res.Subjects[i], Reviews: reviews, Statistics: st}
		res.PerSubject = append(res.PerSubject, model.SubjectResult{
			Name:       res.Subjects[i],
			Reviews:    reviews,
			Statistics: st,
			SourceMeta: c.Meta,
		})
		res.Reviews = append(res.Reviews, reviews...)
	}
	res.Statistics = stats.Aggregate(res.Reviews)
	summary := stats.CompareSummary(subjects[0].Statistics, subjects[1].Statistics)
	res.Summary = &summary

	if collections[0].Total() == 0 && collections[1].Total() == 0 {
		res.Error = noResultsMessage
		return ErrNoResults
	}

	var verdicts map[model.Attribute]model.HeadToHead
	a := compare.Subject{Name: subjects[0].Name, Reviews: subjects[0].Reviews}
	b := compare.Subject{Name: subjects[1].Name, Reviews: subjects[1].Reviews}

	if r.insights != nil {
		ci, err := r.insights.GenerateCompetitiveInsights(ctx, subjects[0], subjects[1])
		if err != nil {
			res.InsightError = err.Error()
		} else {
			res.Competitive = ci
			verdicts = ci.HeadToHead
			a.Strengths, a.Weaknesses = ci.StrengthsA, ci.WeaknessesA
			b.Strengths, b.Weaknesses = ci.StrengthsB, ci.WeaknessesB
		}
	}

	res.Comparison = compare.Compare(a, b, verdicts)
	return nil
}
