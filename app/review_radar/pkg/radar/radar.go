// Package radar 按配置组装来源、情感分析、洞察、路由与会话，对外提供一次搜索的入口。
package radar

import (
	"context"
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/config"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/engine"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/insight"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/llm"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/logger"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/router"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/sentiment"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/session"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/source/factory"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/storage"
)

var (
	// ErrSuperseded 搜索完成时已有更新的搜索开始，结果未被采用
	ErrSuperseded = errors.New("search superseded by a newer one")
	// ErrNoResult 还没有当前结果
	ErrNoResult = errors.New("no current search result")
	// ErrNoInsights 当前结果没有可用的洞察
	ErrNoInsights = errors.New("current result has no insights")
)

// Assistant 基于当前结果的问答与报告
type Assistant interface {
	Chat(ctx context.Context, question string, history []insight.ChatTurn, reviews []model.Review) (string, error)
	GenerateReport(ctx context.Context, insights any, subject string) (string, error)
}

// Report 管理层报告
type Report struct {
	Generation uint64
	Subject    string
	Markdown   string
}

// Journal 搜索运行日志
type Journal interface {
	SaveRun(ctx context.Context, res *model.Result) error
}

// Options 组装选项
type Options struct {
	// Registerer 指标注册位置，为 nil 时不注册
	Registerer prometheus.Registerer
}

// Radar 评论雷达
type Radar struct {
	router  *router.Router
	tracker *session.Tracker
	journal Journal
	// assistant 为 nil 时问答与报告不可用
	assistant Assistant
	sources   []model.Source
	closers   []func() error
}

// New 按配置组装。LLM 未配置时不生成洞察，情感分析使用关键词方式；
// 数据库连接失败只告警，不影响搜索。
func New(ctx context.Context, cfg *config.Config, opts Options) (*Radar, error) {
	connectors, err := factory.NewConnectors(cfg)
	if err != nil {
		return nil, err
	}
	if len(connectors) == 0 {
		logger.Log.Warn("没有可用的评论来源")
	}

	var (
		analyzer  sentiment.Analyzer = sentiment.NewKeywordAnalyzer()
		generator router.InsightGenerator
		assistant Assistant
	)
	if cfg.LLM.Enabled() {
		cm, err := llm.NewChatModel(ctx, cfg.LLM)
		if err != nil {
			return nil, err
		}
		limiter := llm.NewLimiter(cfg.Concurrency)
		gen := insight.NewGenerator(cm, limiter)
		generator, assistant = gen, gen
		if cfg.Sentiment.UseLLM {
			analyzer = sentiment.NewLLMAnalyzer(cm, limiter, analyzer)
		}
	} else {
		logger.Log.Warn("未配置 LLM，跳过洞察生成")
	}

	orch := engine.NewOrchestrator(connectors, analyzer, engine.Options{
		MaxResults: cfg.Sources.MaxResults,
		Timeout:    cfg.Sources.SourceTimeout(),
		Metrics:    engine.NewMetrics(opts.Registerer),
	})

	r := NewRadar(router.New(orch, generator), session.NewTracker(), nil).WithAssistant(assistant)
	r.sources = orch.Sources()

	if cfg.DB.Host != "" {
		store, err := storage.NewStorage(ctx, cfg.DB)
		if err != nil {
			logger.Log.Warnf("运行日志未启用: %v", err)
		} else {
			r.journal = store
			r.closers = append(r.closers, store.Close)
		}
	}
	return r, nil
}

// NewRadar 用已创建的组件组装，journal 可以为 nil
func NewRadar(rt *router.Router, tracker *session.Tracker, journal Journal) *Radar {
	return &Radar{router: rt, tracker: tracker, journal: journal}
}

// WithAssistant 设置问答与报告使用的 LLM 助手
func (r *Radar) WithAssistant(a Assistant) *Radar {
	r.assistant = a
	return r
}

// Search 执行一次搜索并提交到会话。
// 完成前如果已有新的搜索开始，结果照常返回但不会成为当前结果，同时返回 ErrSuperseded。
func (r *Radar) Search(ctx context.Context, query string) (*model.Result, error) {
	// 空查询不占用代次，避免把进行中的搜索标记为过期
	if strings.TrimSpace(query) == "" {
		return nil, router.ErrEmptyQuery
	}
	ticket := r.tracker.Begin(query)
	res, err := r.router.Search(ctx, query)
	if res == nil {
		return nil, err
	}

	committed := r.tracker.Commit(ticket, res)
	if r.journal != nil {
		if jerr := r.journal.SaveRun(ctx, res); jerr != nil {
			logger.Log.Warnf("写入运行日志失败: %v", jerr)
		}
	}
	if err != nil {
		return res, err
	}
	if !committed {
		return res, ErrSuperseded
	}
	logger.Log.Infof("搜索 [%s] 完成，共 %d 条评论，耗时 %s", query, res.Statistics.Total, res.Duration)
	return res, nil
}

// Current 当前结果
func (r *Radar) Current() *model.Result {
	return r.tracker.Current()
}

// Filter 按情感标签筛选当前结果的评论
func (r *Radar) Filter(tag string) []model.Review {
	return r.tracker.Filter(tag)
}

// Chat 针对当前结果的评论回答问题
func (r *Radar) Chat(ctx context.Context, question string, history []insight.ChatTurn) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", insight.ErrEmptyQuestion
	}
	res := r.tracker.Current()
	if res == nil {
		return "", ErrNoResult
	}
	if r.assistant == nil {
		return "", insight.ErrLLMNotConfigured
	}
	return r.assistant.Chat(ctx, question, history, res.Reviews)
}

// Report 根据当前结果的洞察生成管理层报告
func (r *Radar) Report(ctx context.Context) (*Report, error) {
	res := r.tracker.Current()
	if res == nil {
		return nil, ErrNoResult
	}
	if r.assistant == nil {
		return nil, insight.ErrLLMNotConfigured
	}

	var insights any
	switch {
	case res.Insights != nil:
		insights = res.Insights
	case res.Competitive != nil:
		insights = res.Competitive
	default:
		return nil, ErrNoInsights
	}

	subject := res.Query
	if len(res.Subjects) == 2 {
		subject = strings.Join(res.Subjects, " vs ")
	}
	md, err := r.assistant.GenerateReport(ctx, insights, subject)
	if err != nil {
		return nil, err
	}
	return &Report{Generation: res.Generation, Subject: subject, Markdown: md}, nil
}

// Sources 已启用的来源
func (r *Radar) Sources() []model.Source {
	return r.sources
}

// Close 释放资源
func (r *Radar) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
