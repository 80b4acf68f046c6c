package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/review_radar/app/display/internal/domain"
	"github.com/iWorld-y/review_radar/app/display/internal/repo"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/insight"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/radar"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/router"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/stats"
)

// SearchUseCase 搜索业务逻辑
type SearchUseCase struct {
	repo repo.SearchRepo
	log  *log.Helper
}

// NewSearchUseCase 创建搜索业务逻辑实例
func NewSearchUseCase(repo repo.SearchRepo, logger log.Logger) *SearchUseCase {
	return &SearchUseCase{repo: repo, log: log.NewHelper(logger)}
}

// Search 执行搜索，引擎错误转换为带状态码的错误
func (uc *SearchUseCase) Search(ctx context.Context, query string) (*model.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.BadRequest("EMPTY_QUERY", "query must not be empty")
	}

	res, err := uc.repo.Search(ctx, query)
	switch {
	case err == nil:
		return res, nil
	case errors.Is(err, router.ErrEmptyQuery):
		return nil, errors.BadRequest("EMPTY_QUERY", "query must not be empty")
	case errors.Is(err, router.ErrNoResults):
		msg := err.Error()
		if res != nil && res.Error != "" {
			msg = res.Error
		}
		return nil, errors.NotFound("NO_RESULTS", msg)
	case errors.Is(err, radar.ErrSuperseded):
		return nil, errors.Conflict("SEARCH_SUPERSEDED", "a newer search has replaced this one")
	}
	uc.log.WithContext(ctx).Errorf("search %q failed: %v", query, err)
	return nil, errors.InternalServer("SEARCH_FAILED", err.Error())
}

// Current 当前结果
func (uc *SearchUseCase) Current(ctx context.Context) (*model.Result, error) {
	res := uc.repo.Current()
	if res == nil {
		return nil, errors.NotFound("NO_SEARCH", "no search has completed yet")
	}
	return res, nil
}

// Reviews 按情感筛选当前结果的评论，未知标签返回空列表
func (uc *SearchUseCase) Reviews(ctx context.Context, tag string) (*domain.ReviewsReply, error) {
	res := uc.repo.Current()
	if res == nil {
		return nil, errors.NotFound("NO_SEARCH", "no search has completed yet")
	}
	if tag == "" {
		tag = stats.FilterAll
	}
	// 与 Generation 取自同一个快照
	reviews := stats.Filter(res.Reviews, tag)
	return &domain.ReviewsReply{
		Generation: res.Generation,
		Sentiment:  tag,
		Count:      len(reviews),
		Reviews:    reviews,
	}, nil
}

// Chat 针对当前结果提问
func (uc *SearchUseCase) Chat(ctx context.Context, req *domain.ChatRequest) (*domain.ChatReply, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, errors.BadRequest("EMPTY_QUESTION", "question must not be empty")
	}
	answer, err := uc.repo.Chat(ctx, req.Question, req.History)
	if err != nil {
		return nil, uc.assistantError(ctx, "CHAT_FAILED", err)
	}
	return &domain.ChatReply{Answer: answer, Timestamp: time.Now()}, nil
}

// Report 为当前结果生成管理层报告
func (uc *SearchUseCase) Report(ctx context.Context) (*domain.ReportReply, error) {
	report, err := uc.repo.Report(ctx)
	if err != nil {
		return nil, uc.assistantError(ctx, "REPORT_FAILED", err)
	}
	return &domain.ReportReply{
		Generation:  report.Generation,
		Subject:     report.Subject,
		Report:      report.Markdown,
		GeneratedAt: time.Now(),
	}, nil
}

func (uc *SearchUseCase) assistantError(ctx context.Context, reason string, err error) error {
	switch {
	case errors.Is(err, insight.ErrEmptyQuestion):
		return errors.BadRequest("EMPTY_QUESTION", "question must not be empty")
	case errors.Is(err, radar.ErrNoResult):
		return errors.NotFound("NO_SEARCH", "no search has completed yet")
	case errors.Is(err, radar.ErrNoInsights):
		return errors.NotFound("NO_INSIGHTS", "the current search has no insights to report on")
	case errors.Is(err, insight.ErrLLMNotConfigured):
		return errors.ServiceUnavailable("LLM_UNAVAILABLE", "no language model is configured")
	}
	uc.log.WithContext(ctx).Errorf("%s: %v", strings.ToLower(reason), err)
	return errors.InternalServer(reason, err.Error())
}

// Health 没有任何可用来源时不可用
func (uc *SearchUseCase) Health(ctx context.Context) (*domain.Health, error) {
	sources := uc.repo.Sources()
	if len(sources) == 0 {
		return nil, errors.ServiceUnavailable("NO_SOURCES", "no review source is configured")
	}
	return &domain.Health{Status: "ok", Sources: sources}, nil
}
