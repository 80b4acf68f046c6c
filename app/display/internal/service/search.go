package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/review_radar/app/display/internal/domain"
	"github.com/iWorld-y/review_radar/app/display/internal/usecase"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
)

const (
	OperationSearch        = "/review_radar.Search/Search"
	OperationCurrent       = "/review_radar.Search/Current"
	OperationReviews       = "/review_radar.Search/Reviews"
	OperationHealth        = "/review_radar.Search/Health"
	OperationChat          = "/review_radar.Search/Chat"
	OperationReport        = "/review_radar.Search/Report"
	sentimentQueryParamKey = "sentiment"
)

type SearchService struct {
	uc  *usecase.SearchUseCase
	log *log.Helper
}

func NewSearchService(uc *usecase.SearchUseCase, logger log.Logger) *SearchService {
	return &SearchService{uc: uc, log: log.NewHelper(logger)}
}

func (s *SearchService) Search(ctx context.Context, req *domain.SearchRequest) (*model.Result, error) {
	s.log.WithContext(ctx).Infof("search: %s", req.Query)
	return s.uc.Search(ctx, req.Query)
}

func (s *SearchService) Current(ctx context.Context) (*model.Result, error) {
	return s.uc.Current(ctx)
}

func (s *SearchService) Reviews(ctx context.Context, req *domain.ReviewsRequest) (*domain.ReviewsReply, error) {
	return s.uc.Reviews(ctx, req.Sentiment)
}

func (s *SearchService) Health(ctx context.Context) (*domain.Health, error) {
	return s.uc.Health(ctx)
}

func (s *SearchService) Chat(ctx context.Context, req *domain.ChatRequest) (*domain.ChatReply, error) {
	return s.uc.Chat(ctx, req)
}

func (s *SearchService) Report(ctx context.Context) (*domain.ReportReply, error) {
	return s.uc.Report(ctx)
}

// RegisterSearchHTTPServer 注册搜索相关路由
func RegisterSearchHTTPServer(srv *http.Server, s *SearchService) {
	r := srv.Route("/")
	r.POST("/api/search", searchHandler(s))
	r.GET("/api/search/current", currentHandler(s))
	r.GET("/api/search/current/reviews", reviewsHandler(s))
	r.GET("/api/health", healthHandler(s))
	r.POST("/api/chat", chatHandler(s))
	r.POST("/api/report", reportHandler(s))
}

func searchHandler(s *SearchService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in domain.SearchRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationSearch)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return s.Search(ctx, req.(*domain.SearchRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func currentHandler(s *SearchService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		http.SetOperation(ctx, OperationCurrent)
		h := ctx.Middleware(func(ctx context.Context, _ interface{}) (interface{}, error) {
			return s.Current(ctx)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func reviewsHandler(s *SearchService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		in := domain.ReviewsRequest{Sentiment: ctx.Query().Get(sentimentQueryParamKey)}
		http.SetOperation(ctx, OperationReviews)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return s.Reviews(ctx, req.(*domain.ReviewsRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func healthHandler(s *SearchService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		http.SetOperation(ctx, OperationHealth)
		h := ctx.Middleware(func(ctx context.Context, _ interface{}) (interface{}, error) {
			return s.Health(ctx)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func chatHandler(s *SearchService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in domain.ChatRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationChat)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return s.Chat(ctx, req.(*domain.ChatRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func reportHandler(s *SearchService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		http.SetOperation(ctx, OperationReport)
		h := ctx.Middleware(func(ctx context.Context, _ interface{}) (interface{}, error) {
			return s.Report(ctx)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}
