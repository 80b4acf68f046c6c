package server

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/review_radar/app/display/internal/conf"
	"github.com/iWorld-y/review_radar/app/display/internal/service"
	"github.com/iWorld-y/review_radar/app/display/internal/usecase"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/insight"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/radar"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/router"
)

// fakeRadar 模拟引擎，搜索成功后成为当前结果
type fakeRadar struct {
	current *model.Result
}

func (f *fakeRadar) Search(ctx context.Context, query string) (*model.Result, error) {
	if query == "nothing" {
		return &model.Result{Query: query, Error: "No reviews found from any source. Try a different query."}, router.ErrNoResults
	}
	f.current = &model.Result{
		Generation: 1,
		Query:      query,
		Mode:       model.ModeSingle,
		Reviews: []model.Review{
			{Source: model.SourceReddit, Author: "a", Text: "love it", Sentiment: model.Positive},
			{Source: model.SourceReddit, Author: "b", Text: "hate it", Sentiment: model.Negative},
		},
		Statistics: model.AggregateStatistics{Total: 2, Positive: 1, Negative: 1},
	}
	return f.current, nil
}

func (f *fakeRadar) Current() *model.Result {
	return f.current
}

func (f *fakeRadar) Sources() []model.Source {
	return []model.Source{model.SourceReddit}
}

func (f *fakeRadar) Chat(ctx context.Context, question string, history []insight.ChatTurn) (string, error) {
	if f.current == nil {
		return "", radar.ErrNoResult
	}
	return fmt.Sprintf("%d reviews, %d earlier turns", len(f.current.Reviews), len(history)), nil
}

func (f *fakeRadar) Report(ctx context.Context) (*radar.Report, error) {
	if f.current == nil {
		return nil, radar.ErrNoResult
	}
	return nil, insight.ErrLLMNotConfigured
}

func newTestServer(t *testing.T) nethttp.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "test_total", Help: "test"}))

	uc := usecase.NewSearchUseCase(&fakeRadar{}, log.DefaultLogger)
	svc := service.NewSearchService(uc, log.DefaultLogger)
	return NewHTTPServer(&conf.Server{Http: &conf.HTTP{Timeout: "5s"}}, svc, reg, log.DefaultLogger)
}

func do(h nethttp.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHTTPSearchFlow(t *testing.T) {
	h := newTestServer(t)

	rec := do(h, nethttp.MethodGet, "/api/search/current", "")
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)

	rec = do(h, nethttp.MethodPost, "/api/search", `{"query":"boots"}`)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	var res model.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "boots", res.Query)
	assert.Equal(t, 2, res.Statistics.Total)

	rec = do(h, nethttp.MethodGet, "/api/search/current", "")
	assert.Equal(t, nethttp.StatusOK, rec.Code)

	rec = do(h, nethttp.MethodGet, "/api/search/current/reviews?sentiment=negative", "")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var reviews struct {
		Count   int            `json:"count"`
		Reviews []model.Review `json:"reviews"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviews))
	assert.Equal(t, 1, reviews.Count)
	assert.Equal(t, "hate it", reviews.Reviews[0].Text)
}

func TestHTTPSearchErrors(t *testing.T) {
	h := newTestServer(t)

	rec := do(h, nethttp.MethodPost, "/api/search", `{"query":""}`)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMPTY_QUERY")

	rec = do(h, nethttp.MethodPost, "/api/search", `{"query":"nothing"}`)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Try a different query")
}

func TestHTTPChatAndReport(t *testing.T) {
	h := newTestServer(t)

	rec := do(h, nethttp.MethodPost, "/api/chat", `{"question":"comfy?"}`)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_SEARCH")

	rec = do(h, nethttp.MethodPost, "/api/search", `{"query":"boots"}`)
	require.Equal(t, nethttp.StatusOK, rec.Code)

	rec = do(h, nethttp.MethodPost, "/api/chat", `{"question":"comfy?","history":[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}]}`)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	var reply struct {
		Answer string `json:"answer"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, "2 reviews, 2 earlier turns", reply.Answer)

	rec = do(h, nethttp.MethodPost, "/api/chat", `{"question":""}`)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)

	rec = do(h, nethttp.MethodPost, "/api/report", "")
	assert.Equal(t, nethttp.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "LLM_UNAVAILABLE")
}

func TestHTTPHealthAndMetrics(t *testing.T) {
	h := newTestServer(t)

	rec := do(h, nethttp.MethodGet, "/api/health", "")
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "reddit")

	rec = do(h, nethttp.MethodGet, "/metrics", "")
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_total")
}

func TestHTTPIndex(t *testing.T) {
	h := newTestServer(t)
	rec := do(h, nethttp.MethodGet, "/", "")
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Review Radar")
}
