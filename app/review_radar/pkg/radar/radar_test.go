package radar

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/config"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/engine"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/insight"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/logger"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/router"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/session"
)

func init() {
	logger.InitLogger("error", "")
}

// gatedCollector 查询在对应的 gate 关闭前阻塞
type gatedCollector struct {
	gates   map[string]chan struct{}
	started chan string
}

func (g *gatedCollector) Collect(ctx context.Context, query string, sources []model.Source) *engine.Collection {
	if g.started != nil {
		g.started <- query
	}
	if gate, ok := g.gates[query]; ok {
		<-gate
	}
	return &engine.Collection{
		Query: query,
		Reviews: map[model.Source][]model.Review{
			model.SourceWeb: {{Source: model.SourceWeb, Author: "a", Text: query + " is great", Sentiment: model.Positive}},
		},
		Meta: map[model.Source]model.SourceMeta{model.SourceWeb: {Status: model.StatusOK, Count: 1}},
	}
}

// mockJournal 记录写入的结果
type mockJournal struct {
	mu   sync.Mutex
	runs []*model.Result
	err  error
}

func (m *mockJournal) SaveRun(ctx context.Context, res *model.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, res)
	return m.err
}

func TestSearchCommitsAndJournals(t *testing.T) {
	journal := &mockJournal{}
	r := NewRadar(router.New(&gatedCollector{}, nil), session.NewTracker(), journal)

	res, err := r.Search(context.Background(), "boots")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.Generation)
	assert.Same(t, res, r.Current())
	assert.Len(t, r.Filter("positive"), 1)
	assert.Empty(t, r.Filter("negative"))
	require.Len(t, journal.runs, 1)
}

func TestSearchJournalFailureIgnored(t *testing.T) {
	journal := &mockJournal{err: errors.New("db down")}
	r := NewRadar(router.New(&gatedCollector{}, nil), session.NewTracker(), journal)

	_, err := r.Search(context.Background(), "boots")
	assert.NoError(t, err)
}

func TestSearchEmptyQuery(t *testing.T) {
	r := NewRadar(router.New(&gatedCollector{}, nil), session.NewTracker(), nil)
	_, err := r.Search(context.Background(), "")
	assert.ErrorIs(t, err, router.ErrEmptyQuery)
	assert.Nil(t, r.Current())
}

func TestEmptyQueryKeepsInFlightSearch(t *testing.T) {
	collector := &gatedCollector{
		gates:   map[string]chan struct{}{"slow": make(chan struct{})},
		started: make(chan string, 1),
	}
	tracker := session.NewTracker()
	r := NewRadar(router.New(collector, nil), tracker, nil)

	type outcome struct {
		res *model.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := r.Search(context.Background(), "slow")
		done <- outcome{res, err}
	}()
	require.Equal(t, "slow", <-collector.started)

	_, err := r.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, router.ErrEmptyQuery)
	assert.Equal(t, uint64(1), tracker.Generation())

	close(collector.gates["slow"])
	got := <-done
	require.NoError(t, got.err)
	assert.Same(t, got.res, r.Current())
	assert.Equal(t, "slow", r.Current().Query)
}

func TestSlowSearchDoesNotOverwriteNewer(t *testing.T) {
	collector := &gatedCollector{
		gates:   map[string]chan struct{}{"slow": make(chan struct{})},
		started: make(chan string, 2),
	}
	r := NewRadar(router.New(collector, nil), session.NewTracker(), nil)

	type outcome struct {
		res *model.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := r.Search(context.Background(), "slow")
		done <- outcome{res, err}
	}()
	require.Equal(t, "slow", <-collector.started)

	fast, err := r.Search(context.Background(), "fast")
	require.NoError(t, err)
	<-collector.started

	close(collector.gates["slow"])
	late := <-done
	assert.ErrorIs(t, late.err, ErrSuperseded)
	require.NotNil(t, late.res)

	assert.Same(t, fast, r.Current())
	assert.Equal(t, "fast", r.Current().Query)
}

// stubInsights 返回固定的洞察
type stubInsights struct{}

func (stubInsights) GenerateInsights(ctx context.Context, query string, reviews []model.Review) (*model.InsightReport, error) {
	return &model.InsightReport{ExecutiveSummary: query + " is well liked."}, nil
}

func (stubInsights) GenerateCompetitiveInsights(ctx context.Context, a, b insight.Subject) (*model.CompetitiveInsights, error) {
	return &model.CompetitiveInsights{ExecutiveSummary: a.Name + " edges out " + b.Name}, nil
}

// mockAssistant 记录收到的参数
type mockAssistant struct {
	reviews  []model.Review
	history  []insight.ChatTurn
	insights any
	subject  string
	err      error
}

func (m *mockAssistant) Chat(ctx context.Context, question string, history []insight.ChatTurn, reviews []model.Review) (string, error) {
	m.reviews, m.history = reviews, history
	return "answer to " + question, m.err
}

func (m *mockAssistant) GenerateReport(ctx context.Context, insights any, subject string) (string, error) {
	m.insights, m.subject = insights, subject
	return "# Report for " + subject, m.err
}

func TestChatOverCurrentResult(t *testing.T) {
	assistant := &mockAssistant{}
	r := NewRadar(router.New(&gatedCollector{}, nil), session.NewTracker(), nil).WithAssistant(assistant)

	_, err := r.Chat(context.Background(), "is it comfy?", nil)
	assert.ErrorIs(t, err, ErrNoResult)
	_, err = r.Chat(context.Background(), "  ", nil)
	assert.ErrorIs(t, err, insight.ErrEmptyQuestion)

	res, err := r.Search(context.Background(), "boots")
	require.NoError(t, err)

	history := []insight.ChatTurn{{Role: "user", Content: "hi"}}
	answer, err := r.Chat(context.Background(), "is it comfy?", history)
	require.NoError(t, err)
	assert.Equal(t, "answer to is it comfy?", answer)
	assert.Equal(t, res.Reviews, assistant.reviews)
	assert.Equal(t, history, assistant.history)
}

func TestChatWithoutAssistant(t *testing.T) {
	r := NewRadar(router.New(&gatedCollector{}, nil), session.NewTracker(), nil)
	_, err := r.Search(context.Background(), "boots")
	require.NoError(t, err)

	_, err = r.Chat(context.Background(), "is it comfy?", nil)
	assert.ErrorIs(t, err, insight.ErrLLMNotConfigured)
	_, err = r.Report(context.Background())
	assert.ErrorIs(t, err, insight.ErrLLMNotConfigured)
}

func TestReportSingle(t *testing.T) {
	assistant := &mockAssistant{}
	r := NewRadar(router.New(&gatedCollector{}, stubInsights{}), session.NewTracker(), nil).WithAssistant(assistant)

	_, err := r.Report(context.Background())
	assert.ErrorIs(t, err, ErrNoResult)

	res, err := r.Search(context.Background(), "boots")
	require.NoError(t, err)

	report, err := r.Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "boots", report.Subject)
	assert.Equal(t, res.Generation, report.Generation)
	assert.Equal(t, "# Report for boots", report.Markdown)
	assert.Same(t, res.Insights, assistant.insights)
}

func TestReportComparative(t *testing.T) {
	assistant := &mockAssistant{}
	r := NewRadar(router.New(&gatedCollector{}, stubInsights{}), session.NewTracker(), nil).WithAssistant(assistant)

	res, err := r.Search(context.Background(), "boots vs sneakers")
	require.NoError(t, err)
	require.NotNil(t, res.Competitive)

	report, err := r.Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "boots vs sneakers", report.Subject)
	assert.Same(t, res.Competitive, assistant.insights)
}

func TestReportWithoutInsights(t *testing.T) {
	r := NewRadar(router.New(&gatedCollector{}, nil), session.NewTracker(), nil).WithAssistant(&mockAssistant{})
	_, err := r.Search(context.Background(), "boots")
	require.NoError(t, err)

	_, err = r.Report(context.Background())
	assert.ErrorIs(t, err, ErrNoInsights)
}

func TestNewWithoutLLM(t *testing.T) {
	cfg := &config.Config{}
	cfg.Sources.Enabled = []string{"reddit"}
	cfg.ApplyDefaults()

	r, err := New(context.Background(), cfg, Options{Registerer: prometheus.NewRegistry()})
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, []model.Source{model.SourceReddit}, r.Sources())
}

func TestNewUnknownSource(t *testing.T) {
	cfg := &config.Config{}
	cfg.Sources.Enabled = []string{"myspace"}

	_, err := New(context.Background(), cfg, Options{})
	assert.Error(t, err)
}
