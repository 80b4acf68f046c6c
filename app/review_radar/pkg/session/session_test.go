package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/logger"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
)

func init() {
	logger.InitLogger("error", "")
}

func TestCommitCurrent(t *testing.T) {
	tr := NewTracker()
	assert.Nil(t, tr.Current())
	assert.Nil(t, tr.Filter("all"))

	ticket := tr.Begin("boots")
	ok := tr.Commit(ticket, &model.Result{Query: "boots"})
	require.True(t, ok)

	cur := tr.Current()
	require.NotNil(t, cur)
	assert.Equal(t, "boots", cur.Query)
	assert.Equal(t, ticket.Generation, cur.Generation)
}

func TestStaleResultDiscarded(t *testing.T) {
	tr := NewTracker()

	slow := tr.Begin("first")
	fast := tr.Begin("second")

	require.True(t, tr.Commit(fast, &model.Result{Query: "second"}))
	assert.False(t, tr.Commit(slow, &model.Result{Query: "first"}))
	assert.Equal(t, "second", tr.Current().Query)
}

func TestStaleBeforeNewerCommit(t *testing.T) {
	tr := NewTracker()

	slow := tr.Begin("first")
	tr.Begin("second")

	// 新搜索还没完成，旧结果也不能提交
	assert.False(t, tr.Commit(slow, &model.Result{Query: "first"}))
	assert.Nil(t, tr.Current())
}

func TestCommitNil(t *testing.T) {
	tr := NewTracker()
	assert.False(t, tr.Commit(tr.Begin("x"), nil))
}

func TestFilter(t *testing.T) {
	tr := NewTracker()
	ticket := tr.Begin("boots")
	tr.Commit(ticket, &model.Result{Reviews: []model.Review{
		{Text: "good", Sentiment: model.Positive},
		{Text: "bad", Sentiment: model.Negative},
		{Text: "meh", Sentiment: model.Neutral},
	}})

	assert.Len(t, tr.Filter("all"), 3)
	pos := tr.Filter("positive")
	require.Len(t, pos, 1)
	assert.Equal(t, "good", pos[0].Text)
	assert.Empty(t, tr.Filter("unknown"))
}

func TestConcurrentCommitsKeepLatest(t *testing.T) {
	tr := NewTracker()
	tickets := make([]Ticket, 20)
	for i := range tickets {
		tickets[i] = tr.Begin("q")
	}

	var wg sync.WaitGroup
	for _, tk := range tickets {
		wg.Add(1)
		go func(tk Ticket) {
			defer wg.Done()
			tr.Commit(tk, &model.Result{Query: "q"})
		}(tk)
	}
	wg.Wait()

	require.NotNil(t, tr.Current())
	assert.Equal(t, tickets[len(tickets)-1].Generation, tr.Current().Generation)
}
