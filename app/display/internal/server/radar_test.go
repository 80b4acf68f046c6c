package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iWorld-y/review_radar/app/display/internal/conf"
)

func TestToConfig(t *testing.T) {
	cfg := ToConfig(&conf.Radar{
		Llm: &conf.LLM{BaseUrl: "http://llm", ApiKey: "k", Model: "m"},
		Sources: &conf.Sources{
			Enabled:    []string{"reddit", "web"},
			MaxResults: 12,
			Reddit:     &conf.Reddit{Subreddits: []string{"BuyItForLife"}},
		},
		Search:      &conf.Search{Provider: "searxng", Searxng: &conf.SearXNG{BaseUrl: "http://sx", Timeout: 5}},
		Sentiment:   &conf.Sentiment{UseLlm: true},
		Concurrency: &conf.Concurrency{Qps: 2, Rpm: 30, SourceRpm: 10},
		Db:          &conf.DB{Host: "db", Port: 5433},
	})

	assert.Equal(t, "m", cfg.LLM.Model)
	assert.Equal(t, []string{"reddit", "web"}, cfg.Sources.Enabled)
	assert.Equal(t, 12, cfg.Sources.MaxResults)
	assert.Equal(t, []string{"BuyItForLife"}, cfg.Sources.Reddit.Subreddits)
	assert.Equal(t, "https://www.reddit.com", cfg.Sources.Reddit.BaseURL)
	assert.Equal(t, "searxng", cfg.Search.Provider)
	assert.Equal(t, 5, cfg.Search.SearXNG.Timeout)
	assert.True(t, cfg.Sentiment.UseLLM)
	assert.Equal(t, 10, cfg.Concurrency.SourceRPM)
	assert.Equal(t, 5433, cfg.DB.Port)
}

func TestToConfigNil(t *testing.T) {
	cfg := ToConfig(nil)
	assert.Equal(t, 30, cfg.Sources.MaxResults)
	assert.Equal(t, "info", cfg.Log.Level)
}
