package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/config"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/searxng"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/tavily"
)

func TestNewSearcher(t *testing.T) {
	s, err := NewSearcher(config.SearchConfig{Tavily: config.TavilyConfig{APIKey: "k"}})
	require.NoError(t, err)
	assert.IsType(t, &tavily.Client{}, s)

	s, err = NewSearcher(config.SearchConfig{Provider: "searxng", SearXNG: config.SearXNGConfig{BaseURL: "http://localhost:8888"}})
	require.NoError(t, err)
	assert.IsType(t, &searxng.Client{}, s)

	_, err = NewSearcher(config.SearchConfig{})
	assert.Error(t, err)

	_, err = NewSearcher(config.SearchConfig{Provider: "searxng"})
	assert.Error(t, err)

	_, err = NewSearcher(config.SearchConfig{Provider: "bing"})
	assert.Error(t, err)
}
