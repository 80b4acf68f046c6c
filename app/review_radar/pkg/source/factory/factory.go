package factory

import (
	"fmt"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/config"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/gateway"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/logger"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/model"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/reddit"
	searchfactory "github.com/iWorld-y/review_radar/app/review_radar/pkg/search/factory"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/source"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/web"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/youtube"
)

// NewConnectors 根据配置创建启用的来源连接器，配置不完整的来源跳过并告警
func NewConnectors(cfg *config.Config) (map[model.Source]source.Connector, error) {
	enabled, err := enabledSources(cfg.Sources.Enabled)
	if err != nil {
		return nil, err
	}

	connectors := make(map[model.Source]source.Connector)
	for _, src := range enabled {
		conn, err := newConnector(cfg, src)
		if err != nil {
			logger.Log.Warnf("来源 [%s] 未启用: %v", src, err)
			continue
		}
		connectors[src] = conn
	}
	return connectors, nil
}

func newConnector(cfg *config.Config, src model.Source) (source.Connector, error) {
	limiter := source.NewLimiter(cfg.Concurrency.SourceRPM)

	switch src {
	case model.SourceReddit:
		return reddit.NewClient(cfg.Sources.Reddit, limiter), nil

	case model.SourceYouTube:
		return youtube.NewClient(cfg.Sources.YouTube, limiter)

	case model.SourceWeb:
		searcher, err := searchfactory.NewSearcher(cfg.Search)
		if err != nil {
			return nil, err
		}
		return web.NewClient(searcher, cfg.Sources.Web, nil, limiter), nil

	case model.SourceAmazon, model.SourceTrustpilot:
		if !contains(cfg.Sources.Gateway.Sources, string(src)) {
			return nil, fmt.Errorf("source not served by gateway")
		}
		return gateway.NewClient(src, cfg.Sources.Gateway.BaseURL, cfg.Sources.SourceTimeout(), limiter)
	}
	return nil, fmt.Errorf("unknown source: %s", src)
}

// enabledSources 为空时返回全部来源
func enabledSources(names []string) ([]model.Source, error) {
	if len(names) == 0 {
		return model.AllSources, nil
	}
	out := make([]model.Source, 0, len(names))
	for _, n := range names {
		src, err := model.ParseSource(n)
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
