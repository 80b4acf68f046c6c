package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iWorld-y/review_radar/app/display/internal/conf"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/config"
	rrLogger "github.com/iWorld-y/review_radar/app/review_radar/pkg/logger"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/radar"
)

// NewRadar 初始化 review_radar 引擎
func NewRadar(c *conf.Radar, reg prometheus.Registerer, logger log.Logger) (*radar.Radar, func(), error) {
	helper := log.NewHelper(logger)
	cfg := ToConfig(c)

	// 初始化日志
	if err := rrLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		helper.Errorf("Failed to init review_radar logger: %v", err)
		_ = rrLogger.InitLogger("info", "") // 降级处理
	}

	r, err := radar.New(context.Background(), cfg, radar.Options{Registerer: reg})
	if err != nil {
		helper.Errorf("Failed to init radar: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("Cleaning up review_radar engine")
		if err := r.Close(); err != nil {
			helper.Errorf("Failed to close radar: %v", err)
		}
	}
	return r, cleanup, nil
}

// ToConfig 将 internal/conf.Radar 转换为 pkg/config.Config，缺省项使用默认值
func ToConfig(c *conf.Radar) *config.Config {
	cfg := &config.Config{}
	if c == nil {
		cfg.ApplyEnv()
		cfg.ApplyDefaults()
		return cfg
	}

	if c.Llm != nil {
		cfg.LLM = config.LLMConfig{BaseURL: c.Llm.BaseUrl, APIKey: c.Llm.ApiKey, Model: c.Llm.Model}
	}
	if s := c.Sources; s != nil {
		cfg.Sources.Enabled = s.Enabled
		cfg.Sources.MaxResults = int(s.MaxResults)
		cfg.Sources.Timeout = int(s.Timeout)
		if s.Reddit != nil {
			cfg.Sources.Reddit = config.RedditConfig{
				BaseURL:         s.Reddit.BaseUrl,
				UserAgent:       s.Reddit.UserAgent,
				Subreddits:      s.Reddit.Subreddits,
				CommentsPerPost: int(s.Reddit.CommentsPerPost),
			}
		}
		if s.Youtube != nil {
			cfg.Sources.YouTube = config.YouTubeConfig{
				BaseURL:          s.Youtube.BaseUrl,
				APIKey:           s.Youtube.ApiKey,
				MaxVideos:        int(s.Youtube.MaxVideos),
				CommentsPerVideo: int(s.Youtube.CommentsPerVideo),
			}
		}
		if s.Gateway != nil {
			cfg.Sources.Gateway = config.GatewayConfig{BaseURL: s.Gateway.BaseUrl, Sources: s.Gateway.Sources}
		}
		if s.Web != nil {
			cfg.Sources.Web = config.WebSourceConfig{FetchBelow: int(s.Web.FetchBelow), MaxContent: int(s.Web.MaxContent)}
		}
	}
	if s := c.Search; s != nil {
		cfg.Search.Provider = s.Provider
		if s.Tavily != nil {
			cfg.Search.Tavily.APIKey = s.Tavily.ApiKey
		}
		if s.Searxng != nil {
			cfg.Search.SearXNG = config.SearXNGConfig{BaseURL: s.Searxng.BaseUrl, Timeout: int(s.Searxng.Timeout)}
		}
	}
	if c.Sentiment != nil {
		cfg.Sentiment.UseLLM = c.Sentiment.UseLlm
	}
	if c.Log != nil {
		cfg.Log = config.LogConfig{Level: c.Log.Level, File: c.Log.File}
	}
	if c.Concurrency != nil {
		cfg.Concurrency = config.ConcurrencyConfig{
			QPS:       int(c.Concurrency.Qps),
			RPM:       int(c.Concurrency.Rpm),
			SourceRPM: int(c.Concurrency.SourceRpm),
		}
	}
	if c.Db != nil {
		cfg.DB = config.DBConfig{
			Host:     c.Db.Host,
			Port:     int(c.Db.Port),
			User:     c.Db.User,
			Password: c.Db.Password,
			Name:     c.Db.Name,
		}
	}

	cfg.ApplyEnv()
	cfg.ApplyDefaults()
	return cfg
}
