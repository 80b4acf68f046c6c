package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Sources     SourcesConfig     `yaml:"sources"`
	Search      SearchConfig      `yaml:"search"`
	Sentiment   SentimentConfig   `yaml:"sentiment"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	DB          DBConfig          `yaml:"db"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// Enabled 是否配置了 LLM
func (c LLMConfig) Enabled() bool {
	return c.APIKey != "" && c.Model != ""
}

// SourcesConfig 评论来源配置
type SourcesConfig struct {
	// Enabled 启用的来源，为空时启用全部已配置的来源
	Enabled    []string        `yaml:"enabled"`
	MaxResults int             `yaml:"max_results"`
	Timeout    int             `yaml:"timeout"` // 单个来源超时，秒
	Reddit     RedditConfig    `yaml:"reddit"`
	YouTube    YouTubeConfig   `yaml:"youtube"`
	Gateway    GatewayConfig   `yaml:"gateway"`
	Web        WebSourceConfig `yaml:"web"`
}

// SourceTimeout 单个来源超时时间
func (c SourcesConfig) SourceTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// RedditConfig Reddit 配置
type RedditConfig struct {
	BaseURL   string `yaml:"base_url"`
	UserAgent string `yaml:"user_agent"`
	// Subreddits 限定搜索的版块，为空时全站搜索
	Subreddits      []string `yaml:"subreddits"`
	CommentsPerPost int      `yaml:"comments_per_post"`
}

// YouTubeConfig YouTube Data API 配置
type YouTubeConfig struct {
	BaseURL          string `yaml:"base_url"`
	APIKey           string `yaml:"api_key"`
	MaxVideos        int    `yaml:"max_videos"`
	CommentsPerVideo int    `yaml:"comments_per_video"`
}

// GatewayConfig 外部抓取服务配置（amazon、trustpilot 通过它获取）
type GatewayConfig struct {
	BaseURL string   `yaml:"base_url"`
	Sources []string `yaml:"sources"`
}

// WebSourceConfig 网页评测来源配置
type WebSourceConfig struct {
	// FetchBelow 摘要短于该长度时抓取原文
	FetchBelow int `yaml:"fetch_below"`
	MaxContent int `yaml:"max_content"`
}

// SearchConfig 网页搜索相关配置
type SearchConfig struct {
	Provider string        `yaml:"provider"`
	Tavily   TavilyConfig  `yaml:"tavily"`
	SearXNG  SearXNGConfig `yaml:"searxng"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// SentimentConfig 情感分析配置
type SentimentConfig struct {
	UseLLM bool `yaml:"use_llm"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
	// SourceRPM 每个来源每分钟请求上限
	SourceRPM int `yaml:"source_rpm"`
}

// DBConfig 数据库相关配置
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// DSN 返回 PostgreSQL 连接串
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// .env 不存在时直接使用系统环境变量
	_ = godotenv.Load()
	cfg.ApplyEnv()
	cfg.ApplyDefaults()

	return &cfg, nil
}

// ApplyEnv 使用环境变量覆盖密钥类配置
func (c *Config) ApplyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		c.Sources.YouTube.APIKey = v
	}
	if v := os.Getenv("TAVILY_API_KEY"); v != "" {
		c.Search.Tavily.APIKey = v
	}
	if v := os.Getenv("SCRAPER_GATEWAY_URL"); v != "" {
		c.Sources.Gateway.BaseURL = v
	}
}

// ApplyDefaults 填充未配置项的默认值
func (c *Config) ApplyDefaults() {
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.Sources.MaxResults <= 0 {
		c.Sources.MaxResults = 30
	}
	if c.Sources.Timeout <= 0 {
		c.Sources.Timeout = 60
	}
	if c.Sources.Reddit.BaseURL == "" {
		c.Sources.Reddit.BaseURL = "https://www.reddit.com"
	}
	if c.Sources.Reddit.UserAgent == "" {
		c.Sources.Reddit.UserAgent = "review-radar/1.0"
	}
	if c.Sources.Reddit.CommentsPerPost <= 0 {
		c.Sources.Reddit.CommentsPerPost = 5
	}
	if c.Sources.YouTube.BaseURL == "" {
		c.Sources.YouTube.BaseURL = "https://www.googleapis.com/youtube/v3"
	}
	if c.Sources.YouTube.MaxVideos <= 0 {
		c.Sources.YouTube.MaxVideos = 5
	}
	if c.Sources.YouTube.CommentsPerVideo <= 0 {
		c.Sources.YouTube.CommentsPerVideo = 20
	}
	if len(c.Sources.Gateway.Sources) == 0 {
		c.Sources.Gateway.Sources = []string{"amazon", "trustpilot"}
	}
	if c.Sources.Web.FetchBelow <= 0 {
		c.Sources.Web.FetchBelow = 500
	}
	if c.Sources.Web.MaxContent <= 0 {
		c.Sources.Web.MaxContent = 5000
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = 60
	}
	if c.Concurrency.SourceRPM <= 0 {
		c.Concurrency.SourceRPM = 120
	}
	if c.DB.Port == 0 {
		c.DB.Port = 5432
	}
}
