package conf

type Bootstrap struct {
	Server *Server
	Radar  *Radar
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Radar struct {
	Llm         *LLM         `json:"llm"`
	Sources     *Sources     `json:"sources"`
	Search      *Search      `json:"search"`
	Sentiment   *Sentiment   `json:"sentiment"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
	Db          *DB          `json:"db"`
}

type LLM struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
}

type Sources struct {
	Enabled    []string `json:"enabled"`
	MaxResults int32    `json:"max_results"`
	Timeout    int32    `json:"timeout"`
	Reddit     *Reddit  `json:"reddit"`
	Youtube    *YouTube `json:"youtube"`
	Gateway    *Gateway `json:"gateway"`
	Web        *Web     `json:"web"`
}

type Reddit struct {
	BaseUrl         string   `json:"base_url"`
	UserAgent       string   `json:"user_agent"`
	Subreddits      []string `json:"subreddits"`
	CommentsPerPost int32    `json:"comments_per_post"`
}

type YouTube struct {
	BaseUrl          string `json:"base_url"`
	ApiKey           string `json:"api_key"`
	MaxVideos        int32  `json:"max_videos"`
	CommentsPerVideo int32  `json:"comments_per_video"`
}

type Gateway struct {
	BaseUrl string   `json:"base_url"`
	Sources []string `json:"sources"`
}

type Web struct {
	FetchBelow int32 `json:"fetch_below"`
	MaxContent int32 `json:"max_content"`
}

type Search struct {
	Provider string   `json:"provider"`
	Tavily   *Tavily  `json:"tavily"`
	Searxng  *SearXNG `json:"searxng"`
}

type Tavily struct {
	ApiKey string `json:"api_key"`
}

type SearXNG struct {
	BaseUrl string `json:"base_url"`
	Timeout int32  `json:"timeout"`
}

type Sentiment struct {
	UseLlm bool `json:"use_llm"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps       int32 `json:"qps"`
	Rpm       int32 `json:"rpm"`
	SourceRpm int32 `json:"source_rpm"`
}

type DB struct {
	Host     string `json:"host"`
	Port     int32  `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
