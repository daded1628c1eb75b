package model

import "time"

// Config holds the full runtime configuration.
// Loaded from ~/.factcheck/config.yaml, FACTCHECK_* environment variables
// and CLI flags, in ascending priority.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	API         APIConfig         `yaml:"api" mapstructure:"api"`
	Scheduler   SchedulerConfig   `yaml:"scheduler" mapstructure:"scheduler"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls outbound HTTP behavior for page fetching and the
// remote service clients.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// APIConfig locates the extraction/analysis backend.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// SchedulerConfig controls discovery batching.
type SchedulerConfig struct {
	// QuietPeriod is the debounce window: a flush fires this long after the
	// last discovery burst, never earlier.
	QuietPeriod time.Duration `yaml:"quiet_period" mapstructure:"quiet_period"`
	// PollInterval is how often the page source re-scans for new comments
	// in watch mode.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
}

// ConcurrencyConfig controls fan-out widths.
type ConcurrencyConfig struct {
	AnalysisWorkers int `yaml:"analysis_workers" mapstructure:"analysis_workers"`
	BatchWorkers    int `yaml:"batch_workers" mapstructure:"batch_workers"`
}

// CacheConfig controls caching of remote responses.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// LLMConfig configures the optional direct LLM extraction backend, used
// instead of the remote extraction endpoint when Provider is set.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai", "ollama", "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"` // From environment only, never persisted
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "factcheck/0.1 (+https://github.com/Capston-25-1/Youtube-FactChecker)",
			MaxBodyBytes: 2_000_000,
		},
		API: APIConfig{
			BaseURL: "http://localhost:5000",
			Timeout: 60 * time.Second,
		},
		Scheduler: SchedulerConfig{
			QuietPeriod:  3 * time.Second,
			PollInterval: 5 * time.Second,
		},
		Concurrency: ConcurrencyConfig{
			AnalysisWorkers: 4,
			BatchWorkers:    4,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".factcheck-cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1000,
		},
	}
}
