package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFeedURL is the MarketWatch top stories feed.
const DefaultFeedURL = "http://feeds.marketwatch.com/marketwatch/topstories/"

type Config struct {
	FeedURL     string `yaml:"feed_url"`
	MaxArticles int    `yaml:"max_articles"`
	Fetch       struct {
		Workers           int     `yaml:"workers"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
		TimeoutSeconds    int     `yaml:"timeout_seconds"`
		UserAgent         string  `yaml:"user_agent"`
		FailFast          bool    `yaml:"fail_fast"`
	} `yaml:"fetch"`
	Extract struct {
		TickersSelector string `yaml:"tickers_selector"`
		SymbolSelector  string `yaml:"symbol_selector"`
		BodySelector    string `yaml:"body_selector"`
	} `yaml:"extract"`
	Scorer struct {
		Provider    string  `yaml:"provider"` // LEXICON, OPENAI, CLAUDE or NOOP
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
	} `yaml:"scorer"`
	Filter struct {
		MinAbsPolarity  *float64 `yaml:"min_abs_polarity"`
		MaxSubjectivity *float64 `yaml:"max_subjectivity"`
	} `yaml:"filter"`
	Rank struct {
		MeanWeight        *float64 `yaml:"mean_weight"`
		DeviationWeight   *float64 `yaml:"deviation_weight"`
		CountWeight       *float64 `yaml:"count_weight"`
		CountNormalizer   *float64 `yaml:"count_normalizer"`
		PolarityShare     *float64 `yaml:"polarity_share"`
		SubjectivityShare *float64 `yaml:"subjectivity_share"`
	} `yaml:"rank"`
	Output struct {
		JSONPath string `yaml:"json_path"`
	} `yaml:"output"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var c Config
	c.Fetch.FailFast = true
	applyDefaults(&c)
	return &c
}

func (c *Config) Validate() error {
	if c.FeedURL == "" {
		return errors.New("feed_url cannot be empty")
	}
	if !strings.HasPrefix(c.FeedURL, "http://") && !strings.HasPrefix(c.FeedURL, "https://") {
		return fmt.Errorf("feed_url must be an http(s) URL, got '%s'", c.FeedURL)
	}
	if c.MaxArticles < 0 {
		return fmt.Errorf("max_articles cannot be negative, got %d", c.MaxArticles)
	}
	if c.Fetch.Workers < 1 {
		return fmt.Errorf("fetch.workers must be at least 1, got %d", c.Fetch.Workers)
	}
	if c.Fetch.RequestsPerSecond <= 0 {
		return fmt.Errorf("fetch.requests_per_second must be positive, got %.2f", c.Fetch.RequestsPerSecond)
	}
	switch strings.ToUpper(c.Scorer.Provider) {
	case "LEXICON", "NOOP":
	case "OPENAI", "CLAUDE":
		if strings.TrimSpace(c.Scorer.Model) == "" {
			return fmt.Errorf("scorer.model is required for provider '%s'", c.Scorer.Provider)
		}
	default:
		return fmt.Errorf("scorer.provider must be 'LEXICON', 'OPENAI', 'CLAUDE' or 'NOOP', got '%s'", c.Scorer.Provider)
	}
	if v := c.Filter.MaxSubjectivity; v != nil && (*v < 0 || *v > 1) {
		return fmt.Errorf("filter.max_subjectivity must be between 0-1, got %.2f", *v)
	}
	if v := c.Filter.MinAbsPolarity; v != nil && (*v < 0 || *v > 1) {
		return fmt.Errorf("filter.min_abs_polarity must be between 0-1, got %.2f", *v)
	}
	if v := c.Rank.CountNormalizer; v != nil && *v <= 0 {
		return fmt.Errorf("rank.count_normalizer must be positive, got %.2f", *v)
	}
	return nil
}

// LoadConfig reads a YAML config. A missing file is not an error: defaults are used.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		c := Default()
		applyEnv(c)
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes YAML and fills in defaults and env overrides.
func Parse(b []byte) (*Config, error) {
	c := Config{}
	c.Fetch.FailFast = true
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	applyDefaults(&c)
	applyEnv(&c)
	return &c, nil
}

func applyDefaults(c *Config) {
	if c.FeedURL == "" {
		c.FeedURL = DefaultFeedURL
	}
	if c.Fetch.Workers == 0 {
		c.Fetch.Workers = 4
	}
	if c.Fetch.RequestsPerSecond == 0 {
		c.Fetch.RequestsPerSecond = 2
	}
	if c.Fetch.Burst == 0 {
		c.Fetch.Burst = c.Fetch.Workers
	}
	if c.Fetch.TimeoutSeconds == 0 {
		c.Fetch.TimeoutSeconds = 30
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	if c.Extract.TickersSelector == "" {
		c.Extract.TickersSelector = ".list--tickers"
	}
	if c.Extract.SymbolSelector == "" {
		c.Extract.SymbolSelector = ".symbol"
	}
	if c.Extract.BodySelector == "" {
		c.Extract.BodySelector = "#js-article__body"
	}
	if c.Scorer.Provider == "" {
		c.Scorer.Provider = "LEXICON"
	}
	if c.Scorer.MaxTokens == 0 {
		c.Scorer.MaxTokens = 100
	}
}

// applyEnv lets RANKER_FEED_URL and RANKER_WORKERS override the file.
func applyEnv(c *Config) {
	if v := os.Getenv("RANKER_FEED_URL"); v != "" {
		c.FeedURL = v
	}
	if v := os.Getenv("RANKER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Fetch.Workers = n
		}
	}
}
