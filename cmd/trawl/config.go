package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mzagorski/trawl"
)

// Config defaults applied by LoadConfig when the file omits a field.
const (
	defaultMaxConcurrency     = 5
	defaultPerDomainDelayMs   = 1000
	defaultMaxRetries         = 3
	defaultBackoffInitialMs   = 500
	defaultBackoffMaxMs       = 8000
	defaultRequestTimeoutMs   = 30000
	defaultProxyFailThreshold = 3
	defaultSQLitePath         = "trawl.db"
	keywordPlaceholder        = "{keyword}"
)

// Config describes one crawl run. It is loaded from a JSON file.
type Config struct {
	Seeds              []string      `json:"seeds"`
	SeedsFromKeywords  *KeywordSeeds `json:"seeds_from_keywords"`
	AllowedDomains     []string      `json:"allowed_domains"`
	MaxConcurrency     int           `json:"max_concurrency"`
	PerDomainDelayMs   int           `json:"per_domain_delay_ms"`
	RespectRobotsTxt   bool          `json:"respect_robots_txt"`
	MaxRetries         int           `json:"max_retries"`
	BackoffInitialMs   int           `json:"retry_backoff_initial_ms"`
	BackoffMaxMs       int           `json:"retry_backoff_max_ms"`
	RequestTimeoutMs   int           `json:"request_timeout_ms"`
	UserAgents         []string      `json:"user_agents"`
	Proxies            []string      `json:"proxies"`
	ProxyFailThreshold int           `json:"proxy_fail_threshold"`
	SitemapSeeds       []string      `json:"sitemap_seeds"`
	Storage            StorageConfig `json:"storage"`
	LogLevel           string        `json:"log_level"`
}

// KeywordSeeds expands a keyword list file into seed URLs via a
// template containing a {keyword} placeholder.
type KeywordSeeds struct {
	File     string `json:"file"`
	Template string `json:"template"`
}

// StorageConfig selects where and what the crawl persists.
type StorageConfig struct {
	SQLitePath   string `json:"sqlite_path"`
	SavePageHTML bool   `json:"save_page_html"`
}

// LoadConfig reads, defaults, and validates a config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		RespectRobotsTxt: true,
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, trawl.Errorf(trawl.EINVALID, "invalid config JSON: %v", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = defaultMaxConcurrency
	}
	if c.PerDomainDelayMs <= 0 {
		c.PerDomainDelayMs = defaultPerDomainDelayMs
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.BackoffInitialMs <= 0 {
		c.BackoffInitialMs = defaultBackoffInitialMs
	}
	if c.BackoffMaxMs <= 0 {
		c.BackoffMaxMs = defaultBackoffMaxMs
	}
	if c.RequestTimeoutMs <= 0 {
		c.RequestTimeoutMs = defaultRequestTimeoutMs
	}
	if c.ProxyFailThreshold <= 0 {
		c.ProxyFailThreshold = defaultProxyFailThreshold
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = defaultSQLitePath
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks that the config describes a runnable crawl.
func (c *Config) Validate() error {
	if len(c.Seeds) == 0 && c.SeedsFromKeywords == nil && len(c.SitemapSeeds) == 0 {
		return trawl.Errorf(trawl.EINVALID,
			"config needs at least one seed source: seeds, seeds_from_keywords, or sitemap_seeds")
	}
	if c.SeedsFromKeywords != nil {
		if c.SeedsFromKeywords.File == "" {
			return trawl.Errorf(trawl.EINVALID, "seeds_from_keywords.file required")
		}
		if !strings.Contains(c.SeedsFromKeywords.Template, keywordPlaceholder) {
			return trawl.Errorf(trawl.EINVALID,
				"seeds_from_keywords.template must contain %s", keywordPlaceholder)
		}
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return trawl.Errorf(trawl.EINVALID, "unknown log_level %q", c.LogLevel)
	}
	return nil
}

// KeywordSeedURLs expands the keyword file into seed URLs. Blank lines
// and #-comments are skipped.
func (c *Config) KeywordSeedURLs() ([]string, error) {
	if c.SeedsFromKeywords == nil {
		return nil, nil
	}

	f, err := os.Open(c.SeedsFromKeywords.File)
	if err != nil {
		return nil, fmt.Errorf("failed to open keywords file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		keyword := strings.TrimSpace(scanner.Text())
		if keyword == "" || strings.HasPrefix(keyword, "#") {
			continue
		}
		urls = append(urls, strings.ReplaceAll(
			c.SeedsFromKeywords.Template, keywordPlaceholder, keyword))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read keywords file: %w", err)
	}
	return urls, nil
}
