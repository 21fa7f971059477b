// Package config loads runtime configuration from file and environment and
// owns global logger setup.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Serp    SerpConfig    `yaml:"serp" mapstructure:"serp"`
	Censys  CensysConfig  `yaml:"censys" mapstructure:"censys"`
	Harvest HarvestConfig `yaml:"harvest" mapstructure:"harvest"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// SerpConfig holds SerpAPI credentials. An empty key disables the SerpAPI
// collectors.
type SerpConfig struct {
	Key string `yaml:"key" mapstructure:"key"`
}

// CensysConfig holds Censys API credentials. Missing credentials disable the
// subdomain collector.
type CensysConfig struct {
	APIID  string `yaml:"api_id" mapstructure:"api_id"`
	Secret string `yaml:"secret" mapstructure:"secret"`
}

// HarvestConfig configures the harvest run.
type HarvestConfig struct {
	Limit          int    `yaml:"limit" mapstructure:"limit"`
	Threads        int    `yaml:"threads" mapstructure:"threads"`
	Keyword        string `yaml:"keyword" mapstructure:"keyword"`
	JobAdsQuery    string `yaml:"job_ads_query" mapstructure:"job_ads_query"`
	PDFQuery       string `yaml:"pdf_query" mapstructure:"pdf_query"`
	PressFeedURL   string `yaml:"press_feed_url" mapstructure:"press_feed_url"`
	PressQuery     string `yaml:"press_query" mapstructure:"press_query"`
	CensysQuery    string `yaml:"censys_query" mapstructure:"censys_query"`
	SnippetContext int    `yaml:"snippet_context" mapstructure:"snippet_context"`
	UserAgent      string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs    int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxAttempts    int    `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("HARVESTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Credentials keep their conventional env names alongside the prefixed ones.
	_ = v.BindEnv("serp.key", "HARVESTER_SERP_KEY", "SERPAPI_KEY")
	_ = v.BindEnv("censys.api_id", "HARVESTER_CENSYS_API_ID", "CENSYS_API_ID")
	_ = v.BindEnv("censys.secret", "HARVESTER_CENSYS_SECRET", "CENSYS_SECRET")

	// Defaults
	v.SetDefault("harvest.limit", 50)
	v.SetDefault("harvest.threads", 5)
	v.SetDefault("harvest.keyword", "Heartland Payroll")
	v.SetDefault("harvest.job_ads_query", `site:easyapply.co "Heartland Payroll"`)
	v.SetDefault("harvest.pdf_query", `"Heartland Payroll" filetype:pdf`)
	v.SetDefault("harvest.press_feed_url", "https://www.prnewswire.com/rss/search/")
	v.SetDefault("harvest.press_query", `"Heartland Payroll" (implements OR selects OR partners)`)
	v.SetDefault("harvest.censys_query", "services.tls.certificates.leaf_data.subject_dn: myheartlandpayroll.com")
	v.SetDefault("harvest.snippet_context", 100)
	v.SetDefault("harvest.user_agent", "heartland-harvester/1.0")
	v.SetDefault("harvest.timeout_secs", 20)
	v.SetDefault("harvest.max_attempts", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate rejects configurations that cannot produce a meaningful run.
// Validation failures abort before any collector is dispatched.
func (c *Config) Validate() error {
	if c.Harvest.Limit < 1 {
		return eris.Errorf("config: harvest.limit must be >= 1, got %d", c.Harvest.Limit)
	}
	if c.Harvest.Threads < 1 {
		return eris.Errorf("config: harvest.threads must be >= 1, got %d", c.Harvest.Threads)
	}
	if c.Harvest.SnippetContext < 0 {
		return eris.Errorf("config: harvest.snippet_context must be >= 0, got %d", c.Harvest.SnippetContext)
	}
	if c.Harvest.Keyword == "" {
		return eris.New("config: harvest.keyword must not be empty")
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
