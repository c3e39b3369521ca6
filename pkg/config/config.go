package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App       AppConfig                 `yaml:"app"`
	Weather   WeatherConfig             `yaml:"weather"`
	Providers map[string]ProviderConfig `yaml:"providers"`
	Gateways  map[string]GatewayConfig  `yaml:"gateways"`
	Logging   LoggingConfig             `yaml:"logging"`
}

type AppConfig struct {
	Name      string   `yaml:"name"`
	Cities    []string `yaml:"cities"`
	ExitWords []string `yaml:"exit_words"`
	Prompts   string   `yaml:"prompts"`
}

type WeatherConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

type ProviderConfig struct {
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url,omitempty"`
	Temperature float64 `yaml:"temperature"`
	Enabled     bool    `yaml:"enabled"`
}

type GatewayConfig struct {
	Token   string `yaml:"token"`
	Enabled bool   `yaml:"enabled"`
}

type LoggingConfig struct {
	LLMLog  string `yaml:"llm_log"`
	MaxSize int64  `yaml:"max_size"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:      "weatherwear",
			Cities:    []string{"北京", "上海", "广州", "深圳"},
			ExitWords: []string{"quit", "exit", "q", "退出"},
			Prompts:   "./prompts",
		},
		Weather: WeatherConfig{
			BaseURL:   "http://wttr.in",
			Timeout:   10 * time.Second,
			UserAgent: "WeatherClothingAdvisor/1.0",
		},
		Providers: map[string]ProviderConfig{
			"openai": {
				Model:       "gpt-3.5-turbo",
				Temperature: 0.7,
			},
		},
		Gateways: map[string]GatewayConfig{},
		Logging: LoggingConfig{
			LLMLog:  "logs/llm.jsonl",
			MaxSize: 10 * 1024 * 1024, // 10MB
		},
	}
}

// LoadConfig reads the YAML file at path on top of Default and applies
// environment overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if c.Providers == nil {
		c.Providers = map[string]ProviderConfig{}
	}
	if c.Gateways == nil {
		c.Gateways = map[string]GatewayConfig{}
	}

	if key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); key != "" {
		p := c.Providers["openai"]
		if p.APIKey == "" {
			p.APIKey = key
		}
		p.Enabled = true
		c.Providers["openai"] = p
	}
	if model := strings.TrimSpace(os.Getenv("OPENAI_MODEL")); model != "" {
		p := c.Providers["openai"]
		p.Model = model
		c.Providers["openai"] = p
	}
	if base := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")); base != "" {
		p := c.Providers["openai"]
		p.BaseURL = base
		c.Providers["openai"] = p
	}

	for name, env := range map[string]string{"telegram": "TELEGRAM_TOKEN", "discord": "DISCORD_TOKEN"} {
		if token := strings.TrimSpace(os.Getenv(env)); token != "" {
			g := c.Gateways[name]
			g.Token = token
			g.Enabled = true
			c.Gateways[name] = g
		}
	}
}

// fillDefaults restores zero values a partial file may have left behind.
func (c *Config) fillDefaults() {
	def := Default()
	if c.App.Name == "" {
		c.App.Name = def.App.Name
	}
	if len(c.App.ExitWords) == 0 {
		c.App.ExitWords = def.App.ExitWords
	}
	if c.App.Prompts == "" {
		c.App.Prompts = def.App.Prompts
	}
	if c.Weather.BaseURL == "" {
		c.Weather.BaseURL = def.Weather.BaseURL
	}
	if c.Weather.Timeout <= 0 {
		c.Weather.Timeout = def.Weather.Timeout
	}
	if c.Weather.UserAgent == "" {
		c.Weather.UserAgent = def.Weather.UserAgent
	}
	if c.Logging.LLMLog == "" {
		c.Logging.LLMLog = def.Logging.LLMLog
	}
	if c.Logging.MaxSize <= 0 {
		c.Logging.MaxSize = def.Logging.MaxSize
	}
}

// GetDefaultProvider returns the first enabled provider with an API key,
// in name order.
func (c *Config) GetDefaultProvider() (string, ProviderConfig) {
	names := make([]string, 0, len(c.Providers))
	for name := range c.Providers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := c.Providers[name]
		if p.Enabled && p.APIKey != "" {
			return name, p
		}
	}
	return "", ProviderConfig{}
}

// GetGatewayConfig returns the named gateway config if enabled.
func (c *Config) GetGatewayConfig(name string) (GatewayConfig, bool) {
	g, ok := c.Gateways[name]
	if ok && g.Enabled && g.Token != "" {
		return g, true
	}
	return GatewayConfig{}, false
}
