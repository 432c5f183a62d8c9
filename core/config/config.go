// Package config loads the yaml configuration over compiled-in
// defaults and converts the relevant sections into the domain types
// the engines consume.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/adalundhe/atlas/core/quiet"
)

// Config is the full application configuration.
type Config struct {
	LLM     LLMConfig     `yaml:"llm"`
	Quiet   QuietConfig   `yaml:"quiet"`
	Storage StorageConfig `yaml:"storage"`
	Prompts PromptsConfig `yaml:"prompts"`
	Agents  AgentsConfig  `yaml:"agents"`
}

type LLMConfig struct {
	// Provider order for the fallback chain. Known values: openai,
	// anthropic.
	Providers      []string `yaml:"providers"`
	OpenAIModel    string   `yaml:"openai_model"`
	AnthropicModel string   `yaml:"anthropic_model"`
}

type QuietConfig struct {
	RestDays      []string `yaml:"rest_days"`
	StartHour     int      `yaml:"start_hour"`
	EndHour       int      `yaml:"end_hour"`
	CooldownHours int      `yaml:"cooldown_hours"`
	Timezone      string   `yaml:"timezone"`
}

type StorageConfig struct {
	// Path to the SQLite database. Empty selects the platform-default
	// data directory.
	Path string `yaml:"path"`
}

type PromptsConfig struct {
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type AgentsConfig struct {
	CoachMaxTokens   int           `yaml:"coach_max_tokens"`
	PlannerMaxTokens int           `yaml:"planner_max_tokens"`
	Temperature      float64       `yaml:"temperature"`
	Timeout          time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Providers:      []string{"openai", "anthropic"},
			OpenAIModel:    "gpt-4o-mini",
			AnthropicModel: "claude-haiku-4-5-20251001",
		},
		Quiet: QuietConfig{
			RestDays:      []string{"thursday", "friday"},
			StartHour:     9,
			EndHour:       18,
			CooldownHours: 4,
			Timezone:      "Asia/Riyadh",
		},
		Storage: StorageConfig{},
		Prompts: PromptsConfig{
			CacheTTL: time.Minute,
		},
		Agents: AgentsConfig{
			CoachMaxTokens:   200,
			PlannerMaxTokens: 1000,
			Temperature:      0.7,
			Timeout:          30 * time.Second,
		},
	}
}

// Load reads the yaml file at path over the defaults. A missing file
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// QuietPolicy converts the quiet section into a gate policy. Unknown
// day names and timezones fall back to the defaults.
func (c *Config) QuietPolicy() quiet.Policy {
	policy := quiet.DefaultPolicy()

	if len(c.Quiet.RestDays) > 0 {
		var days []time.Weekday
		for _, name := range c.Quiet.RestDays {
			if day, ok := weekdayNames[strings.ToLower(name)]; ok {
				days = append(days, day)
			}
		}
		if len(days) > 0 {
			policy.RestDays = days
		}
	}

	if c.Quiet.StartHour != 0 || c.Quiet.EndHour != 0 {
		policy.StartHour = c.Quiet.StartHour
		policy.EndHour = c.Quiet.EndHour
	}

	if c.Quiet.CooldownHours > 0 {
		policy.Cooldown = time.Duration(c.Quiet.CooldownHours) * time.Hour
	}

	if c.Quiet.Timezone != "" {
		if loc, err := time.LoadLocation(c.Quiet.Timezone); err == nil {
			policy.Location = loc
		}
	}

	return policy
}
