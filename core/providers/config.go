package providers

import "fmt"

// Defaults match the coaching path: short completions, mild creativity.
const (
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-haiku-4-5-20251001"
	DefaultMaxTokens      = 200
	DefaultTemperature    = 0.7
)

// OpenAIConfig configures the OpenAI adapter.
type OpenAIConfig struct {
	APIKey       string
	BaseURL      string
	Organization string
	Project      string
	Model        string
	MaxTokens    int
	Temperature  float64
}

// DefaultOpenAIConfig returns the stock OpenAI configuration.
func DefaultOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		Model:       DefaultOpenAIModel,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
}

// Validate checks the configuration.
func (c OpenAIConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("openai config: api key is required")
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("openai config: max tokens must be non-negative")
	}
	return nil
}

// AnthropicConfig configures the Anthropic adapter.
type AnthropicConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
}

// DefaultAnthropicConfig returns the stock Anthropic configuration.
func DefaultAnthropicConfig() AnthropicConfig {
	return AnthropicConfig{
		Model:       DefaultAnthropicModel,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
}

// Validate checks the configuration.
func (c AnthropicConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("anthropic config: api key is required")
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("anthropic config: max tokens must be non-negative")
	}
	return nil
}
