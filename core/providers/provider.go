// Package providers defines the text-generation port and its concrete
// adapters. The engines treat any failure, timeout, or empty completion
// identically, so adapters only implement the non-streaming path.
package providers

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the backend answered without
// usable text.
var ErrEmptyCompletion = errors.New("providers: empty completion")

type ProviderType string

const (
	ProviderTypeOpenAI    ProviderType = "openai"
	ProviderTypeAnthropic ProviderType = "anthropic"
)

// Provider is the generation port. One contract per backend; adapters
// are selected at construction time, never via runtime introspection.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req *Request) (*Response, error)
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Messages     []Message `json:"messages"`
	Model        string    `json:"model,omitempty"`
	MaxTokens    int       `json:"max_tokens,omitempty"`
	Temperature  *float64  `json:"temperature,omitempty"`
	SystemPrompt string    `json:"system_prompt,omitempty"`
}

type Response struct {
	Content string `json:"content"`
	Model   string `json:"model"`
	Usage   Usage  `json:"usage"`
}

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}
