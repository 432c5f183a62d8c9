package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFallbackChain_RequiresProviders(t *testing.T) {
	_, err := NewFallbackChain(nil)
	assert.Error(t, err)
}

func TestFallbackChain_PrimarySucceeds(t *testing.T) {
	primary := &StubProvider{ProviderName: "primary", Content: "from primary"}
	secondary := &StubProvider{ProviderName: "secondary", Content: "from secondary"}

	chain, err := NewFallbackChain(nil, primary, secondary)
	require.NoError(t, err)

	resp, err := chain.Generate(context.Background(), &Request{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "from primary", resp.Content)
	assert.Equal(t, 1, primary.Calls())
	assert.Zero(t, secondary.Calls(), "secondary must not be consulted")
}

func TestFallbackChain_FallsThroughOnFailure(t *testing.T) {
	primary := &StubProvider{ProviderName: "primary", Err: errors.New("rate limited")}
	secondary := &StubProvider{ProviderName: "secondary", Content: "from secondary"}

	chain, err := NewFallbackChain(nil, primary, secondary)
	require.NoError(t, err)

	resp, err := chain.Generate(context.Background(), &Request{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "from secondary", resp.Content)
	assert.Equal(t, 1, primary.Calls())
	assert.Equal(t, 1, secondary.Calls())
}

func TestFallbackChain_AllFail(t *testing.T) {
	first := &StubProvider{ProviderName: "first", Err: errors.New("boom")}
	second := &StubProvider{ProviderName: "second", Err: ErrEmptyCompletion}

	chain, err := NewFallbackChain(nil, first, second)
	require.NoError(t, err)

	_, err = chain.Generate(context.Background(), &Request{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyCompletion, "individual failures stay inspectable")
	assert.Contains(t, err.Error(), "first")
	assert.Contains(t, err.Error(), "second")
}

func TestFallbackChain_StopsOnCancelledContext(t *testing.T) {
	primary := &StubProvider{ProviderName: "primary", Content: "unused"}

	chain, err := NewFallbackChain(nil, primary)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = chain.Generate(ctx, &Request{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, primary.Calls(), "no provider runs after cancellation")
}

func TestFallbackChain_PassesRequestThrough(t *testing.T) {
	stub := &StubProvider{Content: "ok"}

	chain, err := NewFallbackChain(nil, stub)
	require.NoError(t, err)

	temp := 0.3
	req := &Request{
		Messages:     []Message{{Role: RoleUser, Content: "hello"}},
		MaxTokens:    128,
		Temperature:  &temp,
		SystemPrompt: "be brief",
	}

	_, err = chain.Generate(context.Background(), req)
	require.NoError(t, err)

	got := stub.LastRequest()
	require.NotNil(t, got)
	assert.Equal(t, req, got, "the chain forwards the request untouched")
}
