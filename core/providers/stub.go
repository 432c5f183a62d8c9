package providers

import (
	"context"
	"sync"
)

// StubProvider is a test double for the generation port. It records
// requests and returns a fixed response or error.
type StubProvider struct {
	ProviderName string
	Content      string
	Err          error

	mu       sync.Mutex
	requests []*Request
}

// Name returns the stub identifier
func (s *StubProvider) Name() string {
	if s.ProviderName != "" {
		return s.ProviderName
	}
	return "stub"
}

// Generate returns the configured response or error
func (s *StubProvider) Generate(ctx context.Context, req *Request) (*Response, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return &Response{Content: s.Content, Model: s.Name()}, nil
}

// Calls returns how many requests the stub has served.
func (s *StubProvider) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// LastRequest returns the most recent request, or nil.
func (s *StubProvider) LastRequest() *Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}
