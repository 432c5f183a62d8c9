package kpi

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adalundhe/atlas/core/storage"
)

// Performance is the latest-known performance view for a user. HasData
// is false when the user has no KPI rows; callers treat that as drift 0.
type Performance struct {
	Email      string  `json:"user_email"`
	Department string  `json:"department"`
	Month      string  `json:"month,omitempty"`
	Target     float64 `json:"target,omitempty"`
	Actual     float64 `json:"actual,omitempty"`
	Drift      float64 `json:"drift"`
	Level      Tier    `json:"performance_level"`
	HasData    bool    `json:"has_data"`
}

// Service manages KPI rows: upserts with drift recomputation and
// latest-sample lookups. Unknown users are provisioned on first upsert.
type Service struct {
	store  *storage.Store
	logger *slog.Logger
}

// ServiceConfig configures the KPI service.
type ServiceConfig struct {
	Store  *storage.Store
	Logger *slog.Logger // Optional, uses slog.Default() if nil
}

// NewService creates a KPI service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("kpi service requires a store")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Service{store: cfg.Store, logger: cfg.Logger}, nil
}

// Upsert creates or replaces the KPI for (email, month), recomputing
// drift from the submitted pair.
func (s *Service) Upsert(ctx context.Context, email, month string, target, actual float64) (*PerformanceSample, error) {
	if target < 0 || actual < 0 {
		return nil, fmt.Errorf("target and actual must be non-negative")
	}

	user, err := s.store.EnsureUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user %s: %w", email, err)
	}

	drift := Drift(target, actual)

	rec := &storage.KPIRecord{
		UserID:     user.ID,
		Department: user.Department,
		Month:      month,
		Target:     target,
		Actual:     actual,
		Drift:      drift,
	}
	if _, err := s.store.UpsertKPI(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("kpi upserted",
		"email", email,
		"month", month,
		"drift", drift,
		"tier", TierFor(drift),
	)

	return &PerformanceSample{
		UserID:     user.ID,
		Department: user.Department,
		Month:      month,
		Target:     target,
		Actual:     actual,
		Drift:      drift,
	}, nil
}

// Latest returns the user's most recent performance view. A user with
// no KPI rows gets HasData false and drift 0.
func (s *Service) Latest(ctx context.Context, email string) (*Performance, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", email, err)
	}

	rec, err := s.store.LatestKPI(ctx, user.ID)
	if err == storage.ErrNotFound {
		return &Performance{
			Email:      email,
			Department: user.Department,
			Drift:      0,
			Level:      TierFor(0),
			HasData:    false,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	return &Performance{
		Email:      email,
		Department: user.Department,
		Month:      rec.Month,
		Target:     rec.Target,
		Actual:     rec.Actual,
		Drift:      rec.Drift,
		Level:      TierFor(rec.Drift),
		HasData:    true,
	}, nil
}
