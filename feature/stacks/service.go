package stacks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"stack-manager/core/logger"
	"stack-manager/core/reconcile"

	"go.uber.org/zap"
)

var (
	// ErrAccessDenied is returned when the actor may not run mutating commands.
	ErrAccessDenied = errors.New("you are not allowed to manage stack sizes")
	// ErrOverrideNotFound is returned when no override is stored under a key.
	ErrOverrideNotFound = errors.New("override not found")
)

// Listing is the current default and every override entry.
type Listing struct {
	DefaultLimit int                       `json:"default_limit"`
	Overrides    []reconcile.OverrideEntry `json:"overrides"`
}

// OverrideResult is the outcome of an override mutation.
type OverrideResult struct {
	Kind   reconcile.KeyKind         `json:"kind"`
	Key    string                    `json:"key"`
	Limit  int                       `json:"limit"`
	Report reconcile.ReconcileReport `json:"report"`
}

// Service runs stack-size commands against the reconcile loop and the settings store.
type Service struct {
	loop     *reconcile.Loop
	store    *Store
	exporter *Exporter
	logger   *zap.Logger

	// mu serializes read-modify-write of the settings.
	mu sync.Mutex
}

// NewService creates a new stacks service. exporter may be nil.
func NewService(loop *reconcile.Loop, store *Store, exporter *Exporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		loop:     loop,
		store:    store,
		exporter: exporter,
		logger:   logger,
	}
}

// Settings returns the settings the loop is currently using.
func (s *Service) Settings(ctx context.Context) (reconcile.Settings, error) {
	var settings reconcile.Settings
	err := s.loop.Do(ctx, func(e *reconcile.Engine) {
		settings = e.Settings()
	})
	return settings, err
}

// authorize checks actor against the current allow and deny lists.
func (s *Service) authorize(settings reconcile.Settings, actor string) error {
	if !settings.Access().IsAllowed(actor) {
		logger.WithActor(s.logger, actor).Warn("Stack command denied")
		return ErrAccessDenied
	}
	return nil
}

// FullReconcile sweeps destroyed generators and reapplies every tracked one.
func (s *Service) FullReconcile(ctx context.Context, actor string) (reconcile.ReconcileReport, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return reconcile.ReconcileReport{}, err
	}
	if err := s.authorize(settings, actor); err != nil {
		return reconcile.ReconcileReport{}, err
	}

	var report reconcile.ReconcileReport
	err = s.loop.Do(ctx, func(e *reconcile.Engine) {
		report = e.ReconcileAll()
	})
	if err != nil {
		return reconcile.ReconcileReport{}, err
	}

	logger.WithActor(s.logger, actor).Info("Manual reconciliation",
		zap.Int("applied", report.Applied),
		zap.Int("failed", report.Failed),
		zap.Int("removed", report.Removed),
	)
	return report, nil
}

// SetOverride stores limit under key and reapplies it to every matching generator.
func (s *Service) SetOverride(ctx context.Context, actor string, key reconcile.Key, limit int) (OverrideResult, error) {
	if err := key.Validate(); err != nil {
		return OverrideResult{}, err
	}
	if limit <= 0 {
		return OverrideResult{}, reconcile.ErrInvalidLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Settings(ctx)
	if err != nil {
		return OverrideResult{}, err
	}
	if err := s.authorize(current, actor); err != nil {
		return OverrideResult{}, err
	}

	next, err := current.WithOverride(key, limit)
	if err != nil {
		return OverrideResult{}, err
	}

	report, err := s.commit(ctx, next, func(e *reconcile.Engine) reconcile.ReconcileReport {
		return e.Reapply(key)
	})
	if err != nil {
		return OverrideResult{}, err
	}

	logger.WithActor(s.logger, actor).Info("Override set",
		zap.Stringer("key", key),
		zap.Int("limit", limit),
		zap.Int("applied", report.Applied),
	)
	return OverrideResult{Kind: key.Kind, Key: keyText(key), Limit: limit, Report: report}, nil
}

// GetOverride returns the limit stored under key.
func (s *Service) GetOverride(ctx context.Context, key reconcile.Key) (int, error) {
	if err := key.Validate(); err != nil {
		return 0, err
	}
	settings, err := s.Settings(ctx)
	if err != nil {
		return 0, err
	}
	limit, ok := settings.Override(key)
	if !ok {
		return 0, fmt.Errorf("%s: %w", key, ErrOverrideNotFound)
	}
	return limit, nil
}

// DeleteOverride removes the override under key and reapplies the limit that
// now resolves for the matching generators.
func (s *Service) DeleteOverride(ctx context.Context, actor string, key reconcile.Key) (OverrideResult, error) {
	if err := key.Validate(); err != nil {
		return OverrideResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Settings(ctx)
	if err != nil {
		return OverrideResult{}, err
	}
	if err := s.authorize(current, actor); err != nil {
		return OverrideResult{}, err
	}

	previous, _ := current.Override(key)
	next, ok := current.WithoutOverride(key)
	if !ok {
		return OverrideResult{}, fmt.Errorf("%s: %w", key, ErrOverrideNotFound)
	}

	report, err := s.commit(ctx, next, func(e *reconcile.Engine) reconcile.ReconcileReport {
		return e.Reapply(key)
	})
	if err != nil {
		return OverrideResult{}, err
	}

	logger.WithActor(s.logger, actor).Info("Override removed",
		zap.Stringer("key", key),
		zap.Int("applied", report.Applied),
	)
	return OverrideResult{Kind: key.Kind, Key: keyText(key), Limit: previous, Report: report}, nil
}

// SetDefault changes the global default and reapplies every tracked generator.
func (s *Service) SetDefault(ctx context.Context, actor string, limit int) (reconcile.ReconcileReport, error) {
	if limit <= 0 {
		return reconcile.ReconcileReport{}, reconcile.ErrInvalidLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Settings(ctx)
	if err != nil {
		return reconcile.ReconcileReport{}, err
	}
	if err := s.authorize(current, actor); err != nil {
		return reconcile.ReconcileReport{}, err
	}

	next, err := current.WithDefault(limit)
	if err != nil {
		return reconcile.ReconcileReport{}, err
	}

	report, err := s.commit(ctx, next, func(e *reconcile.Engine) reconcile.ReconcileReport {
		return e.ReconcileAll()
	})
	if err != nil {
		return reconcile.ReconcileReport{}, err
	}

	logger.WithActor(s.logger, actor).Info("Default stack limit changed",
		zap.Int("limit", limit),
		zap.Int("applied", report.Applied),
	)
	return report, nil
}

// List returns the current default and all overrides.
func (s *Service) List(ctx context.Context) (Listing, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return Listing{}, err
	}
	return Listing{DefaultLimit: settings.DefaultLimit, Overrides: settings.Overrides()}, nil
}

// Reload re-reads the settings store, swaps the loop's settings and
// reapplies every tracked generator.
func (s *Service) Reload(ctx context.Context, actor string) (reconcile.ReconcileReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Settings(ctx)
	if err != nil {
		return reconcile.ReconcileReport{}, err
	}
	if err := s.authorize(current, actor); err != nil {
		return reconcile.ReconcileReport{}, err
	}

	next, err := s.store.Load(ctx)
	if err != nil {
		return reconcile.ReconcileReport{}, err
	}

	var report reconcile.ReconcileReport
	err = s.loop.Do(ctx, func(e *reconcile.Engine) {
		e.SetSettings(next)
		report = e.ReconcileAll()
	})
	if err != nil {
		return reconcile.ReconcileReport{}, err
	}

	logger.WithActor(s.logger, actor).Info("Settings reloaded",
		zap.Int("default_limit", next.DefaultLimit),
		zap.Int("overrides", len(next.Overrides())),
	)
	return report, nil
}

// Status returns the engine status.
func (s *Service) Status(ctx context.Context) (reconcile.Status, error) {
	var status reconcile.Status
	err := s.loop.Do(ctx, func(e *reconcile.Engine) {
		status = e.Status()
	})
	return status, err
}

// commit persists next, mirrors it to object storage and hands it to the loop.
// The settings are only swapped once they are stored.
func (s *Service) commit(ctx context.Context, next reconcile.Settings, reapply func(*reconcile.Engine) reconcile.ReconcileReport) (reconcile.ReconcileReport, error) {
	if err := s.store.Save(ctx, next); err != nil {
		return reconcile.ReconcileReport{}, fmt.Errorf("failed to persist settings: %w", err)
	}

	if s.exporter != nil {
		if err := s.exporter.Export(ctx, next); err != nil {
			s.logger.Warn("Settings snapshot export failed", zap.Error(err))
		}
	}

	var report reconcile.ReconcileReport
	err := s.loop.Do(ctx, func(e *reconcile.Engine) {
		e.SetSettings(next)
		report = reapply(e)
	})
	return report, err
}

func keyText(key reconcile.Key) string {
	if key.Kind == reconcile.KindID {
		return fmt.Sprintf("%d", key.ID)
	}
	return key.Text
}
