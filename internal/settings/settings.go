package settings

import (
	"context"
	"fmt"

	"github.com/evyataryagoni/postcode-checker/internal/metrics"
	"github.com/evyataryagoni/postcode-checker/internal/models"
	"golang.org/x/sync/errgroup"
)

// Settings is the typed facade over a Store used by the admission checker and the settings API
type Settings struct {
	store   Store
	name    string           // store name used as a metrics label
	metrics *metrics.Metrics // optional
}

// New creates a settings facade
//
// Parameters:
//   - store: any implementation of the Store interface
//   - name: label for metrics ("memory", "redis", "mysql", ...)
//   - m: metrics collector (optional, can be nil)
func New(store Store, name string, m *metrics.Metrics) *Settings {
	return &Settings{
		store:   store,
		name:    name,
		metrics: m,
	}
}

// SpecificAllowedPostcodes returns the exact-allow list; ok is false when it was never configured
func (s *Settings) SpecificAllowedPostcodes(ctx context.Context) ([]string, bool, error) {
	return s.Get(ctx, KeySpecificAllowedPostcodes)
}

// AllowedAreaPrefixes returns the LSOA prefix list; ok is false when it was never configured
func (s *Settings) AllowedAreaPrefixes(ctx context.Context) ([]string, bool, error) {
	return s.Get(ctx, KeyAllowedPostcodesLSOA)
}

// Policy reads both allow-lists concurrently
func (s *Settings) Policy(ctx context.Context) (models.Policy, error) {
	var policy models.Policy

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		values, ok, err := s.SpecificAllowedPostcodes(gctx)
		if err != nil {
			return err
		}
		policy.SpecificAllowedPostcodes = values
		policy.HasSpecificAllowedPostcodes = ok
		return nil
	})

	g.Go(func() error {
		values, ok, err := s.AllowedAreaPrefixes(gctx)
		if err != nil {
			return err
		}
		policy.AllowedAreaPrefixes = values
		policy.HasAllowedAreaPrefixes = ok
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.Policy{}, err
	}
	return policy, nil
}

// Get reads one known setting
func (s *Settings) Get(ctx context.Context, key string) ([]string, bool, error) {
	if !ValidKey(key) {
		return nil, false, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}

	values, ok, err := s.store.Get(ctx, key)
	s.observe("get", err)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return values, ok, nil
}

// Set replaces one known setting; nil is stored as an empty list
func (s *Settings) Set(ctx context.Context, key string, values []string) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}

	err := s.store.Set(ctx, key, cloneValues(values))
	s.observe("set", err)
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// SetSpecificAllowedPostcodes replaces the exact-allow list
func (s *Settings) SetSpecificAllowedPostcodes(ctx context.Context, values []string) error {
	return s.Set(ctx, KeySpecificAllowedPostcodes, values)
}

// SetAllowedAreaPrefixes replaces the LSOA prefix list
func (s *Settings) SetAllowedAreaPrefixes(ctx context.Context, values []string) error {
	return s.Set(ctx, KeyAllowedPostcodesLSOA, values)
}

// Unset returns one known setting to the never-configured state
func (s *Settings) Unset(ctx context.Context, key string) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}

	err := s.store.Unset(ctx, key)
	s.observe("unset", err)
	if err != nil {
		return fmt.Errorf("failed to unset setting %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying store
func (s *Settings) Close() error {
	return s.store.Close()
}

func (s *Settings) observe(operation string, err error) {
	if s.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.metrics.SettingsOperationsTotal.WithLabelValues(s.name, operation, status).Inc()
}
