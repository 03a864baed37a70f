/**
 * @description
 * User presentation preferences: theme and font scale. Persisted as its own
 * snapshot and validated before any change is applied.
 */
package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/akshay12-del/subzz/internal/domain"
	"github.com/akshay12-del/subzz/internal/store"
)

const (
	minFontScale = 75
	maxFontScale = 150
)

var validThemes = map[string]bool{"light": true, "dark": true, "system": true}

// SettingsService owns the settings snapshot.
type SettingsService struct {
	mu       sync.Mutex
	settings domain.Settings

	store  store.Store
	logger *slog.Logger
}

// NewSettingsService loads the settings snapshot, defaulting to the system
// theme at 100% font scale.
func NewSettingsService(ctx context.Context, st store.Store, logger *slog.Logger) (*SettingsService, error) {
	s := &SettingsService{
		settings: domain.Settings{Theme: "system", FontScale: 100},
		store:    st,
		logger:   logger,
	}
	if _, err := st.Load(ctx, store.KeySettings, &s.settings); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the current settings.
func (s *SettingsService) Get() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Update validates and applies new settings.
func (s *SettingsService) Update(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	if !validThemes[settings.Theme] {
		return domain.Settings{}, ErrInvalidTheme
	}
	if settings.FontScale < minFontScale || settings.FontScale > maxFontScale {
		return domain.Settings{}, ErrInvalidFontScale
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	if err := s.store.Save(ctx, store.KeySettings, s.settings); err != nil {
		s.logger.Error("failed to persist settings", "error", err)
	}
	return s.settings, nil
}
