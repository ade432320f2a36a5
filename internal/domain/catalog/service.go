// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/coffee-miniapp/internal/config"
)

// Source fetches the raw menu and add-on catalog from the POS.
type Source interface {
	MenuGroups(ctx context.Context) ([]MenuGroup, error)
	AddOnCategories(ctx context.Context) ([]AddOnCategory, error)
}

// Service caches the online-orders menu group and the add-on catalog,
// refreshing them in the background. Handlers read from the cache only; the
// POS is never queried on the request path because of its rate limit.
type Service struct {
	source    Source
	groupName string
	interval  time.Duration
	log       *logrus.Logger

	mu     sync.RWMutex
	menu   *MenuGroup
	addOns []AddOnCategory
}

// NewService creates a new catalog cache service
func NewService(source Source, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		source:    source,
		groupName: cfg.YTimes.MenuGroupName,
		interval:  cfg.YTimes.RefreshInterval,
		log:       log,
	}
}

// Run refreshes the cache immediately and then on every interval tick until
// the context is cancelled. Refresh failures are logged and retried on the
// next tick; the previous cache contents stay served in the meantime.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := s.Refresh(ctx); err != nil {
			s.log.WithError(err).Warn("catalog refresh failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Refresh performs one fetch of the menu and the add-on catalog.
func (s *Service) Refresh(ctx context.Context) error {
	groups, err := s.source.MenuGroups(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch menu groups: %w", err)
	}

	var target *MenuGroup
	for i := range groups {
		if groups[i].Name == s.groupName {
			target = &groups[i]
			break
		}
	}

	addOns, err := s.source.AddOnCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch add-on catalog: %w", err)
	}

	s.mu.Lock()
	if target != nil {
		s.menu = target
	}
	s.addOns = addOns
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"group_found":      target != nil,
		"addon_categories": len(addOns),
	}).Info("catalog refreshed")

	return nil
}

// Menu returns the cached online-orders menu group.
// Returns ErrNotLoaded before the first successful refresh.
func (s *Service) Menu() (*MenuGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.menu == nil {
		return nil, ErrNotLoaded
	}
	return s.menu, nil
}

// AddOnCatalog returns the cached add-on categories.
// Returns ErrNotLoaded before the first successful refresh.
func (s *Service) AddOnCatalog() ([]AddOnCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.addOns == nil {
		return nil, ErrNotLoaded
	}
	return s.addOns, nil
}
