/**
 * @description
 * Catalog service for the explore surfaces: regional services (mobile
 * recharge and regional OTT platforms) and bundle offers. The catalog is
 * read-only seed data; subscribing, recharging and applying bundles are
 * simulated actions with an artificial delay and never touch the wallet.
 */
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/akshay12-del/subzz/internal/domain"
)

// CatalogService serves regional services and bundle offers.
type CatalogService struct {
	services []domain.RegionalService
	bundles  []domain.Bundle
	logger   *slog.Logger
	delay    time.Duration
}

// NewCatalogService builds the service over the given catalog data.
func NewCatalogService(services []domain.RegionalService, bundles []domain.Bundle, logger *slog.Logger, delay time.Duration) *CatalogService {
	return &CatalogService{services: services, bundles: bundles, logger: logger, delay: delay}
}

// Services lists regional services, filtered by a case-insensitive name
// query and a type filter ("all", "mobile" or "ott").
func (s *CatalogService) Services(query, serviceType string) []domain.RegionalService {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.RegionalService, 0, len(s.services))
	for _, svc := range s.services {
		if query != "" && !strings.Contains(strings.ToLower(svc.Name), query) {
			continue
		}
		if serviceType != "" && serviceType != "all" && string(svc.Type) != serviceType {
			continue
		}
		out = append(out, svc)
	}
	return out
}

// SubscribeToPlan simulates subscribing to a regional service plan.
func (s *CatalogService) SubscribeToPlan(ctx context.Context, serviceID, planName string) (string, error) {
	svc, plan, err := s.findPlan(serviceID, planName)
	if err != nil {
		return "", err
	}
	if err := s.simulate(ctx); err != nil {
		return "", err
	}
	s.logger.Info("simulated service subscribe", "service", svc.Name, "plan", plan.Name)
	return fmt.Sprintf("Subscribed to %s %s (simulated)", svc.Name, plan.Name), nil
}

// Recharge simulates a mobile recharge with the named plan.
func (s *CatalogService) Recharge(ctx context.Context, serviceID, planName string) (string, error) {
	svc, plan, err := s.findPlan(serviceID, planName)
	if err != nil {
		return "", err
	}
	if err := s.simulate(ctx); err != nil {
		return "", err
	}
	s.logger.Info("simulated recharge", "service", svc.Name, "plan", plan.Name, "price", plan.Price)
	return fmt.Sprintf("Recharged %s with %s for %.0f (simulated)", svc.Name, plan.Name, plan.Price), nil
}

// Explore simulates opening a regional service's detail view.
func (s *CatalogService) Explore(ctx context.Context, serviceID string) (*domain.RegionalService, error) {
	svc := s.serviceByID(serviceID)
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// Bundles lists the bundle offers.
func (s *CatalogService) Bundles() []domain.Bundle {
	out := make([]domain.Bundle, len(s.bundles))
	copy(out, s.bundles)
	return out
}

// ApplyBundle simulates applying a bundle offer.
func (s *CatalogService) ApplyBundle(ctx context.Context, bundleID string) (string, error) {
	for _, b := range s.bundles {
		if b.ID == bundleID {
			if err := s.simulate(ctx); err != nil {
				return "", err
			}
			s.logger.Info("simulated bundle apply", "bundle", b.Name, "savings", b.Savings())
			return fmt.Sprintf("Bundle %q applied, saving %.2f/month (simulated)", b.Name, b.Savings()), nil
		}
	}
	return "", ErrBundleNotFound
}

func (s *CatalogService) serviceByID(id string) *domain.RegionalService {
	for i := range s.services {
		if s.services[i].ID == id {
			return &s.services[i]
		}
	}
	return nil
}

func (s *CatalogService) findPlan(serviceID, planName string) (*domain.RegionalService, *domain.ServicePlan, error) {
	svc := s.serviceByID(serviceID)
	if svc == nil {
		return nil, nil, ErrServiceNotFound
	}
	for i := range svc.Plans {
		if strings.EqualFold(svc.Plans[i].Name, planName) {
			return svc, &svc.Plans[i], nil
		}
	}
	return nil, nil, ErrPlanNotFound
}

func (s *CatalogService) simulate(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
