/**
 * @description
 * The subscription service owns the subscription list and orchestrates
 * every billing-affecting transition by charging through the wallet. It
 * also runs the auto-billing sweep: a one-shot reconciliation at session
 * start that charges subscriptions whose due date has arrived and marks
 * the ones the wallet cannot cover as payment_failed.
 */
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/akshay12-del/subzz/internal/domain"
	"github.com/akshay12-del/subzz/internal/store"
	"github.com/akshay12-del/subzz/pkg/rabbitmq"
)

// FundsSource is the wallet surface the subscription service charges
// against. Narrowed to an interface so tests can substitute a double that
// records calls and simulates a balance.
type FundsSource interface {
	DeductFunds(ctx context.Context, amount float64, description string) error
}

// SubscriptionService owns the subscription list, newest first.
type SubscriptionService struct {
	mu   sync.Mutex
	subs []domain.Subscription

	wallet FundsSource
	store  store.Store
	events rabbitmq.Publisher
	logger *slog.Logger
	now    func() time.Time

	sweepOnce sync.Once
}

// NewSubscriptionService loads the subscription snapshot, seeding the
// starter list when none exists, and returns the service. It does not run
// the billing sweep; the host calls RunStartupSweep once after wiring.
func NewSubscriptionService(ctx context.Context, st store.Store, wallet FundsSource, events rabbitmq.Publisher, logger *slog.Logger) (*SubscriptionService, error) {
	s := &SubscriptionService{
		wallet: wallet,
		store:  st,
		events: events,
		logger: logger,
		now:    time.Now,
	}

	found, err := st.Load(ctx, store.KeySubscriptions, &s.subs)
	if err != nil {
		return nil, err
	}
	if !found {
		s.subs = store.SeedSubscriptions(s.now())
		if err := st.Save(ctx, store.KeySubscriptions, s.subs); err != nil {
			logger.Error("failed to persist seeded subscriptions", "error", err)
		}
	}
	return s, nil
}

// Subscriptions returns a copy of the subscription list, newest first.
func (s *SubscriptionService) Subscriptions() []domain.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Subscription, len(s.subs))
	copy(out, s.subs)
	return out
}

// Subscribe charges the first period up front and, only if the charge
// succeeds, creates the subscription and prepends it to the list. An
// insufficient balance leaves no trace.
func (s *SubscriptionService) Subscribe(ctx context.Context, in domain.NewSubscriptionInput) (*domain.Subscription, error) {
	if in.Name == "" {
		return nil, ErrMissingName
	}
	if in.Price <= 0 {
		return nil, ErrInvalidAmount
	}
	if !in.BillingCycle.Valid() {
		return nil, ErrInvalidBillingCycle
	}

	if err := s.wallet.DeductFunds(ctx, in.Price, fmt.Sprintf("Subscription: %s", in.Name)); err != nil {
		return nil, err
	}

	today := dateOnly(s.now())
	sub := domain.Subscription{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Category:     in.Category,
		Icon:         in.Icon,
		Price:        in.Price,
		BillingCycle: in.BillingCycle,
		Status:       domain.StatusActive,
		StartDate:    today,
	}
	next := sub.NextCycle(today)
	sub.NextBilling = &next

	s.mu.Lock()
	s.subs = append([]domain.Subscription{sub}, s.subs...)
	s.persist(ctx)
	s.mu.Unlock()

	s.publish(ctx, "subscription.created", sub)
	return &sub, nil
}

// Pause sets the subscription aside: status paused, no upcoming billing,
// no funds movement.
func (s *SubscriptionService) Pause(ctx context.Context, id string) (*domain.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrSubscriptionNotFound
	}
	s.subs[i].Status = domain.StatusPaused
	s.subs[i].NextBilling = nil
	s.persist(ctx)

	sub := s.subs[i]
	return &sub, nil
}

// Resume reactivates a paused, cancelled or payment_failed subscription.
// It charges the upcoming period immediately; if the wallet cannot cover
// it the subscription is left exactly as it was.
func (s *SubscriptionService) Resume(ctx context.Context, id string) (*domain.Subscription, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, ErrSubscriptionNotFound
	}
	sub := s.subs[i]
	s.mu.Unlock()

	if err := s.wallet.DeductFunds(ctx, sub.Price, fmt.Sprintf("Resumed: %s", sub.Name)); err != nil {
		return nil, err
	}

	today := dateOnly(s.now())
	next := sub.NextCycle(today)

	s.mu.Lock()
	// Re-resolve the index in case the list changed while the charge ran.
	i = s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, ErrSubscriptionNotFound
	}
	s.subs[i].Status = domain.StatusActive
	s.subs[i].NextBilling = &next
	updated := s.subs[i]
	s.persist(ctx)
	s.mu.Unlock()

	s.publish(ctx, "subscription.resumed", updated)
	return &updated, nil
}

// Cancel stops the subscription: status cancelled, no upcoming billing,
// no refund. A cancelled subscription can be reactivated with Resume.
func (s *SubscriptionService) Cancel(ctx context.Context, id string) (*domain.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrSubscriptionNotFound
	}
	s.subs[i].Status = domain.StatusCancelled
	s.subs[i].NextBilling = nil
	s.persist(ctx)

	sub := s.subs[i]
	return &sub, nil
}

// RunStartupSweep runs the auto-billing sweep exactly once per process,
// guarding against repeated initialization re-triggering it mid-session.
func (s *SubscriptionService) RunStartupSweep(ctx context.Context) {
	s.sweepOnce.Do(func() {
		s.RunBillingSweep(ctx)
	})
}

// RunBillingSweep reconciles all active subscriptions against the current
// date. "Today" is captured once so the billing cutoff is consistent across
// the whole sweep. For each active subscription that is due, one cycle is
// charged; on success the next billing date advances one cycle from its
// previous value (not from today, so an on-time charge never drifts), and
// on insufficient funds the subscription becomes payment_failed with the
// missed due date left visible. A subscription several cycles overdue
// advances a single cycle per sweep; a failed charge is not retried until
// the user resumes.
func (s *SubscriptionService) RunBillingSweep(ctx context.Context) {
	today := dateOnly(s.now())

	s.mu.Lock()
	defer s.mu.Unlock()

	var renewed, failed []domain.Subscription
	for i := range s.subs {
		sub := &s.subs[i]
		if sub.Status != domain.StatusActive || sub.NextBilling == nil {
			continue
		}
		if sub.NextBilling.After(today) {
			continue
		}

		err := s.wallet.DeductFunds(ctx, sub.Price, fmt.Sprintf("Auto-renewal: %s", sub.Name))
		if err != nil {
			sub.Status = domain.StatusPaymentFailed
			failed = append(failed, *sub)
			s.logger.Warn("auto-renewal failed",
				"subscription", sub.Name, "price", sub.Price, "due", sub.NextBilling)
			continue
		}

		next := sub.NextCycle(*sub.NextBilling)
		sub.NextBilling = &next
		renewed = append(renewed, *sub)
		s.logger.Info("subscription renewed",
			"subscription", sub.Name, "price", sub.Price, "next_billing", next)
	}

	if len(renewed) == 0 && len(failed) == 0 {
		return
	}
	s.persist(ctx)

	for _, sub := range renewed {
		s.publish(ctx, "subscription.renewed", sub)
	}
	for _, sub := range failed {
		s.publish(ctx, "subscription.payment_failed", sub)
	}
}

// indexOf returns the position of id in the list, or -1. Callers hold the
// lock.
func (s *SubscriptionService) indexOf(id string) int {
	for i := range s.subs {
		if s.subs[i].ID == id {
			return i
		}
	}
	return -1
}

// persist rewrites the subscription snapshot. Callers hold the lock.
func (s *SubscriptionService) persist(ctx context.Context) {
	if err := s.store.Save(ctx, store.KeySubscriptions, s.subs); err != nil {
		s.logger.Error("failed to persist subscriptions", "error", err)
	}
}

func (s *SubscriptionService) publish(ctx context.Context, routingKey string, sub domain.Subscription) {
	if err := s.events.Publish(ctx, EventsExchange, routingKey, sub); err != nil {
		s.logger.Warn("failed to publish subscription event", "routing_key", routingKey, "error", err)
	}
}

// dateOnly truncates a timestamp to its calendar date in UTC. Billing dates
// are compared and stored at day granularity.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
