package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/akshay12-del/subzz/internal/domain"
	"github.com/akshay12-del/subzz/internal/store"
)

var testToday = time.Date(2024, time.January, 20, 10, 30, 0, 0, time.UTC)

// newTestSubs builds a SubscriptionService over the given starting list with
// a fixed clock.
func newTestSubs(t *testing.T, st *memStore, wallet *fundsStub, subs []domain.Subscription) *SubscriptionService {
	t.Helper()
	if subs == nil {
		subs = []domain.Subscription{}
	}
	if err := st.Save(context.Background(), store.KeySubscriptions, subs); err != nil {
		t.Fatal(err)
	}
	s, err := NewSubscriptionService(context.Background(), st, wallet, testPublisher(), testLogger())
	if err != nil {
		t.Fatalf("NewSubscriptionService returned error: %v", err)
	}
	s.now = func() time.Time { return testToday }
	return s
}

func activeSub(id, name string, price float64, cycle domain.BillingCycle, nextBilling time.Time) domain.Subscription {
	nb := nextBilling
	return domain.Subscription{
		ID:           id,
		Name:         name,
		Category:     "Entertainment",
		Icon:         "🎬",
		Price:        price,
		BillingCycle: cycle,
		Status:       domain.StatusActive,
		StartDate:    nextBilling.AddDate(0, -1, 0),
		NextBilling:  &nb,
	}
}

func TestSubscribe_ChargesAndPrependsActiveSubscription(t *testing.T) {
	wallet := &fundsStub{balance: 100}
	s := newTestSubs(t, newMemStore(), wallet, []domain.Subscription{
		activeSub("existing", "Spotify", 9.99, domain.CycleMonthly, testToday.AddDate(0, 0, 10)),
	})

	sub, err := s.Subscribe(context.Background(), domain.NewSubscriptionInput{
		Name:         "Netflix",
		Category:     "Entertainment",
		Price:        15.49,
		BillingCycle: domain.CycleMonthly,
	})
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}

	if sub.Status != domain.StatusActive {
		t.Fatalf("expected active status, got %s", sub.Status)
	}
	wantStart := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)
	if !sub.StartDate.Equal(wantStart) {
		t.Fatalf("expected start date %v, got %v", wantStart, sub.StartDate)
	}
	wantNext := time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)
	if sub.NextBilling == nil || !sub.NextBilling.Equal(wantNext) {
		t.Fatalf("expected next billing %v, got %v", wantNext, sub.NextBilling)
	}

	if len(wallet.calls) != 1 || wallet.calls[0].description != "Subscription: Netflix" {
		t.Fatalf("unexpected wallet calls: %+v", wallet.calls)
	}
	list := s.Subscriptions()
	if len(list) != 2 || list[0].Name != "Netflix" {
		t.Fatalf("expected new subscription prepended, got %+v", list)
	}
}

func TestSubscribe_YearlyCycleComputesNextYear(t *testing.T) {
	wallet := &fundsStub{balance: 200}
	s := newTestSubs(t, newMemStore(), wallet, nil)

	sub, err := s.Subscribe(context.Background(), domain.NewSubscriptionInput{
		Name:         "Amazon Prime",
		Price:        139,
		BillingCycle: domain.CycleYearly,
	})
	if err != nil {
		t.Fatal(err)
	}
	wantNext := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)
	if sub.NextBilling == nil || !sub.NextBilling.Equal(wantNext) {
		t.Fatalf("expected next billing %v, got %v", wantNext, sub.NextBilling)
	}
}

func TestSubscribe_InsufficientFundsLeavesNoTrace(t *testing.T) {
	wallet := &fundsStub{balance: 5}
	st := newMemStore()
	s := newTestSubs(t, st, wallet, nil)
	savesBefore := st.saves

	_, err := s.Subscribe(context.Background(), domain.NewSubscriptionInput{
		Name:         "Netflix",
		Price:        15.49,
		BillingCycle: domain.CycleMonthly,
	})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if len(s.Subscriptions()) != 0 {
		t.Fatal("failed subscribe must not create a subscription")
	}
	if wallet.balance != 5 {
		t.Fatalf("expected balance unchanged, got %v", wallet.balance)
	}
	if st.saves != savesBefore {
		t.Fatal("failed subscribe must not persist a snapshot")
	}
}

func TestSubscribe_ValidatesInput(t *testing.T) {
	wallet := &fundsStub{balance: 100}
	s := newTestSubs(t, newMemStore(), wallet, nil)

	cases := []struct {
		name string
		in   domain.NewSubscriptionInput
		want error
	}{
		{"missing name", domain.NewSubscriptionInput{Price: 10, BillingCycle: domain.CycleMonthly}, ErrMissingName},
		{"zero price", domain.NewSubscriptionInput{Name: "X", Price: 0, BillingCycle: domain.CycleMonthly}, ErrInvalidAmount},
		{"bad cycle", domain.NewSubscriptionInput{Name: "X", Price: 10, BillingCycle: "weekly"}, ErrInvalidBillingCycle},
	}
	for _, tc := range cases {
		if _, err := s.Subscribe(context.Background(), tc.in); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
	if len(wallet.calls) != 0 {
		t.Fatal("validation failures must not reach the wallet")
	}
}

func TestPause_ClearsNextBillingWithoutCharging(t *testing.T) {
	wallet := &fundsStub{balance: 100}
	s := newTestSubs(t, newMemStore(), wallet, []domain.Subscription{
		activeSub("sub-1", "Netflix", 15.49, domain.CycleMonthly, testToday.AddDate(0, 0, 10)),
	})

	sub, err := s.Pause(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("Pause returned error: %v", err)
	}
	if sub.Status != domain.StatusPaused || sub.NextBilling != nil {
		t.Fatalf("expected paused with nil next billing, got %+v", sub)
	}
	if len(wallet.calls) != 0 {
		t.Fatal("pause must not move funds")
	}
}

func TestResume_ChargesImmediatelyAndReactivates(t *testing.T) {
	wallet := &fundsStub{balance: 25}
	paused := domain.Subscription{
		ID: "sub-1", Name: "FitPass Gym", Price: 20,
		BillingCycle: domain.CycleMonthly, Status: domain.StatusPaused,
		StartDate: testToday.AddDate(0, -3, 0),
	}
	s := newTestSubs(t, newMemStore(), wallet, []domain.Subscription{paused})

	sub, err := s.Resume(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("Resume returned error: %v", err)
	}
	if sub.Status != domain.StatusActive {
		t.Fatalf("expected active, got %s", sub.Status)
	}
	wantNext := time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)
	if sub.NextBilling == nil || !sub.NextBilling.Equal(wantNext) {
		t.Fatalf("expected next billing %v, got %v", wantNext, sub.NextBilling)
	}
	if wallet.balance != 5 {
		t.Fatalf("expected balance 5 after immediate charge, got %v", wallet.balance)
	}
	if len(wallet.calls) != 1 || wallet.calls[0].description != "Resumed: FitPass Gym" {
		t.Fatalf("unexpected wallet calls: %+v", wallet.calls)
	}
}

func TestResume_InsufficientFundsLeavesStateUntouched(t *testing.T) {
	wallet := &fundsStub{balance: 5}
	paused := domain.Subscription{
		ID: "sub-1", Name: "Netflix", Price: 15.49,
		BillingCycle: domain.CycleMonthly, Status: domain.StatusPaused,
		StartDate: testToday.AddDate(0, -2, 0),
	}
	s := newTestSubs(t, newMemStore(), wallet, []domain.Subscription{paused})

	if _, err := s.Resume(context.Background(), "sub-1"); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	got := s.Subscriptions()[0]
	if got.Status != domain.StatusPaused || got.NextBilling != nil {
		t.Fatalf("expected subscription unchanged, got %+v", got)
	}
}

func TestResume_ReactivatesCancelledSubscription(t *testing.T) {
	wallet := &fundsStub{balance: 50}
	cancelled := domain.Subscription{
		ID: "sub-1", Name: "ZEE5", Price: 10,
		BillingCycle: domain.CycleMonthly, Status: domain.StatusCancelled,
		StartDate: testToday.AddDate(0, -5, 0),
	}
	s := newTestSubs(t, newMemStore(), wallet, []domain.Subscription{cancelled})

	sub, err := s.Resume(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("Resume of cancelled subscription returned error: %v", err)
	}
	if sub.Status != domain.StatusActive || sub.NextBilling == nil {
		t.Fatalf("expected reactivation, got %+v", sub)
	}
}

func TestCancel_ClearsNextBillingWithoutRefund(t *testing.T) {
	wallet := &fundsStub{balance: 100}
	s := newTestSubs(t, newMemStore(), wallet, []domain.Subscription{
		activeSub("sub-1", "Netflix", 15.49, domain.CycleMonthly, testToday.AddDate(0, 0, 10)),
	})

	sub, err := s.Cancel(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if sub.Status != domain.StatusCancelled || sub.NextBilling != nil {
		t.Fatalf("expected cancelled with nil next billing, got %+v", sub)
	}
	if len(wallet.calls) != 0 {
		t.Fatal("cancel must not move funds")
	}
}

func TestOperations_UnknownIDReturnsNotFound(t *testing.T) {
	wallet := &fundsStub{balance: 100}
	s := newTestSubs(t, newMemStore(), wallet, nil)

	if _, err := s.Pause(context.Background(), "ghost"); !errors.Is(err, ErrSubscriptionNotFound) {
		t.Fatalf("Pause: expected ErrSubscriptionNotFound, got %v", err)
	}
	if _, err := s.Resume(context.Background(), "ghost"); !errors.Is(err, ErrSubscriptionNotFound) {
		t.Fatalf("Resume: expected ErrSubscriptionNotFound, got %v", err)
	}
	if _, err := s.Cancel(context.Background(), "ghost"); !errors.Is(err, ErrSubscriptionNotFound) {
		t.Fatalf("Cancel: expected ErrSubscriptionNotFound, got %v", err)
	}
	if len(wallet.calls) != 0 {
		t.Fatal("not-found operations must not reach the wallet")
	}
}

func TestBillingSweep_AdvancesDueMonthlySubscriptionOneCycle(t *testing.T) {
	wallet := &fundsStub{balance: 100}
	due := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	s := newTestSubs(t, newMemStore(), wallet, []domain.Subscription{
		activeSub("sub-1", "Netflix", 15.49, domain.CycleMonthly, due),
	})

	s.RunBillingSweep(context.Background())

	got := s.Subscriptions()[0]
	wantNext := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
	if got.NextBilling == nil || !got.NextBilling.Equal(wantNext) {
		t.Fatalf("expected next billing %v, got %v", wantNext, got.NextBilling)
	}
	if got.Status != domain.StatusActive {
		t.Fatalf("expected still active, got %s", got.Status)
	}
	if len(wallet.calls) != 1 || !strings.Contains(wallet.calls[0].description, "Auto-renewal") {
		t.Fatalf("expected one auto-renewal charge, got %+v", wallet.calls)
	}
	if wallet.calls[0].amount != 15.49 {
		t.Fatalf("expected charge of 15.49, got %v", wallet.calls[0].amount)
	}
}

func TestBillingSweep_AdvancesYearlyFromPreviousDueDate(t *testing.T) {
	wallet := &fundsStub{balance: 500}
	due := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	s := newTestSubs(t, newMemStore(), wallet, []domain.Subscription{
		activeSub("sub-1", "Amazon Prime", 139, domain.CycleYearly, due),
	})

	s.RunBillingSweep(context.Background())

	got := s.Subscriptions()[0]
	wantNext := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	if got.NextBilling == nil || !got.NextBilling.Equal(wantNext) {
		t.Fatalf("expected next billing %v, got %v", wantNext, got.NextBilling)
	}
}

func TestBillingSweep_InsufficientFundsMarksPaymentFailed(t *testing.T) {
	wallet := &fundsStub{balance: 5}
	due := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	s := newTestSubs(t, newMemStore(), wallet, []domain.Subscription{
		activeSub("sub-1", "Netflix", 10, domain.CycleMonthly, due),
	})

	s.RunBillingSweep(context.Background())

	got := s.Subscriptions()[0]
	if got.Status != domain.StatusPaymentFailed {
		t.Fatalf("expected payment_failed, got %s", got.Status)
	}
	if got.NextBilling == nil || !got.NextBilling.Equal(due) {
		t.Fatalf("expected missed due date %v retained, got %v", due, got.NextBilling)
	}
	if wallet.balance != 5 {
		t.Fatalf("expected balance unchanged, got %v", wallet.balance)
	}
}

func TestBillingSweep_SkipsNotDueAndInactiveSubscriptions(t *testing.T) {
	wallet := &fundsStub{balance: 1000}
	notDue := activeSub("sub-1", "Spotify", 9.99, domain.CycleMonthly, testToday.AddDate(0, 0, 5))
	paused := domain.Subscription{
		ID: "sub-2", Name: "Gym", Price: 30, BillingCycle: domain.CycleMonthly,
		Status: domain.StatusPaused, StartDate: testToday.AddDate(0, -2, 0),
	}
	cancelled := domain.Subscription{
		ID: "sub-3", Name: "ZEE5", Price: 10, BillingCycle: domain.CycleMonthly,
		Status: domain.StatusCancelled, StartDate: testToday.AddDate(0, -2, 0),
	}
	missed := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	failed := domain.Subscription{
		ID: "sub-4", Name: "SonyLIV", Price: 10, BillingCycle: domain.CycleMonthly,
		Status: domain.StatusPaymentFailed, StartDate: testToday.AddDate(0, -2, 0),
		NextBilling: &missed,
	}
	st := newMemStore()
	s := newTestSubs(t, st, wallet, []domain.Subscription{notDue, paused, cancelled, failed})
	savesBefore := st.saves

	s.RunBillingSweep(context.Background())

	if len(wallet.calls) != 0 {
		t.Fatalf("nothing was due, but the wallet was charged: %+v", wallet.calls)
	}
	if st.saves != savesBefore {
		t.Fatal("sweep with no changes must not persist a snapshot")
	}
}

func TestBillingSweep_SingleStepPerSweepForOverdueSubscription(t *testing.T) {
	wallet := &fundsStub{balance: 1000}
	// Three cycles overdue.
	due := time.Date(2023, time.October, 15, 0, 0, 0, 0, time.UTC)
	s := newTestSubs(t, newMemStore(), wallet, []domain.Subscription{
		activeSub("sub-1", "Netflix", 10, domain.CycleMonthly, due),
	})

	s.RunBillingSweep(context.Background())

	got := s.Subscriptions()[0]
	wantNext := time.Date(2023, time.November, 15, 0, 0, 0, 0, time.UTC)
	if got.NextBilling == nil || !got.NextBilling.Equal(wantNext) {
		t.Fatalf("expected a single cycle advance to %v, got %v", wantNext, got.NextBilling)
	}
	if len(wallet.calls) != 1 {
		t.Fatalf("expected exactly one charge per sweep, got %d", len(wallet.calls))
	}
}

func TestBillingSweep_SecondRunIsIdempotent(t *testing.T) {
	wallet := &fundsStub{balance: 100}
	due := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	st := newMemStore()
	s := newTestSubs(t, st, wallet, []domain.Subscription{
		activeSub("sub-1", "Netflix", 15.49, domain.CycleMonthly, due),
	})

	s.RunBillingSweep(context.Background())
	callsAfterFirst := len(wallet.calls)
	savesAfterFirst := st.saves

	s.RunBillingSweep(context.Background())

	if len(wallet.calls) != callsAfterFirst {
		t.Fatalf("second sweep charged again: %d calls", len(wallet.calls))
	}
	if st.saves != savesAfterFirst {
		t.Fatal("second sweep persisted despite no changes")
	}
}

func TestRunStartupSweep_GuardsAgainstReinitialization(t *testing.T) {
	wallet := &fundsStub{balance: 1000}
	due := time.Date(2023, time.December, 15, 0, 0, 0, 0, time.UTC)
	s := newTestSubs(t, newMemStore(), wallet, []domain.Subscription{
		activeSub("sub-1", "Netflix", 10, domain.CycleMonthly, due),
	})

	s.RunStartupSweep(context.Background())
	s.RunStartupSweep(context.Background())

	// The subscription is still overdue after one advance, so a second real
	// sweep would have charged again; the guard prevents it.
	if len(wallet.calls) != 1 {
		t.Fatalf("expected startup sweep to run once, saw %d charges", len(wallet.calls))
	}
}

func TestSubscriptions_NextBillingInvariant(t *testing.T) {
	wallet := &fundsStub{balance: 100}
	s := newTestSubs(t, newMemStore(), wallet, nil)
	ctx := context.Background()

	if _, err := s.Subscribe(ctx, domain.NewSubscriptionInput{Name: "A", Price: 5, BillingCycle: domain.CycleMonthly}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Subscribe(ctx, domain.NewSubscriptionInput{Name: "B", Price: 5, BillingCycle: domain.CycleYearly}); err != nil {
		t.Fatal(err)
	}
	list := s.Subscriptions()
	if _, err := s.Pause(ctx, list[0].ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Cancel(ctx, list[1].ID); err != nil {
		t.Fatal(err)
	}

	for _, sub := range s.Subscriptions() {
		switch sub.Status {
		case domain.StatusActive:
			if sub.NextBilling == nil {
				t.Fatalf("active subscription %s has nil next billing", sub.Name)
			}
		case domain.StatusPaused, domain.StatusCancelled:
			if sub.NextBilling != nil {
				t.Fatalf("%s subscription %s retains next billing", sub.Status, sub.Name)
			}
		}
	}
}

func TestNewSubscriptionService_SeedsWhenSnapshotMissing(t *testing.T) {
	st := newMemStore()
	wallet := &fundsStub{balance: 0}
	s, err := NewSubscriptionService(context.Background(), st, wallet, testPublisher(), testLogger())
	if err != nil {
		t.Fatalf("NewSubscriptionService returned error: %v", err)
	}
	if len(s.Subscriptions()) == 0 {
		t.Fatal("expected seeded subscriptions when no snapshot exists")
	}
	if _, ok := st.data[store.KeySubscriptions]; !ok {
		t.Fatal("expected seeded list to be persisted")
	}
}
