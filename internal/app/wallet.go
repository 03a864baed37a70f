/**
 * @description
 * The wallet service is the sole owner of the balance and the transaction
 * history. Every balance change goes through one of its three operations,
 * each of which appends exactly one transaction and rewrites the wallet
 * snapshots, so no partial state is ever observable.
 */
package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/akshay12-del/subzz/internal/domain"
	"github.com/akshay12-del/subzz/internal/store"
	"github.com/akshay12-del/subzz/pkg/rabbitmq"
)

// EventsExchange is the topic exchange all dashboard events are published to.
const EventsExchange = "subzz.events"

// WalletService owns the balance and the append-only transaction history.
type WalletService struct {
	mu           sync.Mutex
	balance      float64
	transactions []domain.Transaction

	store    store.Store
	events   rabbitmq.Publisher
	logger   *slog.Logger
	topUpCap float64
	now      func() time.Time
}

// NewWalletService loads the wallet snapshots (defaulting to a zero balance
// and an empty history) and returns the service.
func NewWalletService(ctx context.Context, st store.Store, events rabbitmq.Publisher, logger *slog.Logger, topUpCap float64) (*WalletService, error) {
	s := &WalletService{
		store:    st,
		events:   events,
		logger:   logger,
		topUpCap: topUpCap,
		now:      time.Now,
	}

	if _, err := st.Load(ctx, store.KeyWalletBalance, &s.balance); err != nil {
		return nil, err
	}
	if _, err := st.Load(ctx, store.KeyTransactions, &s.transactions); err != nil {
		return nil, err
	}
	return s, nil
}

// Balance returns the current balance.
func (s *WalletService) Balance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

// Transactions returns the transaction history, newest first.
func (s *WalletService) Transactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Wallet returns the balance and history as one snapshot view.
func (s *WalletService) Wallet() domain.Wallet {
	s.mu.Lock()
	defer s.mu.Unlock()
	txs := make([]domain.Transaction, len(s.transactions))
	copy(txs, s.transactions)
	return domain.Wallet{Balance: s.balance, Transactions: txs}
}

// AddFunds credits the wallet. The amount must be positive and within the
// configured top-up cap.
func (s *WalletService) AddFunds(ctx context.Context, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if s.topUpCap > 0 && amount > s.topUpCap {
		return ErrAmountExceedsCap
	}

	s.mu.Lock()
	s.balance += amount
	tx := s.appendTransaction(domain.TransactionCredit, amount, "Funds added to wallet")
	s.persist(ctx)
	s.mu.Unlock()

	s.publish(ctx, "wallet.credited", tx)
	return nil
}

// RedeemFunds debits the wallet back to the user. The amount must be
// positive and must not exceed the balance.
func (s *WalletService) RedeemFunds(ctx context.Context, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	s.mu.Lock()
	if amount > s.balance {
		s.mu.Unlock()
		return ErrInsufficientFunds
	}
	s.balance -= amount
	tx := s.appendTransaction(domain.TransactionDebit, amount, "Funds redeemed from wallet")
	s.persist(ctx)
	s.mu.Unlock()

	s.publish(ctx, "wallet.debited", tx)
	return nil
}

// DeductFunds is the internal charge path used for subscription payments.
// The caller supplies the transaction description.
func (s *WalletService) DeductFunds(ctx context.Context, amount float64, description string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	s.mu.Lock()
	if amount > s.balance {
		s.mu.Unlock()
		return ErrInsufficientFunds
	}
	s.balance -= amount
	tx := s.appendTransaction(domain.TransactionDebit, amount, description)
	s.persist(ctx)
	s.mu.Unlock()

	s.publish(ctx, "wallet.debited", tx)
	return nil
}

// appendTransaction prepends a new ledger entry. Callers hold the lock.
func (s *WalletService) appendTransaction(typ domain.TransactionType, amount float64, description string) domain.Transaction {
	tx := domain.Transaction{
		ID:          uuid.NewString(),
		Type:        typ,
		Amount:      amount,
		Description: description,
		Date:        s.now(),
	}
	s.transactions = append([]domain.Transaction{tx}, s.transactions...)
	return tx
}

// persist rewrites both wallet snapshots. Callers hold the lock. Snapshot
// failures are logged, not returned: the in-memory state is already
// consistent and the next successful save will catch it up.
func (s *WalletService) persist(ctx context.Context) {
	if err := s.store.Save(ctx, store.KeyWalletBalance, s.balance); err != nil {
		s.logger.Error("failed to persist wallet balance", "error", err)
	}
	if err := s.store.Save(ctx, store.KeyTransactions, s.transactions); err != nil {
		s.logger.Error("failed to persist transactions", "error", err)
	}
}

func (s *WalletService) publish(ctx context.Context, routingKey string, tx domain.Transaction) {
	if err := s.events.Publish(ctx, EventsExchange, routingKey, tx); err != nil {
		s.logger.Warn("failed to publish wallet event", "routing_key", routingKey, "error", err)
	}
}
