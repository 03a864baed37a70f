package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/akshay12-del/subzz/pkg/rabbitmq"
)

// memStore is an in-memory snapshot store for tests.
type memStore struct {
	data  map[string][]byte
	saves int
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Load(ctx context.Context, key string, into any) (bool, error) {
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, into); err != nil {
		return false, nil
	}
	return true, nil
}

func (m *memStore) Save(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	m.saves++
	return nil
}

// fundsStub substitutes the wallet: it records every deduction attempt and
// simulates a balance.
type deductCall struct {
	amount      float64
	description string
}

type fundsStub struct {
	balance float64
	calls   []deductCall
}

func (f *fundsStub) DeductFunds(ctx context.Context, amount float64, description string) error {
	f.calls = append(f.calls, deductCall{amount: amount, description: description})
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > f.balance {
		return ErrInsufficientFunds
	}
	f.balance -= amount
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPublisher() rabbitmq.Publisher {
	return &rabbitmq.NoopPublisher{}
}

func mustWalletService(t *testing.T, st *memStore, topUpCap float64) *WalletService {
	t.Helper()
	s, err := NewWalletService(context.Background(), st, testPublisher(), testLogger(), topUpCap)
	if err != nil {
		t.Fatalf("NewWalletService returned error: %v", err)
	}
	return s
}
