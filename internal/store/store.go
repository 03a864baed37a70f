/**
 * @description
 * Snapshot persistence for the dashboard. Each logical store (subscriptions,
 * wallet balance, transactions, users, settings) is persisted as one
 * JSON-serializable blob under a well-known key and rewritten in full after
 * every mutation. Backends are swappable behind the Store interface.
 */
package store

import "context"

// Snapshot keys. One blob per store.
const (
	KeySubscriptions = "subscriptions"
	KeyWalletBalance = "walletBalance"
	KeyTransactions  = "transactions"
	KeyUsers         = "users"
	KeySettings      = "settings"
)

// Store reads and writes whole-store snapshots.
//
// Load decodes the snapshot for key into the value pointed to by into and
// reports whether a snapshot existed. A missing or malformed snapshot yields
// (false, nil) so callers can seed defaults; only backend I/O failures are
// surfaced as errors.
type Store interface {
	Load(ctx context.Context, key string, into any) (bool, error)
	Save(ctx context.Context, key string, value any) error
}
