package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/fairwaypot/settlement/internal/domain/ledger"
)

type LedgerRepository struct {
	store *WalletStore

	mu      sync.Mutex
	entries []ledger.Entry
}

func NewLedgerRepository(store *WalletStore) *LedgerRepository {
	return &LedgerRepository{store: store}
}

// ApplyPrize credits the balance and records the entry under one lock, so a
// reader never observes one without the other. The account must exist; the
// sweep prefetches accounts before paying, so a miss here is a race with an
// account deletion and the prize is refused whole.
func (r *LedgerRepository) ApplyPrize(_ context.Context, entry ledger.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.accounts[entry.UserID]
	if !ok {
		return fmt.Errorf("apply prize: account %s not found", entry.UserID)
	}
	account.CurrentBalance += entry.Value
	r.store.accounts[entry.UserID] = account

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *LedgerRepository) ListByUser(_ context.Context, userID string) ([]ledger.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]ledger.Entry, 0)
	for _, entry := range r.entries {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}

	return out, nil
}
