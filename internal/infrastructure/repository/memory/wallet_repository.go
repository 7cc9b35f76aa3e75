package memory

import (
	"context"
	"sync"

	"github.com/fairwaypot/settlement/internal/domain/wallet"
)

// WalletRepository and LedgerRepository share one account store so that the
// ledger can credit balances the way the SQL implementation does inside a
// transaction. Build both through NewWalletStore.
type WalletRepository struct {
	store *WalletStore
}

type WalletStore struct {
	mu       sync.Mutex
	accounts map[string]wallet.Account
}

func NewWalletStore(accounts []wallet.Account) *WalletStore {
	byID := make(map[string]wallet.Account, len(accounts))
	for _, a := range accounts {
		byID[a.UserID] = a
	}
	return &WalletStore{accounts: byID}
}

func NewWalletRepository(store *WalletStore) *WalletRepository {
	return &WalletRepository{store: store}
}

func (r *WalletRepository) ListByIDs(_ context.Context, userIDs []string) ([]wallet.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]wallet.Account, 0, len(userIDs))
	for _, id := range userIDs {
		if a, ok := r.store.accounts[id]; ok {
			out = append(out, a)
		}
	}

	return out, nil
}
