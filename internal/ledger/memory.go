// Package ledger provides coin wallet backends behind the economy port.
package ledger

import (
	"context"
	"sync"

	"guandan/internal/ports"
)

// MemoryLedger keeps balances in process memory. Intended for tests and
// single-node development runs.
type MemoryLedger struct {
	mu       sync.Mutex
	balances map[string]int64
}

// NewMemoryLedger builds an empty in-memory wallet store.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{balances: make(map[string]int64)}
}

// GetBalance retrieves the current coin balance for a user.
func (l *MemoryLedger) GetBalance(ctx context.Context, userID string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[userID], nil
}

// UpdateBalances applies wallet changes. Balances never drop below zero.
func (l *MemoryLedger) UpdateBalances(ctx context.Context, updates []ports.WalletUpdate) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, update := range updates {
		if update.Amount == 0 {
			continue
		}
		next := l.balances[update.UserID] + update.Amount
		if next < 0 {
			next = 0
		}
		l.balances[update.UserID] = next
	}
	return nil
}

var _ ports.EconomyPort = (*MemoryLedger)(nil)
