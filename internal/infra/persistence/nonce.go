package persistence

import (
	"context"
	"sync"

	domain "github.com/scheduly/booking-core/internal/domain/booking"
)

// ======================================================
// NONCE REGISTRY
// ======================================================

// NonceRegistry lembra o comprovante da primeira persistência de cada
// nonce. Uma segunda chamada com o mesmo nonce devolve o resultado
// original em vez de criar duplicata.
type NonceRegistry interface {
	Get(ctx context.Context, nonce string) (domain.Receipt, bool, error)
	Put(ctx context.Context, nonce string, receipt domain.Receipt) error
}

// MemoryNonces atende um único processo; suficiente para o deployment
// single-tenant e para os testes.
type MemoryNonces struct {
	mu       sync.RWMutex
	receipts map[string]domain.Receipt
}

func NewMemoryNonces() *MemoryNonces {
	return &MemoryNonces{receipts: make(map[string]domain.Receipt)}
}

func (m *MemoryNonces) Get(_ context.Context, nonce string) (domain.Receipt, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.receipts[nonce]
	return r, ok, nil
}

func (m *MemoryNonces) Put(_ context.Context, nonce string, receipt domain.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.receipts[nonce]; exists {
		return nil
	}
	m.receipts[nonce] = receipt
	return nil
}
