// Package storage wires concrete storage backends behind the
// interfaces.StorageManager contract.
package storage

import (
	"fmt"

	"github.com/jcallahan/pocketledger/internal/common"
	"github.com/jcallahan/pocketledger/internal/interfaces"
	"github.com/jcallahan/pocketledger/internal/storage/ledgerdb"
)

// Compile-time interface check
var _ interfaces.StorageManager = (*Manager)(nil)

// Manager owns the ledger store lifecycle.
type Manager struct {
	ledger *ledgerdb.Store
	logger *common.Logger
}

// NewStorageManager opens all storage backends from config.
func NewStorageManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ledger, err := ledgerdb.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger store: %w", err)
	}
	return &Manager{ledger: ledger, logger: logger}, nil
}

// Ledger returns the ledger store.
func (m *Manager) Ledger() interfaces.LedgerStore {
	return m.ledger
}

// Close shuts down all backends.
func (m *Manager) Close() error {
	if m.ledger != nil {
		if err := m.ledger.Close(); err != nil {
			return fmt.Errorf("failed to close ledger store: %w", err)
		}
	}
	return nil
}
