package repository

import (
	"context"
	"sync"

	"trade_bridge/internal/adaptor"
	"trade_bridge/internal/model"
)

var _ adaptor.CredentialRepository = (*CredentialMemoryRepository)(nil)

// CredentialMemoryRepository keeps the pair for the process lifetime only.
// The mutex makes concurrent connects well-defined: the last completed Set
// wins atomically.
type CredentialMemoryRepository struct {
	mu   sync.RWMutex
	cred *model.Credential
}

func NewCredentialMemoryRepository() *CredentialMemoryRepository {
	return &CredentialMemoryRepository{}
}

// Seed stores an initial pair when both halves are present. Used for
// env-provided credentials at startup.
func (r *CredentialMemoryRepository) Seed(cred model.Credential) {
	if !cred.IsComplete() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cred = &cred
}

func (r *CredentialMemoryRepository) Get(ctx context.Context) (*model.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cred == nil {
		return nil, nil
	}
	cred := *r.cred
	return &cred, nil
}

func (r *CredentialMemoryRepository) Set(ctx context.Context, cred model.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cred = &cred
	return nil
}
