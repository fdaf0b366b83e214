package wallet

import (
	"context"

	walletRepo "mentora/database/repository/wallet"
	"mentora/models"
)

// WalletService exposes the per-owner ledger views and mutations.
type WalletService interface {
	GetOrCreate(ctx context.Context, ownerID, ownerType string) (*models.Wallet, error)
	IncrementBalance(ctx context.Context, walletID string, delta float64) error
	Summary(ctx context.Context, ownerID, ownerType string) (*models.WalletSummary, error)
	Transactions(ctx context.Context, ownerID, ownerType string) ([]models.Transaction, error)
}

// DefaultWalletService implements WalletService.
type DefaultWalletService struct {
	Repo walletRepo.WalletRepository
}

func validOwnerType(ownerType string) bool {
	switch ownerType {
	case models.OwnerClient, models.OwnerTherapist, models.OwnerAdmin:
		return true
	}
	return false
}

// GetOrCreate lazily creates the owner's wallet on first use.
func (s *DefaultWalletService) GetOrCreate(ctx context.Context, ownerID, ownerType string) (*models.Wallet, error) {
	if ownerID == "" {
		return nil, models.NewValidationError("missing owner id")
	}
	if !validOwnerType(ownerType) {
		return nil, models.NewValidationError("invalid owner type %q", ownerType)
	}
	return s.Repo.GetOrCreate(ctx, ownerID, ownerType)
}

// IncrementBalance applies a relative delta. A delta that would drive the
// balance negative is rejected by the store's conditional update.
func (s *DefaultWalletService) IncrementBalance(ctx context.Context, walletID string, delta float64) error {
	if walletID == "" {
		return models.NewValidationError("missing wallet id")
	}
	if delta == 0 {
		return models.NewValidationError("delta must be non-zero")
	}
	return s.Repo.IncrementBalance(ctx, walletID, delta)
}

// Summary aggregates the owner's completed transactions. An owner who has
// never been credited gets a zero summary; no wallet is created for them.
func (s *DefaultWalletService) Summary(ctx context.Context, ownerID, ownerType string) (*models.WalletSummary, error) {
	if !validOwnerType(ownerType) {
		return nil, models.NewValidationError("invalid owner type %q", ownerType)
	}
	w, err := s.Repo.GetByOwner(ctx, ownerID, ownerType)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return &models.WalletSummary{}, nil
	}
	return s.Repo.Summarize(ctx, w.ID)
}

// Transactions returns the owner's ledger history, newest first.
func (s *DefaultWalletService) Transactions(ctx context.Context, ownerID, ownerType string) ([]models.Transaction, error) {
	if !validOwnerType(ownerType) {
		return nil, models.NewValidationError("invalid owner type %q", ownerType)
	}
	w, err := s.Repo.GetByOwner(ctx, ownerID, ownerType)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return []models.Transaction{}, nil
	}
	return s.Repo.ListTransactions(ctx, w.ID)
}
