package ports

import (
	"context"

	"github.com/geniusforceai/familydash/internal/core/domain"
)

// ReplaceOverviewInput carries the sub-collections to replace. A nil slice
// (or nil income) leaves that sub-collection untouched; a non-nil empty
// slice clears it.
type ReplaceOverviewInput struct {
	Income   *domain.Income
	Bills    []domain.Bill
	Payments []domain.Transaction
}

type FinanceService interface {
	Overview(ctx context.Context) (*domain.FinanceOverview, error)
	// ReplaceOverview swaps the provided sub-collections wholesale
	// (delete-all-then-insert for bills/payments, upsert for income) and
	// returns the fresh overview.
	ReplaceOverview(ctx context.Context, input ReplaceOverviewInput) (*domain.FinanceOverview, error)

	ListBills(ctx context.Context, status string) ([]domain.Bill, error)
	// CreateBill and UpdateBill return the record as persisted, with
	// defaulted status and stamped timestamps, not the caller's input.
	CreateBill(ctx context.Context, bill domain.Bill) (domain.Bill, error)
	UpdateBill(ctx context.Context, id string, bill domain.Bill) (domain.Bill, bool, error)
	DeleteBill(ctx context.Context, id string) (bool, error)
	BillStatistics(ctx context.Context) (*domain.BillStatistics, error)

	ListAccounts(ctx context.Context) ([]domain.Account, error)
	CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error)
	UpdateAccount(ctx context.Context, id string, account domain.Account) (domain.Account, bool, error)
}
