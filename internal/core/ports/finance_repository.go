package ports

import (
	"context"

	"github.com/geniusforceai/familydash/internal/core/domain"
)

// FinanceRepository defines persistence for the household finance
// collections: the income singleton, bills, transactions and accounts.
type FinanceRepository interface {
	// GetIncome returns nil (no error) when the singleton has never been set.
	GetIncome(ctx context.Context) (*domain.Income, error)
	UpsertIncome(ctx context.Context, income *domain.Income) error

	ListBills(ctx context.Context, status string) ([]domain.Bill, error)
	InsertBill(ctx context.Context, bill *domain.Bill) (string, error)
	UpdateBill(ctx context.Context, id string, bill *domain.Bill) (bool, error)
	DeleteBill(ctx context.Context, id string) (bool, error)
	BillStatistics(ctx context.Context) (*domain.BillStatistics, error)

	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	InsertTransaction(ctx context.Context, tx *domain.Transaction) (string, error)
	DeleteTransaction(ctx context.Context, id string) (bool, error)

	ListAccounts(ctx context.Context) ([]domain.Account, error)
	InsertAccount(ctx context.Context, account *domain.Account) (string, error)
	UpdateAccount(ctx context.Context, id string, account *domain.Account) (bool, error)
}
