package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/geniusforceai/familydash/internal/core/domain"
	"github.com/geniusforceai/familydash/internal/core/ports"
)

// FinanceService implements the household-finance operations on top of the
// document store.
type FinanceService struct {
	repo   ports.FinanceRepository
	logger zerolog.Logger
}

func NewFinanceService(repo ports.FinanceRepository, logger zerolog.Logger) *FinanceService {
	return &FinanceService{repo: repo, logger: logger}
}

func (s *FinanceService) Overview(ctx context.Context) (*domain.FinanceOverview, error) {
	income, err := s.repo.GetIncome(ctx)
	if err != nil {
		return nil, err
	}
	bills, err := s.repo.ListBills(ctx, "")
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.FinanceOverview{Income: income, Bills: bills, Payments: payments}, nil
}

// ReplaceOverview applies a partial or full overview document. Provided
// sub-collections are replaced wholesale: bills and payments are cleared and
// re-inserted, income is upserted. Omitted sub-collections stay as they are.
func (s *FinanceService) ReplaceOverview(ctx context.Context, input ports.ReplaceOverviewInput) (*domain.FinanceOverview, error) {
	now := time.Now().UTC()

	if input.Income != nil {
		income := *input.Income
		income.LastUpdated = now
		if err := s.repo.UpsertIncome(ctx, &income); err != nil {
			return nil, err
		}
	}

	if input.Bills != nil {
		existing, err := s.repo.ListBills(ctx, "")
		if err != nil {
			return nil, err
		}
		for i := range existing {
			if _, err := s.repo.DeleteBill(ctx, existing[i].ID); err != nil {
				return nil, err
			}
		}
		for i := range input.Bills {
			bill := input.Bills[i]
			stampBill(&bill, now)
			if _, err := s.repo.InsertBill(ctx, &bill); err != nil {
				return nil, err
			}
		}
	}

	if input.Payments != nil {
		existing, err := s.repo.ListTransactions(ctx)
		if err != nil {
			return nil, err
		}
		for i := range existing {
			if _, err := s.repo.DeleteTransaction(ctx, existing[i].ID); err != nil {
				return nil, err
			}
		}
		for i := range input.Payments {
			tx := input.Payments[i]
			if tx.Type == "" {
				tx.Type = "expense"
			}
			if _, err := s.repo.InsertTransaction(ctx, &tx); err != nil {
				return nil, err
			}
		}
	}

	s.logger.Info().
		Bool("income", input.Income != nil).
		Int("bills", len(input.Bills)).
		Int("payments", len(input.Payments)).
		Msg("financial data replaced")

	return s.Overview(ctx)
}

func (s *FinanceService) ListBills(ctx context.Context, status string) ([]domain.Bill, error) {
	return s.repo.ListBills(ctx, status)
}

// CreateBill persists the bill and returns the stored record, so callers
// render exactly what the store holds rather than the raw input.
func (s *FinanceService) CreateBill(ctx context.Context, bill domain.Bill) (domain.Bill, error) {
	stampBill(&bill, time.Now().UTC())
	id, err := s.repo.InsertBill(ctx, &bill)
	if err != nil {
		return domain.Bill{}, err
	}
	bill.ID = id
	return bill, nil
}

func (s *FinanceService) UpdateBill(ctx context.Context, id string, bill domain.Bill) (domain.Bill, bool, error) {
	bill.UpdatedAt = time.Now().UTC()
	ok, err := s.repo.UpdateBill(ctx, id, &bill)
	if err != nil || !ok {
		return domain.Bill{}, ok, err
	}
	bill.ID = id
	return bill, true, nil
}

func (s *FinanceService) DeleteBill(ctx context.Context, id string) (bool, error) {
	return s.repo.DeleteBill(ctx, id)
}

func (s *FinanceService) BillStatistics(ctx context.Context) (*domain.BillStatistics, error) {
	return s.repo.BillStatistics(ctx)
}

func (s *FinanceService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.repo.ListAccounts(ctx)
}

func (s *FinanceService) CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error) {
	account.LastUpdated = time.Now().UTC()
	id, err := s.repo.InsertAccount(ctx, &account)
	if err != nil {
		return domain.Account{}, err
	}
	account.ID = id
	return account, nil
}

func (s *FinanceService) UpdateAccount(ctx context.Context, id string, account domain.Account) (domain.Account, bool, error) {
	account.LastUpdated = time.Now().UTC()
	ok, err := s.repo.UpdateAccount(ctx, id, &account)
	if err != nil || !ok {
		return domain.Account{}, ok, err
	}
	account.ID = id
	return account, true, nil
}

func stampBill(bill *domain.Bill, now time.Time) {
	if bill.Status == "" {
		bill.Status = domain.BillStatusPending
	}
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = now
	}
	bill.UpdatedAt = now
}
