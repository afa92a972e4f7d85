package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill lifecycle states.
const (
	BillStatusPending = "pending"
	BillStatusPaid    = "paid"
	BillStatusOverdue = "overdue"
)

// Income is a singleton document: one record, replaced wholesale on update.
type Income struct {
	Biweekly    decimal.Decimal `json:"biweekly"`
	Monthly     decimal.Decimal `json:"monthly"`
	LastUpdated time.Time       `json:"last_updated"`
}

// Bill is a recurring or one-off household obligation.
type Bill struct {
	ID              string          `json:"id,omitempty"`
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	DueDate         time.Time       `json:"due_date"`
	Category        string          `json:"category"`
	Status          string          `json:"status"`
	PaymentAccount  string          `json:"payment_account,omitempty"`
	Recurring       bool            `json:"recurring"`
	RecurringPeriod string          `json:"recurring_period,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Transaction is a single ledger entry; Type is "expense" or "income".
type Transaction struct {
	ID          string          `json:"id,omitempty"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
}

// Account is a payment source: checking, savings or credit.
type Account struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Balance     decimal.Decimal `json:"balance"`
	Type        string          `json:"type"`
	LastUpdated time.Time       `json:"last_updated"`
}

// FinanceOverview is the document returned by the finances endpoint. The
// transactions collection is exposed under the "payments" key for frontend
// compatibility.
type FinanceOverview struct {
	Income   *Income       `json:"income"`
	Bills    []Bill        `json:"bills"`
	Payments []Transaction `json:"payments"`
}

// BillStatistics aggregates the bills collection.
type BillStatistics struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	Count       int64           `json:"count"`
	AvgAmount   decimal.Decimal `json:"avg_amount"`
	Categories  []string        `json:"categories"`
}
