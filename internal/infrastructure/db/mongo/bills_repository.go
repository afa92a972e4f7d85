package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/geniusforceai/familydash/internal/core/domain"
)

type mongoBill struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty"`
	Name            string               `bson:"name"`
	Amount          primitive.Decimal128 `bson:"amount"`
	DueDate         time.Time            `bson:"due_date"`
	Category        string               `bson:"category"`
	Status          string               `bson:"status"`
	PaymentAccount  string               `bson:"payment_account,omitempty"`
	Recurring       bool                 `bson:"recurring"`
	RecurringPeriod string               `bson:"recurring_period,omitempty"`
	CreatedAt       time.Time            `bson:"created_at"`
	UpdatedAt       time.Time            `bson:"updated_at"`
}

func (b mongoBill) toDomain() domain.Bill {
	return domain.Bill{
		ID:              b.ID.Hex(),
		Name:            b.Name,
		Amount:          fromDecimal128(b.Amount),
		DueDate:         b.DueDate.UTC(),
		Category:        b.Category,
		Status:          b.Status,
		PaymentAccount:  b.PaymentAccount,
		Recurring:       b.Recurring,
		RecurringPeriod: b.RecurringPeriod,
		CreatedAt:       b.CreatedAt.UTC(),
		UpdatedAt:       b.UpdatedAt.UTC(),
	}
}

func billDoc(bill *domain.Bill) mongoBill {
	return mongoBill{
		Name:            bill.Name,
		Amount:          toDecimal128(bill.Amount),
		DueDate:         bill.DueDate,
		Category:        bill.Category,
		Status:          bill.Status,
		PaymentAccount:  bill.PaymentAccount,
		Recurring:       bill.Recurring,
		RecurringPeriod: bill.RecurringPeriod,
		CreatedAt:       bill.CreatedAt,
		UpdatedAt:       bill.UpdatedAt,
	}
}

func (r *FinanceRepository) ListBills(ctx context.Context, status string) ([]domain.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if status != "" {
		query["status"] = status
	}

	cursor, err := r.bills.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer cursor.Close(ctx)

	out := []domain.Bill{}
	for cursor.Next(ctx) {
		var mb mongoBill
		if err := cursor.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode bill: %w", err)
		}
		out = append(out, mb.toDomain())
	}
	return out, cursor.Err()
}

func (r *FinanceRepository) InsertBill(ctx context.Context, bill *domain.Bill) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.bills.InsertOne(ctx, billDoc(bill))
	if err != nil {
		return "", fmt.Errorf("insert bill: %w", err)
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

func (r *FinanceRepository) UpdateBill(ctx context.Context, id string, bill *domain.Bill) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.bills.ReplaceOne(ctx, bson.M{"_id": oid}, billDoc(bill))
	if err != nil {
		return false, fmt.Errorf("update bill: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *FinanceRepository) DeleteBill(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.bills.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete bill: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// BillStatistics aggregates totals across the whole bills collection.
func (r *FinanceRepository) BillStatistics(ctx context.Context) (*domain.BillStatistics, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.bills.Aggregate(ctx, statsPipeline())
	if err != nil {
		return nil, fmt.Errorf("aggregate bills: %w", err)
	}
	defer cursor.Close(ctx)

	var row struct {
		TotalAmount primitive.Decimal128 `bson:"total_amount"`
		Count       int64                `bson:"count"`
		AvgAmount   primitive.Decimal128 `bson:"avg_amount"`
		Categories  []string             `bson:"categories"`
	}
	if !cursor.Next(ctx) {
		return &domain.BillStatistics{Categories: []string{}}, cursor.Err()
	}
	if err := cursor.Decode(&row); err != nil {
		return nil, fmt.Errorf("decode statistics: %w", err)
	}

	return &domain.BillStatistics{
		TotalAmount: fromDecimal128(row.TotalAmount),
		Count:       row.Count,
		AvgAmount:   fromDecimal128(row.AvgAmount),
		Categories:  row.Categories,
	}, nil
}

func statsPipeline() []bson.M {
	return []bson.M{
		{"$group": bson.M{
			"_id":          nil,
			"total_amount": bson.M{"$sum": "$amount"},
			"count":        bson.M{"$sum": 1},
			"avg_amount":   bson.M{"$avg": "$amount"},
			"categories":   bson.M{"$addToSet": "$category"},
		}},
	}
}

type mongoAccount struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Balance     primitive.Decimal128 `bson:"balance"`
	Type        string               `bson:"type"`
	LastUpdated time.Time            `bson:"last_updated"`
}

func (r *FinanceRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.accounts.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer cursor.Close(ctx)

	out := []domain.Account{}
	for cursor.Next(ctx) {
		var ma mongoAccount
		if err := cursor.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode account: %w", err)
		}
		out = append(out, domain.Account{
			ID:          ma.ID.Hex(),
			Name:        ma.Name,
			Balance:     fromDecimal128(ma.Balance),
			Type:        ma.Type,
			LastUpdated: ma.LastUpdated.UTC(),
		})
	}
	return out, cursor.Err()
}

func (r *FinanceRepository) InsertAccount(ctx context.Context, account *domain.Account) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAccount{
		Name:        account.Name,
		Balance:     toDecimal128(account.Balance),
		Type:        account.Type,
		LastUpdated: account.LastUpdated,
	}
	res, err := r.accounts.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert account: %w", err)
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

func (r *FinanceRepository) UpdateAccount(ctx context.Context, id string, account *domain.Account) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAccount{
		Name:        account.Name,
		Balance:     toDecimal128(account.Balance),
		Type:        account.Type,
		LastUpdated: account.LastUpdated,
	}
	res, err := r.accounts.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return false, fmt.Errorf("update account: %w", err)
	}
	return res.MatchedCount > 0, nil
}
