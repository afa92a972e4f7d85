package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/geniusforceai/familydash/internal/core/domain"
)

const (
	incomeCollection       = "income"
	billsCollection        = "bills"
	transactionsCollection = "transactions"
	accountsCollection     = "accounts"
)

// FinanceRepository persists the finance collections. Monetary values are
// stored as Decimal128 so amounts survive round-trips without float drift.
type FinanceRepository struct {
	income       *mongo.Collection
	bills        *mongo.Collection
	transactions *mongo.Collection
	accounts     *mongo.Collection
}

func NewFinanceRepository(db *mongo.Database) *FinanceRepository {
	return &FinanceRepository{
		income:       db.Collection(incomeCollection),
		bills:        db.Collection(billsCollection),
		transactions: db.Collection(transactionsCollection),
		accounts:     db.Collection(accountsCollection),
	}
}

func toDecimal128(d decimal.Decimal) primitive.Decimal128 {
	d128, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		// decimal.Decimal.String always yields a parseable literal.
		return primitive.Decimal128{}
	}
	return d128
}

func fromDecimal128(d primitive.Decimal128) decimal.Decimal {
	out, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Zero
	}
	return out
}

type mongoIncome struct {
	Biweekly    primitive.Decimal128 `bson:"biweekly"`
	Monthly     primitive.Decimal128 `bson:"monthly"`
	LastUpdated time.Time            `bson:"last_updated"`
}

// GetIncome returns the income singleton, or nil when it was never set.
func (r *FinanceRepository) GetIncome(ctx context.Context) (*domain.Income, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mi mongoIncome
	if err := r.income.FindOne(ctx, bson.M{}).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find income: %w", err)
	}

	return &domain.Income{
		Biweekly:    fromDecimal128(mi.Biweekly),
		Monthly:     fromDecimal128(mi.Monthly),
		LastUpdated: mi.LastUpdated.UTC(),
	}, nil
}

// UpsertIncome replaces the singleton document wholesale.
func (r *FinanceRepository) UpsertIncome(ctx context.Context, income *domain.Income) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoIncome{
		Biweekly:    toDecimal128(income.Biweekly),
		Monthly:     toDecimal128(income.Monthly),
		LastUpdated: income.LastUpdated,
	}
	_, err := r.income.ReplaceOne(ctx, bson.M{}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert income: %w", err)
	}
	return nil
}

type mongoTransaction struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Date        time.Time            `bson:"date"`
	Description string               `bson:"description"`
	Category    string               `bson:"category"`
	Amount      primitive.Decimal128 `bson:"amount"`
	Type        string               `bson:"type"`
}

func (r *FinanceRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.transactions.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer cursor.Close(ctx)

	out := []domain.Transaction{}
	for cursor.Next(ctx) {
		var mt mongoTransaction
		if err := cursor.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		out = append(out, domain.Transaction{
			ID:          mt.ID.Hex(),
			Date:        mt.Date.UTC(),
			Description: mt.Description,
			Category:    mt.Category,
			Amount:      fromDecimal128(mt.Amount),
			Type:        mt.Type,
		})
	}
	return out, cursor.Err()
}

func (r *FinanceRepository) InsertTransaction(ctx context.Context, tx *domain.Transaction) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTransaction{
		Date:        tx.Date,
		Description: tx.Description,
		Category:    tx.Category,
		Amount:      toDecimal128(tx.Amount),
		Type:        tx.Type,
	}
	res, err := r.transactions.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

func (r *FinanceRepository) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.transactions.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete transaction: %w", err)
	}
	return res.DeletedCount > 0, nil
}
