package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/banque/registration-system/internal/core/domain"
)

const collectionTransactions = "transactions"

// TransactionRepository stores the audit trail of ledger entries.
type TransactionRepository struct {
	col *mongo.Collection
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{col: db.Collection(collectionTransactions)}
}

type transactionDoc struct {
	Entry      entryDoc  `bson:",inline"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// InsertTransaction appends an entry to the audit trail. The entry id is the
// document id, so a replayed entry is a no-op.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, entry domain.Entry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := transactionDoc{Entry: toEntryDoc(entry), RecordedAt: time.Now().UTC()}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// EnsureIndexes creates per-owner history indexes on the audit trail.
func (r *TransactionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "at", Value: 1}}},
		{Keys: bson.D{{Key: "counterparty", Value: 1}}, Options: options.Index().SetSparse(true)},
	})
	return err
}
