package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/banque/registration-system/internal/core/ports"
)

const (
	collectionClients   = "clients"
	collectionCompanies = "companies"
)

// ClientRepository stores one snapshot document per client, keyed by login.
type ClientRepository struct {
	col *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection(collectionClients)}
}

// SaveClient replaces the client's snapshot, inserting it on first save.
func (r *ClientRepository) SaveClient(ctx context.Context, rec *ports.ClientRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toClientDoc(rec)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.Login}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save client %s: %w", rec.Login, err)
	}
	return nil
}

// ListClients returns every snapshot in registration order.
func (r *ClientRepository) ListClients(ctx context.Context) ([]*ports.ClientRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer cur.Close(ctx)

	var docs []clientDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}

	out := make([]*ports.ClientRecord, 0, len(docs))
	for _, d := range docs {
		rec, err := fromClientDoc(d)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// EnsureIndexes creates the lookup index on card numbers.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "account.card_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	})
	return err
}

// CompanyRepository stores one snapshot document per corporate account.
type CompanyRepository struct {
	col *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *CompanyRepository {
	return &CompanyRepository{col: db.Collection(collectionCompanies)}
}

func (r *CompanyRepository) SaveCompany(ctx context.Context, rec *ports.CompanyRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toCompanyDoc(rec)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.AccountID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save company %s: %w", rec.AccountID, err)
	}
	return nil
}

func (r *CompanyRepository) ListCompanies(ctx context.Context) ([]*ports.CompanyRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer cur.Close(ctx)

	var docs []companyDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode companies: %w", err)
	}

	out := make([]*ports.CompanyRecord, 0, len(docs))
	for _, d := range docs {
		rec, err := fromCompanyDoc(d)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
