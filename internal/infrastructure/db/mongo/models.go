package mongo

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/banque/registration-system/internal/core/domain"
	"github.com/banque/registration-system/internal/core/ports"
)

// Amounts are stored as decimal strings so no precision is lost through
// BSON doubles.

type entryDoc struct {
	ID           string    `bson:"_id"`
	Owner        string    `bson:"owner"`
	Kind         string    `bson:"kind"`
	Amount       string    `bson:"amount"`
	Counterparty string    `bson:"counterparty,omitempty"`
	At           time.Time `bson:"at"`
	Description  string    `bson:"description"`
}

type accountDoc struct {
	CardNumber string     `bson:"card_number"`
	PIN        string     `bson:"pin,omitempty"`
	Tier       string     `bson:"tier"`
	Balance    string     `bson:"balance"`
	Frozen     bool       `bson:"frozen"`
	History    []entryDoc `bson:"history"`
}

type clientDoc struct {
	Login           string      `bson:"_id"`
	Name            string      `bson:"name"`
	Address         string      `bson:"address"`
	Phone           string      `bson:"phone"`
	NationalID      string      `bson:"national_id"`
	WithdrawalLimit string      `bson:"withdrawal_limit"`
	Status          string      `bson:"status"`
	Account         *accountDoc `bson:"account,omitempty"`
	CreatedAt       time.Time   `bson:"created_at"`
	UpdatedAt       time.Time   `bson:"updated_at"`
}

type companyDoc struct {
	AccountID       string     `bson:"_id"`
	Name            string     `bson:"name"`
	Address         string     `bson:"address"`
	TaxID           string     `bson:"tax_id"`
	WithdrawalLimit string     `bson:"withdrawal_limit"`
	Balance         string     `bson:"balance"`
	History         []entryDoc `bson:"history"`
	CreatedAt       time.Time  `bson:"created_at"`
	UpdatedAt       time.Time  `bson:"updated_at"`
}

func toEntryDoc(e domain.Entry) entryDoc {
	return entryDoc{
		ID:           e.ID.String(),
		Owner:        e.Owner,
		Kind:         string(e.Kind),
		Amount:       e.Amount.String(),
		Counterparty: e.Counterparty,
		At:           e.At.UTC(),
		Description:  e.Description,
	}
}

func fromEntryDoc(d entryDoc) (domain.Entry, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("entry id %q: %w", d.ID, err)
	}
	amt, err := decimal.NewFromString(d.Amount)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("entry %s amount: %w", d.ID, err)
	}
	return domain.Entry{
		ID:           id,
		Owner:        d.Owner,
		Kind:         domain.EntryKind(d.Kind),
		Amount:       amt,
		Counterparty: d.Counterparty,
		At:           d.At.UTC(),
		Description:  d.Description,
	}, nil
}

func toEntryDocs(entries []domain.Entry) []entryDoc {
	out := make([]entryDoc, len(entries))
	for i, e := range entries {
		out[i] = toEntryDoc(e)
	}
	return out
}

func fromEntryDocs(docs []entryDoc) ([]domain.Entry, error) {
	out := make([]domain.Entry, 0, len(docs))
	for _, d := range docs {
		e, err := fromEntryDoc(d)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func toClientDoc(rec *ports.ClientRecord) clientDoc {
	doc := clientDoc{
		Login:           rec.Login,
		Name:            rec.Name,
		Address:         rec.Address,
		Phone:           rec.Phone,
		NationalID:      rec.NationalID,
		WithdrawalLimit: rec.WithdrawalLimit.String(),
		Status:          rec.Status,
		CreatedAt:       rec.CreatedAt.UTC(),
		UpdatedAt:       rec.UpdatedAt.UTC(),
	}
	if st := rec.Account; st != nil {
		doc.Account = &accountDoc{
			CardNumber: st.CardNumber,
			PIN:        st.PIN,
			Tier:       string(st.Tier),
			Balance:    st.Balance.String(),
			Frozen:     st.Frozen,
			History:    toEntryDocs(st.History),
		}
	}
	return doc
}

func fromClientDoc(doc clientDoc) (*ports.ClientRecord, error) {
	limit, err := decimal.NewFromString(doc.WithdrawalLimit)
	if err != nil {
		return nil, fmt.Errorf("client %s withdrawal limit: %w", doc.Login, err)
	}
	rec := &ports.ClientRecord{
		Login:           doc.Login,
		Name:            doc.Name,
		Address:         doc.Address,
		Phone:           doc.Phone,
		NationalID:      doc.NationalID,
		WithdrawalLimit: limit,
		Status:          doc.Status,
		CreatedAt:       doc.CreatedAt.UTC(),
		UpdatedAt:       doc.UpdatedAt.UTC(),
	}
	if a := doc.Account; a != nil {
		tier, ok := domain.ParseTier(a.Tier)
		if !ok {
			return nil, fmt.Errorf("client %s: unknown tier %q", doc.Login, a.Tier)
		}
		bal, err := decimal.NewFromString(a.Balance)
		if err != nil {
			return nil, fmt.Errorf("client %s balance: %w", doc.Login, err)
		}
		history, err := fromEntryDocs(a.History)
		if err != nil {
			return nil, fmt.Errorf("client %s: %w", doc.Login, err)
		}
		rec.Account = &domain.AccountState{
			CardNumber: a.CardNumber,
			PIN:        a.PIN,
			Tier:       tier,
			Balance:    bal,
			Frozen:     a.Frozen,
			History:    history,
		}
	}
	return rec, nil
}

func toCompanyDoc(rec *ports.CompanyRecord) companyDoc {
	return companyDoc{
		AccountID:       rec.AccountID,
		Name:            rec.Name,
		Address:         rec.Address,
		TaxID:           rec.TaxID,
		WithdrawalLimit: rec.WithdrawalLimit.String(),
		Balance:         rec.Ledger.Balance.String(),
		History:         toEntryDocs(rec.Ledger.History),
		CreatedAt:       rec.CreatedAt.UTC(),
		UpdatedAt:       rec.UpdatedAt.UTC(),
	}
}

func fromCompanyDoc(doc companyDoc) (*ports.CompanyRecord, error) {
	limit, err := decimal.NewFromString(doc.WithdrawalLimit)
	if err != nil {
		return nil, fmt.Errorf("company %s withdrawal limit: %w", doc.AccountID, err)
	}
	bal, err := decimal.NewFromString(doc.Balance)
	if err != nil {
		return nil, fmt.Errorf("company %s balance: %w", doc.AccountID, err)
	}
	history, err := fromEntryDocs(doc.History)
	if err != nil {
		return nil, fmt.Errorf("company %s: %w", doc.AccountID, err)
	}
	return &ports.CompanyRecord{
		AccountID:       doc.AccountID,
		Name:            doc.Name,
		Address:         doc.Address,
		TaxID:           doc.TaxID,
		WithdrawalLimit: limit,
		Ledger:          domain.LedgerState{Balance: bal, History: history},
		CreatedAt:       doc.CreatedAt.UTC(),
		UpdatedAt:       doc.UpdatedAt.UTC(),
	}, nil
}
