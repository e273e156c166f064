package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banque/registration-system/internal/core/domain"
)

// Registration states of a client record.
const (
	ClientPending  = "pending"
	ClientActive   = "active"
	ClientRejected = "rejected"
)

// ClientRecord is the persisted snapshot of a client and its account.
// Account is nil until the account is opened.
type ClientRecord struct {
	Login           string
	Name            string
	Address         string
	Phone           string
	NationalID      string
	WithdrawalLimit decimal.Decimal
	Status          string
	Account         *domain.AccountState
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CompanyRecord is the persisted snapshot of a corporate account.
type CompanyRecord struct {
	AccountID       string
	Name            string
	Address         string
	TaxID           string
	WithdrawalLimit decimal.Decimal
	Ledger          domain.LedgerState
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ClientRepository stores client snapshots keyed by login.
type ClientRepository interface {
	// SaveClient inserts or replaces the record with the same login.
	SaveClient(ctx context.Context, rec *ClientRecord) error
	// ListClients returns every record in registration order.
	ListClients(ctx context.Context) ([]*ClientRecord, error)
}

// CompanyRepository stores corporate account snapshots keyed by account id.
type CompanyRepository interface {
	SaveCompany(ctx context.Context, rec *CompanyRecord) error
	ListCompanies(ctx context.Context) ([]*CompanyRecord, error)
}
