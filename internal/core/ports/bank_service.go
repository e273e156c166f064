package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/banque/registration-system/internal/core/domain"
)

// RegisterClientInput is the DTO passed from the transport layer to
// BankService.RegisterClient.
type RegisterClientInput struct {
	Name            string
	Address         string
	Phone           string
	NationalID      string
	Login           string
	Password        string
	WithdrawalLimit decimal.Decimal
}

// RegistrationResult reports the outcome of a client registration. Account
// is nil while the request waits for an employee.
type RegistrationResult struct {
	Login   string
	Status  string
	Message string
	Account *AccountView
}

// AccountView is a read-only projection of a personal account.
type AccountView struct {
	Owner      string
	CardNumber string
	Tier       domain.Tier
	TierLabel  string
	Balance    decimal.Decimal
	Frozen     bool
	PINSet     bool
}

// MoneyInput carries a deposit or withdrawal. Owner is the client login or
// the company account id taken from the caller's token.
type MoneyInput struct {
	Owner          string
	Amount         decimal.Decimal
	IdempotencyKey string
}

// TransferInput carries a transfer. Destination is a card number or a
// company account id.
type TransferInput struct {
	Owner          string
	Destination    string
	Amount         decimal.Decimal
	IdempotencyKey string
}

// OpResult is the message of a completed operation and the resulting balance.
type OpResult struct {
	Message string
	Balance decimal.Decimal
}

// HistoryView carries the formatted history and the raw entries.
type HistoryView struct {
	Message string
	Entries []domain.Entry
}

// BankService defines the client-facing use cases.
type BankService interface {
	RegisterClient(ctx context.Context, in RegisterClientInput) (*RegistrationResult, error)
	Account(ctx context.Context, login string) (*AccountView, error)
	Balance(ctx context.Context, login string) (*OpResult, error)
	History(ctx context.Context, login string) (*HistoryView, error)
	SetPIN(ctx context.Context, login, pin string) (*OpResult, error)
	Deposit(ctx context.Context, in MoneyInput) (*OpResult, error)
	Withdraw(ctx context.Context, in MoneyInput) (*OpResult, error)
	Transfer(ctx context.Context, in TransferInput) (*OpResult, error)
}

// RegisterCompanyInput opens a corporate account.
type RegisterCompanyInput struct {
	Name            string
	Address         string
	TaxID           string
	WithdrawalLimit decimal.Decimal
	AccountID       string
	Password        string
}

// CompanyView is a read-only projection of a corporate account.
type CompanyView struct {
	AccountID       string
	Name            string
	TaxID           string
	WithdrawalLimit decimal.Decimal
	Balance         decimal.Decimal
}

// CompanyService defines the corporate account use cases.
type CompanyService interface {
	RegisterCompany(ctx context.Context, in RegisterCompanyInput) (*CompanyView, error)
	CompanyBalance(ctx context.Context, accountID string) (*OpResult, error)
	CompanyHistory(ctx context.Context, accountID string) (*HistoryView, error)
	CompanyDeposit(ctx context.Context, in MoneyInput) (*OpResult, error)
	CompanyWithdraw(ctx context.Context, in MoneyInput) (*OpResult, error)
	CompanyTransfer(ctx context.Context, in TransferInput) (*OpResult, error)
}

// EmployeeService defines the bank operator use cases.
type EmployeeService interface {
	Login(ctx context.Context, username, password string) (string, error)
	ListCards(ctx context.Context) ([]string, error)
	ApproveClient(ctx context.Context, login string) (*RegistrationResult, error)
	RejectClient(ctx context.Context, login string) (string, error)
	ApproveLoan(ctx context.Context, accountID string) (string, error)
	RejectLoan(ctx context.Context, accountID string) (string, error)
	FreezeAccount(ctx context.Context, card string) (string, error)
	UnfreezeAccount(ctx context.Context, card string) (string, error)
}
