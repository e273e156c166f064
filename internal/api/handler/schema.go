package handler

import (
	"time"

	"github.com/shopspring/decimal"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Login    string `json:"login"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type employeeLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Role    string `json:"role"`
}

// --- Clients ---

type registerClientRequest struct {
	Name            string          `json:"name"             validate:"client_name"`
	Address         string          `json:"address"`
	Phone           string          `json:"phone"            validate:"phone"`
	NationalID      string          `json:"national_id"      validate:"national_id"`
	Login           string          `json:"login"            validate:"required"`
	Password        string          `json:"password"         validate:"required"`
	WithdrawalLimit decimal.Decimal `json:"withdrawal_limit"`
}

type accountResponse struct {
	Owner      string          `json:"owner"`
	CardNumber string          `json:"card_number"`
	Tier       string          `json:"tier"`
	TierLabel  string          `json:"tier_label"`
	Balance    decimal.Decimal `json:"balance"`
	Frozen     bool            `json:"frozen"`
	PINSet     bool            `json:"pin_set"`
}

type registrationResponse struct {
	Message string           `json:"message"`
	Login   string           `json:"login"`
	Status  string           `json:"status"`
	Account *accountResponse `json:"account,omitempty"`
}

type pinRequest struct {
	PIN string `json:"pin" validate:"required,pin"`
}

type moneyRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type transferRequest struct {
	Destination string          `json:"destination" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
}

type opResponse struct {
	Message string          `json:"message"`
	Balance decimal.Decimal `json:"balance"`
}

type entryResponse struct {
	ID           string          `json:"id"`
	Kind         string          `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	Counterparty string          `json:"counterparty,omitempty"`
	At           time.Time       `json:"at"`
	Description  string          `json:"description"`
}

type historyResponse struct {
	Message string          `json:"message"`
	Entries []entryResponse `json:"entries"`
}

type accountDetailResponse struct {
	Message string          `json:"message"`
	Account accountResponse `json:"account"`
}

// --- Companies ---

type registerCompanyRequest struct {
	Name            string          `json:"name"             validate:"required"`
	Address         string          `json:"address"`
	TaxID           string          `json:"tax_id"`
	WithdrawalLimit decimal.Decimal `json:"withdrawal_limit"`
	AccountID       string          `json:"account_id"       validate:"required"`
	Password        string          `json:"password"         validate:"required"`
}

type companyResponse struct {
	Message         string          `json:"message"`
	AccountID       string          `json:"account_id"`
	Name            string          `json:"name"`
	TaxID           string          `json:"tax_id,omitempty"`
	WithdrawalLimit decimal.Decimal `json:"withdrawal_limit"`
	Balance         decimal.Decimal `json:"balance"`
}

// --- Employee ---

type cardsResponse struct {
	Message string   `json:"message"`
	Cards   []string `json:"cards"`
}
