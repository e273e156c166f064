package domain

import "github.com/shopspring/decimal"

// CompanyInput carries a corporate account opening form.
type CompanyInput struct {
	Name            string
	Address         string
	TaxID           string
	WithdrawalLimit decimal.Decimal
	AccountID       string
	Password        string
}

// CorporateAccount is a company's account: same money rules as Account, no
// freeze, PIN or tier.
type CorporateAccount struct {
	*book

	name            string
	address         string
	taxID           string
	withdrawalLimit decimal.Decimal
	accountID       string
	password        string
}

func NewCorporateAccount(in CompanyInput, opts ...AccountOption) *CorporateAccount {
	cfg := buildConfig(opts)
	return &CorporateAccount{
		book:            newBook(cfg),
		name:            in.Name,
		address:         in.Address,
		taxID:           in.TaxID,
		withdrawalLimit: in.WithdrawalLimit,
		accountID:       in.AccountID,
		password:        in.Password,
	}
}

func (c *CorporateAccount) Identifier() string { return c.accountID }

func (c *CorporateAccount) label() string { return "compte entreprise " + c.accountID }

func (c *CorporateAccount) Name() string                     { return c.name }
func (c *CorporateAccount) Address() string                  { return c.address }
func (c *CorporateAccount) TaxID() string                    { return c.taxID }
func (c *CorporateAccount) WithdrawalLimit() decimal.Decimal { return c.withdrawalLimit }
func (c *CorporateAccount) AccountID() string                { return c.accountID }
func (c *CorporateAccount) Password() string                 { return c.password }

func (c *CorporateAccount) Deposit(amount decimal.Decimal) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return applyDeposit(c, amount)
}

func (c *CorporateAccount) Withdraw(amount decimal.Decimal) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return applyWithdraw(c, amount)
}

// Transfer sends amount to a personal or corporate account.
func (c *CorporateAccount) Transfer(amount decimal.Decimal, dst Ledger) (string, error) {
	return transfer(c, dst, amount, nil)
}

func (c *CorporateAccount) BalanceMessage() string {
	return "Solde actuel de l'entreprise : " + money(c.Balance())
}

// LedgerState is the persisted money part of a corporate account.
type LedgerState struct {
	Balance decimal.Decimal
	History []Entry
}

func (c *CorporateAccount) State() LedgerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return LedgerState{Balance: c.balance, History: append([]Entry(nil), c.history...)}
}

// RestoreCorporateAccount rebuilds a company account from storage.
func RestoreCorporateAccount(in CompanyInput, st LedgerState, opts ...AccountOption) *CorporateAccount {
	c := NewCorporateAccount(in, opts...)
	c.restore(st.Balance, st.History)
	return c
}
