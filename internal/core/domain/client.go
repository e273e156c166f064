package domain

import (
	"sync"

	"github.com/shopspring/decimal"
)

// ClientInput carries the registration form.
type ClientInput struct {
	Name            string
	Address         string
	Phone           string
	NationalID      string
	Login           string
	Password        string
	WithdrawalLimit decimal.Decimal
}

// Client is an individual customer. The password is kept as entered; storage
// layers must hash it before persisting.
type Client struct {
	name            string
	address         string
	phone           string
	nationalID      string
	login           string
	password        string
	withdrawalLimit decimal.Decimal

	accountOpts []AccountOption

	mu      sync.RWMutex
	account *Account
}

// NewClient builds a client without an account. opts are applied to the
// account CreateAccount will build.
func NewClient(in ClientInput, opts ...AccountOption) *Client {
	return &Client{
		name:            in.Name,
		address:         in.Address,
		phone:           in.Phone,
		nationalID:      in.NationalID,
		login:           in.Login,
		password:        in.Password,
		withdrawalLimit: in.WithdrawalLimit,
		accountOpts:     opts,
	}
}

func (c *Client) Name() string                     { return c.name }
func (c *Client) Address() string                  { return c.address }
func (c *Client) Phone() string                    { return c.phone }
func (c *Client) NationalID() string               { return c.nationalID }
func (c *Client) Login() string                    { return c.login }
func (c *Client) Password() string                 { return c.password }
func (c *Client) WithdrawalLimit() decimal.Decimal { return c.withdrawalLimit }

// Account returns the client's account or nil.
func (c *Client) Account() *Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.account
}

func (c *Client) HasAccount() bool {
	return c.Account() != nil
}

// VerifyInformation checks name, phone, national id and withdrawal limit in
// that order and returns the first failure.
func (c *Client) VerifyInformation() error {
	switch {
	case !ValidName(c.name):
		return &ValidationError{Field: "name", Message: MsgInvalidName}
	case !ValidPhone(c.phone):
		return &ValidationError{Field: "phone", Message: MsgInvalidPhone}
	case !ValidNationalID(c.nationalID):
		return &ValidationError{Field: "national_id", Message: MsgInvalidNatID}
	case !ValidWithdrawalLimit(c.withdrawalLimit):
		return &ValidationError{Field: "withdrawal_limit", Message: MsgInvalidLimit}
	}
	return nil
}

// CreateAccount opens an account once the client information verifies. A
// second call replaces the existing account; callers that must not lose an
// account check HasAccount first.
func (c *Client) CreateAccount() (string, error) {
	if err := c.VerifyInformation(); err != nil {
		return "", err
	}
	acct := NewAccount(c, c.accountOpts...)
	c.mu.Lock()
	c.account = acct
	c.mu.Unlock()
	return MsgAccountCreated, nil
}

// RestoreAccount attaches a previously persisted account without running
// validation.
func (c *Client) RestoreAccount(st AccountState) *Account {
	acct := RestoreAccount(c, st, c.accountOpts...)
	c.mu.Lock()
	c.account = acct
	c.mu.Unlock()
	return acct
}
