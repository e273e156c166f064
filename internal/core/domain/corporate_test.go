package domain

import (
	"errors"
	"testing"
)

func newTestCompany(id string, opts ...AccountOption) *CorporateAccount {
	return NewCorporateAccount(CompanyInput{
		Name:            "Acme SARL",
		Address:         "10 avenue des Champs",
		TaxID:           "FR123456789",
		WithdrawalLimit: d("250000"),
		AccountID:       id,
		Password:        "acme",
	}, opts...)
}

func TestCorporateDepositWithdraw(t *testing.T) {
	c := newTestCompany("ENT-1")

	if msg, err := c.Deposit(d("500")); err != nil || msg != "500€ déposés avec succès." {
		t.Fatalf("Deposit = %q, %v", msg, err)
	}
	if _, err := c.Withdraw(d("501")); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if _, err := c.Deposit(d("0")); !errors.Is(err, ErrNonPositiveAmount) {
		t.Fatalf("expected non-positive rejection, got %v", err)
	}
	if msg, err := c.Withdraw(d("200")); err != nil || msg != "200€ retirés avec succès." {
		t.Fatalf("Withdraw = %q, %v", msg, err)
	}
	if got := c.BalanceMessage(); got != "Solde actuel de l'entreprise : 300€" {
		t.Fatalf("BalanceMessage = %q", got)
	}
}

func TestCorporateLimitIsNotEnforced(t *testing.T) {
	c := newTestCompany("ENT-1")
	_, _ = c.Deposit(d("1000000"))
	if _, err := c.Withdraw(d("900000")); err != nil {
		t.Fatalf("withdrawal above the declared limit must succeed: %v", err)
	}
}

func TestCrossTypeTransfers(t *testing.T) {
	company := newTestCompany("ENT-9")
	acct := newTestAccount(t, "1111222233334444")
	_, _ = company.Deposit(d("1000"))

	msg, err := company.Transfer(d("300"), acct)
	if err != nil {
		t.Fatalf("company -> account: %v", err)
	}
	if msg != "300€ transférés avec succès vers le compte 1111222233334444." {
		t.Fatalf("unexpected message %q", msg)
	}
	if got := company.Entries()[1].Description; got != "Transfert de 300€ vers le compte 1111222233334444" {
		t.Fatalf("company history %q", got)
	}
	if got := acct.Entries()[0].Description; got != "Réception de 300€ du compte entreprise ENT-9" {
		t.Fatalf("account history %q", got)
	}

	msg, err = acct.Transfer(d("100"), company)
	if err != nil || msg != "100€ transférés avec succès vers le compte entreprise ENT-9." {
		t.Fatalf("account -> company = %q, %v", msg, err)
	}
	if !company.Balance().Equal(d("800")) || !acct.Balance().Equal(d("200")) {
		t.Fatalf("balances company=%s account=%s", company.Balance(), acct.Balance())
	}
}

func TestCorporateToCorporate(t *testing.T) {
	a := newTestCompany("ENT-A")
	b := newTestCompany("ENT-B")
	_, _ = a.Deposit(d("10"))

	if _, err := a.Transfer(d("20"), b); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if _, err := a.Transfer(d("10"), b); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if !a.Balance().IsZero() || !b.Balance().Equal(d("10")) {
		t.Fatalf("balances a=%s b=%s", a.Balance(), b.Balance())
	}
}

func TestCorporateStateRoundTrip(t *testing.T) {
	c := newTestCompany("ENT-1")
	_, _ = c.Deposit(d("42"))

	r := RestoreCorporateAccount(CompanyInput{Name: c.Name(), AccountID: c.AccountID()}, c.State())
	if !r.Balance().Equal(d("42")) || r.HistoryMessage() != "Dépôt de 42€" {
		t.Fatalf("restored company: balance=%s history=%q", r.Balance(), r.HistoryMessage())
	}
}
