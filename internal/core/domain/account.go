package domain

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	CardNumberLength = 16
	pinLength        = 4

	msgPINSaved       = "PIN enregistré avec succès."
	MsgPINInvalid     = "Le PIN doit être composé de 4 chiffres."
	msgFrozenDeposit  = "Le compte est gelé, vous ne pouvez pas effectuer de dépôt."
	msgFrozenWithdraw = "Le compte est gelé, vous ne pouvez pas effectuer de retrait."
	msgFrozenTransfer = "Le compte est gelé, vous ne pouvez pas effectuer de transfert."
	msgFrozen         = "Compte gelé avec succès."
	msgUnfrozen       = "Compte débloqué avec succès."
	msgFreezeDisabled = "Le gel de compte n'est pas disponible."
)

var ten = big.NewInt(10)

// GenerateCardNumber returns 16 uniformly random digits. Uniqueness across
// accounts is not checked.
func GenerateCardNumber() string {
	var sb strings.Builder
	sb.Grow(CardNumberLength)
	for i := 0; i < CardNumberLength; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			panic("domain: crypto/rand unavailable: " + err.Error())
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}
	return sb.String()
}

// Account is a personal bank account owned by a Client.
type Account struct {
	*book

	owner     *Client
	card      string
	tier      Tier
	freezable bool

	// guarded by book.mu
	pin    string
	frozen bool
}

// NewAccount builds an empty account for owner. The tier is fixed from the
// owner's withdrawal limit at this point.
func NewAccount(owner *Client, opts ...AccountOption) *Account {
	cfg := buildConfig(opts)
	return &Account{
		book:      newBook(cfg),
		owner:     owner,
		card:      cfg.cardGen(),
		tier:      TierFor(owner.WithdrawalLimit()),
		freezable: cfg.features.Freezable,
	}
}

func (a *Account) Identifier() string { return a.card }

func (a *Account) label() string { return "compte " + a.card }

func (a *Account) CardNumber() string { return a.card }

func (a *Account) Tier() Tier { return a.tier }

func (a *Account) Owner() *Client { return a.owner }

// PIN returns the stored PIN, empty until SetPIN succeeds.
func (a *Account) PIN() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pin
}

func (a *Account) Frozen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frozen
}

// SetPIN stores pin verbatim when it is exactly four ASCII digits.
func (a *Account) SetPIN(pin string) (string, error) {
	if !validPIN(pin) {
		return "", reject(OpSetPIN, ErrInvalidPIN, MsgPINInvalid)
	}
	a.mu.Lock()
	a.pin = pin
	a.mu.Unlock()
	return msgPINSaved, nil
}

// ValidPIN reports whether pin is exactly four ASCII digits.
func ValidPIN(pin string) bool { return validPIN(pin) }

func validPIN(pin string) bool {
	if len(pin) != pinLength {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	return true
}

func (a *Account) Deposit(amount decimal.Decimal) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.frozen {
		return "", reject(OpDeposit, ErrFrozen, msgFrozenDeposit)
	}
	return applyDeposit(a, amount)
}

func (a *Account) Withdraw(amount decimal.Decimal) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.frozen {
		return "", reject(OpWithdraw, ErrFrozen, msgFrozenWithdraw)
	}
	return applyWithdraw(a, amount)
}

// Transfer sends amount to dst. The destination's frozen flag is not
// consulted: receiving funds is not an operation of the frozen account.
func (a *Account) Transfer(amount decimal.Decimal, dst Ledger) (string, error) {
	return transfer(a, dst, amount, func() error {
		if a.frozen {
			return reject(OpTransfer, ErrFrozen, msgFrozenTransfer)
		}
		return nil
	})
}

// BalanceMessage formats the balance for display.
func (a *Account) BalanceMessage() string {
	return "Solde actuel : " + money(a.Balance())
}

// Freeze blocks money operations. Anyone holding the account may call it;
// authorization belongs to the caller.
func (a *Account) Freeze() (string, error) {
	return a.setFrozen(OpFreeze, true, msgFrozen)
}

func (a *Account) Unfreeze() (string, error) {
	return a.setFrozen(OpUnfreeze, false, msgUnfrozen)
}

func (a *Account) setFrozen(op string, frozen bool, msg string) (string, error) {
	if !a.freezable {
		return "", reject(op, ErrFreezeDisabled, msgFreezeDisabled)
	}
	a.mu.Lock()
	a.frozen = frozen
	a.mu.Unlock()
	return msg, nil
}

// AccountState is a point-in-time copy of an account, used for persistence.
type AccountState struct {
	CardNumber string
	PIN        string
	Tier       Tier
	Balance    decimal.Decimal
	Frozen     bool
	History    []Entry
}

func (a *Account) State() AccountState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return AccountState{
		CardNumber: a.card,
		PIN:        a.pin,
		Tier:       a.tier,
		Balance:    a.balance,
		Frozen:     a.frozen,
		History:    append([]Entry(nil), a.history...),
	}
}

// RestoreAccount rebuilds an account from a stored state. The stored tier
// wins over the owner's current limit.
func RestoreAccount(owner *Client, st AccountState, opts ...AccountOption) *Account {
	cfg := buildConfig(opts)
	a := &Account{
		book:      newBook(cfg),
		owner:     owner,
		card:      st.CardNumber,
		tier:      st.Tier,
		freezable: cfg.features.Freezable,
		pin:       st.PIN,
		frozen:    st.Frozen && cfg.features.Freezable,
	}
	a.restore(st.Balance, st.History)
	return a
}
