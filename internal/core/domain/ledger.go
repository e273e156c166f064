package domain

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Operation names carried by RejectionError.Op.
const (
	OpDeposit  = "deposit"
	OpWithdraw = "withdraw"
	OpTransfer = "transfer"
	OpSetPIN   = "set_pin"
	OpFreeze   = "freeze"
	OpUnfreeze = "unfreeze"
)

const (
	msgDepositNotPositive   = "Le montant du dépôt doit être positif."
	msgWithdrawNotPositive  = "Le montant du retrait doit être positif."
	msgTransferNotPositive  = "Le montant du transfert doit être positif."
	msgInsufficientFunds    = "Fonds insuffisants."
	msgInsufficientTransfer = "Fonds insuffisants pour le transfert."
	MsgNoTransactions       = "Aucune transaction enregistrée."
)

// EntryKind is the movement type of a history entry.
type EntryKind string

const (
	EntryDeposit     EntryKind = "deposit"
	EntryWithdrawal  EntryKind = "withdrawal"
	EntryTransferOut EntryKind = "transfer_out"
	EntryTransferIn  EntryKind = "transfer_in"
)

// Entry is one line of a ledger's transaction history.
type Entry struct {
	ID           uuid.UUID
	Owner        string
	Kind         EntryKind
	Amount       decimal.Decimal
	Counterparty string
	At           time.Time
	Description  string
}

// Ledger is anything that can send or receive a transfer: personal accounts
// and corporate accounts.
type Ledger interface {
	Identifier() string
	Balance() decimal.Decimal
	Entries() []Entry
	HistoryMessage() string

	// label names the ledger inside history lines ("compte 1234...").
	label() string
	ledger() *book
}

var bookSeq atomic.Uint64

// book holds the balance and history shared by every ledger kind. All fields
// are guarded by mu.
type book struct {
	mu          sync.Mutex
	seq         uint64
	balance     decimal.Decimal
	history     []Entry
	keepHistory bool
	observe     Observer
	now         func() time.Time
}

func newBook(cfg accountConfig) *book {
	return &book{
		seq:         bookSeq.Add(1),
		balance:     decimal.Zero,
		keepHistory: cfg.features.KeepHistory,
		observe:     cfg.observer,
		now:         cfg.now,
	}
}

func (b *book) ledger() *book { return b }

func (b *book) credit(amount decimal.Decimal) { b.balance = b.balance.Add(amount) }

func (b *book) debit(amount decimal.Decimal) { b.balance = b.balance.Sub(amount) }

func (b *book) record(e Entry) {
	if b.keepHistory {
		b.history = append(b.history, e)
	}
	if b.observe != nil {
		b.observe(e)
	}
}

func (b *book) newEntry(owner string, kind EntryKind, amount decimal.Decimal, counterparty, desc string) Entry {
	return Entry{
		ID:           uuid.New(),
		Owner:        owner,
		Kind:         kind,
		Amount:       amount,
		Counterparty: counterparty,
		At:           b.now(),
		Description:  desc,
	}
}

// Balance returns the current balance.
func (b *book) Balance() decimal.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balance
}

// Entries returns a copy of the retained history, oldest first.
func (b *book) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Entry, len(b.history))
	copy(out, b.history)
	return out
}

// HistoryMessage joins the history descriptions with newlines.
func (b *book) HistoryMessage() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.history) == 0 {
		return MsgNoTransactions
	}
	lines := make([]string, len(b.history))
	for i, e := range b.history {
		lines[i] = e.Description
	}
	return strings.Join(lines, "\n")
}

func (b *book) restore(balance decimal.Decimal, history []Entry) {
	b.balance = balance
	if b.keepHistory {
		b.history = append([]Entry(nil), history...)
	}
}

func money(amount decimal.Decimal) string {
	return amount.String() + "€"
}

// applyDeposit credits l. The caller holds l's lock.
func applyDeposit(l Ledger, amount decimal.Decimal) (string, error) {
	if !amount.IsPositive() {
		return "", reject(OpDeposit, ErrNonPositiveAmount, msgDepositNotPositive)
	}
	b := l.ledger()
	b.credit(amount)
	b.record(b.newEntry(l.Identifier(), EntryDeposit, amount, "", "Dépôt de "+money(amount)))
	return money(amount) + " déposés avec succès.", nil
}

// applyWithdraw debits l. The caller holds l's lock.
func applyWithdraw(l Ledger, amount decimal.Decimal) (string, error) {
	if !amount.IsPositive() {
		return "", reject(OpWithdraw, ErrNonPositiveAmount, msgWithdrawNotPositive)
	}
	b := l.ledger()
	if amount.GreaterThan(b.balance) {
		return "", reject(OpWithdraw, ErrInsufficientFunds, msgInsufficientFunds)
	}
	b.debit(amount)
	b.record(b.newEntry(l.Identifier(), EntryWithdrawal, amount, "", "Retrait de "+money(amount)))
	return money(amount) + " retirés avec succès.", nil
}

// transfer moves amount from src to dst while holding both locks. guard runs
// first, under the locks, and may veto the transfer (frozen source).
func transfer(src, dst Ledger, amount decimal.Decimal, guard func() error) (string, error) {
	unlock := lockPair(src.ledger(), dst.ledger())
	defer unlock()

	if guard != nil {
		if err := guard(); err != nil {
			return "", err
		}
	}
	if !amount.IsPositive() {
		return "", reject(OpTransfer, ErrNonPositiveAmount, msgTransferNotPositive)
	}
	sb, db := src.ledger(), dst.ledger()
	if amount.GreaterThan(sb.balance) {
		return "", reject(OpTransfer, ErrInsufficientFunds, msgInsufficientTransfer)
	}

	sb.debit(amount)
	db.credit(amount)

	sb.record(sb.newEntry(src.Identifier(), EntryTransferOut, amount, dst.Identifier(),
		fmt.Sprintf("Transfert de %s vers le %s", money(amount), dst.label())))
	db.record(db.newEntry(dst.Identifier(), EntryTransferIn, amount, src.Identifier(),
		fmt.Sprintf("Réception de %s du %s", money(amount), src.label())))

	return fmt.Sprintf("%s transférés avec succès vers le %s.", money(amount), dst.label()), nil
}

// lockPair acquires both books in ascending sequence order so that two
// opposite transfers can never hold one lock each. A self-transfer locks once.
func lockPair(a, b *book) func() {
	if a == b {
		a.mu.Lock()
		return a.mu.Unlock
	}
	first, second := a, b
	if b.seq < a.seq {
		first, second = b, a
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}
