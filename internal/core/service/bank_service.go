package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/banque/registration-system/internal/api/metrics"
	"github.com/banque/registration-system/internal/core/domain"
	"github.com/banque/registration-system/internal/core/ports"
)

const msgCompanyIdentity = "Identifiant et nom d'entreprise requis"

// BankOptions tunes registration and account behaviour.
type BankOptions struct {
	// ApprovalRequired leaves new clients pending until an employee approves.
	ApprovalRequired bool
	Features         domain.Features
	// CardGenerator replaces domain.GenerateCardNumber (tests).
	CardGenerator func() string
}

// BankDeps groups the adapters the bank depends on. Idempotency and
// Publisher are optional.
type BankDeps struct {
	Clients     ports.ClientRepository
	Companies   ports.CompanyRepository
	Auth        ports.AuthService
	Idempotency ports.IdempotencyStore
	Publisher   ports.EntryPublisher
}

// Bank implements ports.BankService and ports.CompanyService over an
// in-memory registry, writing a snapshot of every mutated owner to storage.
type Bank struct {
	reg  *registry
	deps BankDeps
	opts BankOptions
	log  zerolog.Logger
	now  func() time.Time

	// serialises account opening so a client never gets two accounts
	openMu sync.Mutex
}

// DefaultBankOptions enables every account feature and opens accounts at
// registration.
func DefaultBankOptions() BankOptions {
	return BankOptions{Features: domain.DefaultFeatures()}
}

func NewBank(deps BankDeps, opts BankOptions, log zerolog.Logger) *Bank {
	if opts.CardGenerator == nil {
		opts.CardGenerator = domain.GenerateCardNumber
	}
	return &Bank{
		reg:  newRegistry(),
		deps: deps,
		opts: opts,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (b *Bank) accountOpts() []domain.AccountOption {
	return []domain.AccountOption{
		domain.WithFeatures(b.opts.Features),
		domain.WithCardGenerator(func() string { return b.reg.reserveCard(b.opts.CardGenerator) }),
		domain.WithObserver(b.publish),
		domain.WithClock(b.now),
	}
}

// publish runs under the account lock.
func (b *Bank) publish(e domain.Entry) {
	if b.deps.Publisher != nil {
		b.deps.Publisher.Publish(e)
	}
}

// Restore rebuilds the registry from storage. It must run before the bank
// serves requests.
func (b *Bank) Restore(ctx context.Context) error {
	clients, err := b.deps.Clients.ListClients(ctx)
	if err != nil {
		return fmt.Errorf("restore clients: %w", err)
	}
	for _, rec := range clients {
		c := domain.NewClient(domain.ClientInput{
			Name:            rec.Name,
			Address:         rec.Address,
			Phone:           rec.Phone,
			NationalID:      rec.NationalID,
			Login:           rec.Login,
			WithdrawalLimit: rec.WithdrawalLimit,
		}, b.accountOpts()...)
		if rec.Account != nil {
			c.RestoreAccount(*rec.Account)
		}
		b.reg.putClient(&clientEntry{client: c, status: rec.Status, createdAt: rec.CreatedAt})
	}

	companies, err := b.deps.Companies.ListCompanies(ctx)
	if err != nil {
		return fmt.Errorf("restore companies: %w", err)
	}
	for _, rec := range companies {
		acct := domain.RestoreCorporateAccount(domain.CompanyInput{
			Name:            rec.Name,
			Address:         rec.Address,
			TaxID:           rec.TaxID,
			WithdrawalLimit: rec.WithdrawalLimit,
			AccountID:       rec.AccountID,
		}, rec.Ledger, b.accountOpts()...)
		b.reg.addCompany(acct, rec.CreatedAt)
	}

	b.log.Info().Int("clients", len(clients)).Int("companies", len(companies)).Msg("bank state restored")
	return nil
}

// --- Clients ---

// RegisterClient validates the form, stores the login credential and, unless
// approval is required, opens the account.
func (b *Bank) RegisterClient(ctx context.Context, in ports.RegisterClientInput) (*ports.RegistrationResult, error) {
	c := domain.NewClient(domain.ClientInput{
		Name:            in.Name,
		Address:         in.Address,
		Phone:           in.Phone,
		NationalID:      in.NationalID,
		Login:           in.Login,
		Password:        in.Password,
		WithdrawalLimit: in.WithdrawalLimit,
	}, b.accountOpts()...)

	if err := c.VerifyInformation(); err != nil {
		metrics.OperationsTotal.WithLabelValues("register", outcome(err)).Inc()
		return nil, err
	}
	if !b.reg.reserveClient(c, b.now()) {
		return nil, domain.ErrUserExists
	}
	if _, err := b.deps.Auth.Register(ctx, in.Login, in.Password, domain.RoleClient, in.Login); err != nil {
		b.reg.dropClient(in.Login)
		return nil, fmt.Errorf("register client: %w", err)
	}
	// employees cannot approve the login until the account below is open
	defer b.reg.finishRegistration(in.Login)

	if b.opts.ApprovalRequired {
		b.persistClient(ctx, c)
		metrics.OperationsTotal.WithLabelValues("register", "pending").Inc()
		b.log.Info().Str("login", in.Login).Msg("client registered, awaiting approval")
		return &ports.RegistrationResult{Login: in.Login, Status: ports.ClientPending, Message: domain.MsgInformationOK}, nil
	}

	msg, err := b.openAccount(ctx, c)
	if err != nil {
		return nil, err
	}
	return &ports.RegistrationResult{
		Login:   in.Login,
		Status:  ports.ClientActive,
		Message: msg,
		Account: accountView(c.Account()),
	}, nil
}

// openAccount creates the client's account, indexes its card and persists
// the client. A client that already has an account keeps it.
func (b *Bank) openAccount(ctx context.Context, c *domain.Client) (string, error) {
	b.openMu.Lock()
	defer b.openMu.Unlock()

	if c.HasAccount() {
		return "", &domain.RejectionError{Op: "create_account", Kind: domain.ErrAccountExists, Message: domain.MsgAccountAlreadyCreated}
	}
	msg, err := c.CreateAccount()
	if err != nil {
		return "", err
	}
	b.accountOpened(ctx, c)
	return msg, nil
}

func (b *Bank) accountOpened(ctx context.Context, c *domain.Client) {
	acct := c.Account()
	b.reg.registerCard(acct)
	b.reg.setStatus(c.Login(), ports.ClientActive)
	b.persistClient(ctx, c)

	metrics.AccountsCreatedTotal.WithLabelValues(string(acct.Tier())).Inc()
	b.log.Info().
		Str("login", c.Login()).
		Str("card", acct.CardNumber()).
		Str("tier", string(acct.Tier())).
		Msg("account opened")
}

func (b *Bank) accountFor(login string) (*domain.Account, error) {
	e, ok := b.reg.client(login)
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	acct := e.client.Account()
	if acct == nil {
		return nil, domain.ErrNoAccount
	}
	return acct, nil
}

func (b *Bank) Account(_ context.Context, login string) (*ports.AccountView, error) {
	acct, err := b.accountFor(login)
	if err != nil {
		return nil, err
	}
	return accountView(acct), nil
}

func (b *Bank) Balance(_ context.Context, login string) (*ports.OpResult, error) {
	acct, err := b.accountFor(login)
	if err != nil {
		return nil, err
	}
	return &ports.OpResult{Message: acct.BalanceMessage(), Balance: acct.Balance()}, nil
}

func (b *Bank) History(_ context.Context, login string) (*ports.HistoryView, error) {
	acct, err := b.accountFor(login)
	if err != nil {
		return nil, err
	}
	return &ports.HistoryView{Message: acct.HistoryMessage(), Entries: acct.Entries()}, nil
}

func (b *Bank) SetPIN(ctx context.Context, login, pin string) (*ports.OpResult, error) {
	acct, err := b.accountFor(login)
	if err != nil {
		return nil, err
	}
	msg, err := acct.SetPIN(pin)
	metrics.OperationsTotal.WithLabelValues(domain.OpSetPIN, outcome(err)).Inc()
	if err != nil {
		return nil, err
	}
	b.persistClient(ctx, acct.Owner())
	b.log.Info().Str("card", acct.CardNumber()).Msg("pin set")
	return &ports.OpResult{Message: msg, Balance: acct.Balance()}, nil
}

func (b *Bank) Deposit(ctx context.Context, in ports.MoneyInput) (*ports.OpResult, error) {
	acct, err := b.accountFor(in.Owner)
	if err != nil {
		return nil, err
	}
	return b.apply(ctx, domain.OpDeposit, in.Owner, in.IdempotencyKey, acct, func() (string, error) {
		return acct.Deposit(in.Amount)
	})
}

func (b *Bank) Withdraw(ctx context.Context, in ports.MoneyInput) (*ports.OpResult, error) {
	acct, err := b.accountFor(in.Owner)
	if err != nil {
		return nil, err
	}
	return b.apply(ctx, domain.OpWithdraw, in.Owner, in.IdempotencyKey, acct, func() (string, error) {
		return acct.Withdraw(in.Amount)
	})
}

func (b *Bank) Transfer(ctx context.Context, in ports.TransferInput) (*ports.OpResult, error) {
	acct, err := b.accountFor(in.Owner)
	if err != nil {
		return nil, err
	}
	return b.transfer(ctx, in, acct, func(dst domain.Ledger) (string, error) {
		return acct.Transfer(in.Amount, dst)
	})
}

// --- Companies ---

func (b *Bank) RegisterCompany(ctx context.Context, in ports.RegisterCompanyInput) (*ports.CompanyView, error) {
	if in.AccountID == "" || in.Name == "" {
		return nil, &domain.ValidationError{Field: "account_id", Message: msgCompanyIdentity}
	}
	acct := domain.NewCorporateAccount(domain.CompanyInput{
		Name:            in.Name,
		Address:         in.Address,
		TaxID:           in.TaxID,
		WithdrawalLimit: in.WithdrawalLimit,
		AccountID:       in.AccountID,
		Password:        in.Password,
	}, b.accountOpts()...)

	if !b.reg.addCompany(acct, b.now()) {
		return nil, domain.ErrUserExists
	}
	if _, err := b.deps.Auth.Register(ctx, in.AccountID, in.Password, domain.RoleCompany, in.AccountID); err != nil {
		b.reg.dropCompany(in.AccountID)
		return nil, fmt.Errorf("register company: %w", err)
	}
	b.persistCompany(ctx, acct)

	b.log.Info().Str("company", in.AccountID).Str("name", in.Name).Msg("corporate account opened")
	return companyView(acct), nil
}

func (b *Bank) companyFor(id string) (*domain.CorporateAccount, error) {
	e, ok := b.reg.company(id)
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	return e.account, nil
}

func (b *Bank) CompanyBalance(_ context.Context, id string) (*ports.OpResult, error) {
	acct, err := b.companyFor(id)
	if err != nil {
		return nil, err
	}
	return &ports.OpResult{Message: acct.BalanceMessage(), Balance: acct.Balance()}, nil
}

func (b *Bank) CompanyHistory(_ context.Context, id string) (*ports.HistoryView, error) {
	acct, err := b.companyFor(id)
	if err != nil {
		return nil, err
	}
	return &ports.HistoryView{Message: acct.HistoryMessage(), Entries: acct.Entries()}, nil
}

func (b *Bank) CompanyDeposit(ctx context.Context, in ports.MoneyInput) (*ports.OpResult, error) {
	acct, err := b.companyFor(in.Owner)
	if err != nil {
		return nil, err
	}
	return b.apply(ctx, domain.OpDeposit, in.Owner, in.IdempotencyKey, acct, func() (string, error) {
		return acct.Deposit(in.Amount)
	})
}

func (b *Bank) CompanyWithdraw(ctx context.Context, in ports.MoneyInput) (*ports.OpResult, error) {
	acct, err := b.companyFor(in.Owner)
	if err != nil {
		return nil, err
	}
	return b.apply(ctx, domain.OpWithdraw, in.Owner, in.IdempotencyKey, acct, func() (string, error) {
		return acct.Withdraw(in.Amount)
	})
}

func (b *Bank) CompanyTransfer(ctx context.Context, in ports.TransferInput) (*ports.OpResult, error) {
	acct, err := b.companyFor(in.Owner)
	if err != nil {
		return nil, err
	}
	return b.transfer(ctx, in, acct, func(dst domain.Ledger) (string, error) {
		return acct.Transfer(in.Amount, dst)
	})
}

// --- Shared paths ---

// apply runs a single-ledger money operation behind the idempotency claim.
func (b *Bank) apply(ctx context.Context, op, owner, key string, l domain.Ledger, run func() (string, error)) (*ports.OpResult, error) {
	if err := b.claim(ctx, op, owner, key); err != nil {
		return nil, err
	}
	msg, err := run()
	metrics.OperationsTotal.WithLabelValues(op, outcome(err)).Inc()
	if err != nil {
		return nil, err
	}
	b.persistLedger(ctx, l)
	b.log.Info().Str("op", op).Str("ledger", l.Identifier()).Msg("operation applied")
	return &ports.OpResult{Message: msg, Balance: l.Balance()}, nil
}

func (b *Bank) transfer(ctx context.Context, in ports.TransferInput, src domain.Ledger, run func(domain.Ledger) (string, error)) (*ports.OpResult, error) {
	dst, ok := b.reg.ledger(in.Destination)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if err := b.claim(ctx, domain.OpTransfer, in.Owner, in.IdempotencyKey); err != nil {
		return nil, err
	}
	msg, err := run(dst)
	metrics.OperationsTotal.WithLabelValues(domain.OpTransfer, outcome(err)).Inc()
	if err != nil {
		return nil, err
	}
	amt, _ := in.Amount.Float64()
	metrics.TransferAmount.Observe(amt)

	b.persistLedger(ctx, src)
	if dst.Identifier() != src.Identifier() {
		b.persistLedger(ctx, dst)
	}
	b.log.Info().
		Str("from", src.Identifier()).
		Str("to", dst.Identifier()).
		Str("amount", in.Amount.String()).
		Msg("transfer applied")
	return &ports.OpResult{Message: msg, Balance: src.Balance()}, nil
}

// claim reserves an idempotency key. A store failure lets the operation
// proceed.
func (b *Bank) claim(ctx context.Context, op, owner, key string) error {
	if key == "" || b.deps.Idempotency == nil {
		return nil
	}
	ok, err := b.deps.Idempotency.Claim(ctx, "idem:"+op+":"+owner+":"+key)
	if err != nil {
		b.log.Warn().Err(err).Str("op", op).Str("owner", owner).Msg("idempotency check failed, processing anyway")
		return nil
	}
	if !ok {
		metrics.OperationsTotal.WithLabelValues(op, "duplicate").Inc()
		return domain.ErrDuplicateRequest
	}
	return nil
}

func (b *Bank) persistLedger(ctx context.Context, l domain.Ledger) {
	switch v := l.(type) {
	case *domain.Account:
		b.persistClient(ctx, v.Owner())
	case *domain.CorporateAccount:
		b.persistCompany(ctx, v)
	}
}

// persistClient writes the client snapshot. Snapshot and save run under the
// entry's saveMu so writes for one client land in order. Failure is logged;
// the in-memory state stands.
func (b *Bank) persistClient(ctx context.Context, c *domain.Client) {
	e, ok := b.reg.client(c.Login())
	if !ok {
		return
	}
	e.saveMu.Lock()
	defer e.saveMu.Unlock()

	status, createdAt := b.reg.clientMeta(e)
	rec := &ports.ClientRecord{
		Login:           c.Login(),
		Name:            c.Name(),
		Address:         c.Address(),
		Phone:           c.Phone(),
		NationalID:      c.NationalID(),
		WithdrawalLimit: c.WithdrawalLimit(),
		Status:          status,
		CreatedAt:       createdAt,
		UpdatedAt:       b.now(),
	}
	if acct := c.Account(); acct != nil {
		st := acct.State()
		rec.Account = &st
	}
	if err := b.deps.Clients.SaveClient(ctx, rec); err != nil {
		b.log.Error().Err(err).Str("login", c.Login()).Msg("failed to persist client")
	}
}

func (b *Bank) persistCompany(ctx context.Context, acct *domain.CorporateAccount) {
	e, ok := b.reg.company(acct.AccountID())
	if !ok {
		return
	}
	e.saveMu.Lock()
	defer e.saveMu.Unlock()

	rec := &ports.CompanyRecord{
		AccountID:       acct.AccountID(),
		Name:            acct.Name(),
		Address:         acct.Address(),
		TaxID:           acct.TaxID(),
		WithdrawalLimit: acct.WithdrawalLimit(),
		Ledger:          acct.State(),
		CreatedAt:       e.createdAt,
		UpdatedAt:       b.now(),
	}
	if err := b.deps.Companies.SaveCompany(ctx, rec); err != nil {
		b.log.Error().Err(err).Str("company", acct.AccountID()).Msg("failed to persist company")
	}
}

func accountView(acct *domain.Account) *ports.AccountView {
	st := acct.State()
	return &ports.AccountView{
		Owner:      acct.Owner().Login(),
		CardNumber: st.CardNumber,
		Tier:       st.Tier,
		TierLabel:  st.Tier.Label(),
		Balance:    st.Balance,
		Frozen:     st.Frozen,
		PINSet:     st.PIN != "",
	}
}

func companyView(acct *domain.CorporateAccount) *ports.CompanyView {
	return &ports.CompanyView{
		AccountID:       acct.AccountID(),
		Name:            acct.Name(),
		TaxID:           acct.TaxID(),
		WithdrawalLimit: acct.WithdrawalLimit(),
		Balance:         acct.Balance(),
	}
}

// outcome labels an operation result for metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrFrozen):
		return "frozen"
	case errors.Is(err, domain.ErrNonPositiveAmount):
		return "non_positive_amount"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrInvalidPIN):
		return "invalid_pin"
	case errors.Is(err, domain.ErrInvalidClientData):
		return "invalid_client_data"
	case errors.Is(err, domain.ErrFreezeDisabled):
		return "freeze_disabled"
	case errors.Is(err, domain.ErrAccountExists):
		return "account_exists"
	default:
		return "error"
	}
}
