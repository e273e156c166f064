package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/banque/registration-system/internal/api/metrics"
	"github.com/banque/registration-system/internal/core/domain"
	"github.com/banque/registration-system/internal/core/ports"
)

// EmployeeService implements ports.EmployeeService on top of the bank
// registry. The configured employee is the only operator.
type EmployeeService struct {
	bank     *Bank
	employee *domain.Employee
	auth     ports.AuthService
	log      zerolog.Logger
}

func NewEmployeeService(bank *Bank, employee *domain.Employee, auth ports.AuthService, log zerolog.Logger) *EmployeeService {
	return &EmployeeService{bank: bank, employee: employee, auth: auth, log: log}
}

// Login checks the configured credentials and issues an employee token.
func (s *EmployeeService) Login(_ context.Context, username, password string) (string, error) {
	if !s.employee.Login(username, password) {
		s.log.Warn().Str("username", username).Msg("employee login rejected")
		return "", domain.ErrInvalidCredentials
	}
	return s.auth.IssueToken(&domain.User{Username: username, Role: domain.RoleEmployee, Subject: username})
}

// ListCards returns the card numbers of every client with an account, in
// registration order.
func (s *EmployeeService) ListCards(_ context.Context) ([]string, error) {
	return s.employee.ListClientCards(s.bank.reg.clientList()), nil
}

// ApproveClient opens the account of a registered client. A login whose
// registration is still in flight is not found yet.
func (s *EmployeeService) ApproveClient(ctx context.Context, login string) (*ports.RegistrationResult, error) {
	e, ok := s.bank.reg.registeredClient(login)
	if !ok {
		return nil, domain.ErrClientNotFound
	}

	s.bank.openMu.Lock()
	defer s.bank.openMu.Unlock()

	msg, err := s.employee.ApproveAccountRequest(e.client)
	metrics.OperationsTotal.WithLabelValues("approve_account", outcome(err)).Inc()
	if err != nil {
		return nil, err
	}

	res := &ports.RegistrationResult{Login: login, Message: msg, Status: ports.ClientPending}
	// legacy approval reports success without opening the account
	if acct := e.client.Account(); acct != nil {
		s.bank.accountOpened(ctx, e.client)
		res.Status = ports.ClientActive
		res.Account = accountView(acct)
	}
	s.log.Info().Str("login", login).Str("status", res.Status).Msg("account request approved")
	return res, nil
}

// RejectClient marks a pending request rejected. Existing accounts are kept.
func (s *EmployeeService) RejectClient(ctx context.Context, login string) (string, error) {
	e, ok := s.bank.reg.registeredClient(login)
	if !ok {
		return "", domain.ErrClientNotFound
	}
	msg := s.employee.RejectAccountRequest(e.client)
	if !e.client.HasAccount() {
		s.bank.reg.setStatus(login, ports.ClientRejected)
		s.bank.persistClient(ctx, e.client)
	}
	s.log.Info().Str("login", login).Msg("account request rejected")
	return msg, nil
}

func (s *EmployeeService) ApproveLoan(_ context.Context, accountID string) (string, error) {
	acct, err := s.bank.companyFor(accountID)
	if err != nil {
		return "", err
	}
	s.log.Info().Str("company", accountID).Msg("loan approved")
	return s.employee.ApproveLoanRequest(acct), nil
}

func (s *EmployeeService) RejectLoan(_ context.Context, accountID string) (string, error) {
	acct, err := s.bank.companyFor(accountID)
	if err != nil {
		return "", err
	}
	s.log.Info().Str("company", accountID).Msg("loan rejected")
	return s.employee.RejectLoanRequest(acct), nil
}

func (s *EmployeeService) FreezeAccount(ctx context.Context, card string) (string, error) {
	return s.setFrozen(ctx, card, domain.OpFreeze, (*domain.Account).Freeze)
}

func (s *EmployeeService) UnfreezeAccount(ctx context.Context, card string) (string, error) {
	return s.setFrozen(ctx, card, domain.OpUnfreeze, (*domain.Account).Unfreeze)
}

func (s *EmployeeService) setFrozen(ctx context.Context, card, op string, apply func(*domain.Account) (string, error)) (string, error) {
	acct, ok := s.bank.reg.account(card)
	if !ok {
		return "", domain.ErrAccountNotFound
	}
	msg, err := apply(acct)
	metrics.OperationsTotal.WithLabelValues(op, outcome(err)).Inc()
	if err != nil {
		return "", err
	}
	s.bank.persistClient(ctx, acct.Owner())
	s.log.Info().Str("card", card).Str("op", op).Msg("account freeze state changed")
	return msg, nil
}
