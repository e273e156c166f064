package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/banque/registration-system/internal/core/domain"
	"github.com/banque/registration-system/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, username, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(_ context.Context, username, _, role, subject string) (*domain.User, error) {
	return &domain.User{Username: username, Role: role, Subject: subject}, nil
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) IssueToken(_ *domain.User) (string, error) {
	return "token", nil
}

type stubBank struct {
	registerFn func(ctx context.Context, in ports.RegisterClientInput) (*ports.RegistrationResult, error)
	accountFn  func(ctx context.Context, login string) (*ports.AccountView, error)
	pinFn      func(ctx context.Context, login, pin string) (*ports.OpResult, error)
	moneyFn    func(ctx context.Context, in ports.MoneyInput) (*ports.OpResult, error)
	transferFn func(ctx context.Context, in ports.TransferInput) (*ports.OpResult, error)
	historyFn  func(ctx context.Context, login string) (*ports.HistoryView, error)
}

func (s *stubBank) RegisterClient(ctx context.Context, in ports.RegisterClientInput) (*ports.RegistrationResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubBank) Account(ctx context.Context, login string) (*ports.AccountView, error) {
	return s.accountFn(ctx, login)
}

func (s *stubBank) Balance(ctx context.Context, login string) (*ports.OpResult, error) {
	v, err := s.accountFn(ctx, login)
	if err != nil {
		return nil, err
	}
	return &ports.OpResult{Message: "Solde actuel : " + v.Balance.StringFixed(2), Balance: v.Balance}, nil
}

func (s *stubBank) History(ctx context.Context, login string) (*ports.HistoryView, error) {
	return s.historyFn(ctx, login)
}

func (s *stubBank) SetPIN(ctx context.Context, login, pin string) (*ports.OpResult, error) {
	return s.pinFn(ctx, login, pin)
}

func (s *stubBank) Deposit(ctx context.Context, in ports.MoneyInput) (*ports.OpResult, error) {
	return s.moneyFn(ctx, in)
}

func (s *stubBank) Withdraw(ctx context.Context, in ports.MoneyInput) (*ports.OpResult, error) {
	return s.moneyFn(ctx, in)
}

func (s *stubBank) Transfer(ctx context.Context, in ports.TransferInput) (*ports.OpResult, error) {
	return s.transferFn(ctx, in)
}

type stubCompanies struct {
	registerFn func(ctx context.Context, in ports.RegisterCompanyInput) (*ports.CompanyView, error)
	moneyFn    func(ctx context.Context, in ports.MoneyInput) (*ports.OpResult, error)
}

func (s *stubCompanies) RegisterCompany(ctx context.Context, in ports.RegisterCompanyInput) (*ports.CompanyView, error) {
	return s.registerFn(ctx, in)
}

func (s *stubCompanies) CompanyBalance(_ context.Context, _ string) (*ports.OpResult, error) {
	return &ports.OpResult{}, nil
}

func (s *stubCompanies) CompanyHistory(_ context.Context, _ string) (*ports.HistoryView, error) {
	return &ports.HistoryView{Message: domain.MsgNoTransactions}, nil
}

func (s *stubCompanies) CompanyDeposit(ctx context.Context, in ports.MoneyInput) (*ports.OpResult, error) {
	return s.moneyFn(ctx, in)
}

func (s *stubCompanies) CompanyWithdraw(ctx context.Context, in ports.MoneyInput) (*ports.OpResult, error) {
	return s.moneyFn(ctx, in)
}

func (s *stubCompanies) CompanyTransfer(_ context.Context, _ ports.TransferInput) (*ports.OpResult, error) {
	return &ports.OpResult{}, nil
}

type stubEmployees struct {
	loginFn   func(ctx context.Context, username, password string) (string, error)
	cards     []string
	approveFn func(ctx context.Context, login string) (*ports.RegistrationResult, error)
	messageFn func(ctx context.Context, id string) (string, error)
}

func (s *stubEmployees) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubEmployees) ListCards(_ context.Context) ([]string, error) {
	return s.cards, nil
}

func (s *stubEmployees) ApproveClient(ctx context.Context, login string) (*ports.RegistrationResult, error) {
	return s.approveFn(ctx, login)
}

func (s *stubEmployees) RejectClient(ctx context.Context, login string) (string, error) {
	return s.messageFn(ctx, login)
}

func (s *stubEmployees) ApproveLoan(ctx context.Context, id string) (string, error) {
	return s.messageFn(ctx, id)
}

func (s *stubEmployees) RejectLoan(ctx context.Context, id string) (string, error) {
	return s.messageFn(ctx, id)
}

func (s *stubEmployees) FreezeAccount(ctx context.Context, card string) (string, error) {
	return s.messageFn(ctx, card)
}

func (s *stubEmployees) UnfreezeAccount(ctx context.Context, card string) (string, error) {
	return s.messageFn(ctx, card)
}

// newContext builds an echo context with the package validator installed.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asSubject marks c as authenticated for subject with role.
func asSubject(c echo.Context, role, subject string) echo.Context {
	c.Set("role", role)
	c.Set("subject", subject)
	return c
}

func httpCode(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
