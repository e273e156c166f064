package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/banque/registration-system/internal/core/domain"
	"github.com/banque/registration-system/internal/core/ports"
	"github.com/banque/registration-system/internal/core/service"
)

const testSecret = "router-secret"

type memUsers struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	m.users[user.Username] = user
	return user, nil
}

type nopClients struct{}

func (nopClients) SaveClient(context.Context, *ports.ClientRecord) error { return nil }
func (nopClients) ListClients(context.Context) ([]*ports.ClientRecord, error) { return nil, nil }
func (nopClients) SaveCompany(context.Context, *ports.CompanyRecord) error { return nil }
func (nopClients) ListCompanies(context.Context) ([]*ports.CompanyRecord, error) { return nil, nil }

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	auth := service.NewAuthService(&memUsers{users: map[string]*domain.User{}}, testSecret, time.Hour)
	bank := service.NewBank(service.BankDeps{
		Clients:   nopClients{},
		Companies: nopClients{},
		Auth:      auth,
	}, service.DefaultBankOptions(), zerolog.Nop())
	emp := domain.NewEmployee(domain.Credentials{Username: "admin", Password: "s3cret"}, domain.EmployeeOptions{})

	return NewRouter(Deps{
		Bank:      bank,
		Companies: bank,
		Employees: service.NewEmployeeService(bank, emp, auth, zerolog.Nop()),
		Auth:      auth,
		JWTSecret: testSecret,
		Log:       zerolog.Nop(),
	})
}

func do(t *testing.T, e *echo.Echo, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s %s: invalid json %q", method, path, rec.Body.String())
		}
	}
	return rec, resp
}

func login(t *testing.T, e *echo.Echo, path, body string) string {
	t.Helper()
	rec, resp := do(t, e, http.MethodPost, path, "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: %d %v", path, rec.Code, resp)
	}
	return resp["token"].(string)
}

func TestRouter_ClientWalkthrough(t *testing.T) {
	e := newTestRouter(t)

	rec, resp := do(t, e, http.MethodPost, "/v1/clients", "",
		`{"name":"Alice Dupont","address":"1 rue de Paris","phone":"+33612345678","national_id":"1234567890123","login":"alice","password":"secret","withdrawal_limit":"40000"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: %d %v", rec.Code, resp)
	}
	acct := resp["account"].(map[string]any)
	if acct["tier_label"] != "Compte épargne" {
		t.Fatalf("unexpected tier %v", acct["tier_label"])
	}

	token := login(t, e, "/auth/login", `{"login":"alice","password":"secret"}`)

	rec, _ = do(t, e, http.MethodPost, "/v1/accounts/me/deposit", token, `{"amount":"100"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("deposit: %d", rec.Code)
	}

	rec, resp = do(t, e, http.MethodPost, "/v1/accounts/me/withdraw", token, `{"amount":"150"}`)
	if rec.Code != http.StatusConflict || resp["error"] != "Fonds insuffisants." {
		t.Fatalf("withdraw: %d %v", rec.Code, resp)
	}

	rec, resp = do(t, e, http.MethodPost, "/v1/accounts/me/deposit", token, `{"amount":"-5"}`)
	if rec.Code != http.StatusUnprocessableEntity || resp["error"] != "Le montant du dépôt doit être positif." {
		t.Fatalf("negative deposit: %d %v", rec.Code, resp)
	}

	rec, resp = do(t, e, http.MethodGet, "/v1/accounts/me/balance", token, "")
	if rec.Code != http.StatusOK || resp["balance"] != "100" {
		t.Fatalf("balance: %d %v", rec.Code, resp)
	}
}

func TestRouter_Authorization(t *testing.T) {
	e := newTestRouter(t)

	rec, _ := do(t, e, http.MethodGet, "/v1/accounts/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	empToken := login(t, e, "/auth/employee/login", `{"username":"admin","password":"s3cret"}`)

	rec, _ = do(t, e, http.MethodGet, "/v1/accounts/me", empToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("employee on client route: expected 403, got %d", rec.Code)
	}

	rec, resp := do(t, e, http.MethodGet, "/v1/employee/cards", empToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("cards: %d %v", rec.Code, resp)
	}

	rec, _ = do(t, e, http.MethodPost, "/auth/employee/login", "", `{"username":"admin","password":"nope"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad employee login: expected 401, got %d", rec.Code)
	}
}

func TestRouter_CompanyFlow(t *testing.T) {
	e := newTestRouter(t)
	empToken := login(t, e, "/auth/employee/login", `{"username":"admin","password":"s3cret"}`)

	rec, resp := do(t, e, http.MethodPost, "/v1/companies", empToken,
		`{"name":"Acme SARL","tax_id":"FR123","withdrawal_limit":"500000","account_id":"ENT-1","password":"pw"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register company: %d %v", rec.Code, resp)
	}

	token := login(t, e, "/auth/login", `{"login":"ENT-1","password":"pw"}`)
	rec, _ = do(t, e, http.MethodPost, "/v1/companies/me/deposit", token, `{"amount":"1000"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("company deposit: %d", rec.Code)
	}

	rec, resp = do(t, e, http.MethodPost, "/v1/employee/companies/ENT-1/loans/approve", empToken, "")
	if rec.Code != http.StatusOK || resp["message"] != "Demande de prêt pour l'entreprise Acme SARL approuvée." {
		t.Fatalf("approve loan: %d %v", rec.Code, resp)
	}
}

func TestRouter_Health(t *testing.T) {
	e := newTestRouter(t)
	rec, resp := do(t, e, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK || resp["status"] != "ok" {
		t.Fatalf("health: %d %v", rec.Code, resp)
	}
	rec, _ = do(t, e, http.MethodGet, "/health/ready", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("ready: %d", rec.Code)
	}
}
