package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/banque/registration-system/internal/core/domain"
	"github.com/banque/registration-system/internal/core/ports"
)

func TestEmployeeHandler_Login(t *testing.T) {
	stub := &stubEmployees{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			if username != "admin" || password != "s3cret" {
				return "", domain.ErrInvalidCredentials
			}
			return "emp-token", nil
		},
	}
	handler := NewEmployeeHandler(stub)

	c, rec := newContext(http.MethodPost, "/auth/employee/login", `{"username":"admin","password":"s3cret"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "emp-token" || resp.Role != domain.RoleEmployee {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	c, _ = newContext(http.MethodPost, "/auth/employee/login", `{"username":"admin","password":"nope"}`)
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestEmployeeHandler_Cards(t *testing.T) {
	handler := NewEmployeeHandler(&stubEmployees{cards: []string{"1111", "2222"}})

	c, rec := newContext(http.MethodGet, "/v1/employee/cards", "")
	if err := handler.Cards(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp cardsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !reflect.DeepEqual(resp.Cards, []string{"1111", "2222"}) || resp.Message != "2 carte(s) client" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestEmployeeHandler_ApproveClient(t *testing.T) {
	stub := &stubEmployees{
		approveFn: func(ctx context.Context, login string) (*ports.RegistrationResult, error) {
			if login != "alice" {
				return nil, domain.ErrClientNotFound
			}
			return &ports.RegistrationResult{Login: login, Status: ports.ClientActive, Message: "Demande de compte approuvée.", Account: aliceView()}, nil
		},
	}
	handler := NewEmployeeHandler(stub)

	c, rec := newContext(http.MethodPost, "/v1/employee/clients/alice/approve", "")
	c.SetParamNames("login")
	c.SetParamValues("alice")
	if err := handler.ApproveClient(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp registrationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != ports.ClientActive || resp.Account == nil {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	c, _ = newContext(http.MethodPost, "/v1/employee/clients/ghost/approve", "")
	c.SetParamNames("login")
	c.SetParamValues("ghost")
	if err := handler.ApproveClient(c); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestEmployeeHandler_MessageEndpoints(t *testing.T) {
	var seen []string
	stub := &stubEmployees{
		messageFn: func(ctx context.Context, id string) (string, error) {
			seen = append(seen, id)
			return "ok " + id, nil
		},
	}
	handler := NewEmployeeHandler(stub)

	calls := []struct {
		param string
		value string
		run   echo.HandlerFunc
	}{
		{"login", "bob", handler.RejectClient},
		{"id", "ENT-1", handler.ApproveLoan},
		{"id", "ENT-2", handler.RejectLoan},
		{"card", "1111", handler.Freeze},
		{"card", "2222", handler.Unfreeze},
	}
	for _, call := range calls {
		c, rec := newContext(http.MethodPost, "/", "")
		c.SetParamNames(call.param)
		c.SetParamValues(call.value)
		if err := call.run(c); err != nil {
			t.Fatalf("%s=%s: %v", call.param, call.value, err)
		}
		var resp messageResponse
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
		if resp.Message != "ok "+call.value {
			t.Fatalf("unexpected message %q", resp.Message)
		}
	}
	if !reflect.DeepEqual(seen, []string{"bob", "ENT-1", "ENT-2", "1111", "2222"}) {
		t.Fatalf("unexpected ids %v", seen)
	}
}
