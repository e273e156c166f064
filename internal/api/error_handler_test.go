package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/banque/registration-system/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", &domain.ValidationError{Field: "phone", Message: domain.MsgInvalidPhone}, http.StatusUnprocessableEntity, domain.MsgInvalidPhone},
		{"non positive", &domain.RejectionError{Op: domain.OpDeposit, Kind: domain.ErrNonPositiveAmount, Message: "Le montant du dépôt doit être positif."}, http.StatusUnprocessableEntity, "Le montant du dépôt doit être positif."},
		{"pin", &domain.RejectionError{Op: domain.OpSetPIN, Kind: domain.ErrInvalidPIN, Message: domain.MsgPINInvalid}, http.StatusUnprocessableEntity, domain.MsgPINInvalid},
		{"freeze disabled", domain.ErrFreezeDisabled, http.StatusUnprocessableEntity, "Le gel de compte n'est pas disponible."},
		{"insufficient", &domain.RejectionError{Op: domain.OpWithdraw, Kind: domain.ErrInsufficientFunds, Message: "Fonds insuffisants."}, http.StatusConflict, "Fonds insuffisants."},
		{"frozen", &domain.RejectionError{Op: domain.OpDeposit, Kind: domain.ErrFrozen, Message: "Le compte est gelé, vous ne pouvez pas effectuer de dépôt."}, http.StatusConflict, "Le compte est gelé, vous ne pouvez pas effectuer de dépôt."},
		{"account exists", domain.ErrAccountExists, http.StatusConflict, "Le compte a déjà été créé."},
		{"duplicate", domain.ErrDuplicateRequest, http.StatusConflict, "Requête déjà traitée."},
		{"wrapped user exists", fmt.Errorf("register client: %w", domain.ErrUserExists), http.StatusConflict, "Identifiant déjà utilisé."},
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound, "Compte introuvable."},
		{"no account", domain.ErrNoAccount, http.StatusNotFound, "Aucun compte ouvert pour ce client."},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Identifiants invalides."},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "Accès refusé."},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"unexpected", errors.New("mongo: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, resp.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_Committed(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.NoContent(http.StatusNoContent)

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrForbidden, c)

	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("committed response was rewritten: %d %q", rec.Code, rec.Body.String())
	}
}
