package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/banque/registration-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// errorMapping pairs a domain sentinel with its status code and the text
// returned when the error carries no message of its own.
type errorMapping struct {
	target error
	code   int
	msg    string
}

var errorMappings = []errorMapping{
	{domain.ErrInvalidClientData, http.StatusUnprocessableEntity, "Informations client invalides."},
	{domain.ErrNonPositiveAmount, http.StatusUnprocessableEntity, "Le montant doit être positif."},
	{domain.ErrInvalidPIN, http.StatusUnprocessableEntity, domain.MsgPINInvalid},
	{domain.ErrFreezeDisabled, http.StatusUnprocessableEntity, "Le gel de compte n'est pas disponible."},
	{domain.ErrInsufficientFunds, http.StatusConflict, "Fonds insuffisants."},
	{domain.ErrFrozen, http.StatusConflict, "Le compte est gelé."},
	{domain.ErrAccountExists, http.StatusConflict, "Le compte a déjà été créé."},
	{domain.ErrDuplicateRequest, http.StatusConflict, "Requête déjà traitée."},
	{domain.ErrUserExists, http.StatusConflict, "Identifiant déjà utilisé."},
	{domain.ErrAccountNotFound, http.StatusNotFound, "Compte introuvable."},
	{domain.ErrClientNotFound, http.StatusNotFound, "Client introuvable."},
	{domain.ErrCompanyNotFound, http.StatusNotFound, "Entreprise introuvable."},
	{domain.ErrNoAccount, http.StatusNotFound, "Aucun compte ouvert pour ce client."},
	{domain.ErrUserNotFound, http.StatusNotFound, "Utilisateur introuvable."},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Identifiants invalides."},
	{domain.ErrForbidden, http.StatusForbidden, "Accès refusé."},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.code, customerMessage(err, m.msg)
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// customerMessage prefers the French text carried by a rejection or
// validation error over the fallback.
func customerMessage(err error, fallback string) string {
	var re *domain.RejectionError
	var ve *domain.ValidationError
	if errors.As(err, &re) || errors.As(err, &ve) {
		return domain.Message(err)
	}
	return fallback
}
