package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxSubject extracts the subject injected by the Auth middleware and
// performs a fast-fail check before any service call: a token without a
// subject is structurally valid but cannot address an account.
func ctxSubject(c echo.Context) (string, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	subject, _ := c.Get("subject").(string)
	if subject == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "token missing account identity")
	}
	return subject, nil
}

const headerIdempotencyKey = "Idempotency-Key"

func idempotencyKey(c echo.Context) string {
	return c.Request().Header.Get(headerIdempotencyKey)
}
