package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/banque/registration-system/internal/core/ports"
)

type moneyFunc func(context.Context, ports.MoneyInput) (*ports.OpResult, error)

type transferFunc func(context.Context, ports.TransferInput) (*ports.OpResult, error)

// money binds a moneyRequest and runs op for the token subject. Amount sign
// checks are left to the ledger so the rejection carries its own message.
func money(c echo.Context, op moneyFunc) error {
	owner, err := ctxSubject(c)
	if err != nil {
		return err
	}
	var req moneyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := op(c.Request().Context(), ports.MoneyInput{
		Owner:          owner,
		Amount:         req.Amount,
		IdempotencyKey: idempotencyKey(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOpResponse(res))
}

func transfer(c echo.Context, op transferFunc) error {
	owner, err := ctxSubject(c)
	if err != nil {
		return err
	}
	var req transferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := op(c.Request().Context(), ports.TransferInput{
		Owner:          owner,
		Destination:    req.Destination,
		Amount:         req.Amount,
		IdempotencyKey: idempotencyKey(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOpResponse(res))
}
