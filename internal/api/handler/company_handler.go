package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/banque/registration-system/internal/core/ports"
)

const msgCompanyOpened = "Compte entreprise ouvert avec succès."

// CompanyHandler serves the corporate account endpoints.
type CompanyHandler struct {
	service ports.CompanyService
}

func NewCompanyHandler(service ports.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

// Register handles POST /v1/companies (employee only).
//
// @Summary      Open a corporate account
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerCompanyRequest  true  "Company details"
// @Success      201   {object}  companyResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/companies [post]
func (h *CompanyHandler) Register(c echo.Context) error {
	var req registerCompanyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.service.RegisterCompany(c.Request().Context(), toRegisterCompanyInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCompanyResponse(msgCompanyOpened, view))
}

// Balance handles GET /v1/companies/me/balance.
//
// @Summary      Get the company balance
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  opResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/companies/me/balance [get]
func (h *CompanyHandler) Balance(c echo.Context) error {
	id, err := ctxSubject(c)
	if err != nil {
		return err
	}
	res, err := h.service.CompanyBalance(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOpResponse(res))
}

// History handles GET /v1/companies/me/history.
//
// @Summary      Get the company transaction history
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  historyResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/companies/me/history [get]
func (h *CompanyHandler) History(c echo.Context) error {
	id, err := ctxSubject(c)
	if err != nil {
		return err
	}
	res, err := h.service.CompanyHistory(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHistoryResponse(res))
}

// Deposit handles POST /v1/companies/me/deposit.
//
// @Summary      Deposit money on the company account
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string        false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      moneyRequest  true   "Amount"
// @Success      200              {object}  opResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/companies/me/deposit [post]
func (h *CompanyHandler) Deposit(c echo.Context) error {
	return money(c, h.service.CompanyDeposit)
}

// Withdraw handles POST /v1/companies/me/withdraw.
//
// @Summary      Withdraw money from the company account
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string        false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      moneyRequest  true   "Amount"
// @Success      200              {object}  opResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/companies/me/withdraw [post]
func (h *CompanyHandler) Withdraw(c echo.Context) error {
	return money(c, h.service.CompanyWithdraw)
}

// Transfer handles POST /v1/companies/me/transfer.
//
// @Summary      Transfer money from the company account
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string           false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      transferRequest  true   "Destination and amount"
// @Success      200              {object}  opResponse
// @Failure      404              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /v1/companies/me/transfer [post]
func (h *CompanyHandler) Transfer(c echo.Context) error {
	return transfer(c, h.service.CompanyTransfer)
}
