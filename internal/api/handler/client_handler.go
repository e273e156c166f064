package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/banque/registration-system/internal/core/ports"
)

// ClientHandler serves registration and the personal account endpoints.
type ClientHandler struct {
	service ports.BankService
}

func NewClientHandler(service ports.BankService) *ClientHandler {
	return &ClientHandler{service: service}
}

// Register handles POST /v1/clients.
//
// @Summary      Register a client
// @Description  Verifies the client information and opens an account, or files a request for an employee when approval is required.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body      registerClientRequest  true  "Client information"
// @Success      201   {object}  registrationResponse
// @Success      202   {object}  registrationResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/clients [post]
func (h *ClientHandler) Register(c echo.Context) error {
	var req registerClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.service.RegisterClient(c.Request().Context(), toRegisterClientInput(req))
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if res.Account == nil {
		status = http.StatusAccepted
	}
	return c.JSON(status, toRegistrationResponse(res))
}

// Account handles GET /v1/accounts/me.
//
// @Summary      Get the caller's account
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  accountDetailResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/accounts/me [get]
func (h *ClientHandler) Account(c echo.Context) error {
	login, err := ctxSubject(c)
	if err != nil {
		return err
	}
	view, err := h.service.Account(c.Request().Context(), login)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accountDetailResponse{Message: view.TierLabel, Account: toAccountResponse(view)})
}

// Balance handles GET /v1/accounts/me/balance.
//
// @Summary      Get the caller's balance
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  opResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/accounts/me/balance [get]
func (h *ClientHandler) Balance(c echo.Context) error {
	login, err := ctxSubject(c)
	if err != nil {
		return err
	}
	res, err := h.service.Balance(c.Request().Context(), login)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOpResponse(res))
}

// History handles GET /v1/accounts/me/history.
//
// @Summary      Get the caller's transaction history
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  historyResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/accounts/me/history [get]
func (h *ClientHandler) History(c echo.Context) error {
	login, err := ctxSubject(c)
	if err != nil {
		return err
	}
	res, err := h.service.History(c.Request().Context(), login)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHistoryResponse(res))
}

// SetPIN handles POST /v1/accounts/me/pin.
//
// @Summary      Set the card PIN
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      pinRequest  true  "Four digit PIN"
// @Success      200   {object}  messageResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/accounts/me/pin [post]
func (h *ClientHandler) SetPIN(c echo.Context) error {
	login, err := ctxSubject(c)
	if err != nil {
		return err
	}
	var req pinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.service.SetPIN(c.Request().Context(), login, req.PIN)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: res.Message})
}

// Deposit handles POST /v1/accounts/me/deposit.
//
// @Summary      Deposit money
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string        false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      moneyRequest  true   "Amount"
// @Success      200              {object}  opResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/accounts/me/deposit [post]
func (h *ClientHandler) Deposit(c echo.Context) error {
	return money(c, h.service.Deposit)
}

// Withdraw handles POST /v1/accounts/me/withdraw.
//
// @Summary      Withdraw money
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string        false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      moneyRequest  true   "Amount"
// @Success      200              {object}  opResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/accounts/me/withdraw [post]
func (h *ClientHandler) Withdraw(c echo.Context) error {
	return money(c, h.service.Withdraw)
}

// Transfer handles POST /v1/accounts/me/transfer.
//
// @Summary      Transfer money to a card or a company account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string           false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      transferRequest  true   "Destination and amount"
// @Success      200              {object}  opResponse
// @Failure      404              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/accounts/me/transfer [post]
func (h *ClientHandler) Transfer(c echo.Context) error {
	return transfer(c, h.service.Transfer)
}
