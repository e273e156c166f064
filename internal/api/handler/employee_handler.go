package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/banque/registration-system/internal/core/domain"
	"github.com/banque/registration-system/internal/core/ports"
)

// EmployeeHandler serves the bank operator endpoints.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// Login handles POST /auth/employee/login.
//
// @Summary      Employee login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      employeeLoginRequest  true  "Employee credentials"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/employee/login [post]
func (h *EmployeeHandler) Login(c echo.Context) error {
	var req employeeLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Message: msgLoggedIn, Token: token, Role: domain.RoleEmployee})
}

// Cards handles GET /v1/employee/cards.
//
// @Summary      List client card numbers
// @Tags         employee
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cardsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/employee/cards [get]
func (h *EmployeeHandler) Cards(c echo.Context) error {
	cards, err := h.service.ListCards(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cardsResponse{
		Message: strconv.Itoa(len(cards)) + " carte(s) client",
		Cards:   cards,
	})
}

// ApproveClient handles POST /v1/employee/clients/:login/approve.
//
// @Summary      Approve a pending account request
// @Tags         employee
// @Produce      json
// @Security     BearerAuth
// @Param        login  path      string  true  "Client login"
// @Success      200    {object}  registrationResponse
// @Failure      404    {object}  errorResponse
// @Failure      409    {object}  errorResponse
// @Router       /v1/employee/clients/{login}/approve [post]
func (h *EmployeeHandler) ApproveClient(c echo.Context) error {
	res, err := h.service.ApproveClient(c.Request().Context(), c.Param("login"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRegistrationResponse(res))
}

// RejectClient handles POST /v1/employee/clients/:login/reject.
//
// @Summary      Reject a pending account request
// @Tags         employee
// @Produce      json
// @Security     BearerAuth
// @Param        login  path      string  true  "Client login"
// @Success      200    {object}  messageResponse
// @Failure      404    {object}  errorResponse
// @Router       /v1/employee/clients/{login}/reject [post]
func (h *EmployeeHandler) RejectClient(c echo.Context) error {
	return h.message(c, h.service.RejectClient, c.Param("login"))
}

// ApproveLoan handles POST /v1/employee/companies/:id/loans/approve.
//
// @Summary      Approve a company loan request
// @Tags         employee
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Company account id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/employee/companies/{id}/loans/approve [post]
func (h *EmployeeHandler) ApproveLoan(c echo.Context) error {
	return h.message(c, h.service.ApproveLoan, c.Param("id"))
}

// RejectLoan handles POST /v1/employee/companies/:id/loans/reject.
//
// @Summary      Reject a company loan request
// @Tags         employee
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Company account id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/employee/companies/{id}/loans/reject [post]
func (h *EmployeeHandler) RejectLoan(c echo.Context) error {
	return h.message(c, h.service.RejectLoan, c.Param("id"))
}

// Freeze handles POST /v1/employee/accounts/:card/freeze.
//
// @Summary      Freeze an account
// @Tags         employee
// @Produce      json
// @Security     BearerAuth
// @Param        card  path      string  true  "Card number"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/employee/accounts/{card}/freeze [post]
func (h *EmployeeHandler) Freeze(c echo.Context) error {
	return h.message(c, h.service.FreezeAccount, c.Param("card"))
}

// Unfreeze handles POST /v1/employee/accounts/:card/unfreeze.
//
// @Summary      Unfreeze an account
// @Tags         employee
// @Produce      json
// @Security     BearerAuth
// @Param        card  path      string  true  "Card number"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/employee/accounts/{card}/unfreeze [post]
func (h *EmployeeHandler) Unfreeze(c echo.Context) error {
	return h.message(c, h.service.UnfreezeAccount, c.Param("card"))
}

func (h *EmployeeHandler) message(c echo.Context, op func(ctx context.Context, id string) (string, error), id string) error {
	msg, err := op(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}
