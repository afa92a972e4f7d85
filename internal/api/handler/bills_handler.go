package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/geniusforceai/familydash/internal/core/domain"
	"github.com/geniusforceai/familydash/internal/core/ports"
)

// BillsHandler serves the bills and payment-account routes.
type BillsHandler struct {
	service ports.FinanceService
}

func NewBillsHandler(service ports.FinanceService) *BillsHandler {
	return &BillsHandler{service: service}
}

// List handles GET /api/bills. An optional ?status= query narrows the
// result to pending, paid or overdue bills.
func (h *BillsHandler) List(c echo.Context) error {
	bills, err := h.service.ListBills(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bills)
}

func (h *BillsHandler) Create(c echo.Context) error {
	var bill domain.Bill
	if err := c.Bind(&bill); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if bill.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}

	created, err := h.service.CreateBill(c.Request().Context(), bill)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *BillsHandler) Update(c echo.Context) error {
	var bill domain.Bill
	if err := c.Bind(&bill); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	updated, ok, err := h.service.UpdateBill(c.Request().Context(), c.Param("id"), bill)
	if err != nil {
		return err
	}
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"detail": "Bill not found"})
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *BillsHandler) Delete(c echo.Context) error {
	ok, err := h.service.DeleteBill(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"detail": "Bill not found"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Bill deleted successfully"})
}

// Statistics handles GET /api/bills/statistics.
func (h *BillsHandler) Statistics(c echo.Context) error {
	stats, err := h.service.BillStatistics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *BillsHandler) ListAccounts(c echo.Context) error {
	accounts, err := h.service.ListAccounts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

func (h *BillsHandler) CreateAccount(c echo.Context) error {
	var account domain.Account
	if err := c.Bind(&account); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if account.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}

	created, err := h.service.CreateAccount(c.Request().Context(), account)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *BillsHandler) UpdateAccount(c echo.Context) error {
	var account domain.Account
	if err := c.Bind(&account); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	updated, ok, err := h.service.UpdateAccount(c.Request().Context(), c.Param("id"), account)
	if err != nil {
		return err
	}
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"detail": "Account not found"})
	}
	return c.JSON(http.StatusOK, updated)
}
