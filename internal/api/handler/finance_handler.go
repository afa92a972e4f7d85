package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/geniusforceai/familydash/internal/core/domain"
	"github.com/geniusforceai/familydash/internal/core/ports"
)

// FinanceHandler serves the combined household-finances document.
type FinanceHandler struct {
	service ports.FinanceService
}

func NewFinanceHandler(service ports.FinanceService) *FinanceHandler {
	return &FinanceHandler{service: service}
}

type financesRequest struct {
	Income   *domain.Income       `json:"income"`
	Bills    []domain.Bill        `json:"bills"`
	Payments []domain.Transaction `json:"payments"`
}

// Get handles GET /api/finances.
//
// @Summary      Retrieve income, bills and payments
// @Tags         finances
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.FinanceOverview
// @Router       /api/finances [get]
func (h *FinanceHandler) Get(c echo.Context) error {
	overview, err := h.service.Overview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}

// Update handles POST /api/finances. Sub-collections present in the body
// are replaced wholesale; omitted ones are left untouched.
//
// @Summary      Replace financial data
// @Tags         finances
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      financesRequest  true  "Partial or full finances document"
// @Success      200   {object}  domain.FinanceOverview
// @Failure      400   {object}  map[string]string
// @Router       /api/finances [post]
func (h *FinanceHandler) Update(c echo.Context) error {
	var req financesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	overview, err := h.service.ReplaceOverview(c.Request().Context(), ports.ReplaceOverviewInput{
		Income:   req.Income,
		Bills:    req.Bills,
		Payments: req.Payments,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}
