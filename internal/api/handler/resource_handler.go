package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/geniusforceai/familydash/internal/core/ports"
)

// ResourceHandler serves the CRUD+search routes for one investor-network
// entity through the generic table adapter. One instantiation per entity;
// the handler code itself is entity-agnostic.
type ResourceHandler[T any] struct {
	entity string // singular display name, e.g. "Company"
	res    ports.Resource[T]
}

func NewResourceHandler[T any](entity string, res ports.Resource[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{entity: entity, res: res}
}

func (h *ResourceHandler[T]) Create(c echo.Context) error {
	var rec T
	if err := c.Bind(&rec); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&rec); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	created, err := h.res.Create(c.Request().Context(), rec)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *ResourceHandler[T]) Get(c echo.Context) error {
	rec, ok := h.res.GetByID(c.Request().Context(), c.Param("id"))
	if !ok {
		return h.notFound(c)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *ResourceHandler[T]) List(c echo.Context) error {
	recs, err := h.res.ListAll(c.Request().Context(), "")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recs)
}

func (h *ResourceHandler[T]) Update(c echo.Context) error {
	var rec T
	if err := c.Bind(&rec); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&rec); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	updated, ok := h.res.Update(c.Request().Context(), c.Param("id"), rec)
	if !ok {
		return h.notFound(c)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *ResourceHandler[T]) Delete(c echo.Context) error {
	if ok := h.res.Delete(c.Request().Context(), c.Param("id")); !ok {
		return h.notFound(c)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": h.entity + " deleted successfully"})
}

// SearchBy returns a handler matching records whose field equals the path id,
// e.g. GET /contacts/company/:id.
func (h *ResourceHandler[T]) SearchBy(field string) echo.HandlerFunc {
	return func(c echo.Context) error {
		recs, err := h.res.Search(c.Request().Context(), field, c.Param("id"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, recs)
	}
}

func (h *ResourceHandler[T]) notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, map[string]string{"detail": h.entity + " not found"})
}
