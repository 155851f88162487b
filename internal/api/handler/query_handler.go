package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffdir/directory-api/internal/core/ports"
)

// QueryHandler serves the manager-only directory reports.
type QueryHandler struct {
	service ports.QueryService
}

func NewQueryHandler(service ports.QueryService) *QueryHandler {
	return &QueryHandler{service: service}
}

// ITEmployeesInLocationA returns employees of IT departments located in
// places starting with "A".
//
// @Summary      IT employees in locations starting with A
// @Tags         query
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      403  {object}  map[string]any
// @Router       /query/it-employees-location-a [get]
func (h *QueryHandler) ITEmployeesInLocationA(c echo.Context) error {
	employees, err := h.service.ITEmployeesInLocationA(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Success: true, Data: employees})
}

// SalesEmployeesSorted returns Sales employees, per-department sorted by
// first name descending.
//
// @Summary      Sales employees sorted by first name descending
// @Tags         query
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      403  {object}  map[string]any
// @Router       /query/sales-employees-sorted [get]
func (h *QueryHandler) SalesEmployeesSorted(c echo.Context) error {
	employees, err := h.service.SalesEmployeesSorted(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Success: true, Data: employees})
}
