package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffdir/directory-api/internal/core/ports"
)

// EmployeeHandler serves the authenticated user's own reads.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// Profile returns the caller's user record (secrets excluded).
//
// @Summary      Get own profile
// @Tags         employee
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  map[string]any
// @Router       /employee/profile [get]
func (h *EmployeeHandler) Profile(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.service.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, envelope{Success: true, Data: user})
}

// Department returns the caller's department, or a null payload when the
// caller is not assigned to one.
//
// @Summary      Get own department
// @Tags         employee
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  map[string]any
// @Router       /employee/department [get]
func (h *EmployeeHandler) Department(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	dept, err := h.service.Department(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if dept == nil {
		return c.JSON(http.StatusOK, envelope{
			Success: true,
			Message: "Not assigned to any department",
		})
	}

	return c.JSON(http.StatusOK, envelope{Success: true, Data: dept})
}
