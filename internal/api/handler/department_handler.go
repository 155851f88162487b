package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/staffdir/directory-api/internal/api/metrics"
	"github.com/staffdir/directory-api/internal/core/ports"
)

// DepartmentHandler handles HTTP requests for department CRUD and assignment.
// All routes are manager-only; the route group enforces that.
type DepartmentHandler struct {
	service ports.DepartmentService
}

func NewDepartmentHandler(service ports.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{service: service}
}

type createDepartmentRequest struct {
	DepartmentName string  `json:"departmentName" validate:"required"`
	CategoryName   string  `json:"categoryName"   validate:"required"`
	Location       string  `json:"location"       validate:"required"`
	Salary         float64 `json:"salary"         validate:"gte=0"`
}

type assignEmployeesRequest struct {
	EmployeeIDs []string `json:"employeeIds" validate:"required,min=1"`
}

// List returns one page of departments with rosters expanded.
//
// @Summary      List departments (paginated)
// @Tags         department
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "1-indexed page number"
// @Success      200   {object}  envelope
// @Failure      403   {object}  map[string]any
// @Router       /department/departments [get]
func (h *DepartmentHandler) List(c echo.Context) error {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}

	result, err := h.service.List(c.Request().Context(), page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, envelope{
		Success: true,
		Data:    result.Departments,
		Pagination: &pagination{
			CurrentPage: result.CurrentPage,
			TotalPages:  result.TotalPages,
			TotalItems:  result.TotalItems,
		},
	})
}

// Create creates a department.
//
// @Summary      Create a department
// @Tags         department
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDepartmentRequest  true  "Department details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /department/departments [post]
func (h *DepartmentHandler) Create(c echo.Context) error {
	var req createDepartmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dept, err := h.service.Create(c.Request().Context(), ports.CreateDepartmentInput{
		DepartmentName: req.DepartmentName,
		CategoryName:   req.CategoryName,
		Location:       req.Location,
		Salary:         req.Salary,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, envelope{
		Success: true,
		Message: "Department created successfully",
		Data:    dept,
	})
}

// Update applies a partial merge of the provided fields.
//
// @Summary      Update a department
// @Tags         department
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Department id"
// @Param        body  body      map[string]any  true  "Fields to update"
// @Success      200   {object}  envelope
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /department/departments/{id} [put]
func (h *DepartmentHandler) Update(c echo.Context) error {
	updates := map[string]any{}
	if err := c.Bind(&updates); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	dept, err := h.service.Update(c.Request().Context(), c.Param("id"), updates)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, envelope{
		Success: true,
		Message: "Department updated successfully",
		Data:    dept,
	})
}

// Delete removes a department and clears its employees' references.
//
// @Summary      Delete a department
// @Tags         department
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Department id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  map[string]any
// @Router       /department/departments/{id} [delete]
func (h *DepartmentHandler) Delete(c echo.Context) error {
	dept, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, envelope{
		Success: true,
		Message: "Department deleted successfully",
		Data:    dept,
	})
}

// Assign merges the given employees into the department roster.
//
// @Summary      Assign employees to a department
// @Tags         department
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Department id"
// @Param        body  body      assignEmployeesRequest  true  "Employee ids"
// @Success      200   {object}  envelope
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /department/departments/{id}/assign [post]
func (h *DepartmentHandler) Assign(c echo.Context) error {
	var req assignEmployeesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dept, err := h.service.Assign(c.Request().Context(), c.Param("id"), req.EmployeeIDs)
	if err != nil {
		return err
	}

	metrics.AssignmentsTotal.Add(float64(len(req.EmployeeIDs)))

	return c.JSON(http.StatusOK, envelope{
		Success: true,
		Message: "Employees assigned successfully",
		Data:    dept,
	})
}
