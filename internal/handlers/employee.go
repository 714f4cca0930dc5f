package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/etams/internal/dto"
	apierrors "github.com/yukikurage/etams/internal/errors"
	"github.com/yukikurage/etams/internal/services"
	"github.com/yukikurage/etams/internal/utils"
)

type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// ListEmployees returns employees with their task counts, sorted by last name
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var pagination *utils.PaginationParams
	if params, ok := utils.GetPaginationParams(c); ok {
		pagination = &params
	}

	list, err := h.employeeService.ListEmployees(pagination)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SetTotalHeader(c, list.Total)
	c.JSON(http.StatusOK, dto.ToEmployeeDTOs(list.Employees, list.TaskCounts))
}

func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	employee, err := h.employeeService.GetEmployee(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee, nil))
}

func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req dto.EmployeeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.employeeService.CreateEmployee(employeeInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	zero := 0
	c.JSON(http.StatusCreated, dto.ToEmployeeDTO(*employee, &zero))
}

// UpdateEmployee replaces an employee. Omitting the password keeps the current one.
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.EmployeeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.employeeService.UpdateEmployee(id, employeeInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee, nil))
}

func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}

func (h *EmployeeHandler) UpdatePassword(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.PasswordUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.employeeService.UpdatePassword(id, req.Password); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

func employeeInput(req dto.EmployeeDTO) services.EmployeeInput {
	input := services.EmployeeInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Username:  req.Username,
		Role:      req.Role,
		Admin:     req.Admin,
	}
	if req.Password != nil {
		input.Password = *req.Password
	}
	return input
}
