package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yukikurage/etams/internal/dto"
)

func (c *Client) ListEmployees(ctx context.Context) ([]dto.EmployeeDTO, error) {
	var employees []dto.EmployeeDTO
	if err := c.get(ctx, "/api/employees", nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (c *Client) GetEmployee(ctx context.Context, id uint64) (*dto.EmployeeDTO, error) {
	var employee dto.EmployeeDTO
	if err := c.get(ctx, fmt.Sprintf("/api/employees/%d", id), nil, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (c *Client) CreateEmployee(ctx context.Context, employee dto.EmployeeDTO) (*dto.EmployeeDTO, error) {
	var created dto.EmployeeDTO
	if err := c.do(ctx, http.MethodPost, "/api/employees", employee, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateEmployee replaces the employee. A nil Password keeps the current one.
func (c *Client) UpdateEmployee(ctx context.Context, id uint64, employee dto.EmployeeDTO) (*dto.EmployeeDTO, error) {
	var updated dto.EmployeeDTO
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/employees/%d", id), employee, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/employees/%d", id), nil, nil)
}

func (c *Client) UpdatePassword(ctx context.Context, id uint64, password string) error {
	body := dto.PasswordUpdateDTO{Password: password}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/employees/%d/password", id), body, nil)
}
