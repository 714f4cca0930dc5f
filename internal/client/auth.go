package client

import (
	"context"
	"net/http"

	"github.com/yukikurage/etams/internal/dto"
	"github.com/yukikurage/etams/internal/session"
)

// Login authenticates and stores the returned identity on the client's session.
func (c *Client) Login(ctx context.Context, username, password string) (*dto.LoginResponseDTO, error) {
	var resp dto.LoginResponseDTO
	req := dto.LoginRequestDTO{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}

	c.session.Token = resp.Token
	c.session.Username = resp.Username
	c.session.Admin = resp.Admin
	c.session.EmployeeID = resp.EmployeeID
	return &resp, nil
}

// Logout ends the server session and forgets the token locally, even if the call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	*c.session = session.Session{}
	return err
}

// Me returns the authenticated employee.
func (c *Client) Me(ctx context.Context) (*dto.EmployeeDTO, error) {
	var employee dto.EmployeeDTO
	if err := c.get(ctx, "/auth/me", nil, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}
