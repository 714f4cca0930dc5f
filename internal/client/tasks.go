package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yukikurage/etams/internal/dto"
)

// ListTasks returns every task visible to the session. Non-admins only see their own.
func (c *Client) ListTasks(ctx context.Context) ([]dto.TaskDTO, error) {
	var tasks []dto.TaskDTO
	if err := c.get(ctx, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) ListTasksByEmployee(ctx context.Context, employeeID uint64) ([]dto.TaskDTO, error) {
	var tasks []dto.TaskDTO
	if err := c.get(ctx, fmt.Sprintf("/api/tasks/user/%d", employeeID), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id uint64) (*dto.TaskDTO, error) {
	var task dto.TaskDTO
	if err := c.get(ctx, fmt.Sprintf("/api/tasks/%d", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask sends task with its deadline already in storage format.
func (c *Client) CreateTask(ctx context.Context, task dto.TaskDTO) (*dto.TaskDTO, error) {
	var created dto.TaskDTO
	if err := c.do(ctx, http.MethodPost, "/api/tasks", task, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateTask(ctx context.Context, id uint64, task dto.TaskDTO) (*dto.TaskDTO, error) {
	var updated dto.TaskDTO
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/tasks/%d", id), task, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteTask(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil, nil)
}

// GenerateTasks asks the server to draft tasks from free text. Drafts are not
// saved and carry only title, description, status and deadline.
func (c *Client) GenerateTasks(ctx context.Context, text string) ([]dto.TaskDTO, error) {
	var resp struct {
		Tasks []dto.TaskDTO `json:"tasks"`
	}
	body := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPost, "/api/tasks/generate", body, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}
