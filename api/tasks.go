package api

import (
	"context"
	"net/url"

	"github.com/hotelmanager/staffkit/core"
)

// TasksAPI reads and mutates the task board. Server-side filters are a
// coarse cut; the fine-grained view lives in the task view service.
type TasksAPI struct {
	client *Client
}

type ListTasksParams struct {
	Status     core.TaskStatus
	Priority   core.TaskPriority
	Type       core.TaskType
	AssignedTo string
	Page       int
	Limit      int
}

func (p ListTasksParams) values() url.Values {
	q := url.Values{}
	if p.Status != "" {
		q.Set("estado", string(p.Status))
	}
	if p.Priority != "" {
		q.Set("prioridad", string(p.Priority))
	}
	if p.Type != "" {
		q.Set("tipo", string(p.Type))
	}
	if p.AssignedTo != "" {
		q.Set("usuario_asignado", p.AssignedTo)
	}
	addPaging(q, p.Page, p.Limit)
	return q
}

type CreateTaskRequest struct {
	Title       string            `json:"titulo"`
	Description string            `json:"descripcion,omitempty"`
	Priority    core.TaskPriority `json:"prioridad"`
	Type        core.TaskType     `json:"tipo"`
	AssignedTo  string            `json:"usuario_asignado,omitempty"`
}

// UpdateTaskRequest is a partial update; nil fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string            `json:"titulo,omitempty"`
	Description *string            `json:"descripcion,omitempty"`
	Status      *core.TaskStatus   `json:"estado,omitempty"`
	Priority    *core.TaskPriority `json:"prioridad,omitempty"`
	AssignedTo  *string            `json:"usuario_asignado,omitempty"`
}

func (t *TasksAPI) List(ctx context.Context, params ListTasksParams) ([]core.Task, *core.Pagination, error) {
	var tasks []core.Task
	page, err := t.client.get(ctx, "/tasks", params.values(), &tasks)
	if err != nil {
		return nil, nil, err
	}
	return tasks, page, nil
}

func (t *TasksAPI) Get(ctx context.Context, id string) (*core.Task, error) {
	var task core.Task
	if _, err := t.client.get(ctx, "/tasks/"+url.PathEscape(id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *TasksAPI) Create(ctx context.Context, req CreateTaskRequest) (*core.Task, error) {
	var task core.Task
	if err := t.client.post(ctx, "/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *TasksAPI) Update(ctx context.Context, id string, req UpdateTaskRequest) (*core.Task, error) {
	var task core.Task
	if err := t.client.put(ctx, "/tasks/"+url.PathEscape(id), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *TasksAPI) Delete(ctx context.Context, id string) error {
	return t.client.delete(ctx, "/tasks/"+url.PathEscape(id))
}

func (t *TasksAPI) Stats(ctx context.Context) (*core.TaskStats, error) {
	var stats core.TaskStats
	if _, err := t.client.get(ctx, "/tasks/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
