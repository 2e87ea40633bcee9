package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Anduamlakalehegne/Project-Manager/internal/domain"
	"github.com/Anduamlakalehegne/Project-Manager/internal/repository"
)

// CreateTask inserts a task under its parent project.
func (r *Repository) CreateTask(ctx context.Context, task *domain.Task) error {
	const query = `INSERT INTO tasks (id, project_id, title, description, due_date, priority, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query, task.ID, task.ProjectID, task.Title, task.Description,
		task.DueDate.Time(), task.Priority, task.Status, task.CreatedAt)
	return err
}

// GetTask fetches a task by id within a project.
func (r *Repository) GetTask(ctx context.Context, taskID, projectID string) (*domain.Task, error) {
	const query = `SELECT id, project_id, title, description, due_date, priority, status, created_at
		FROM tasks WHERE id = $1 AND project_id = $2`
	row := r.pool.QueryRow(ctx, query, taskID, projectID)
	return scanTask(row)
}

// ListTasksByProject returns tasks for the project in insertion order.
func (r *Repository) ListTasksByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	const query = `SELECT id, project_id, title, description, due_date, priority, status, created_at
		FROM tasks WHERE project_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// UpdateTask persists mutable task fields. The project column is part
// of the predicate, never the SET list.
func (r *Repository) UpdateTask(ctx context.Context, task *domain.Task) error {
	const query = `UPDATE tasks SET title = $1, description = $2, due_date = $3, priority = $4, status = $5
		WHERE id = $6 AND project_id = $7`
	tag, err := r.pool.Exec(ctx, query, task.Title, task.Description, task.DueDate.Time(),
		task.Priority, task.Status, task.ID, task.ProjectID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteTask removes a task within a project.
func (r *Repository) DeleteTask(ctx context.Context, taskID, projectID string) error {
	const query = `DELETE FROM tasks WHERE id = $1 AND project_id = $2`
	tag, err := r.pool.Exec(ctx, query, taskID, projectID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		t       domain.Task
		dueDate time.Time
	)
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &dueDate, &t.Priority, &t.Status, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	t.DueDate = domain.DateOf(dueDate)
	return &t, nil
}
