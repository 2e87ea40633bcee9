package task

import (
	"context"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/Anduamlakalehegne/Project-Manager/internal/domain"
	"github.com/Anduamlakalehegne/Project-Manager/internal/repository"
)

const maxTitleLength = 60

var (
	errMissingTitle       = domain.ValidationError("task title is required")
	errTitleTooLong       = domain.ValidationError("task title cannot be more than 60 characters")
	errMissingDescription = domain.ValidationError("task description is required")
	errMissingDueDate     = domain.ValidationError("task due date is required")
	errInvalidPriority    = domain.ValidationError("invalid task priority")
	errInvalidStatus      = domain.ValidationError("invalid task status")
)

// CreateInput holds task creation attributes.
type CreateInput struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	DueDate     domain.Date         `json:"dueDate"`
	Priority    domain.TaskPriority `json:"priority"`
	Status      domain.TaskStatus   `json:"status"`
}

// UpdateInput holds a partial update; nil fields are left untouched.
type UpdateInput struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	DueDate     *domain.Date         `json:"dueDate"`
	Priority    *domain.TaskPriority `json:"priority"`
	Status      *domain.TaskStatus   `json:"status"`
}

// Service orchestrates task management. Every operation resolves the
// parent project under the calling user before touching tasks, so a
// foreign or missing project fails identically with ErrNotFound.
type Service struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	logger   *slog.Logger
}

// New returns a task service.
func New(tasks repository.TaskRepository, projects repository.ProjectRepository, logger *slog.Logger) Service {
	return Service{tasks: tasks, projects: projects, logger: logger}
}

func (s Service) guardProject(ctx context.Context, projectID, ownerID string) error {
	_, err := s.projects.GetProject(ctx, projectID, ownerID)
	return err
}

// Create validates fields, assigns a fresh id and persists the task
// under the project. Priority defaults to Medium and status to To Do.
func (s Service) Create(ctx context.Context, projectID, ownerID string, input CreateInput) (*domain.Task, error) {
	if err := s.guardProject(ctx, projectID, ownerID); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errMissingTitle
	}
	if len(title) > maxTitleLength {
		return nil, errTitleTooLong
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, errMissingDescription
	}
	if input.DueDate.IsZero() {
		return nil, errMissingDueDate
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, errInvalidPriority
	}
	status := input.Status
	if status == "" {
		status = domain.TaskStatusToDo
	}
	if !status.Valid() {
		return nil, errInvalidStatus
	}
	task := &domain.Task{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Title:       title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    priority,
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.tasks.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	s.logger.Info("task created", "task_id", task.ID, "project_id", projectID)
	return task, nil
}

// List returns all tasks under the project.
func (s Service) List(ctx context.Context, projectID, ownerID string) ([]domain.Task, error) {
	if err := s.guardProject(ctx, projectID, ownerID); err != nil {
		return nil, err
	}
	return s.tasks.ListTasksByProject(ctx, projectID)
}

// Get returns a task by id within the project.
func (s Service) Get(ctx context.Context, taskID, projectID, ownerID string) (*domain.Task, error) {
	if err := s.guardProject(ctx, projectID, ownerID); err != nil {
		return nil, err
	}
	return s.tasks.GetTask(ctx, taskID, projectID)
}

// Update applies the supplied fields and returns the post-update record.
// The parent project never changes.
func (s Service) Update(ctx context.Context, taskID, projectID, ownerID string, input UpdateInput) (*domain.Task, error) {
	if err := s.guardProject(ctx, projectID, ownerID); err != nil {
		return nil, err
	}
	task, err := s.tasks.GetTask(ctx, taskID, projectID)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, errMissingTitle
		}
		if len(title) > maxTitleLength {
			return nil, errTitleTooLong
		}
		task.Title = title
	}
	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			return nil, errMissingDescription
		}
		task.Description = *input.Description
	}
	if input.DueDate != nil {
		if input.DueDate.IsZero() {
			return nil, errMissingDueDate
		}
		task.DueDate = *input.DueDate
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, errInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, errInvalidStatus
		}
		task.Status = *input.Status
	}
	if err := s.tasks.UpdateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task within the project.
func (s Service) Delete(ctx context.Context, taskID, projectID, ownerID string) error {
	if err := s.guardProject(ctx, projectID, ownerID); err != nil {
		return err
	}
	if err := s.tasks.DeleteTask(ctx, taskID, projectID); err != nil {
		return err
	}
	s.logger.Info("task deleted", "task_id", taskID, "project_id", projectID)
	return nil
}
