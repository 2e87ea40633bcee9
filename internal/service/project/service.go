package project

import (
	"context"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/Anduamlakalehegne/Project-Manager/internal/domain"
	"github.com/Anduamlakalehegne/Project-Manager/internal/repository"
)

const maxNameLength = 60

var (
	errMissingName        = domain.ValidationError("project name is required")
	errNameTooLong        = domain.ValidationError("project name cannot be more than 60 characters")
	errMissingDescription = domain.ValidationError("project description is required")
	errInvalidStatus      = domain.ValidationError("invalid project status")
)

// CreateInput holds project creation attributes.
type CreateInput struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      domain.ProjectStatus `json:"status"`
}

// UpdateInput holds a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Status      *domain.ProjectStatus `json:"status"`
}

// Service orchestrates owner-scoped project management.
type Service struct {
	projects repository.ProjectRepository
	logger   *slog.Logger
}

// New returns a project service.
func New(projects repository.ProjectRepository, logger *slog.Logger) Service {
	return Service{projects: projects, logger: logger}
}

// Create validates fields, assigns a fresh id and persists the project
// under the owner. Status defaults to Pending when omitted.
func (s Service) Create(ctx context.Context, ownerID string, input CreateInput) (*domain.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errMissingName
	}
	if len(name) > maxNameLength {
		return nil, errNameTooLong
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, errMissingDescription
	}
	status := input.Status
	if status == "" {
		status = domain.ProjectStatusPending
	}
	if !status.Valid() {
		return nil, errInvalidStatus
	}
	proj := &domain.Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: input.Description,
		Status:      status,
		OwnerID:     ownerID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.projects.CreateProject(ctx, proj); err != nil {
		return nil, err
	}
	s.logger.Info("project created", "project_id", proj.ID, "user_id", proj.OwnerID)
	return proj, nil
}

// List returns all projects owned by the user.
func (s Service) List(ctx context.Context, ownerID string) ([]domain.Project, error) {
	return s.projects.ListProjectsByOwner(ctx, ownerID)
}

// Get returns a project by id for the owner. A project held by another
// user is indistinguishable from one that does not exist.
func (s Service) Get(ctx context.Context, projectID, ownerID string) (*domain.Project, error) {
	return s.projects.GetProject(ctx, projectID, ownerID)
}

// Update applies the supplied fields and returns the post-update record.
// The owner never changes.
func (s Service) Update(ctx context.Context, projectID, ownerID string, input UpdateInput) (*domain.Project, error) {
	proj, err := s.projects.GetProject(ctx, projectID, ownerID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errMissingName
		}
		if len(name) > maxNameLength {
			return nil, errNameTooLong
		}
		proj.Name = name
	}
	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			return nil, errMissingDescription
		}
		proj.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, errInvalidStatus
		}
		proj.Status = *input.Status
	}
	if err := s.projects.UpdateProject(ctx, proj); err != nil {
		return nil, err
	}
	return proj, nil
}

// Delete removes the project together with every task under it. The
// store performs both removals as one unit of work, tasks first, so a
// task can never outlive its parent.
func (s Service) Delete(ctx context.Context, projectID, ownerID string) error {
	if err := s.projects.DeleteProjectWithTasks(ctx, projectID, ownerID); err != nil {
		return err
	}
	s.logger.Info("project deleted", "project_id", projectID, "user_id", ownerID)
	return nil
}
