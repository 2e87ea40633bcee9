package repository

import (
	"context"

	"github.com/Anduamlakalehegne/Project-Manager/internal/domain"
)

// UserRepository persists accounts. Email uniqueness is enforced here,
// at the store boundary, so concurrent signups cannot both succeed.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

// ProjectRepository persists projects scoped by owning user. Every
// lookup takes the owner alongside the id; a mismatch reads as absence.
type ProjectRepository interface {
	CreateProject(ctx context.Context, project *domain.Project) error
	GetProject(ctx context.Context, projectID, ownerID string) (*domain.Project, error)
	ListProjectsByOwner(ctx context.Context, ownerID string) ([]domain.Project, error)
	UpdateProject(ctx context.Context, project *domain.Project) error
	// DeleteProjectWithTasks removes the project and all of its tasks as
	// one unit of work, tasks first.
	DeleteProjectWithTasks(ctx context.Context, projectID, ownerID string) error
}

// TaskRepository persists tasks scoped by parent project. Ownership of
// the project itself is checked by callers before any of these run.
type TaskRepository interface {
	CreateTask(ctx context.Context, task *domain.Task) error
	GetTask(ctx context.Context, taskID, projectID string) (*domain.Task, error)
	ListTasksByProject(ctx context.Context, projectID string) ([]domain.Task, error)
	UpdateTask(ctx context.Context, task *domain.Task) error
	DeleteTask(ctx context.Context, taskID, projectID string) error
}
