package task

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Anduamlakalehegne/Project-Manager/internal/domain"
	"github.com/Anduamlakalehegne/Project-Manager/internal/repository"
)

type projectRepoStub struct {
	projects map[string]domain.Project
}

func (s *projectRepoStub) CreateProject(ctx context.Context, project *domain.Project) error {
	s.projects[project.ID] = *project
	return nil
}

func (s *projectRepoStub) GetProject(ctx context.Context, projectID, ownerID string) (*domain.Project, error) {
	p, ok := s.projects[projectID]
	if !ok || p.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	copied := p
	return &copied, nil
}

func (s *projectRepoStub) ListProjectsByOwner(ctx context.Context, ownerID string) ([]domain.Project, error) {
	return nil, nil
}

func (s *projectRepoStub) UpdateProject(ctx context.Context, project *domain.Project) error {
	return nil
}

func (s *projectRepoStub) DeleteProjectWithTasks(ctx context.Context, projectID, ownerID string) error {
	return nil
}

type taskRepoStub struct {
	tasks map[string]domain.Task
}

func (s *taskRepoStub) CreateTask(ctx context.Context, task *domain.Task) error {
	s.tasks[task.ID] = *task
	return nil
}

func (s *taskRepoStub) GetTask(ctx context.Context, taskID, projectID string) (*domain.Task, error) {
	t, ok := s.tasks[taskID]
	if !ok || t.ProjectID != projectID {
		return nil, repository.ErrNotFound
	}
	copied := t
	return &copied, nil
}

func (s *taskRepoStub) ListTasksByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	out := make([]domain.Task, 0)
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *taskRepoStub) UpdateTask(ctx context.Context, task *domain.Task) error {
	existing, ok := s.tasks[task.ID]
	if !ok || existing.ProjectID != task.ProjectID {
		return repository.ErrNotFound
	}
	s.tasks[task.ID] = *task
	return nil
}

func (s *taskRepoStub) DeleteTask(ctx context.Context, taskID, projectID string) error {
	t, ok := s.tasks[taskID]
	if !ok || t.ProjectID != projectID {
		return repository.ErrNotFound
	}
	delete(s.tasks, taskID)
	return nil
}

func setupService() (Service, *taskRepoStub) {
	projects := &projectRepoStub{projects: map[string]domain.Project{
		"proj-1": {ID: "proj-1", Name: "P1", Description: "d", Status: domain.ProjectStatusPending, OwnerID: "user-u"},
	}}
	tasks := &taskRepoStub{tasks: make(map[string]domain.Task)}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(tasks, projects, log), tasks
}

func validInput() CreateInput {
	return CreateInput{
		Title:       "T1",
		Description: "d",
		DueDate:     domain.NewDate(2025, time.January, 1),
	}
}

func TestCreateDefaultsPriorityAndStatus(t *testing.T) {
	svc, _ := setupService()

	created, err := svc.Create(context.Background(), "proj-1", "user-u", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Priority != domain.TaskPriorityMedium {
		t.Fatalf("expected Medium, got %s", created.Priority)
	}
	if created.Status != domain.TaskStatusToDo {
		t.Fatalf("expected To Do, got %s", created.Status)
	}
	if created.ProjectID != "proj-1" {
		t.Fatalf("unexpected project id: %s", created.ProjectID)
	}
	if created.DueDate.String() != "2025-01-01" {
		t.Fatalf("unexpected due date: %s", created.DueDate)
	}
}

func TestCreateRoundTrip(t *testing.T) {
	svc, _ := setupService()

	input := validInput()
	created, err := svc.Create(context.Background(), "proj-1", "user-u", input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := svc.Get(context.Background(), created.ID, "proj-1", "user-u")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != input.Title || got.Description != input.Description || !got.DueDate.Equal(input.DueDate) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestOperationsAgainstForeignProjectAreNotFound(t *testing.T) {
	svc, _ := setupService()

	created, err := svc.Create(context.Background(), "proj-1", "user-u", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A different user and a missing project fail identically.
	for _, caller := range []string{"user-v", ""} {
		if _, err := svc.List(context.Background(), "proj-1", caller); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("list: expected ErrNotFound for caller %q, got %v", caller, err)
		}
		if _, err := svc.Get(context.Background(), created.ID, "proj-1", caller); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("get: expected ErrNotFound for caller %q, got %v", caller, err)
		}
		if _, err := svc.Create(context.Background(), "proj-1", caller, validInput()); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("create: expected ErrNotFound for caller %q, got %v", caller, err)
		}
		if err := svc.Delete(context.Background(), created.ID, "proj-1", caller); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("delete: expected ErrNotFound for caller %q, got %v", caller, err)
		}
	}
	if _, err := svc.List(context.Background(), "proj-missing", "user-u"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing project, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := setupService()
	longTitle := make([]byte, 61)
	for i := range longTitle {
		longTitle[i] = 'a'
	}
	cases := []CreateInput{
		{Description: "d", DueDate: domain.NewDate(2025, time.January, 1)},
		{Title: string(longTitle), Description: "d", DueDate: domain.NewDate(2025, time.January, 1)},
		{Title: "T1", DueDate: domain.NewDate(2025, time.January, 1)},
		{Title: "T1", Description: "d"},
		{Title: "T1", Description: "d", DueDate: domain.NewDate(2025, time.January, 1), Priority: "Urgent"},
		{Title: "T1", Description: "d", DueDate: domain.NewDate(2025, time.January, 1), Status: "Done"},
	}
	for _, input := range cases {
		_, err := svc.Create(context.Background(), "proj-1", "user-u", input)
		var verr domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected validation error for %+v, got %v", input, err)
		}
	}
}

func TestUpdateAppliesOnlySuppliedFields(t *testing.T) {
	svc, _ := setupService()

	created, err := svc.Create(context.Background(), "proj-1", "user-u", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	status := domain.TaskStatusCompleted
	due := domain.NewDate(2025, time.March, 9)
	updated, err := svc.Update(context.Background(), created.ID, "proj-1", "user-u", UpdateInput{Status: &status, DueDate: &due})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.TaskStatusCompleted {
		t.Fatalf("expected Completed, got %s", updated.Status)
	}
	if updated.DueDate.String() != "2025-03-09" {
		t.Fatalf("unexpected due date: %s", updated.DueDate)
	}
	if updated.Title != created.Title || updated.Priority != created.Priority {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.ProjectID != "proj-1" {
		t.Fatalf("project changed: %s", updated.ProjectID)
	}
}

func TestDeleteTask(t *testing.T) {
	svc, repo := setupService()

	created, err := svc.Create(context.Background(), "proj-1", "user-u", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID, "proj-1", "user-u"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.tasks) != 0 {
		t.Fatalf("expected task removed, have %d", len(repo.tasks))
	}
	if err := svc.Delete(context.Background(), created.ID, "proj-1", "user-u"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
