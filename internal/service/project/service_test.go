package project

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Anduamlakalehegne/Project-Manager/internal/domain"
	"github.com/Anduamlakalehegne/Project-Manager/internal/repository"
)

type projectRepoStub struct {
	projects map[string]domain.Project
	deleted  []string
}

func newProjectRepoStub() *projectRepoStub {
	return &projectRepoStub{projects: make(map[string]domain.Project)}
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
	out := make([]domain.Project, 0)
	for _, p := range s.projects {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *projectRepoStub) UpdateProject(ctx context.Context, project *domain.Project) error {
	existing, ok := s.projects[project.ID]
	if !ok || existing.OwnerID != project.OwnerID {
		return repository.ErrNotFound
	}
	s.projects[project.ID] = *project
	return nil
}

func (s *projectRepoStub) DeleteProjectWithTasks(ctx context.Context, projectID, ownerID string) error {
	p, ok := s.projects[projectID]
	if !ok || p.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(s.projects, projectID)
	s.deleted = append(s.deleted, projectID)
	return nil
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateDefaultsStatusToPending(t *testing.T) {
	repo := newProjectRepoStub()
	svc := New(repo, newLogger())

	proj, err := svc.Create(context.Background(), "user-1", CreateInput{Name: "P1", Description: "d"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if proj.Status != domain.ProjectStatusPending {
		t.Fatalf("expected Pending, got %s", proj.Status)
	}
	if proj.ID == "" {
		t.Fatal("expected generated id")
	}
	if proj.OwnerID != "user-1" {
		t.Fatalf("unexpected owner: %s", proj.OwnerID)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := New(newProjectRepoStub(), newLogger())
	longName := make([]byte, 61)
	for i := range longName {
		longName[i] = 'a'
	}
	cases := []CreateInput{
		{Name: "", Description: "d"},
		{Name: "   ", Description: "d"},
		{Name: string(longName), Description: "d"},
		{Name: "P1", Description: ""},
		{Name: "P1", Description: "d", Status: "Bogus"},
	}
	for _, input := range cases {
		_, err := svc.Create(context.Background(), "user-1", input)
		var verr domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected validation error for %+v, got %v", input, err)
		}
	}
}

func TestGetForeignOwnerIsNotFound(t *testing.T) {
	repo := newProjectRepoStub()
	svc := New(repo, newLogger())

	proj, err := svc.Create(context.Background(), "user-u", CreateInput{Name: "P1", Description: "d"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Get(context.Background(), proj.ID, "user-v"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
	if _, err := svc.Get(context.Background(), proj.ID, "user-u"); err != nil {
		t.Fatalf("owner get failed: %v", err)
	}
}

func TestUpdateAppliesOnlySuppliedFields(t *testing.T) {
	repo := newProjectRepoStub()
	svc := New(repo, newLogger())

	proj, err := svc.Create(context.Background(), "user-1", CreateInput{Name: "P1", Description: "d"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	status := domain.ProjectStatusCompleted
	updated, err := svc.Update(context.Background(), proj.ID, "user-1", UpdateInput{Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.ProjectStatusCompleted {
		t.Fatalf("expected Completed, got %s", updated.Status)
	}
	if updated.Name != "P1" || updated.Description != "d" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.OwnerID != "user-1" {
		t.Fatalf("owner changed: %s", updated.OwnerID)
	}
}

func TestUpdateForeignOwnerIsNotFound(t *testing.T) {
	repo := newProjectRepoStub()
	svc := New(repo, newLogger())

	proj, err := svc.Create(context.Background(), "user-u", CreateInput{Name: "P1", Description: "d"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	name := "renamed"
	if _, err := svc.Update(context.Background(), proj.ID, "user-v", UpdateInput{Name: &name}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRemovesProject(t *testing.T) {
	repo := newProjectRepoStub()
	svc := New(repo, newLogger())

	proj, err := svc.Create(context.Background(), "user-1", CreateInput{Name: "P1", Description: "d"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(context.Background(), proj.ID, "user-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != proj.ID {
		t.Fatalf("expected cascade delete recorded, got %v", repo.deleted)
	}
	if _, err := svc.Get(context.Background(), proj.ID, "user-1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), proj.ID, "user-1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
