package domain

import "time"

// ProjectStatus enumerates the lifecycle states of a project.
type ProjectStatus string

const (
	ProjectStatusPending    ProjectStatus = "Pending"
	ProjectStatusInProgress ProjectStatus = "In Progress"
	ProjectStatusCompleted  ProjectStatus = "Completed"
)

// Valid reports whether the status is one of the known values.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPending, ProjectStatusInProgress, ProjectStatusCompleted:
		return true
	}
	return false
}

// Project groups tasks under an owning user.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	OwnerID     string        `json:"userId"`
	CreatedAt   time.Time     `json:"-"`
}
