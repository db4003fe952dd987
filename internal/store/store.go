// Package store defines the persistence boundary for portfolio records.
package store

import (
	"context"
	"errors"

	"github.com/zulandar/portfolio/internal/models"
)

// ErrNotFound is returned when a record with the requested id does not exist.
var ErrNotFound = errors.New("store: not found")

// Repository is the storage contract used by the portfolio service. Ids are
// assigned by the store on create and never reused. List methods filtered by
// project ids return every row when no ids are given.
type Repository interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id uint) (models.Project, error)
	CreateProject(ctx context.Context, p *models.Project) error
	UpdateProject(ctx context.Context, p *models.Project) error
	// SetArchived changes only the archived flag of a project.
	SetArchived(ctx context.Context, id uint, archived bool) error

	ListTasks(ctx context.Context, projectIDs ...uint) ([]models.Task, error)
	GetTask(ctx context.Context, id uint) (models.Task, error)
	CreateTask(ctx context.Context, t *models.Task) error
	UpdateTask(ctx context.Context, t *models.Task) error

	ListRisks(ctx context.Context, projectIDs ...uint) ([]models.Risk, error)
	CreateRisk(ctx context.Context, r *models.Risk) error
	DeleteRisk(ctx context.Context, id uint) error

	ListNotes(ctx context.Context, projectIDs ...uint) ([]models.Note, error)
	CreateNote(ctx context.Context, n *models.Note) error
	UpdateNote(ctx context.Context, n *models.Note) error
	DeleteNote(ctx context.Context, id uint) error

	ListSponsors(ctx context.Context) ([]models.Sponsor, error)
	CreateSponsor(ctx context.Context, s *models.Sponsor) error

	ListTeamMembers(ctx context.Context) ([]models.TeamMember, error)
	CreateTeamMember(ctx context.Context, m *models.TeamMember) error
}
