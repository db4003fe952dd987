// Package gormstore implements store.Repository on a relational database via GORM.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/zulandar/portfolio/internal/models"
	"github.com/zulandar/portfolio/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is a GORM-backed repository. Every call runs in its own statement;
// there are no multi-entity transactions and the last writer wins.
type Store struct {
	db *gorm.DB
}

var _ store.Repository = (*Store)(nil)

// New wraps an open GORM connection.
func New(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("gormstore: db is required")
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying connection for migrations and seeding.
func (s *Store) DB() *gorm.DB { return s.db }

func wrapGet(kind string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("gormstore: %s %d: %w", kind, id, store.ErrNotFound)
	}
	return fmt.Errorf("gormstore: get %s %d: %w", kind, id, err)
}

// checkAffected converts a zero-row write into store.ErrNotFound.
func checkAffected(op, kind string, id uint, result *gorm.DB) error {
	if result.Error != nil {
		return fmt.Errorf("gormstore: %s %s %d: %w", op, kind, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("gormstore: %s %s %d: %w", op, kind, id, store.ErrNotFound)
	}
	return nil
}

// checkUpdated is checkAffected for updates. A zero-row update of an
// existing row is a no-op write, not a miss: MySQL counts changed rows
// rather than matched ones unless the DSN sets clientFoundRows.
func (s *Store) checkUpdated(ctx context.Context, op, kind string, id uint, model any, result *gorm.DB) error {
	if result.Error == nil && result.RowsAffected == 0 {
		var n int64
		if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
			return fmt.Errorf("gormstore: %s %s %d: %w", op, kind, id, err)
		}
		if n > 0 {
			return nil
		}
	}
	return checkAffected(op, kind, id, result)
}

// byProject applies an optional project_id IN filter.
func byProject(q *gorm.DB, projectIDs []uint) *gorm.DB {
	if len(projectIDs) > 0 {
		q = q.Where("project_id IN ?", projectIDs)
	}
	return q
}

func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("gormstore: list projects: %w", err)
	}
	return projects, nil
}

func (s *Store) GetProject(ctx context.Context, id uint) (models.Project, error) {
	var p models.Project
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return models.Project{}, wrapGet("project", id, err)
	}
	return p, nil
}

func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("gormstore: create project %q: %w", p.Name, err)
	}
	return nil
}

// UpdateProject writes every column, zero values included.
func (s *Store) UpdateProject(ctx context.Context, p *models.Project) error {
	result := s.db.WithContext(ctx).Model(p).Select("*").Omit("id", "created_at").Updates(p)
	return s.checkUpdated(ctx, "update", "project", p.ID, &models.Project{}, result)
}

// SetArchived flips the archived column without touching any other column,
// updated_at included.
func (s *Store) SetArchived(ctx context.Context, id uint, archived bool) error {
	result := s.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", id).
		UpdateColumn("archived", archived)
	return s.checkUpdated(ctx, "archive", "project", id, &models.Project{}, result)
}

func (s *Store) ListTasks(ctx context.Context, projectIDs ...uint) ([]models.Task, error) {
	var tasks []models.Task
	if err := byProject(s.db.WithContext(ctx), projectIDs).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("gormstore: list tasks: %w", err)
	}
	return tasks, nil
}

func (s *Store) GetTask(ctx context.Context, id uint) (models.Task, error) {
	var t models.Task
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return models.Task{}, wrapGet("task", id, err)
	}
	return t, nil
}

func (s *Store) CreateTask(ctx context.Context, t *models.Task) error {
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("gormstore: create task %q: %w", t.Title, err)
	}
	return nil
}

func (s *Store) UpdateTask(ctx context.Context, t *models.Task) error {
	result := s.db.WithContext(ctx).Model(t).Select("*").Omit("id").Updates(t)
	return s.checkUpdated(ctx, "update", "task", t.ID, &models.Task{}, result)
}

func (s *Store) ListRisks(ctx context.Context, projectIDs ...uint) ([]models.Risk, error) {
	var risks []models.Risk
	if err := byProject(s.db.WithContext(ctx), projectIDs).Order("id ASC").Find(&risks).Error; err != nil {
		return nil, fmt.Errorf("gormstore: list risks: %w", err)
	}
	return risks, nil
}

func (s *Store) CreateRisk(ctx context.Context, r *models.Risk) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("gormstore: create risk: %w", err)
	}
	return nil
}

func (s *Store) DeleteRisk(ctx context.Context, id uint) error {
	return checkAffected("delete", "risk", id, s.db.WithContext(ctx).Delete(&models.Risk{}, id))
}

func (s *Store) ListNotes(ctx context.Context, projectIDs ...uint) ([]models.Note, error) {
	var notes []models.Note
	if err := byProject(s.db.WithContext(ctx), projectIDs).Order("id ASC").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("gormstore: list notes: %w", err)
	}
	return notes, nil
}

func (s *Store) CreateNote(ctx context.Context, n *models.Note) error {
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("gormstore: create note: %w", err)
	}
	return nil
}

func (s *Store) UpdateNote(ctx context.Context, n *models.Note) error {
	result := s.db.WithContext(ctx).Model(n).Select("*").Omit("id", "created_at").Updates(n)
	return s.checkUpdated(ctx, "update", "note", n.ID, &models.Note{}, result)
}

func (s *Store) DeleteNote(ctx context.Context, id uint) error {
	return checkAffected("delete", "note", id, s.db.WithContext(ctx).Delete(&models.Note{}, id))
}

func (s *Store) ListSponsors(ctx context.Context) ([]models.Sponsor, error) {
	var sponsors []models.Sponsor
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&sponsors).Error; err != nil {
		return nil, fmt.Errorf("gormstore: list sponsors: %w", err)
	}
	return sponsors, nil
}

// CreateSponsor ignores names that already exist.
func (s *Store) CreateSponsor(ctx context.Context, sp *models.Sponsor) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(sp).Error
	if err != nil {
		return fmt.Errorf("gormstore: create sponsor %q: %w", sp.Name, err)
	}
	return nil
}

func (s *Store) ListTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("gormstore: list team members: %w", err)
	}
	return members, nil
}

func (s *Store) CreateTeamMember(ctx context.Context, m *models.TeamMember) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("gormstore: create team member %q: %w", m.Name, err)
	}
	return nil
}
