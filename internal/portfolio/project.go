package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/zulandar/portfolio/internal/models"
	"go.uber.org/zap"
)

// NewProject is the input for CreateProject.
type NewProject struct {
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	Sponsor   string     `json:"sponsor"`
	Manager   string     `json:"manager"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Priority  string     `json:"priority"`
	Scope     string     `json:"scope"`
}

// ProjectEdit carries the fields the edit form can change. Nil fields are
// left untouched.
type ProjectEdit struct {
	Manager  *string    `json:"manager"`
	Status   *string    `json:"status"`
	EndDate  *time.Time `json:"end_date"`
	Archived *bool      `json:"archived"`
}

// ProjectFilter narrows ListProjects.
type ProjectFilter struct {
	Archived bool
	Sponsor  string
}

// CreateProject registers a project in Backlog with no end-date revisions.
func (s *Service) CreateProject(ctx context.Context, in NewProject) (models.Project, error) {
	if err := required("name", in.Name); err != nil {
		return models.Project{}, err
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return models.Project{}, invalid("end date %s is before start date %s",
			in.EndDate.Format(time.DateOnly), in.StartDate.Format(time.DateOnly))
	}

	p := models.Project{
		Name:      in.Name,
		Code:      in.Code,
		Sponsor:   in.Sponsor,
		Manager:   in.Manager,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    models.ProjectBacklog,
		Priority:  in.Priority,
		Scope:     in.Scope,
	}
	if err := s.repo.CreateProject(ctx, &p); err != nil {
		return models.Project{}, fmt.Errorf("portfolio: create project: %w", err)
	}
	s.log.Info("project created", zap.Uint("project_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// GetProject loads one project.
func (s *Service) GetProject(ctx context.Context, id uint) (models.Project, error) {
	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return models.Project{}, fmt.Errorf("portfolio: get project: %w", err)
	}
	return p, nil
}

// EditProject applies an edit. Moving the end date to a different day bumps
// EndDateRevisions by one.
func (s *Service) EditProject(ctx context.Context, id uint, edit ProjectEdit) (models.Project, error) {
	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return models.Project{}, fmt.Errorf("portfolio: edit project: %w", err)
	}

	if edit.Manager != nil {
		p.Manager = *edit.Manager
	}
	if edit.Status != nil {
		if !models.ValidProjectStatus(*edit.Status) {
			return models.Project{}, invalid("unknown project status %q", *edit.Status)
		}
		p.Status = *edit.Status
	}
	if edit.EndDate != nil && !sameDay(p.EndDate, edit.EndDate) {
		end := *edit.EndDate
		p.EndDate = &end
		p.EndDateRevisions++
		s.log.Info("project end date moved",
			zap.Uint("project_id", p.ID),
			zap.Time("end_date", end),
			zap.Int("revisions", p.EndDateRevisions))
	}
	if edit.Archived != nil {
		p.Archived = *edit.Archived
	}

	if err := s.repo.UpdateProject(ctx, &p); err != nil {
		return models.Project{}, fmt.Errorf("portfolio: edit project: %w", err)
	}
	return p, nil
}

// ArchiveProject moves a project to the archive. No other field changes.
func (s *Service) ArchiveProject(ctx context.Context, id uint) error {
	return s.setArchived(ctx, id, true)
}

// RestoreProject brings an archived project back to the active views.
func (s *Service) RestoreProject(ctx context.Context, id uint) error {
	return s.setArchived(ctx, id, false)
}

func (s *Service) setArchived(ctx context.Context, id uint, archived bool) error {
	if err := s.repo.SetArchived(ctx, id, archived); err != nil {
		return fmt.Errorf("portfolio: set archived=%t: %w", archived, err)
	}
	s.log.Info("project archive toggled", zap.Uint("project_id", id), zap.Bool("archived", archived))
	return nil
}

// SaveResults records the gains and lessons learned of a project.
func (s *Service) SaveResults(ctx context.Context, id uint, text string) (models.Project, error) {
	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return models.Project{}, fmt.Errorf("portfolio: save results: %w", err)
	}
	p.ResultsText = text
	if err := s.repo.UpdateProject(ctx, &p); err != nil {
		return models.Project{}, fmt.Errorf("portfolio: save results: %w", err)
	}
	return p, nil
}

// ListProjects returns active or archived projects, optionally for one area.
func (s *Service) ListProjects(ctx context.Context, f ProjectFilter) ([]models.Project, error) {
	all, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("portfolio: list projects: %w", err)
	}
	out := make([]models.Project, 0, len(all))
	for _, p := range all {
		if p.Archived != f.Archived {
			continue
		}
		if f.Sponsor != "" && p.Sponsor != f.Sponsor {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
