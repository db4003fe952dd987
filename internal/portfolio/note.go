package portfolio

import (
	"context"
	"fmt"

	"github.com/zulandar/portfolio/internal/health"
	"github.com/zulandar/portfolio/internal/models"
	"go.uber.org/zap"
)

// NewNote is the input for AddNote.
type NewNote struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	LinkURL     string `json:"link_url"`
}

// AddNote attaches a note (a gap or a documentation link) to a project.
func (s *Service) AddNote(ctx context.Context, projectID uint, in NewNote) (models.Note, error) {
	if err := required("category", in.Category); err != nil {
		return models.Note{}, err
	}
	if err := required("description", in.Description); err != nil {
		return models.Note{}, err
	}
	if _, err := s.repo.GetProject(ctx, projectID); err != nil {
		return models.Note{}, fmt.Errorf("portfolio: add note: %w", err)
	}
	n := models.Note{
		ProjectID:   projectID,
		Category:    in.Category,
		Description: in.Description,
		LinkURL:     in.LinkURL,
		CreatedAt:   s.now(),
	}
	if err := s.repo.CreateNote(ctx, &n); err != nil {
		return models.Note{}, fmt.Errorf("portfolio: add note: %w", err)
	}
	if n.IsGap() {
		s.log.Warn("gap reported", zap.Uint("project_id", projectID), zap.Uint("note_id", n.ID))
	}
	return n, nil
}

// SetNoteLink records an external link (for example a tracker issue) on a note.
func (s *Service) SetNoteLink(ctx context.Context, n models.Note, url string) (models.Note, error) {
	n.LinkURL = url
	if err := s.repo.UpdateNote(ctx, &n); err != nil {
		return models.Note{}, fmt.Errorf("portfolio: set note link: %w", err)
	}
	return n, nil
}

// DeleteNote removes a note. Deleting the last gap note of a project clears
// its gap on the next evaluation.
func (s *Service) DeleteNote(ctx context.Context, id uint) error {
	if err := s.repo.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("portfolio: delete note: %w", err)
	}
	return nil
}

// ListNotes returns the notes of one project.
func (s *Service) ListNotes(ctx context.Context, projectID uint) ([]models.Note, error) {
	notes, err := s.repo.ListNotes(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("portfolio: list notes: %w", err)
	}
	return notes, nil
}

// GapAlert is an open gap on an active project.
type GapAlert struct {
	ProjectID   uint        `json:"project_id"`
	ProjectName string      `json:"project_name"`
	Note        models.Note `json:"note"`
}

// Gaps lists every gap note on an active project, from a fresh snapshot.
func (s *Service) Gaps(ctx context.Context) []GapAlert {
	return gapAlerts(s.Snapshot(ctx))
}

func gapAlerts(snap Snapshot) []GapAlert {
	names := make(map[uint]string)
	for _, p := range snap.Active() {
		names[p.ID] = p.Name
	}
	open := health.OpenGaps(snap.Projects, snap.Notes)
	alerts := []GapAlert{}
	for _, n := range snap.Notes {
		if !n.IsGap() || !open[n.ProjectID] {
			continue
		}
		alerts = append(alerts, GapAlert{ProjectID: n.ProjectID, ProjectName: names[n.ProjectID], Note: n})
	}
	return alerts
}
