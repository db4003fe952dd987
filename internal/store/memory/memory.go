// Package memory implements store.Repository with in-process maps. It backs
// tests and throwaway demo instances.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/zulandar/portfolio/internal/models"
	"github.com/zulandar/portfolio/internal/store"
)

// Store is a concurrency-safe in-memory repository.
type Store struct {
	mu sync.RWMutex

	projects map[uint]models.Project
	tasks    map[uint]models.Task
	risks    map[uint]models.Risk
	notes    map[uint]models.Note
	sponsors map[string]models.Sponsor
	team     map[uint]models.TeamMember

	nextProject, nextTask, nextRisk, nextNote, nextMember uint
}

var _ store.Repository = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{
		projects:    make(map[uint]models.Project),
		tasks:       make(map[uint]models.Task),
		risks:       make(map[uint]models.Risk),
		notes:       make(map[uint]models.Note),
		sponsors:    make(map[string]models.Sponsor),
		team:        make(map[uint]models.TeamMember),
		nextProject: 1,
		nextTask:    1,
		nextRisk:    1,
		nextNote:    1,
		nextMember:  1,
	}
}

func notFound(kind string, id uint) error {
	return fmt.Errorf("memory: %s %d: %w", kind, id, store.ErrNotFound)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneProject(p models.Project) models.Project {
	p.StartDate = copyTime(p.StartDate)
	p.EndDate = copyTime(p.EndDate)
	return p
}

func cloneTask(t models.Task) models.Task {
	t.StartDate = copyTime(t.StartDate)
	t.EndDate = copyTime(t.EndDate)
	return t
}

// idSet turns a variadic id filter into a lookup; nil means "all".
func idSet(ids []uint) map[uint]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, cloneProject(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetProject(ctx context.Context, id uint) (models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return models.Project{}, notFound("project", id)
	}
	return cloneProject(p), nil
}

func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	p.ID = s.nextProject
	p.CreatedAt, p.UpdatedAt = now, now
	s.nextProject++
	s.projects[p.ID] = cloneProject(*p)
	return nil
}

func (s *Store) UpdateProject(ctx context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.projects[p.ID]
	if !ok {
		return notFound("project", p.ID)
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	s.projects[p.ID] = cloneProject(*p)
	return nil
}

func (s *Store) SetArchived(ctx context.Context, id uint, archived bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return notFound("project", id)
	}
	p.Archived = archived
	s.projects[id] = p
	return nil
}

func (s *Store) ListTasks(ctx context.Context, projectIDs ...uint) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filter := idSet(projectIDs)
	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter == nil || filter[t.ProjectID] {
			out = append(out, cloneTask(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetTask(ctx context.Context, id uint) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return models.Task{}, notFound("task", id)
	}
	return cloneTask(t), nil
}

func (s *Store) CreateTask(ctx context.Context, t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.nextTask
	s.nextTask++
	s.tasks[t.ID] = cloneTask(*t)
	return nil
}

func (s *Store) UpdateTask(ctx context.Context, t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[t.ID]; !ok {
		return notFound("task", t.ID)
	}
	s.tasks[t.ID] = cloneTask(*t)
	return nil
}

func (s *Store) ListRisks(ctx context.Context, projectIDs ...uint) ([]models.Risk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filter := idSet(projectIDs)
	out := make([]models.Risk, 0, len(s.risks))
	for _, r := range s.risks {
		if filter == nil || filter[r.ProjectID] {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateRisk(ctx context.Context, r *models.Risk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.nextRisk
	s.nextRisk++
	s.risks[r.ID] = *r
	return nil
}

func (s *Store) DeleteRisk(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.risks[id]; !ok {
		return notFound("risk", id)
	}
	delete(s.risks, id)
	return nil
}

func (s *Store) ListNotes(ctx context.Context, projectIDs ...uint) ([]models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filter := idSet(projectIDs)
	out := make([]models.Note, 0, len(s.notes))
	for _, n := range s.notes {
		if filter == nil || filter[n.ProjectID] {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateNote(ctx context.Context, n *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n.ID = s.nextNote
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	s.nextNote++
	s.notes[n.ID] = *n
	return nil
}

func (s *Store) UpdateNote(ctx context.Context, n *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[n.ID]; !ok {
		return notFound("note", n.ID)
	}
	s.notes[n.ID] = *n
	return nil
}

func (s *Store) DeleteNote(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return notFound("note", id)
	}
	delete(s.notes, id)
	return nil
}

func (s *Store) ListSponsors(ctx context.Context) ([]models.Sponsor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Sponsor, 0, len(s.sponsors))
	for _, sp := range s.sponsors {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CreateSponsor is idempotent on name.
func (s *Store) CreateSponsor(ctx context.Context, sp *models.Sponsor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sponsors[sp.Name] = *sp
	return nil
}

func (s *Store) ListTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.TeamMember, 0, len(s.team))
	for _, m := range s.team {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateTeamMember(ctx context.Context, m *models.TeamMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = s.nextMember
	s.nextMember++
	s.team[m.ID] = *m
	return nil
}
