// Package portfolio implements the project, task, risk and note operations
// behind the dashboard and CLI, and assembles health overviews from fresh
// snapshots of the store.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zulandar/portfolio/internal/health"
	"github.com/zulandar/portfolio/internal/models"
	"github.com/zulandar/portfolio/internal/store"
	"go.uber.org/zap"
)

// ErrInvalid marks input rejected by validation.
var ErrInvalid = errors.New("portfolio: invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Service is the application layer over a store.Repository.
type Service struct {
	repo   store.Repository
	policy health.Policy
	log    *zap.Logger
	now    func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithPolicy overrides the health thresholds.
func WithPolicy(p health.Policy) Option {
	return func(s *Service) { s.policy = p }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithClock sets the time source used for "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service.
func New(repo store.Repository, opts ...Option) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("portfolio: repository is required")
	}
	s := &Service{
		repo:   repo,
		policy: health.DefaultPolicy(),
		log:    zap.NewNop(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Today returns the service clock's current date.
func (s *Service) Today() time.Time { return s.now() }

// Policy returns the active health thresholds.
func (s *Service) Policy() health.Policy { return s.policy }

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return invalid("%s is required", field)
	}
	return nil
}

// Snapshot is a point-in-time read of every portfolio collection.
type Snapshot struct {
	Projects []models.Project
	Tasks    []models.Task
	Risks    []models.Risk
	Notes    []models.Note
}

// Snapshot loads all collections. A failed read is logged and replaced by an
// empty slice so callers always get something to evaluate.
func (s *Service) Snapshot(ctx context.Context) Snapshot {
	var snap Snapshot
	var err error

	if snap.Projects, err = s.repo.ListProjects(ctx); err != nil {
		s.log.Warn("snapshot: projects unavailable", zap.Error(err))
		snap.Projects = []models.Project{}
	}
	if snap.Tasks, err = s.repo.ListTasks(ctx); err != nil {
		s.log.Warn("snapshot: tasks unavailable", zap.Error(err))
		snap.Tasks = []models.Task{}
	}
	if snap.Risks, err = s.repo.ListRisks(ctx); err != nil {
		s.log.Warn("snapshot: risks unavailable", zap.Error(err))
		snap.Risks = []models.Risk{}
	}
	if snap.Notes, err = s.repo.ListNotes(ctx); err != nil {
		s.log.Warn("snapshot: notes unavailable", zap.Error(err))
		snap.Notes = []models.Note{}
	}
	return snap
}

// Active returns the non-archived projects of the snapshot.
func (snap Snapshot) Active() []models.Project {
	out := make([]models.Project, 0, len(snap.Projects))
	for _, p := range snap.Projects {
		if !p.Archived {
			out = append(out, p)
		}
	}
	return out
}

// TasksByProject groups the snapshot's tasks by project id.
func (snap Snapshot) TasksByProject() map[uint][]models.Task {
	m := make(map[uint][]models.Task)
	for _, t := range snap.Tasks {
		m[t.ProjectID] = append(m[t.ProjectID], t)
	}
	return m
}

// RisksByProject groups the snapshot's risks by project id.
func (snap Snapshot) RisksByProject() map[uint][]models.Risk {
	m := make(map[uint][]models.Risk)
	for _, r := range snap.Risks {
		m[r.ProjectID] = append(m[r.ProjectID], r)
	}
	return m
}
