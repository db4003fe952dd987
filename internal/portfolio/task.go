package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/zulandar/portfolio/internal/health"
	"github.com/zulandar/portfolio/internal/models"
	"go.uber.org/zap"
)

// NewTask is the input for CreateTask.
type NewTask struct {
	ProjectID uint       `json:"project_id"`
	Title     string     `json:"title"`
	Owner     string     `json:"owner"`
	EndDate   *time.Time `json:"end_date"`
	Priority  string     `json:"priority"`
	Effort    int        `json:"effort"`
}

// CreateTask adds a task in "A fazer" with progress 0, starting today.
func (s *Service) CreateTask(ctx context.Context, in NewTask) (models.Task, error) {
	if err := required("title", in.Title); err != nil {
		return models.Task{}, err
	}
	if _, err := s.repo.GetProject(ctx, in.ProjectID); err != nil {
		return models.Task{}, fmt.Errorf("portfolio: create task: %w", err)
	}
	if in.Effort < 0 {
		return models.Task{}, invalid("effort must not be negative")
	}

	start := s.now()
	t := models.Task{
		ProjectID: in.ProjectID,
		Title:     in.Title,
		Owner:     in.Owner,
		StartDate: &start,
		EndDate:   in.EndDate,
		Status:    models.TaskTodo,
		Priority:  in.Priority,
		Effort:    in.Effort,
		Progress:  0,
	}
	if err := s.repo.CreateTask(ctx, &t); err != nil {
		return models.Task{}, fmt.Errorf("portfolio: create task: %w", err)
	}
	s.log.Info("task created", zap.Uint("task_id", t.ID), zap.Uint("project_id", t.ProjectID))
	return t, nil
}

// MoveTask changes a task's status. Moving to "Feito" forces progress 100 and
// moving to "A fazer" forces 0; otherwise progress, when given, is clamped
// and stored.
func (s *Service) MoveTask(ctx context.Context, id uint, status string, progress *int) (models.Task, error) {
	if !models.ValidTaskStatus(status) {
		return models.Task{}, invalid("unknown task status %q", status)
	}
	t, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return models.Task{}, fmt.Errorf("portfolio: move task: %w", err)
	}

	from := t.Status
	t.Status = status
	switch {
	case status == models.TaskDone:
		t.Progress = 100
	case status == models.TaskTodo:
		t.Progress = 0
	case progress != nil:
		t.Progress = models.ClampProgress(*progress)
	}

	if err := s.repo.UpdateTask(ctx, &t); err != nil {
		return models.Task{}, fmt.Errorf("portfolio: move task: %w", err)
	}
	s.log.Debug("task moved",
		zap.Uint("task_id", t.ID),
		zap.String("from", from),
		zap.String("to", t.Status),
		zap.Int("progress", t.Progress))
	return t, nil
}

// ReopenTask puts a task back in progress at 50%.
func (s *Service) ReopenTask(ctx context.Context, id uint) (models.Task, error) {
	half := 50
	return s.MoveTask(ctx, id, models.TaskDoing, &half)
}

// ListTasks returns the tasks of one project.
func (s *Service) ListTasks(ctx context.Context, projectID uint) ([]models.Task, error) {
	tasks, err := s.repo.ListTasks(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("portfolio: list tasks: %w", err)
	}
	return tasks, nil
}

// KanbanCard is a task on the board.
type KanbanCard struct {
	Task models.Task `json:"task"`
	Late bool        `json:"late"`
}

// KanbanColumn holds the cards of one status.
type KanbanColumn struct {
	Status string       `json:"status"`
	Cards  []KanbanCard `json:"cards"`
}

// KanbanBoard groups a project's tasks into one column per status, in
// models.TaskStatuses order. Tasks with an unknown status are left off.
func (s *Service) KanbanBoard(ctx context.Context, projectID uint) ([]KanbanColumn, error) {
	if _, err := s.repo.GetProject(ctx, projectID); err != nil {
		return nil, fmt.Errorf("portfolio: kanban: %w", err)
	}
	tasks, err := s.repo.ListTasks(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("portfolio: kanban: %w", err)
	}

	today := s.now()
	cols := make([]KanbanColumn, len(models.TaskStatuses))
	idx := make(map[string]int, len(models.TaskStatuses))
	for i, st := range models.TaskStatuses {
		cols[i] = KanbanColumn{Status: st, Cards: []KanbanCard{}}
		idx[st] = i
	}
	for _, t := range tasks {
		i, ok := idx[t.Status]
		if !ok {
			continue
		}
		cols[i].Cards = append(cols[i].Cards, KanbanCard{Task: t, Late: health.IsLate(t, today)})
	}
	return cols, nil
}
