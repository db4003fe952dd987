package portfolio

import (
	"context"
	"sort"
	"time"

	"github.com/zulandar/portfolio/internal/health"
	"github.com/zulandar/portfolio/internal/models"
)

// ProjectHealth is one row of the executive table.
type ProjectHealth struct {
	Project     models.Project `json:"project"`
	Health      health.Result  `json:"health"`
	TimeElapsed int            `json:"time_elapsed"`
	HasGap      bool           `json:"has_gap"`
	TaskCount   int            `json:"task_count"`
}

// LateTask is a late task joined with its project name.
type LateTask struct {
	Task        models.Task `json:"task"`
	ProjectName string      `json:"project_name"`
}

// StatusCount is the number of projects in one status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Overview is the executive dashboard for the active portfolio.
type Overview struct {
	Date     time.Time       `json:"date"`
	Sponsor  string          `json:"sponsor,omitempty"`
	Total    int             `json:"total"`
	Critical int             `json:"critical"`
	Healthy  int             `json:"healthy"`
	Projects []ProjectHealth `json:"projects"`
	Late     []LateTask      `json:"late_tasks"`
	Gaps     []GapAlert      `json:"gaps"`
	ByStatus []StatusCount   `json:"by_status"`
	Areas    []string        `json:"areas"`
}

// Attention returns how many projects are neither healthy nor critical.
func (o Overview) Attention() int {
	return o.Total - o.Critical - o.Healthy
}

// Overview evaluates every active project, optionally narrowed to one
// sponsor area. Late tasks and gap alerts always cover the whole active
// portfolio.
func (s *Service) Overview(ctx context.Context, sponsor string) Overview {
	snap := s.Snapshot(ctx)
	today := s.now()

	active := snap.Active()
	gaps := health.OpenGaps(snap.Projects, snap.Notes)
	tasks := snap.TasksByProject()
	risks := snap.RisksByProject()

	ov := Overview{
		Date:     today,
		Sponsor:  sponsor,
		Projects: []ProjectHealth{},
		Late:     []LateTask{},
		Gaps:     gapAlerts(snap),
		ByStatus: []StatusCount{},
		Areas:    areas(active),
	}

	statusCount := make(map[string]int)
	for _, p := range active {
		if sponsor != "" && p.Sponsor != sponsor {
			continue
		}
		res := s.policy.Evaluate(p, tasks[p.ID], risks[p.ID], gaps[p.ID], today)
		ov.Projects = append(ov.Projects, ProjectHealth{
			Project:     p,
			Health:      res,
			TimeElapsed: health.TimeElapsed(p, today),
			HasGap:      gaps[p.ID],
			TaskCount:   len(tasks[p.ID]),
		})
		switch res.Tier {
		case health.Critical:
			ov.Critical++
		case health.Healthy:
			ov.Healthy++
		}
		statusCount[p.Status]++
	}
	ov.Total = len(ov.Projects)

	for _, st := range models.ProjectStatuses {
		if n := statusCount[st]; n > 0 {
			ov.ByStatus = append(ov.ByStatus, StatusCount{Status: st, Count: n})
			delete(statusCount, st)
		}
	}
	// Statuses written outside the known set still show up, sorted by name.
	rest := make([]string, 0, len(statusCount))
	for st := range statusCount {
		rest = append(rest, st)
	}
	sort.Strings(rest)
	for _, st := range rest {
		ov.ByStatus = append(ov.ByStatus, StatusCount{Status: st, Count: statusCount[st]})
	}

	for _, p := range active {
		for _, t := range tasks[p.ID] {
			if health.IsLate(t, today) {
				ov.Late = append(ov.Late, LateTask{Task: t, ProjectName: p.Name})
			}
		}
	}
	return ov
}

func areas(projects []models.Project) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, p := range projects {
		if p.Sponsor == "" || seen[p.Sponsor] {
			continue
		}
		seen[p.Sponsor] = true
		out = append(out, p.Sponsor)
	}
	sort.Strings(out)
	return out
}

// GanttBar is one task bar on the timeline.
type GanttBar struct {
	TaskID      uint       `json:"task_id"`
	Title       string     `json:"title"`
	ProjectName string     `json:"project_name"`
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
}

// Gantt returns the task bars of every active project, ordered by project
// and then by start date. Tasks without dates are skipped.
func (s *Service) Gantt(ctx context.Context) []GanttBar {
	snap := s.Snapshot(ctx)
	names := make(map[uint]string)
	for _, p := range snap.Active() {
		names[p.ID] = p.Name
	}

	bars := []GanttBar{}
	for _, t := range snap.Tasks {
		name, ok := names[t.ProjectID]
		if !ok || t.StartDate == nil || t.EndDate == nil {
			continue
		}
		bars = append(bars, GanttBar{
			TaskID:      t.ID,
			Title:       t.Title,
			ProjectName: name,
			Start:       t.StartDate,
			End:         t.EndDate,
			Status:      t.Status,
			Progress:    t.Progress,
		})
	}
	sort.SliceStable(bars, func(i, j int) bool {
		if bars[i].ProjectName != bars[j].ProjectName {
			return bars[i].ProjectName < bars[j].ProjectName
		}
		return bars[i].Start.Before(*bars[j].Start)
	})
	return bars
}

// CalendarEvent marks a project deadline.
type CalendarEvent struct {
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	ProjectID uint      `json:"project_id"`
	Color     string    `json:"color"`
}

// Calendar returns one deadline event per active project with an end date,
// coloured by the project's health tier.
func (s *Service) Calendar(ctx context.Context) []CalendarEvent {
	snap := s.Snapshot(ctx)
	today := s.now()
	gaps := health.OpenGaps(snap.Projects, snap.Notes)
	tasks := snap.TasksByProject()

	events := []CalendarEvent{}
	for _, p := range snap.Active() {
		if p.EndDate == nil {
			continue
		}
		tier := s.policy.Classify(p, tasks[p.ID], gaps[p.ID], today)
		events = append(events, CalendarEvent{
			Title:     "Fim: " + p.Name,
			Date:      *p.EndDate,
			ProjectID: p.ID,
			Color:     tier.Color(),
		})
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events
}
