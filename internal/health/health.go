// Package health derives progress, lateness and a health tier for projects.
//
// Everything here is a pure function of its inputs. Callers load the
// snapshot, compute the open-gap set with OpenGaps and then evaluate each
// project; nothing is cached between calls.
package health

import (
	"time"

	"github.com/zulandar/portfolio/internal/models"
)

// DefaultHealthyProgress is the aggregate progress a project needs to be healthy.
const DefaultHealthyProgress = 80

// Policy holds the thresholds used by Classify.
type Policy struct {
	// HealthyProgress is the minimum aggregate progress for the Healthy tier.
	HealthyProgress int
}

// DefaultPolicy returns the standard thresholds.
func DefaultPolicy() Policy {
	return Policy{HealthyProgress: DefaultHealthyProgress}
}

// Result is the evaluation of a single project.
type Result struct {
	ProgressPct   int  `json:"progress_pct"`
	LateTaskCount int  `json:"late_task_count"`
	Tier          Tier `json:"tier"`
	OpenRiskCount int  `json:"open_risk_count"`
}

// AggregateProgress returns the mean task progress, truncated to an integer.
// An empty task list yields 0. Values are not validated.
func AggregateProgress(tasks []models.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	sum := 0
	for _, t := range tasks {
		sum += t.Progress
	}
	return sum / len(tasks)
}

// IsLate reports whether a task is past its end date and not done.
// The comparison is by calendar day; a task due today is not late.
func IsLate(task models.Task, today time.Time) bool {
	if task.Status == models.TaskDone || task.EndDate == nil {
		return false
	}
	return day(*task.EndDate).Before(day(today))
}

// LateCount returns how many tasks are late on today.
func LateCount(tasks []models.Task, today time.Time) int {
	n := 0
	for _, t := range tasks {
		if IsLate(t, today) {
			n++
		}
	}
	return n
}

// Classify assigns a tier to a project.
//
// Critical: an open gap, a manual "Em Risco" status, or a strict majority of
// late tasks. Healthy: progress at or above the policy mark with no late
// tasks, no gap and no "Em Risco" status. Everything else is Attention.
func (p Policy) Classify(project models.Project, tasks []models.Task, hasGap bool, today time.Time) Tier {
	return p.classify(project, AggregateProgress(tasks), LateCount(tasks, today), len(tasks), hasGap)
}

func (p Policy) classify(project models.Project, progress, late, total int, hasGap bool) Tier {
	atRisk := project.Status == models.ProjectAtRisk
	if hasGap || atRisk || (total > 0 && late*2 > total) {
		return Critical
	}
	if progress >= p.HealthyProgress && late == 0 {
		return Healthy
	}
	return Attention
}

// Evaluate computes the full Result for one project. tasks and risks must
// already be filtered to the project.
func (p Policy) Evaluate(project models.Project, tasks []models.Task, risks []models.Risk, hasGap bool, today time.Time) Result {
	progress := AggregateProgress(tasks)
	late := LateCount(tasks, today)
	return Result{
		ProgressPct:   models.ClampProgress(progress),
		LateTaskCount: late,
		Tier:          p.classify(project, progress, late, len(tasks), hasGap),
		OpenRiskCount: openRisks(risks),
	}
}

// Classify uses DefaultPolicy.
func Classify(project models.Project, tasks []models.Task, hasGap bool, today time.Time) Tier {
	return DefaultPolicy().Classify(project, tasks, hasGap, today)
}

// Evaluate uses DefaultPolicy.
func Evaluate(project models.Project, tasks []models.Task, risks []models.Risk, hasGap bool, today time.Time) Result {
	return DefaultPolicy().Evaluate(project, tasks, risks, hasGap, today)
}

// OpenGaps returns the ids of active projects that have at least one gap note.
// Notes pointing at archived or unknown projects are ignored.
func OpenGaps(projects []models.Project, notes []models.Note) map[uint]bool {
	active := make(map[uint]bool, len(projects))
	for _, p := range projects {
		if !p.Archived {
			active[p.ID] = true
		}
	}
	gaps := make(map[uint]bool)
	for _, n := range notes {
		if n.IsGap() && active[n.ProjectID] {
			gaps[n.ProjectID] = true
		}
	}
	return gaps
}

// TimeElapsed returns the share of the project's planned window that has
// passed on today, as a 0..100 percentage. Projects without both dates or
// with a non-positive window report 0.
func TimeElapsed(project models.Project, today time.Time) int {
	if project.StartDate == nil || project.EndDate == nil {
		return 0
	}
	start, end := day(*project.StartDate), day(*project.EndDate)
	total := end.Sub(start).Hours() / 24
	if total <= 0 {
		return 0
	}
	elapsed := day(today).Sub(start).Hours() / 24
	return models.ClampProgress(int(elapsed / total * 100))
}

func openRisks(risks []models.Risk) int {
	n := 0
	for _, r := range risks {
		if r.Status == "" || r.Status == models.RiskActive {
			n++
		}
	}
	return n
}

// day truncates t to midnight UTC of its own calendar date.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
