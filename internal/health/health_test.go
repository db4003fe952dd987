package health

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/zulandar/portfolio/internal/models"
)

var today = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

func dayOffset(n int) *time.Time {
	d := today.AddDate(0, 0, n)
	return &d
}

func task(status string, progress int, end *time.Time) models.Task {
	return models.Task{Status: status, Progress: progress, EndDate: end}
}

func TestAggregateProgress(t *testing.T) {
	tests := []struct {
		name  string
		tasks []models.Task
		want  int
	}{
		{name: "empty", tasks: nil, want: 0},
		{name: "single", tasks: []models.Task{task(models.TaskDoing, 40, nil)}, want: 40},
		{
			name: "mean truncates",
			tasks: []models.Task{
				task(models.TaskDone, 100, nil),
				task(models.TaskDone, 100, nil),
				task(models.TaskDoing, 50, nil),
				task(models.TaskTodo, 0, nil),
			},
			want: 62,
		},
		{
			name:  "out of range accepted",
			tasks: []models.Task{task(models.TaskDoing, 150, nil), task(models.TaskDoing, 50, nil)},
			want:  100,
		},
		{
			name:  "all done",
			tasks: []models.Task{task(models.TaskDone, 100, nil), task(models.TaskDone, 100, nil)},
			want:  100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AggregateProgress(tt.tasks); got != tt.want {
				t.Errorf("AggregateProgress() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsLate(t *testing.T) {
	tests := []struct {
		name string
		task models.Task
		want bool
	}{
		{name: "done in the past", task: task(models.TaskDone, 100, dayOffset(-10)), want: false},
		{name: "no end date", task: task(models.TaskDoing, 10, nil), want: false},
		{name: "due today", task: task(models.TaskDoing, 10, dayOffset(0)), want: false},
		{name: "due tomorrow", task: task(models.TaskTodo, 0, dayOffset(1)), want: false},
		{name: "doing yesterday", task: task(models.TaskDoing, 10, dayOffset(-1)), want: true},
		{name: "blocked long ago", task: task(models.TaskBlocked, 10, dayOffset(-30)), want: true},
		{name: "todo yesterday", task: task(models.TaskTodo, 0, dayOffset(-1)), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLate(tt.task, today); got != tt.want {
				t.Errorf("IsLate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsLate_EarlierHourSameDay(t *testing.T) {
	end := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if IsLate(task(models.TaskDoing, 0, &end), today) {
		t.Error("task due earlier on the same calendar day should not be late")
	}
}

func TestClassify(t *testing.T) {
	inProgress := models.Project{Status: models.ProjectInProgress}
	atRisk := models.Project{Status: models.ProjectAtRisk}
	done := []models.Task{
		task(models.TaskDone, 100, dayOffset(-5)),
		task(models.TaskDone, 100, dayOffset(-3)),
	}

	tests := []struct {
		name    string
		project models.Project
		tasks   []models.Task
		gap     bool
		want    Tier
	}{
		{name: "gap overrides full progress", project: inProgress, tasks: done, gap: true, want: Critical},
		{name: "em risco overrides full progress", project: atRisk, tasks: done, want: Critical},
		{name: "healthy", project: models.Project{Status: models.ProjectCompleted}, tasks: done, want: Healthy},
		{
			name:    "below high-water mark",
			project: inProgress,
			tasks: []models.Task{
				task(models.TaskDone, 100, nil),
				task(models.TaskDone, 100, nil),
				task(models.TaskDoing, 50, nil),
				task(models.TaskTodo, 0, nil),
			},
			want: Attention,
		},
		{name: "no tasks", project: models.Project{Status: models.ProjectBacklog}, want: Attention},
		{
			name:    "one late of three is attention",
			project: inProgress,
			tasks: []models.Task{
				task(models.TaskDoing, 90, dayOffset(-1)),
				task(models.TaskDone, 100, nil),
				task(models.TaskDone, 100, nil),
			},
			want: Attention,
		},
		{
			name:    "half late is attention",
			project: inProgress,
			tasks: []models.Task{
				task(models.TaskDoing, 90, dayOffset(-1)),
				task(models.TaskDone, 100, nil),
			},
			want: Attention,
		},
		{
			name:    "majority late is critical",
			project: inProgress,
			tasks: []models.Task{
				task(models.TaskDoing, 90, dayOffset(-1)),
				task(models.TaskBlocked, 90, dayOffset(-2)),
				task(models.TaskDone, 100, nil),
			},
			want: Critical,
		},
		{
			name:    "exactly at mark",
			project: inProgress,
			tasks:   []models.Task{task(models.TaskDoing, 80, dayOffset(3))},
			want:    Healthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.project, tt.tasks, tt.gap, today); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPolicy_CustomThreshold(t *testing.T) {
	p := Policy{HealthyProgress: 50}
	tasks := []models.Task{task(models.TaskDoing, 60, nil)}
	if got := p.Classify(models.Project{}, tasks, false, today); got != Healthy {
		t.Errorf("Classify() = %s, want healthy with 50%% mark", got)
	}
	if got := DefaultPolicy().Classify(models.Project{}, tasks, false, today); got != Attention {
		t.Errorf("default Classify() = %s, want attention", got)
	}
}

func TestEvaluate_Scenarios(t *testing.T) {
	t.Run("mixed progress", func(t *testing.T) {
		p := models.Project{Status: models.ProjectInProgress}
		tasks := []models.Task{
			task(models.TaskDone, 100, nil),
			task(models.TaskDone, 100, nil),
			task(models.TaskDoing, 50, dayOffset(5)),
			task(models.TaskTodo, 0, dayOffset(9)),
		}
		got := Evaluate(p, tasks, nil, false, today)
		want := Result{ProgressPct: 62, LateTaskCount: 0, Tier: Attention}
		if got != want {
			t.Errorf("Evaluate() = %+v, want %+v", got, want)
		}
	})

	t.Run("empty project", func(t *testing.T) {
		got := Evaluate(models.Project{Status: models.ProjectBacklog}, nil, nil, false, today)
		want := Result{ProgressPct: 0, LateTaskCount: 0, Tier: Attention}
		if got != want {
			t.Errorf("Evaluate() = %+v, want %+v", got, want)
		}
	})

	t.Run("completed with past done tasks", func(t *testing.T) {
		p := models.Project{Status: models.ProjectCompleted}
		tasks := []models.Task{
			task(models.TaskDone, 100, dayOffset(-20)),
			task(models.TaskDone, 100, dayOffset(-10)),
		}
		got := Evaluate(p, tasks, nil, false, today)
		want := Result{ProgressPct: 100, LateTaskCount: 0, Tier: Healthy}
		if got != want {
			t.Errorf("Evaluate() = %+v, want %+v", got, want)
		}
	})

	t.Run("progress output clamped", func(t *testing.T) {
		tasks := []models.Task{task(models.TaskDoing, 300, nil)}
		got := Evaluate(models.Project{}, tasks, nil, false, today)
		if got.ProgressPct != 100 {
			t.Errorf("ProgressPct = %d, want 100", got.ProgressPct)
		}
	})

	t.Run("open risks counted", func(t *testing.T) {
		risks := []models.Risk{
			{Status: models.RiskActive},
			{Status: ""},
			{Status: "Mitigado"},
		}
		got := Evaluate(models.Project{}, nil, risks, false, today)
		if got.OpenRiskCount != 2 {
			t.Errorf("OpenRiskCount = %d, want 2", got.OpenRiskCount)
		}
		if got.Tier != Attention {
			t.Errorf("risks must not change the tier, got %s", got.Tier)
		}
	})
}

func TestOpenGaps(t *testing.T) {
	projects := []models.Project{
		{ID: 1, Name: "active"},
		{ID: 2, Name: "archived", Archived: true},
		{ID: 3, Name: "clean"},
	}
	notes := []models.Note{
		{ProjectID: 1, Category: "Gap"},
		{ProjectID: 1, Category: "Gap"},
		{ProjectID: 2, Category: "Gap"},
		{ProjectID: 3, Category: "Link"},
		{ProjectID: 99, Category: "Gap crítico"},
	}

	gaps := OpenGaps(projects, notes)
	if len(gaps) != 1 {
		t.Fatalf("len(gaps) = %d, want 1: %v", len(gaps), gaps)
	}
	if !gaps[1] {
		t.Error("project 1 should have an open gap")
	}
	if gaps[2] {
		t.Error("archived project must not raise a gap alert")
	}
}

func TestOpenGaps_Empty(t *testing.T) {
	if gaps := OpenGaps(nil, nil); len(gaps) != 0 {
		t.Errorf("OpenGaps(nil, nil) = %v, want empty", gaps)
	}
}

func TestTimeElapsed(t *testing.T) {
	tests := []struct {
		name       string
		start, end *time.Time
		want       int
	}{
		{name: "no dates", want: 0},
		{name: "missing end", start: dayOffset(-5), want: 0},
		{name: "halfway", start: dayOffset(-5), end: dayOffset(5), want: 50},
		{name: "not started", start: dayOffset(2), end: dayOffset(12), want: 0},
		{name: "overrun", start: dayOffset(-20), end: dayOffset(-10), want: 100},
		{name: "inverted window", start: dayOffset(5), end: dayOffset(-5), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.Project{StartDate: tt.start, EndDate: tt.end}
			if got := TimeElapsed(p, today); got != tt.want {
				t.Errorf("TimeElapsed() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTier_Presentation(t *testing.T) {
	for _, tier := range Tiers {
		if tier.Label() == "" || tier.Color() == "" || tier.Icon() == "" {
			t.Errorf("tier %s is missing presentation data", tier)
		}
	}
	if !(Healthy < Attention && Attention < Critical) {
		t.Error("tiers must be ordered healthy < attention < critical")
	}
}

func TestTier_JSON(t *testing.T) {
	data, err := json.Marshal(Result{Tier: Critical})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `"tier":"critical"`; !strings.Contains(string(data), want) {
		t.Errorf("json = %s, want to contain %s", data, want)
	}

	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.Tier != Critical {
		t.Errorf("Tier = %s, want critical", r.Tier)
	}

	if _, err := ParseTier("bogus"); err == nil {
		t.Error("ParseTier(bogus) should fail")
	}
}
