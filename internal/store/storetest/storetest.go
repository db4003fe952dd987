// Package storetest holds the behavioural contract every store.Repository
// implementation must satisfy.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zulandar/portfolio/internal/models"
	"github.com/zulandar/portfolio/internal/store"
)

// Run exercises repo against the repository contract. newRepo must return an
// empty repository on every call.
func Run(t *testing.T, newRepo func(t *testing.T) store.Repository) {
	t.Run("ProjectLifecycle", func(t *testing.T) { testProjectLifecycle(t, newRepo(t)) })
	t.Run("ArchiveOnlyTouchesFlag", func(t *testing.T) { testArchive(t, newRepo(t)) })
	t.Run("NotFound", func(t *testing.T) { testNotFound(t, newRepo(t)) })
	t.Run("NoOpUpdates", func(t *testing.T) { testNoOpUpdates(t, newRepo(t)) })
	t.Run("TasksFilteredByProject", func(t *testing.T) { testTasks(t, newRepo(t)) })
	t.Run("RisksAndNotes", func(t *testing.T) { testRisksAndNotes(t, newRepo(t)) })
	t.Run("SponsorsAndTeam", func(t *testing.T) { testSponsorsAndTeam(t, newRepo(t)) })
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func testProjectLifecycle(t *testing.T, repo store.Repository) {
	ctx := context.Background()

	p := models.Project{
		Name:      "ERP rollout",
		Sponsor:   "TI",
		Manager:   "Ana",
		StartDate: date(2026, 1, 5),
		EndDate:   date(2026, 6, 30),
		Status:    models.ProjectBacklog,
	}
	if err := repo.CreateProject(ctx, &p); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("CreateProject did not assign an id")
	}

	second := models.Project{Name: "Warehouse", Status: models.ProjectBacklog}
	if err := repo.CreateProject(ctx, &second); err != nil {
		t.Fatalf("CreateProject second: %v", err)
	}
	if second.ID <= p.ID {
		t.Errorf("ids must be increasing: first=%d second=%d", p.ID, second.ID)
	}

	got, err := repo.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.Name != "ERP rollout" || got.Manager != "Ana" || !sameDay(got.EndDate, p.EndDate) {
		t.Errorf("GetProject = %+v", got)
	}

	got.Manager = "Bruno"
	got.Status = models.ProjectInProgress
	got.EndDateRevisions = 0
	got.Priority = ""
	if err := repo.UpdateProject(ctx, &got); err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}

	reloaded, err := repo.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProject after update: %v", err)
	}
	if reloaded.Manager != "Bruno" || reloaded.Status != models.ProjectInProgress {
		t.Errorf("update not persisted: %+v", reloaded)
	}

	all, err := repo.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len(ListProjects) = %d, want 2", len(all))
	}
}

func testArchive(t *testing.T, repo store.Repository) {
	ctx := context.Background()

	p := models.Project{
		Name:             "CRM",
		Manager:          "Carla",
		StartDate:        date(2026, 2, 1),
		EndDate:          date(2026, 9, 1),
		Status:           models.ProjectInProgress,
		EndDateRevisions: 3,
	}
	if err := repo.CreateProject(ctx, &p); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	if err := repo.SetArchived(ctx, p.ID, true); err != nil {
		t.Fatalf("SetArchived(true): %v", err)
	}
	archived, _ := repo.GetProject(ctx, p.ID)
	if !archived.Archived {
		t.Fatal("project should be archived")
	}

	if err := repo.SetArchived(ctx, p.ID, false); err != nil {
		t.Fatalf("SetArchived(false): %v", err)
	}
	restored, _ := repo.GetProject(ctx, p.ID)
	if restored.Archived {
		t.Error("project should be restored")
	}
	if restored.Manager != p.Manager || restored.Status != p.Status ||
		restored.EndDateRevisions != 3 ||
		!sameDay(restored.StartDate, p.StartDate) || !sameDay(restored.EndDate, p.EndDate) {
		t.Errorf("archive round-trip changed other fields: before=%+v after=%+v", p, restored)
	}
}

func testNotFound(t *testing.T, repo store.Repository) {
	ctx := context.Background()

	if _, err := repo.GetProject(ctx, 404); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetProject(404) err = %v, want ErrNotFound", err)
	}
	if _, err := repo.GetTask(ctx, 404); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetTask(404) err = %v, want ErrNotFound", err)
	}
	if err := repo.SetArchived(ctx, 404, true); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("SetArchived(404) err = %v, want ErrNotFound", err)
	}
	if err := repo.UpdateProject(ctx, &models.Project{ID: 404, Name: "ghost"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("UpdateProject(404) err = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteRisk(ctx, 404); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("DeleteRisk(404) err = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteNote(ctx, 404); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("DeleteNote(404) err = %v, want ErrNotFound", err)
	}
}

// testNoOpUpdates checks that writing unchanged values to an existing row
// succeeds instead of reporting ErrNotFound.
func testNoOpUpdates(t *testing.T, repo store.Repository) {
	ctx := context.Background()

	p := models.Project{Name: "ERP", Status: models.ProjectInProgress}
	if err := repo.CreateProject(ctx, &p); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := repo.SetArchived(ctx, p.ID, true); err != nil {
			t.Fatalf("SetArchived(true) #%d: %v", i+1, err)
		}
	}

	tk := models.Task{ProjectID: p.ID, Title: "Deploy", Status: models.TaskDone, Progress: 100}
	if err := repo.CreateTask(ctx, &tk); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := repo.UpdateTask(ctx, &tk); err != nil {
			t.Fatalf("UpdateTask #%d: %v", i+1, err)
		}
	}

	n := models.Note{ProjectID: p.ID, Category: models.NoteGap, Description: "sem acesso", LinkURL: "https://x/1"}
	if err := repo.CreateNote(ctx, &n); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if err := repo.UpdateNote(ctx, &n); err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}

	if err := repo.UpdateTask(ctx, &models.Task{ID: 404, Title: "ghost"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("UpdateTask(404) err = %v, want ErrNotFound", err)
	}
	if err := repo.UpdateNote(ctx, &models.Note{ID: 404}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("UpdateNote(404) err = %v, want ErrNotFound", err)
	}
}

func testTasks(t *testing.T, repo store.Repository) {
	ctx := context.Background()

	a := models.Project{Name: "A"}
	b := models.Project{Name: "B"}
	repo.CreateProject(ctx, &a)
	repo.CreateProject(ctx, &b)

	for _, tk := range []models.Task{
		{ProjectID: a.ID, Title: "a1", Status: models.TaskTodo},
		{ProjectID: a.ID, Title: "a2", Status: models.TaskDoing, Progress: 30},
		{ProjectID: b.ID, Title: "b1", Status: models.TaskDone, Progress: 100},
	} {
		tk := tk
		if err := repo.CreateTask(ctx, &tk); err != nil {
			t.Fatalf("CreateTask %s: %v", tk.Title, err)
		}
	}

	onlyA, err := repo.ListTasks(ctx, a.ID)
	if err != nil {
		t.Fatalf("ListTasks(a): %v", err)
	}
	if len(onlyA) != 2 {
		t.Errorf("len(ListTasks(a)) = %d, want 2", len(onlyA))
	}

	all, _ := repo.ListTasks(ctx)
	if len(all) != 3 {
		t.Errorf("len(ListTasks()) = %d, want 3", len(all))
	}

	tk := onlyA[0]
	tk.Status = models.TaskTodo
	tk.Progress = 0
	tk.Owner = "Dani"
	if err := repo.UpdateTask(ctx, &tk); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	got, err := repo.GetTask(ctx, tk.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.Owner != "Dani" || got.Progress != 0 {
		t.Errorf("GetTask = %+v", got)
	}
}

func testRisksAndNotes(t *testing.T, repo store.Repository) {
	ctx := context.Background()

	p := models.Project{Name: "Risky"}
	repo.CreateProject(ctx, &p)

	r := models.Risk{ProjectID: p.ID, Description: "vendor delay", Probability: "Alta", Impact: "Médio", Status: models.RiskActive}
	if err := repo.CreateRisk(ctx, &r); err != nil {
		t.Fatalf("CreateRisk: %v", err)
	}
	risks, _ := repo.ListRisks(ctx, p.ID)
	if len(risks) != 1 || risks[0].Description != "vendor delay" {
		t.Errorf("ListRisks = %+v", risks)
	}
	if err := repo.DeleteRisk(ctx, r.ID); err != nil {
		t.Fatalf("DeleteRisk: %v", err)
	}
	risks, _ = repo.ListRisks(ctx, p.ID)
	if len(risks) != 0 {
		t.Errorf("risk not deleted: %+v", risks)
	}

	n := models.Note{ProjectID: p.ID, Category: models.NoteGap, Description: "no budget"}
	if err := repo.CreateNote(ctx, &n); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	n.LinkURL = "https://example.com/issues/1"
	if err := repo.UpdateNote(ctx, &n); err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	notes, _ := repo.ListNotes(ctx, p.ID)
	if len(notes) != 1 || notes[0].LinkURL != n.LinkURL || !notes[0].IsGap() {
		t.Errorf("ListNotes = %+v", notes)
	}
	if err := repo.DeleteNote(ctx, n.ID); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	notes, _ = repo.ListNotes(ctx)
	if len(notes) != 0 {
		t.Errorf("note not deleted: %+v", notes)
	}
}

func testSponsorsAndTeam(t *testing.T, repo store.Repository) {
	ctx := context.Background()

	for _, name := range []string{"TI", "RH", "TI"} {
		if err := repo.CreateSponsor(ctx, &models.Sponsor{Name: name}); err != nil {
			t.Fatalf("CreateSponsor(%s): %v", name, err)
		}
	}
	sponsors, err := repo.ListSponsors(ctx)
	if err != nil {
		t.Fatalf("ListSponsors: %v", err)
	}
	if len(sponsors) != 2 {
		t.Errorf("len(ListSponsors) = %d, want 2 (duplicates ignored)", len(sponsors))
	}

	m := models.TeamMember{Name: "Eva", Role: "PM", Area: "TI"}
	if err := repo.CreateTeamMember(ctx, &m); err != nil {
		t.Fatalf("CreateTeamMember: %v", err)
	}
	if m.ID == 0 {
		t.Error("CreateTeamMember did not assign an id")
	}
	team, _ := repo.ListTeamMembers(ctx)
	if len(team) != 1 || team[0].Name != "Eva" {
		t.Errorf("ListTeamMembers = %+v", team)
	}
}
