package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/zulandar/portfolio/internal/models"
)

func TestAddNote_AndGaps(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	p := mustProject(t, svc, NewProject{Name: "ERP"})
	archived := mustProject(t, svc, NewProject{Name: "Legado"})

	gap, err := svc.AddNote(ctx, p.ID, NewNote{Category: "Gap Técnico", Description: "Sem ambiente de homologação"})
	if err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if !sameDay(&gap.CreatedAt, &testToday) {
		t.Errorf("CreatedAt = %v, want today", gap.CreatedAt)
	}
	if _, err := svc.AddNote(ctx, p.ID, NewNote{Category: models.NoteLink, Description: "Wiki", LinkURL: "https://wiki"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddNote(ctx, archived.ID, NewNote{Category: models.NoteGap, Description: "antigo"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.ArchiveProject(ctx, archived.ID); err != nil {
		t.Fatal(err)
	}

	alerts := svc.Gaps(ctx)
	if len(alerts) != 1 {
		t.Fatalf("alerts = %d, want 1", len(alerts))
	}
	if alerts[0].ProjectName != "ERP" || alerts[0].Note.ID != gap.ID {
		t.Errorf("alert = %+v", alerts[0])
	}

	if err := svc.DeleteNote(ctx, gap.ID); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if got := svc.Gaps(ctx); len(got) != 0 {
		t.Errorf("alerts after delete = %d, want 0", len(got))
	}
	notes, _ := svc.ListNotes(ctx, p.ID)
	if len(notes) != 1 {
		t.Errorf("notes = %d, want 1", len(notes))
	}
}

func TestAddNote_Invalid(t *testing.T) {
	svc, _ := newTestService(t)
	p := mustProject(t, svc, NewProject{Name: "ERP"})
	for _, in := range []NewNote{{Description: "x"}, {Category: models.NoteGap}} {
		if _, err := svc.AddNote(context.Background(), p.ID, in); !errors.Is(err, ErrInvalid) {
			t.Errorf("AddNote(%+v) err = %v, want ErrInvalid", in, err)
		}
	}
}

func TestSetNoteLink(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	p := mustProject(t, svc, NewProject{Name: "ERP"})
	n, _ := svc.AddNote(ctx, p.ID, NewNote{Category: models.NoteGap, Description: "x"})

	if _, err := svc.SetNoteLink(ctx, n, "https://github.com/acme/pf/issues/1"); err != nil {
		t.Fatalf("SetNoteLink: %v", err)
	}
	notes, _ := svc.ListNotes(ctx, p.ID)
	if notes[0].LinkURL != "https://github.com/acme/pf/issues/1" {
		t.Errorf("LinkURL = %q", notes[0].LinkURL)
	}
}

func TestSponsorsAndTeam(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"TI", "RH", "TI"} {
		if _, err := svc.AddSponsor(ctx, name); err != nil {
			t.Fatalf("AddSponsor(%q): %v", name, err)
		}
	}
	sponsors, _ := svc.ListSponsors(ctx)
	if len(sponsors) != 2 {
		t.Errorf("sponsors = %d, want 2", len(sponsors))
	}
	if _, err := svc.AddSponsor(ctx, ""); !errors.Is(err, ErrInvalid) {
		t.Errorf("empty sponsor err = %v, want ErrInvalid", err)
	}

	m, err := svc.AddTeamMember(ctx, models.TeamMember{ID: 9, Name: "Ana", Role: "PM", Area: "TI"})
	if err != nil {
		t.Fatalf("AddTeamMember: %v", err)
	}
	if m.ID == 9 || m.ID == 0 {
		t.Errorf("ID = %d, want store-assigned", m.ID)
	}
	if _, err := svc.AddTeamMember(ctx, models.TeamMember{}); !errors.Is(err, ErrInvalid) {
		t.Errorf("empty member err = %v, want ErrInvalid", err)
	}
	team, _ := svc.ListTeam(ctx)
	if len(team) != 1 {
		t.Errorf("team = %d, want 1", len(team))
	}
}
