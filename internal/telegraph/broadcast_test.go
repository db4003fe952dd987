package telegraph

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/zulandar/portfolio/internal/models"
	"github.com/zulandar/portfolio/internal/portfolio"
	"github.com/zulandar/portfolio/internal/store/memory"
)

func TestBroadcaster_SendToAll(t *testing.T) {
	ctx := context.Background()
	a, b := NewMockAdapter(), NewMockAdapter()
	bc := NewBroadcaster(nil, Target{Name: "slack", Adapter: a}, Target{Name: "discord", Adapter: b})
	if err := bc.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	if err := bc.Send(ctx, OutboundMessage{Text: "hi"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(a.Sent()) != 1 || len(b.Sent()) != 1 {
		t.Errorf("sent a=%d b=%d, want 1/1", len(a.Sent()), len(b.Sent()))
	}

	if err := bc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !a.Closed() || !b.Closed() {
		t.Error("targets not closed")
	}
}

func TestBroadcaster_PartialFailure(t *testing.T) {
	ctx := context.Background()
	a, b := NewMockAdapter(), NewMockAdapter()
	bc := NewBroadcaster(nil, Target{Name: "slack", Adapter: a}, Target{Name: "discord", Adapter: b})
	if err := bc.Connect(ctx); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	a.SetSendError(boom)

	err := bc.Send(ctx, OutboundMessage{Text: "hi"})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if !strings.Contains(err.Error(), "slack") {
		t.Errorf("err = %q, want platform name", err)
	}
	if len(b.Sent()) != 1 {
		t.Error("second target should still receive the message")
	}
}

func TestBroadcaster_NoTargets(t *testing.T) {
	bc := NewBroadcaster(nil)
	if bc.Len() != 0 {
		t.Errorf("Len = %d", bc.Len())
	}
	if err := bc.Send(context.Background(), OutboundMessage{}); err == nil {
		t.Error("expected error with no targets")
	}
}

func TestMockAdapter_SendBeforeConnect(t *testing.T) {
	m := NewMockAdapter()
	if err := m.Send(context.Background(), OutboundMessage{}); err == nil {
		t.Error("expected error sending before Connect")
	}
	_ = m.Close()
	if err := m.Connect(context.Background()); err == nil {
		t.Error("expected error connecting after Close")
	}
}

func TestDigestJob(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	svc, err := portfolio.New(memory.New(), portfolio.WithClock(func() time.Time { return today }))
	if err != nil {
		t.Fatal(err)
	}
	p, _ := svc.CreateProject(ctx, portfolio.NewProject{Name: "BI"})
	if _, err := svc.AddNote(ctx, p.ID, portfolio.NewNote{Category: models.NoteGap, Description: "Sem DW"}); err != nil {
		t.Fatal(err)
	}

	mock := NewMockAdapter()
	bc := NewBroadcaster(nil, Target{Name: "mock", Adapter: mock})
	if err := bc.Connect(ctx); err != nil {
		t.Fatal(err)
	}
	if err := DigestJob(svc, bc)(ctx); err != nil {
		t.Fatalf("DigestJob: %v", err)
	}

	sent := mock.Sent()
	if len(sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(sent))
	}
	// summary, critical BI, gap
	if len(sent[0].Events) != 3 {
		t.Errorf("events = %d, want 3", len(sent[0].Events))
	}
}
