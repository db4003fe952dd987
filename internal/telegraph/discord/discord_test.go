package discord

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/zulandar/portfolio/internal/telegraph"
)

type sentMessage struct {
	channelID string
	data      *discordgo.MessageSend
}

type mockSession struct {
	sent      []sentMessage
	sendErr   error
	failCount int // return 429 this many times before succeeding
	calls     int
	closed    bool
}

func (m *mockSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.calls++
	if m.calls <= m.failCount {
		return nil, &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusTooManyRequests}}
	}
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	m.sent = append(m.sent, sentMessage{channelID: channelID, data: data})
	return &discordgo.Message{ID: "msg-1", ChannelID: channelID}, nil
}

func (m *mockSession) Close() error {
	m.closed = true
	return nil
}

func newTestAdapter(t *testing.T) (*Adapter, *mockSession) {
	t.Helper()
	sess := &mockSession{}
	a, err := New(AdapterOpts{ChannelID: "chan-default", Session: sess})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.baseBackoff = time.Millisecond
	if err := a.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	return a, sess
}

func TestNew_RequiresBotToken(t *testing.T) {
	_, err := New(AdapterOpts{})
	if err == nil || !strings.Contains(err.Error(), "bot token is required") {
		t.Errorf("err = %v", err)
	}
}

func TestNew_WithToken(t *testing.T) {
	a, err := New(AdapterOpts{BotToken: "tok"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.baseBackoff != baseBackoff || a.maxBackoff != maxBackoff {
		t.Error("backoff defaults not applied")
	}
}

func TestSend_WithEmbeds(t *testing.T) {
	a, sess := newTestAdapter(t)
	err := a.Send(context.Background(), telegraph.OutboundMessage{
		Text:   "Portfolio digest",
		Events: []telegraph.FormattedEvent{{Title: "🔴 ERP", Color: "#e53935"}},
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(sess.sent) != 1 {
		t.Fatalf("sent = %d", len(sess.sent))
	}
	got := sess.sent[0]
	if got.channelID != "chan-default" || got.data.Content != "Portfolio digest" {
		t.Errorf("sent = %+v", got)
	}
	if len(got.data.Embeds) != 1 || got.data.Embeds[0].Color != 0xe53935 {
		t.Errorf("embeds = %+v", got.data.Embeds)
	}
}

func TestSend_NotConnected(t *testing.T) {
	a, _ := New(AdapterOpts{Session: &mockSession{}})
	if err := a.Send(context.Background(), telegraph.OutboundMessage{Text: "x"}); err == nil {
		t.Error("expected error when not connected")
	}
}

func TestSend_NoChannel(t *testing.T) {
	a, _ := New(AdapterOpts{Session: &mockSession{}})
	_ = a.Connect(context.Background())
	if err := a.Send(context.Background(), telegraph.OutboundMessage{Text: "x"}); err == nil {
		t.Error("expected error without a channel")
	}
}

func TestSend_Error(t *testing.T) {
	a, sess := newTestAdapter(t)
	sess.sendErr = fmt.Errorf("missing access")
	err := a.Send(context.Background(), telegraph.OutboundMessage{Text: "x"})
	if err == nil || !strings.Contains(err.Error(), "missing access") {
		t.Errorf("err = %v", err)
	}
	if sess.calls != 1 {
		t.Errorf("non-429 errors should not retry, calls = %d", sess.calls)
	}
}

func TestSend_RetriesOn429(t *testing.T) {
	a, sess := newTestAdapter(t)
	sess.failCount = 2
	if err := a.Send(context.Background(), telegraph.OutboundMessage{Text: "x"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if sess.calls != 3 || len(sess.sent) != 1 {
		t.Errorf("calls=%d sent=%d, want 3/1", sess.calls, len(sess.sent))
	}
}

func TestSend_ExhaustsRetries(t *testing.T) {
	a, sess := newTestAdapter(t)
	sess.failCount = 100
	if err := a.Send(context.Background(), telegraph.OutboundMessage{Text: "x"}); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if sess.calls != maxRetries+1 {
		t.Errorf("calls = %d, want %d", sess.calls, maxRetries+1)
	}
}

func TestClose(t *testing.T) {
	a, sess := newTestAdapter(t)
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !sess.closed {
		t.Error("session not closed")
	}
	if err := a.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := a.Connect(context.Background()); err == nil {
		t.Error("expected error connecting a closed adapter")
	}
}

func TestBuildMessageSend_CapsEmbeds(t *testing.T) {
	events := make([]telegraph.FormattedEvent, 12)
	data := buildMessageSend(telegraph.OutboundMessage{Events: events})
	if len(data.Embeds) != 10 {
		t.Errorf("embeds = %d, want 10", len(data.Embeds))
	}
}

func TestEventToEmbed(t *testing.T) {
	embed := eventToEmbed(telegraph.FormattedEvent{
		Title:  "Gap: BI",
		Body:   "Sem acesso",
		Color:  "#FF9800",
		Fields: []telegraph.Field{{Name: "Categoria", Value: "Gap", Short: true}},
	})
	if embed.Title != "Gap: BI" || embed.Description != "Sem acesso" || embed.Color != 0xff9800 {
		t.Errorf("embed = %+v", embed)
	}
	if len(embed.Fields) != 1 || !embed.Fields[0].Inline {
		t.Errorf("fields = %+v", embed.Fields)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"#36a64f", 0x36a64f},
		{"e53935", 0xe53935},
		{"#FFFFFF", 0xffffff},
		{"", 0},
	}
	for _, tt := range tests {
		if got := parseHexColor(tt.in); got != tt.want {
			t.Errorf("parseHexColor(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}
