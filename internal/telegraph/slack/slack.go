// Package slack implements the telegraph Adapter for Slack using the Web API.
package slack

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	slackapi "github.com/slack-go/slack"
	"github.com/zulandar/portfolio/internal/telegraph"
	"go.uber.org/zap"
)

// maxRetries is the max number of retries for rate-limited API calls.
const maxRetries = 3

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	AuthTest() (*slackapi.AuthTestResponse, error)
	PostMessage(channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// Adapter implements telegraph.Adapter for Slack.
type Adapter struct {
	client    slackClient
	botToken  string
	channelID string // default channel for messages without explicit channel
	botUserID string
	log       *zap.Logger
	mu        sync.Mutex
	connected bool
	closed    bool
}

// AdapterOpts holds parameters for creating a Slack Adapter.
type AdapterOpts struct {
	BotToken  string // xoxb-... Slack bot token
	ChannelID string // default channel to post to
	Logger    *zap.Logger
	// For testing: inject a mock client instead of the real Slack API.
	Client slackClient
}

// New creates a Slack Adapter.
func New(opts AdapterOpts) (*Adapter, error) {
	if opts.Client == nil && opts.BotToken == "" {
		return nil, fmt.Errorf("slack: bot token is required")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{
		client:    opts.Client,
		botToken:  opts.BotToken,
		channelID: opts.ChannelID,
		log:       log,
	}, nil
}

// Connect creates the API client and verifies the token with auth.test.
func (a *Adapter) Connect(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return fmt.Errorf("slack: adapter already closed")
	}
	if a.connected {
		return nil
	}

	if a.client == nil {
		a.client = slackapi.New(a.botToken)
	}

	auth, err := a.client.AuthTest()
	if err != nil {
		return fmt.Errorf("slack: auth test: %w", err)
	}
	a.botUserID = auth.UserID
	a.log.Info("slack connected", zap.String("bot_user_id", auth.UserID), zap.String("team", auth.Team))

	a.connected = true
	return nil
}

// Send posts a message via chat.postMessage. Formatted events become
// attachments with the text as fallback.
func (a *Adapter) Send(ctx context.Context, msg telegraph.OutboundMessage) error {
	a.mu.Lock()
	if !a.connected {
		a.mu.Unlock()
		return fmt.Errorf("slack: not connected")
	}
	a.mu.Unlock()

	channelID := msg.ChannelID
	if channelID == "" {
		channelID = a.channelID
	}
	if channelID == "" {
		return fmt.Errorf("slack: no channel specified")
	}

	options := buildMessageOptions(msg)

	err := retryOnRateLimit(ctx, a.log, func() error {
		_, _, postErr := a.client.PostMessage(channelID, options...)
		return postErr
	})
	if err != nil {
		return fmt.Errorf("slack: post message: %w", err)
	}
	return nil
}

// Close marks the adapter closed. The Web API client holds no connection.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.connected = false
	return nil
}

// BotUserID returns the bot's Slack user ID (available after Connect).
func (a *Adapter) BotUserID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.botUserID
}

// buildMessageOptions converts an OutboundMessage to Slack message options.
func buildMessageOptions(msg telegraph.OutboundMessage) []slackapi.MsgOption {
	var options []slackapi.MsgOption

	if len(msg.Events) > 0 {
		var attachments []slackapi.Attachment
		for _, evt := range msg.Events {
			attachments = append(attachments, eventToAttachment(evt))
		}
		options = append(options, slackapi.MsgOptionAttachments(attachments...))
		// Use text as fallback.
		if msg.Text != "" {
			options = append(options, slackapi.MsgOptionText(msg.Text, false))
		}
	} else {
		options = append(options, slackapi.MsgOptionText(msg.Text, false))
	}

	return options
}

// eventToAttachment converts a FormattedEvent to a Slack attachment.
func eventToAttachment(evt telegraph.FormattedEvent) slackapi.Attachment {
	att := slackapi.Attachment{
		Title:    evt.Title,
		Text:     evt.Body,
		Color:    evt.Color,
		Fallback: evt.Title,
	}

	for _, f := range evt.Fields {
		att.Fields = append(att.Fields, slackapi.AttachmentField{
			Title: f.Name,
			Value: f.Value,
			Short: f.Short,
		})
	}

	return att
}

// retryOnRateLimit calls fn and retries on Slack rate limit errors, waiting
// for RetryAfter or an exponential backoff. It respects context cancellation.
func retryOnRateLimit(ctx context.Context, log *zap.Logger, fn func() error) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		var rle *slackapi.RateLimitedError
		if !errors.As(err, &rle) {
			return err // not a rate limit error, don't retry
		}

		if attempt == maxRetries {
			return err
		}

		wait := rle.RetryAfter
		if wait <= 0 {
			wait = time.Duration(math.Pow(2, float64(attempt))) * time.Second
		}
		log.Warn("slack rate limited", zap.Int("attempt", attempt+1), zap.Duration("retry_in", wait))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil // unreachable
}
