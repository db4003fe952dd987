package telegraph

import (
	"context"
	"errors"
	"fmt"

	"github.com/zulandar/portfolio/internal/portfolio"
	"go.uber.org/zap"
)

// Target is a named adapter, e.g. "slack".
type Target struct {
	Name    string
	Adapter Adapter
}

// Broadcaster fans one message out to several adapters.
type Broadcaster struct {
	targets []Target
	log     *zap.Logger
}

// NewBroadcaster creates a Broadcaster over targets.
func NewBroadcaster(log *zap.Logger, targets ...Target) *Broadcaster {
	if log == nil {
		log = zap.NewNop()
	}
	return &Broadcaster{targets: targets, log: log}
}

// Len returns the number of targets.
func (b *Broadcaster) Len() int { return len(b.targets) }

// Connect connects every target. It stops at the first failure.
func (b *Broadcaster) Connect(ctx context.Context) error {
	for _, t := range b.targets {
		if err := t.Adapter.Connect(ctx); err != nil {
			return fmt.Errorf("telegraph: connect %s: %w", t.Name, err)
		}
	}
	return nil
}

// Send delivers msg to every target. A failing target does not stop the
// others; all failures are returned joined.
func (b *Broadcaster) Send(ctx context.Context, msg OutboundMessage) error {
	if len(b.targets) == 0 {
		return fmt.Errorf("telegraph: no chat platform configured")
	}
	var errs []error
	for _, t := range b.targets {
		if err := t.Adapter.Send(ctx, msg); err != nil {
			b.log.Warn("digest delivery failed", zap.String("platform", t.Name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", t.Name, err))
			continue
		}
		b.log.Info("digest delivered", zap.String("platform", t.Name), zap.Int("events", len(msg.Events)))
	}
	return errors.Join(errs...)
}

// Close closes every target, returning the joined errors.
func (b *Broadcaster) Close() error {
	var errs []error
	for _, t := range b.targets {
		if err := t.Adapter.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.Name, err))
		}
	}
	return errors.Join(errs...)
}

// DigestJob builds a Job that sends the current portfolio digest.
func DigestJob(svc *portfolio.Service, b *Broadcaster) Job {
	return func(ctx context.Context) error {
		msg := FormatDigest(svc.Overview(ctx, ""))
		return b.Send(ctx, msg)
	}
}
