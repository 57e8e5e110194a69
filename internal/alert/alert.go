package alert

import (
	"context"

	"github.com/trailheadsupply/storefront/pkg/logger"
)

// Alerter surfaces user-facing messages. Persistent alerts stay visible
// until dismissed; they are never auto-cleared.
type Alerter interface {
	Show(ctx context.Context, message string, persistent bool)
}

// LogAlerter writes alerts to the structured log. It stands in for the
// storefront's on-page alert banner when no UI is attached.
type LogAlerter struct {
	Logg *logger.Logger
}

func (a LogAlerter) Show(ctx context.Context, message string, persistent bool) {
	if a.Logg == nil {
		return
	}
	ctx = a.Logg.WithFields(ctx, map[string]any{
		"alert":      message,
		"persistent": persistent,
	})
	a.Logg.Warn(ctx, "alert.shown")
}
