package dock

import (
	"context"
	"fmt"
	"math"

	"opsdesk/internal/bridge"
)

// Host commands the controller issues.
const (
	commandSetProgress = "set_dock_progress"
	commandClearDock   = "clear_dock"
	commandSetBadge    = "set_dock_badge"
	commandClearBadge  = "clear_dock_badge"
)

// InvalidProgressError reports a progress fraction outside [0.0, 1.0].
type InvalidProgressError struct {
	Value float64
}

func (e *InvalidProgressError) Error() string {
	return fmt.Sprintf("dock progress must be between 0.0 and 1.0, got %v", e.Value)
}

// Controller issues dock commands to the host through the bridge.
type Controller struct {
	bridge *bridge.Bridge
}

// NewController creates a controller on top of an established bridge.
func NewController(b *bridge.Bridge) *Controller {
	return &Controller{bridge: b}
}

// SetProgress asks the host to show the given fraction. Values outside
// [0.0, 1.0] and NaN are rejected before anything reaches the host.
func (c *Controller) SetProgress(ctx context.Context, fraction float64) error {
	if math.IsNaN(fraction) || fraction < 0.0 || fraction > 1.0 {
		return &InvalidProgressError{Value: fraction}
	}
	_, err := c.bridge.Invoke(ctx, commandSetProgress, map[string]any{"progress": fraction})
	return err
}

// ClearProgress removes the progress indicator.
func (c *Controller) ClearProgress(ctx context.Context) error {
	_, err := c.bridge.Invoke(ctx, commandClearDock, nil)
	return err
}

// SetBadge asks the host to show the given badge label.
func (c *Controller) SetBadge(ctx context.Context, label string) error {
	_, err := c.bridge.Invoke(ctx, commandSetBadge, map[string]any{"label": label})
	return err
}

// ClearBadge removes the badge.
func (c *Controller) ClearBadge(ctx context.Context) error {
	_, err := c.bridge.Invoke(ctx, commandClearBadge, nil)
	return err
}
