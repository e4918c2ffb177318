package scheduler

import (
	"time"

	"github.com/flywheel-sh/flywheel/pkg/events"
	"github.com/flywheel-sh/flywheel/pkg/metrics"
	"github.com/flywheel-sh/flywheel/pkg/taskset"
)

// runSpeculationTicker polls the root pool for speculatable work at a fixed
// interval and, when found, asks the backend for a fresh offer round.
// Disabled in local mode and when speculation is off.
func (c *Core) runSpeculationTicker() {
	ticker := time.NewTicker(time.Duration(c.cfg.SpeculationIntervalMS) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			found := c.rootPool.CheckSpeculatableTasks(isSpeculatable)
			c.mu.Unlock()

			if found {
				metrics.SpeculativeTasksTotal.Inc()
				c.events.Publish(&events.Event{
					Type:    events.EventSpeculationTriggered,
					Message: "speculative copy triggered",
				})
				c.backend.ReviveOffers()
			}
		case <-c.stopCh:
			return
		}
	}
}

// isSpeculatable is the reference eligibility check CheckSpeculatableTasks
// applies per manager: a non-zombie manager with at least one running task.
// Whether the manager still has pending tasks is not checked, and no
// task-duration statistics are consulted.
func isSpeculatable(m taskset.Manager) bool {
	return !m.IsZombie() && len(m.RunningTaskIDs()) > 0
}

// runStarvationWatchdog warns once per tick until the first submitted task
// set has launched a task, then self-cancels.
func (c *Core) runStarvationWatchdog() {
	ticker := time.NewTicker(time.Duration(c.cfg.StarvationTimeoutMS) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			launched := c.hasLaunchedTask
			c.mu.Unlock()

			if launched {
				return
			}
			metrics.StarvationWarningsTotal.Inc()
			c.logger.Warn().Msg("first task set has not launched any tasks")
			c.events.Publish(&events.Event{
				Type:    events.EventTaskSetStarved,
				Message: "first task set starved",
			})
		case <-c.stopCh:
			return
		}
	}
}
