/*
Package log provides structured logging for flywheel using zerolog.

The global Logger is configured once via Init and then scoped per component
with the With* helpers. WithComponent attaches just a component field;
WithStageID, WithTaskID, WithExecutorID, and WithPool each layer one more
field on top of WithComponent, matching the identifier every long-lived
scheduler-core logger is built around (a taskset.Manager logs against its
stage, a Pool against its name, and so on) — callers that need more than one
field chain onto the returned zerolog.Logger with its own With().

Output is either console (human-readable, for local development) or JSON
(for production log aggregation), selected by Config.JSONOutput.

# Usage

	logger := log.WithStageID("taskset", ts.StageID)
	logger.Info().Msg("task set admitted")

	logger = log.WithPool("pool", "default")
	logger.Debug().Int("children", n).Msg("sorted task-set queue")
*/
package log
