/*
Package scheduler implements Core, the scheduler-core's front door. Every
other package in this module (pool, placement, registry, taskset, oracle,
backend, deserializer, events, metrics) is wired together here, under one
sync.Mutex "monitor." Core owns admission, cancellation, resourceOffers
rounds, and the statusUpdate lifecycle state machine.

# Monitor discipline

Core.mu guards every registry mutation and every dispatch decision. The one
rule that matters more than any other: no exported method may hold mu
across a call into Backend or StagePlanner. A real backend may itself be
holding its own lock when it calls back into the scheduler (ReviveOffers,
KillTask), so calling it while mu is held risks lock-order deadlock.
SubmitTasks, CancelTasks, TaskSetFinished, ResourceOffers, and StatusUpdate
all follow the same shape: do the locked bookkeeping, capture what the
unlocked tail needs into local variables, Unlock, then act.

StatusUpdate additionally crosses an asynchronous boundary: a terminal
task's payload is handed to the deserializer.ResultDeserializer outside the
monitor, and the callback it invokes — possibly later, possibly on another
goroutine — reacquires mu to apply the decoded outcome to the manager. The
Fake deserializer used by tests and the demo CLI calls back inline, so from
a test's point of view StatusUpdate still completes synchronously; a real
deserializer would not.

# Usage

	core, err := scheduler.New(cfg, backend, stagePlanner, oracle, deserializer, false)
	if err != nil {
		return err
	}
	if err := core.Start(); err != nil {
		return err
	}
	defer core.Stop()

	if err := core.SubmitTasks(taskSet); err != nil {
		return err
	}
	dispatches := core.ResourceOffers(offers)
	// ... hand dispatches to workers, then report outcomes back via:
	core.StatusUpdate(taskID, types.TaskFinished, resultPayload)

# Timers

runSpeculationTicker and runStarvationWatchdog each run on their own
goroutine and are stopped via stopCh when Stop is called. Start launches
the speculation ticker when config.Config.SpeculationEnabled is set; the
first SubmitTasks call arms the starvation watchdog. Both are disabled when
localMode is true — there is no point speculating
or watching for starvation against an in-memory fake with no real
network latency to hide.

# Scope

Core does not decide policy — resourceOffers delegates entirely to
pkg/placement, and queue ordering entirely to pkg/pool. Core's job is
orchestration: admission bookkeeping, monitor discipline, and translating
backend/deserializer/stage-planner callbacks into manager state
transitions and published events.
*/
package scheduler
