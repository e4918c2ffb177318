package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/flywheel-sh/flywheel/pkg/backend"
	"github.com/flywheel-sh/flywheel/pkg/config"
	"github.com/flywheel-sh/flywheel/pkg/deserializer"
	"github.com/flywheel-sh/flywheel/pkg/events"
	"github.com/flywheel-sh/flywheel/pkg/log"
	"github.com/flywheel-sh/flywheel/pkg/metrics"
	"github.com/flywheel-sh/flywheel/pkg/oracle"
	"github.com/flywheel-sh/flywheel/pkg/placement"
	"github.com/flywheel-sh/flywheel/pkg/pool"
	"github.com/flywheel-sh/flywheel/pkg/registry"
	"github.com/flywheel-sh/flywheel/pkg/taskset"
	"github.com/flywheel-sh/flywheel/pkg/types"
	"github.com/rs/zerolog"
)

// Core is the scheduler core: admission, dispatch, and lifecycle tracking
// for one application run. No exported method holds the monitor (mu) across
// a call into Backend or StagePlanner; those calls always happen after
// Unlock.
type Core struct {
	mu sync.Mutex // the monitor

	cfg          config.Config
	backend      backend.Backend
	stagePlanner backend.StagePlanner
	oracle       oracle.Oracle
	deserializer deserializer.ResultDeserializer
	localMode    bool

	registry *registry.TaskRegistry
	rootPool *pool.Pool
	engine   *placement.Engine
	events   *events.Broker
	logger   zerolog.Logger

	nextTaskID atomic.Int64

	taskSetsByStage     map[int]map[int]taskset.Manager
	hasLaunchedTask     bool
	firstSubmissionSeen bool

	stopCh chan struct{}
}

// New builds a Core. cfg must already be valid (config.Load validates it);
// New re-validates the scheduling mode defensively since a Core can also be
// built directly by tests without going through config.Load.
func New(cfg config.Config, be backend.Backend, sp backend.StagePlanner, oc oracle.Oracle, rd deserializer.ResultDeserializer, localMode bool) (*Core, error) {
	if !pool.ValidMode(cfg.SchedulingMode) {
		return nil, &config.ConfigurationError{
			Field:  "schedulingMode",
			Value:  string(cfg.SchedulingMode),
			Reason: "must be one of FIFO, FAIR, CPU, NONE",
		}
	}

	mode := oc.GetSchedulingMode(cfg.SchedulingMode)
	broker := events.NewBroker()
	broker.Start()

	return &Core{
		cfg:             cfg,
		backend:         be,
		stagePlanner:    sp,
		oracle:          oc,
		deserializer:    rd,
		localMode:       localMode,
		registry:        registry.New(),
		rootPool:        pool.New("root", mode, 1, oc),
		engine:          placement.New(oc, cfg.CPUsPerTask),
		events:          broker,
		logger:          log.WithComponent("scheduler"),
		taskSetsByStage: make(map[int]map[int]taskset.Manager),
		stopCh:          make(chan struct{}),
	}, nil
}

// NextTaskID mints the next globally unique, monotonic task id. It is
// handed to every taskset.Manager as its taskset.IDAllocator.
func (c *Core) NextTaskID() int64 {
	return c.nextTaskID.Add(1)
}

// Events returns the lifecycle event broker, for the CLI's watch command and
// for tests asserting event ordering.
func (c *Core) Events() *events.Broker { return c.events }

// Start brings the backend up and, unless running in local mode, starts the
// speculation ticker when speculation is enabled in the config.
func (c *Core) Start() error {
	if err := c.backend.Start(); err != nil {
		return err
	}
	if !c.localMode && c.cfg.SpeculationEnabled {
		go c.runSpeculationTicker()
	}
	return nil
}

// Stop shuts down the timers, the event broker, and the backend. In-flight
// StatusUpdate calls complete their locked section first: Stop takes the
// monitor before closing stopCh, and releases it before calling the backend.
func (c *Core) Stop() error {
	c.mu.Lock()
	close(c.stopCh)
	c.mu.Unlock()
	c.events.Stop()
	return c.backend.Stop()
}

// WaitBackendReady polls the backend every 100ms until it reports ready or
// ctx is done.
func (c *Core) WaitBackendReady(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		if c.backend.IsReady() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// SubmitTasks admits a new task set.
func (c *Core) SubmitTasks(ts *types.TaskSet) error {
	c.mu.Lock()

	for _, m := range c.taskSetsByStage[ts.StageID] {
		if !m.IsZombie() && m.TaskSet() != ts {
			c.mu.Unlock()
			return &ConflictingTaskSet{StageID: ts.StageID}
		}
	}

	mgr := taskset.NewDefault(ts, c.cfg.MaxTaskFailures, c.NextTaskID)
	if c.taskSetsByStage[ts.StageID] == nil {
		c.taskSetsByStage[ts.StageID] = make(map[int]taskset.Manager)
	}
	c.taskSetsByStage[ts.StageID][ts.StageAttemptID] = mgr
	c.rootPool.Attach(mgr, ts.Properties.Priority)

	armWatchdog := false
	if !c.firstSubmissionSeen {
		c.firstSubmissionSeen = true
		armWatchdog = !c.localMode
	}
	c.mu.Unlock()

	if armWatchdog {
		go c.runStarvationWatchdog()
	}
	c.backend.ReviveOffers()
	return nil
}

// CancelTasks kills every running task under stageID and aborts its
// managers. A stage with no managers is a no-op.
func (c *Core) CancelTasks(stageID int) {
	type kill struct {
		taskID     int64
		executorID string
	}

	c.mu.Lock()
	var kills []kill
	for _, m := range c.taskSetsByStage[stageID] {
		for _, taskID := range m.RunningTaskIDs() {
			if execID, ok := c.registry.ExecutorFor(taskID); ok {
				kills = append(kills, kill{taskID: taskID, executorID: execID})
			}
		}
		m.Abort("cancelTasks")
	}
	c.mu.Unlock()

	for _, k := range kills {
		c.backend.KillTask(k.taskID, k.executorID, true)
	}
}

// TaskSetFinished detaches a manager from the pool and registry bookkeeping
// once it has no more attempts in play. Idempotent.
func (c *Core) TaskSetFinished(m taskset.Manager) {
	c.mu.Lock()
	stageID := m.TaskSet().StageID
	attemptID := m.TaskSet().StageAttemptID
	if attempts, ok := c.taskSetsByStage[stageID]; ok {
		delete(attempts, attemptID)
		if len(attempts) == 0 {
			delete(c.taskSetsByStage, stageID)
		}
	}
	c.rootPool.Detach(m)
	c.mu.Unlock()
}

// ResourceOffers runs one full placement round and returns the dispatches to
// hand to the backend.
func (c *Core) ResourceOffers(offers []types.WorkerOffer) [][]types.TaskDescription {
	timer := metrics.NewTimer()
	policyLabel := string(c.oracle.Mode())
	if !c.oracle.IsCustomize() {
		policyLabel = string(types.PolicyDefault)
	}

	c.mu.Lock()
	queue := c.rootPool.GetSortedTaskSetQueue()
	dispatches, newExecutors, launched := c.engine.ResourceOffers(offers, queue, c.registry)
	if launched {
		c.hasLaunchedTask = true
	}
	c.mu.Unlock()

	timer.ObserveDurationVec(metrics.PlacementLatency, policyLabel)
	metrics.ActiveExecutors.Set(float64(c.registry.ActiveExecutorCount()))

	for _, ne := range newExecutors {
		c.stagePlanner.ExecutorAdded(ne.ExecutorID, ne.Host)
		c.events.Publish(&events.Event{
			Type:     events.EventExecutorAdded,
			Message:  "executor " + ne.ExecutorID + " added",
			Metadata: map[string]string{"executor_id": ne.ExecutorID, "host": ne.Host},
		})
	}

	for _, perWorker := range dispatches {
		for _, d := range perWorker {
			metrics.TasksDispatchedTotal.WithLabelValues(policyLabel).Inc()
			c.events.Publish(&events.Event{
				Type:    events.EventTaskDispatched,
				Message: "task dispatched",
				Metadata: map[string]string{
					"executor_id": d.ExecutorID,
					"stage_id":    itoa(d.StageID),
				},
			})
		}
	}
	return dispatches
}

// managerForTask finds the manager owning taskID within stageID. A task
// belongs to exactly one attempt's running set at a time; zombie managers
// are still searched since they may still be waiting on in-flight status
// updates for tasks they dispatched before aborting.
func (c *Core) managerForTask(stageID int, taskID int64) taskset.Manager {
	for _, m := range c.taskSetsByStage[stageID] {
		for _, running := range m.RunningTaskIDs() {
			if running == taskID {
				return m
			}
		}
	}
	return nil
}

// StatusUpdate advances the lifecycle state machine for one task. A
// terminal state's payload is hand off to the result deserializer outside
// the monitor; onApply — called back once decoding completes, possibly on a
// different goroutine — reacquires the monitor to apply the decoded
// outcome to the manager.
func (c *Core) StatusUpdate(taskID int64, newState types.TaskState, payload []byte) {
	c.mu.Lock()

	var failedExecutor string
	if newState == types.TaskLost {
		if execID, ok := c.registry.ExecutorFor(taskID); ok && c.registry.IsActiveExecutor(execID) {
			c.registry.RemoveExecutor(execID)
			failedExecutor = execID
		}
	}

	stageID, ok := c.registry.TaskSetFor(taskID)
	if !ok {
		c.mu.Unlock()
		c.logger.Debug().Int64("task_id", taskID).Msg("status update for unknown task, ignoring")
		return
	}
	mgr := c.managerForTask(stageID, taskID)
	if mgr == nil {
		c.mu.Unlock()
		c.logger.Debug().Int64("task_id", taskID).Int("stage_id", stageID).Msg("status update for untracked manager, ignoring")
		return
	}

	if newState.IsTerminal() {
		c.registry.ClearTask(taskID)
	}
	c.mu.Unlock()

	if failedExecutor != "" {
		c.stagePlanner.ExecutorLost(failedExecutor)
		c.events.Publish(&events.Event{
			Type:     events.EventExecutorLost,
			Message:  "executor " + failedExecutor + " lost",
			Metadata: map[string]string{"executor_id": failedExecutor},
		})
		c.backend.ReviveOffers()
	}

	onApply := func(ok bool) {
		c.mu.Lock()
		var abortedSet bool
		switch newState {
		case types.TaskFinished:
			if ok {
				mgr.HandleSuccessfulTask(taskID)
			}
		case types.TaskFailed, types.TaskKilled, types.TaskLost:
			if ok {
				abortedSet = mgr.HandleFailedTask(taskID, newState)
				metrics.TasksFailedTotal.WithLabelValues(string(newState)).Inc()
			}
		}
		needsRevive := !mgr.IsZombie() && newState != types.TaskKilled &&
			(newState == types.TaskFailed || newState == types.TaskLost)
		allComplete := mgr.AllTasksComplete()
		c.mu.Unlock()

		if needsRevive {
			c.backend.ReviveOffers()
		}
		if allComplete || abortedSet {
			c.TaskSetFinished(mgr)
		}
		c.publishTerminalEvent(newState, taskID)
	}

	switch newState {
	case types.TaskFinished:
		c.deserializer.DecodeSuccess(taskID, payload, onApply)
	case types.TaskFailed, types.TaskKilled, types.TaskLost:
		c.deserializer.DecodeFailure(taskID, newState, payload, onApply)
	}
}

func (c *Core) publishTerminalEvent(state types.TaskState, taskID int64) {
	var evType events.EventType
	switch state {
	case types.TaskFinished:
		evType = events.EventTaskFinished
	case types.TaskFailed:
		evType = events.EventTaskFailed
	case types.TaskLost:
		evType = events.EventTaskLost
	default:
		return
	}
	c.events.Publish(&events.Event{
		Type:     evType,
		Message:  "task " + itoa64(taskID) + " " + string(state),
		Metadata: map[string]string{"task_id": itoa64(taskID)},
	})
}

// HeartbeatReceived forwards a worker heartbeat to the stage planner.
func (c *Core) HeartbeatReceived(executorID string, taskMetrics []backend.TaskMetric, blockManagerID string) bool {
	return c.stagePlanner.ExecutorHeartbeatReceived(executorID, taskMetrics, blockManagerID)
}
