package taskset

import (
	"sync"

	"github.com/flywheel-sh/flywheel/pkg/log"
	"github.com/flywheel-sh/flywheel/pkg/types"
	"github.com/rs/zerolog"
)

// Manager is the TaskSetManager contract. At most one non-zombie Manager may
// exist per stage id at any time (enforced by the scheduler core, not by the
// manager itself).
type Manager interface {
	// TaskSet returns the underlying immutable task set.
	TaskSet() *types.TaskSet

	// ResourceOffer asks the manager to produce a dispatch for the given
	// executor/host at the given locality level. outcome is NoTask when the
	// manager has nothing to offer right now.
	ResourceOffer(executorID, host string, locality types.LocalityLevel) (desc types.TaskDescription, outcome types.PlacementOutcome)

	// NewExecutorAvailable notifies the manager that a previously-unseen
	// host has become available, so it can widen locality checks.
	NewExecutorAvailable(host string)

	// HandleSuccessfulTask and HandleFailedTask advance per-task attempt
	// bookkeeping. HandleFailedTask returns true if the task set should be
	// aborted (attempts exhausted for some task).
	HandleSuccessfulTask(taskID int64)
	HandleFailedTask(taskID int64, state types.TaskState) (abort bool)

	// ExecutorLost lets the manager re-queue tasks that were running on a
	// now-dead executor.
	ExecutorLost(executorID string)

	// RunningTaskIDs returns the task ids currently in flight, for
	// cancellation.
	RunningTaskIDs() []int64

	// Return pushes a previously-offered-but-undispatched task id back onto
	// the pending queue. Used by PPA/BPA when a policy round aborts after
	// already draining tasks out of the manager, so the task is retried on
	// the next offer round instead of being lost.
	Return(taskID int64)

	// IsZombie reports whether the manager has aborted or finished and
	// should no longer be offered new dispatches.
	IsZombie() bool

	// Abort marks the manager as a zombie immediately.
	Abort(reason string)

	// AllTasksComplete reports whether every task has reached a terminal
	// success state, so the manager can be detached from its pool.
	AllTasksComplete() bool
}

// IDAllocator mints the next globally unique, monotonic task id. The
// scheduler core owns the single atomic counter and passes this func to
// every Manager it constructs.
type IDAllocator func() int64

// Default is a reference Manager: it hands out one TaskDescription per task
// index, in order, and tracks per-task attempt counts against
// maxTaskFailures. It does not check the requested locality level or the
// executor/host: every pending task is offered at every level.
type Default struct {
	mu       sync.Mutex
	ts       *types.TaskSet
	logger   zerolog.Logger
	allocID  IDAllocator

	maxTaskFailures int
	pending         []int // indexes not yet dispatched, in order
	running         map[int64]int
	failures        map[int]int
	succeeded       map[int]bool
	zombie          bool
	newExecutorSeen map[string]bool
}

// NewDefault builds a reference Manager for ts. allocID is typically
// scheduler.Core.NextTaskID.
func NewDefault(ts *types.TaskSet, maxTaskFailures int, allocID IDAllocator) *Default {
	pending := make([]int, len(ts.Tasks))
	for i, t := range ts.Tasks {
		pending[i] = t.Index
	}
	return &Default{
		ts:              ts,
		logger:          log.WithStageID("taskset", ts.StageID),
		allocID:         allocID,
		maxTaskFailures: maxTaskFailures,
		pending:         pending,
		running:         make(map[int64]int),
		failures:        make(map[int]int),
		succeeded:       make(map[int]bool),
		newExecutorSeen: make(map[string]bool),
	}
}

func (m *Default) TaskSet() *types.TaskSet { return m.ts }

func (m *Default) ResourceOffer(executorID, host string, locality types.LocalityLevel) (types.TaskDescription, types.PlacementOutcome) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.zombie || len(m.pending) == 0 {
		return types.TaskDescription{}, types.NoTask
	}

	index := m.pending[0]
	m.pending = m.pending[1:]

	taskID := m.allocID()
	m.running[taskID] = index

	return types.TaskDescription{
		TaskID:     taskID,
		Index:      index,
		StageID:    m.ts.StageID,
		AttemptID:  m.ts.StageAttemptID,
		ExecutorID: executorID,
		Payload:    []byte{},
	}, types.Dispatched
}

func (m *Default) NewExecutorAvailable(host string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.newExecutorSeen[host] = true
}

func (m *Default) HandleSuccessfulTask(taskID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index, ok := m.running[taskID]; ok {
		m.succeeded[index] = true
		delete(m.running, taskID)
	}
}

func (m *Default) HandleFailedTask(taskID int64, state types.TaskState) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	index, ok := m.running[taskID]
	if !ok {
		return false
	}
	delete(m.running, taskID)

	if m.succeeded[index] {
		return false // speculative loser, the other copy already finished
	}

	if state != types.TaskKilled {
		m.failures[index]++
		if m.failures[index] >= m.maxTaskFailures {
			m.logger.Warn().Int("task_index", index).Int("failures", m.failures[index]).Msg("task exceeded max failures, aborting task set")
			m.zombie = true
			return true
		}
		m.pending = append(m.pending, index)
	}
	return false
}

func (m *Default) ExecutorLost(executorID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for taskID, index := range m.running {
		_ = taskID
		if !m.succeeded[index] {
			m.pending = append(m.pending, index)
		}
	}
	m.running = make(map[int64]int)
}

func (m *Default) Return(taskID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index, ok := m.running[taskID]; ok {
		delete(m.running, taskID)
		if !m.succeeded[index] {
			m.pending = append(m.pending, index)
		}
	}
}

func (m *Default) RunningTaskIDs() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int64, 0, len(m.running))
	for id := range m.running {
		ids = append(ids, id)
	}
	return ids
}

func (m *Default) IsZombie() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.zombie
}

func (m *Default) Abort(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger.Info().Str("reason", reason).Msg("task set aborted")
	m.zombie = true
}

func (m *Default) AllTasksComplete() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.succeeded) == len(m.ts.Tasks)
}
