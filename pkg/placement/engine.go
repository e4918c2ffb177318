package placement

import (
	"math/rand"

	"github.com/flywheel-sh/flywheel/pkg/log"
	"github.com/flywheel-sh/flywheel/pkg/oracle"
	"github.com/flywheel-sh/flywheel/pkg/registry"
	"github.com/flywheel-sh/flywheel/pkg/taskset"
	"github.com/flywheel-sh/flywheel/pkg/types"
	"github.com/rs/zerolog"
)

// NewExecutorEvent is a (executorID, host) pair for a host seen for the
// first time during a resourceOffers round. The scheduler core fires
// StagePlanner.ExecutorAdded for these after releasing its monitor — never
// call an external collaborator while holding the lock.
type NewExecutorEvent struct {
	ExecutorID string
	Host       string
}

// Engine is the PlacementEngine. It holds no registry or pool state of its
// own; every call is handed the current queue and registry explicitly so the
// scheduler core stays the single owner of that state.
type Engine struct {
	oracle      oracle.Oracle
	cpusPerTask int
	logger      zerolog.Logger
}

// New builds an Engine. cpusPerTask is the fixed per-task cost the default
// policy consumes from a worker's offer; PPA and BPA instead ask the oracle
// for a per-task prediction.
func New(o oracle.Oracle, cpusPerTask int) *Engine {
	return &Engine{
		oracle:      o,
		cpusPerTask: cpusPerTask,
		logger:      log.WithComponent("placement"),
	}
}

// ResourceOffers runs one full offer round:
//
//  1. Preparation under the caller's monitor: update the registry's executor
//     indexes for every offer, shuffle the offers to avoid always favoring
//     the same worker, and notify every queued manager of any host seen for
//     the first time this round.
//  2. Policy selection: the oracle's IsCustomize()/Mode() choose between the
//     default walk, PPA, and BPA.
//  3. Policy execution, producing a TaskDescription slice per offer plus the
//     set of first-seen executors for the caller to report upstream.
func (e *Engine) ResourceOffers(offers []types.WorkerOffer, queue []taskset.Manager, reg *registry.TaskRegistry) (dispatches [][]types.TaskDescription, newExecutors []NewExecutorEvent, launchedAny bool) {
	perm := rand.Perm(len(offers))
	shuffled := make([]types.WorkerOffer, len(offers))
	for i, p := range perm {
		shuffled[i] = offers[p]
	}

	seenHosts := make(map[string]bool)
	for _, o := range shuffled {
		if reg.AddExecutor(o.ExecutorID, o.Host, "") {
			newExecutors = append(newExecutors, NewExecutorEvent{ExecutorID: o.ExecutorID, Host: o.Host})
			seenHosts[o.Host] = true
		}
	}

	if len(seenHosts) > 0 {
		for _, m := range queue {
			for host := range seenHosts {
				m.NewExecutorAvailable(host)
			}
		}
	}

	tasks := make([][]types.TaskDescription, len(shuffled))
	availableCpus := make([]int, len(shuffled))
	for i, o := range shuffled {
		availableCpus[i] = o.Cores
	}

	policy := types.PolicyDefault
	if e.oracle.IsCustomize() {
		policy = e.oracle.Mode()
	}

	switch policy {
	case types.PolicyPPA:
		e.runPPA(queue, shuffled, tasks, availableCpus, reg)
	case types.PolicyBPA:
		e.runBPA(queue, shuffled, tasks, availableCpus, reg)
	default:
		e.runDefault(queue, shuffled, tasks, availableCpus, reg)
	}

	// tasks is indexed to shuffled; unpermute back to the caller's original
	// offers order so dispatches[i] always corresponds to offers[i].
	dispatches = make([][]types.TaskDescription, len(offers))
	for i, p := range perm {
		dispatches[p] = tasks[i]
	}

	for _, t := range dispatches {
		if len(t) > 0 {
			launchedAny = true
			break
		}
	}
	return dispatches, newExecutors, launchedAny
}

// drain pulls every task a manager currently has to offer at one locality
// level into a slice, without binding any of them to a worker yet. Used by
// PPA and BPA, which choose the destination worker only after seeing the
// task's predicted demand. A SerializationFailed outcome returns whatever
// was drained so far and stops draining that task set at that locality.
func drain(m taskset.Manager, locality types.LocalityLevel, logger zerolog.Logger) []types.TaskDescription {
	var out []types.TaskDescription
	for {
		desc, outcome := m.ResourceOffer("", "", locality)
		switch outcome {
		case types.Dispatched:
			out = append(out, desc)
		case types.SerializationFailed:
			logger.Warn().Int("stage_id", desc.StageID).Msg("task serialization failed, skipping task set for this round")
			return out
		default: // NoTask
			return out
		}
	}
}
