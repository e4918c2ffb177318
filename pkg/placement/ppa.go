package placement

import (
	"math"

	"github.com/flywheel-sh/flywheel/pkg/registry"
	"github.com/flywheel-sh/flywheel/pkg/taskset"
	"github.com/flywheel-sh/flywheel/pkg/types"
)

// runPPA is the Priority Placement Algorithm: for each
// task set, at each locality level, drain the manager's current offer into a
// load buffer, then repeatedly place the task with the largest predicted
// demand onto the worker that would be left with the smallest non-negative
// residual. When no worker can satisfy the head task outright, it falls back
// to the worker with the most free capacity and tells the oracle to
// downgrade its estimate. If even that worker is fully saturated, the whole
// round stops: every undrained and undispatched task is handed back to its
// manager so the next offer round can retry it.
func (e *Engine) runPPA(queue []taskset.Manager, offers []types.WorkerOffer, tasks [][]types.TaskDescription, availableCpus []int, reg *registry.TaskRegistry) {
	for _, ts := range queue {
		if ts.IsZombie() {
			continue
		}

		for _, locality := range ts.TaskSet().Properties.LocalityLevels {
			buf := drain(ts, locality, e.logger)
			if !e.placePPABatch(ts, buf, offers, tasks, availableCpus, reg) {
				return
			}
		}
	}
}

// placePPABatch consumes a drained batch of tasks for a single manager,
// returning false if the round must stop entirely (no worker has any spare
// capacity left).
func (e *Engine) placePPABatch(ts taskset.Manager, buf []types.TaskDescription, offers []types.WorkerOffer, tasks [][]types.TaskDescription, availableCpus []int, reg *registry.TaskRegistry) bool {
	// Largest-demand-first: resort the batch by descending predicted CPU
	// demand so the heaviest task is always considered next.
	demand := make([]int, len(buf))
	for i, t := range buf {
		demand[i] = e.oracle.CPUCore(t.TaskID)
	}
	order := sortByDemandDesc(demand)

	for pos, idx := range order {
		task := buf[idx]
		consume := demand[idx]

		maxIdx, maxLeft := -1, -1
		selectIdx, minLeft := -1, math.MaxInt
		for w := range offers {
			if availableCpus[w] > maxLeft {
				maxLeft, maxIdx = availableCpus[w], w
			}
			if availableCpus[w] >= consume && availableCpus[w]-consume < minLeft {
				minLeft, selectIdx = availableCpus[w]-consume, w
			}
		}

		decrement := consume
		if selectIdx == -1 {
			if maxLeft <= 0 {
				// Nothing left anywhere: return this task and every task
				// still unplaced in the batch, then stop the round.
				for _, remaining := range order[pos:] {
					ts.Return(buf[remaining].TaskID)
				}
				return false
			}
			selectIdx = maxIdx
			decrement = maxLeft
			e.oracle.RePrediction(task.TaskID, maxLeft)
		}

		task.ExecutorID = offers[selectIdx].ExecutorID
		tasks[selectIdx] = append(tasks[selectIdx], task)
		reg.RecordDispatch(task.TaskID, task.StageID, task.ExecutorID)
		availableCpus[selectIdx] -= decrement
	}
	return true
}

// sortByDemandDesc returns the indexes of demand in descending order,
// stable on ties (insertion order preserved for equal demand).
func sortByDemandDesc(demand []int) []int {
	order := make([]int, len(demand))
	for i := range order {
		order[i] = i
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && demand[order[j]] > demand[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return order
}
