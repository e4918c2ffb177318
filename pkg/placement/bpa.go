package placement

import (
	"github.com/flywheel-sh/flywheel/pkg/registry"
	"github.com/flywheel-sh/flywheel/pkg/taskset"
	"github.com/flywheel-sh/flywheel/pkg/types"
)

// smallTaskThreshold separates "large" from "small" predicted demand in BPA.
// Both are expressed in the same 1/100-worker units as WorkerOffer.Cores.
const smallTaskThreshold = 50

// freeThreshold is the residual at or above which a worker is classified
// free rather than extra.
const freeThreshold = 100

// bins partitions worker indexes by current residual capacity. A worker
// appears in at most one bin at any instant (the pops below can drop it
// from all of them for the rest of the round); membership is only recomputed
// at the explicit pop/push points below, never by re-scanning availableCpus
// after a decrement — the staleness is deliberate bin-placement bookkeeping.
type bins struct {
	free   []int
	active []int
	extra  []int
}

func newBins(availableCpus []int) *bins {
	b := &bins{}
	for w, cpus := range availableCpus {
		switch {
		case cpus >= freeThreshold:
			b.free = append(b.free, w)
		case cpus > smallTaskThreshold:
			b.extra = append(b.extra, w)
		default:
			b.active = append(b.active, w)
		}
	}
	return b
}

// runBPA is the Bin Placement Algorithm. Bins are computed once per round,
// before the first task set is processed, and evolve only through the pop
// and push operations each placement performs.
func (e *Engine) runBPA(queue []taskset.Manager, offers []types.WorkerOffer, tasks [][]types.TaskDescription, availableCpus []int, reg *registry.TaskRegistry) {
	b := newBins(availableCpus)

	for _, ts := range queue {
		if ts.IsZombie() {
			continue
		}

		for _, locality := range ts.TaskSet().Properties.LocalityLevels {
			buf := drain(ts, locality, e.logger)
			if !e.placeBPABatch(ts, buf, b, offers, tasks, availableCpus, reg) {
				return
			}
		}
	}
}

func (e *Engine) placeBPABatch(ts taskset.Manager, buf []types.TaskDescription, b *bins, offers []types.WorkerOffer, tasks [][]types.TaskDescription, availableCpus []int, reg *registry.TaskRegistry) bool {
	for i, task := range buf {
		consume := e.oracle.CPUCore(task.TaskID)

		selected := -1
		if consume > smallTaskThreshold {
			selected = b.placeLarge(consume, availableCpus)
		} else {
			selected = b.placeSmall(consume, availableCpus)
		}

		if selected == -1 {
			e.oracle.RePrediction(task.TaskID, b.headResidual(availableCpus))
			for _, remaining := range buf[i:] {
				ts.Return(remaining.TaskID)
			}
			return false
		}

		task.ExecutorID = offers[selected].ExecutorID
		tasks[selected] = append(tasks[selected], task)
		reg.RecordDispatch(task.TaskID, task.StageID, task.ExecutorID)
		availableCpus[selected] -= consume
	}
	return true
}

// placeLarge implements the large-task (consume > 50) branch: prefer an
// untouched free machine, moving it into active on use; otherwise scan
// extraMachines for the first worker with enough residual, removing it from
// the bins for the rest of the round.
func (b *bins) placeLarge(consume int, availableCpus []int) int {
	if len(b.free) > 0 {
		w := b.free[0]
		b.free = b.free[1:]
		b.active = append(b.active, w)
		return w
	}
	for i, w := range b.extra {
		if availableCpus[w] >= consume {
			b.extra = append(b.extra[:i], b.extra[i+1:]...)
			return w
		}
	}
	return -1
}

// placeSmall implements the small-task (consume <= 50) branch: prefer
// reusing the head of activeMachines without evicting it (bin staleness is
// intentional — a worker can absorb several small tasks before its bin
// membership is ever revisited); fall through to extraMachines, discarding
// stale heads that can no longer satisfy consume; finally promote a free
// machine into extra if nothing else qualifies.
func (b *bins) placeSmall(consume int, availableCpus []int) int {
	if len(b.active) > 0 && availableCpus[b.active[0]] >= consume {
		return b.active[0]
	}
	if len(b.active) > 0 {
		b.active = b.active[1:]
	}
	for len(b.extra) > 0 && availableCpus[b.extra[0]] < consume {
		b.extra = b.extra[1:]
	}
	if len(b.extra) > 0 {
		return b.extra[0]
	}
	if len(b.free) > 0 {
		w := b.free[0]
		b.free = b.free[1:]
		b.extra = append(b.extra, w)
		return w
	}
	return -1
}

// headResidual reports the residual of whichever bin would have been
// consulted next, for the oracle's RePrediction call on an aborted round.
func (b *bins) headResidual(availableCpus []int) int {
	if len(b.extra) > 0 {
		return availableCpus[b.extra[0]]
	}
	if len(b.active) > 0 {
		return availableCpus[b.active[0]]
	}
	return 0
}
