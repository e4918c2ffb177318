package placement

import (
	"github.com/flywheel-sh/flywheel/pkg/registry"
	"github.com/flywheel-sh/flywheel/pkg/taskset"
	"github.com/flywheel-sh/flywheel/pkg/types"
)

// runDefault is the round-robin-by-locality walk: for each task set in
// queue order, widen through its locality
// levels from most to least preferred, and within each level sweep every
// worker once, dispatching one task per worker that still has spare
// capacity, stopping a level as soon as a full sweep places nothing.
func (e *Engine) runDefault(queue []taskset.Manager, offers []types.WorkerOffer, tasks [][]types.TaskDescription, availableCpus []int, reg *registry.TaskRegistry) {
taskSets:
	for _, ts := range queue {
		if ts.IsZombie() {
			continue
		}

		for _, locality := range ts.TaskSet().Properties.LocalityLevels {
			for {
				placedAny := false
				for w := range offers {
					if availableCpus[w] < e.cpusPerTask {
						continue
					}
					desc, outcome := ts.ResourceOffer(offers[w].ExecutorID, offers[w].Host, locality)
					switch outcome {
					case types.Dispatched:
						tasks[w] = append(tasks[w], desc)
						reg.RecordDispatch(desc.TaskID, desc.StageID, desc.ExecutorID)
						availableCpus[w] -= e.cpusPerTask
						placedAny = true
					case types.SerializationFailed:
						continue taskSets
					case types.NoTask:
						// nothing left at this locality for this worker
					}
				}
				if !placedAny {
					break
				}
			}
		}
	}
}
