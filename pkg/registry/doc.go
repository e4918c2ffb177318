/*
Package registry implements TaskRegistry, the set of in-memory indexes the
scheduler core maintains between admission and dispatch. Every index is
guarded by a single mutex — TaskRegistry is owned exclusively by one
scheduler.Core and mutated only while Core holds its own monitor, so the
registry's lock is never contended from outside that single caller; it
exists for the discipline of not reaching into its maps directly, not for
concurrency the scheduler doesn't already serialize.

# Indexes

  - taskIDToTaskSet / taskIDToExecutor: per-task dispatch bookkeeping,
    populated by RecordDispatch and cleared by ClearTask once a task
    reaches a terminal state.
  - activeExecutors / executorToHost / executorsByHost: executor
    membership and host grouping, populated by AddExecutor and purged by
    RemoveExecutor.
  - hostsByRack / rackByHost: rack-awareness for placement's locality
    fallback, populated alongside host tracking when a rack is known.

QuiescentKeySetsMatch is a consistency check a test can run between
rounds: when no task is mid-dispatch, taskIDToTaskSet and taskIDToExecutor
must track exactly the same task ids.

# Usage

	reg := registry.New()
	firstOnHost := reg.AddExecutor("exec-1", "host-1", "rack-a")
	reg.RecordDispatch(taskID, stageID, "exec-1")
	// ... later, once the task reaches a terminal state:
	reg.ClearTask(taskID)
*/
package registry
