/*
Package taskset defines Manager, the TaskSetManager contract, and Default,
a reference implementation used by tests and the demo CLI. In production,
TaskSetManagers are owned by the stage planner — an external collaborator —
and track real task attempts against a real stage's DAG; this package
exists so the scheduler core has something concrete to admit, offer, and
retire.

# Lifecycle

A Default starts with every task index pending, in order. ResourceOffer
pops one index off the pending queue per call and returns a
TaskDescription, until the queue is empty or the manager has gone zombie.
HandleSuccessfulTask and HandleFailedTask apply a status-update outcome:

  - success marks the index done and drops the running entry.
  - failure increments that index's failure count and re-queues it, unless
    the count reaches maxTaskFailures, in which case the whole manager goes
    zombie and HandleFailedTask reports abort=true.
  - KILLED never counts toward maxTaskFailures and never re-queues — a
    killed task was intentionally stopped, not a failure to retry.
  - a failure for an index that already succeeded (its speculative loser)
    is a no-op other than clearing the running entry.

ExecutorLost re-queues every running task on the lost executor that hasn't
already succeeded. Abort flips the manager to zombie immediately,
independent of any task outcome — used by cancelTasks. The max-failures
path does not go through Abort: HandleFailedTask sets zombie itself.

At most one non-zombie Manager may exist per stage id at a time; the
scheduler core enforces that invariant, not this package.

# Usage

	mgr := taskset.NewDefault(ts, cfg.MaxTaskFailures, core.NextTaskID)
	desc, outcome := mgr.ResourceOffer("exec-1", "host-1", types.NodeLocal)
	if outcome == types.Dispatched {
		// hand desc to the backend
	}
*/
package taskset
