/*
Package pool implements the Pool / SchedulableBuilder tree: a named
scheduling node that orders its attached task-set managers into the queue
the placement engine consumes on each resourceOffers round.

Only a single, unnested root Pool is ever constructed by scheduler.New —
SchedulableBuilder's reference implementation here has no child-pool
nesting, so weighted fair-share only ever operates over the managers
attached directly to the root, never over a hierarchy of named pools
competing for a parent's share. A nested hierarchy is a natural extension
(each Pool would need a parent weight folded into its children's sort key)
but isn't exercised by anything in this tree.

# Scheduling Modes

GetSortedTaskSetQueue orders its children according to the Pool's
SchedulingMode, chosen once at construction (scheduler.New reads it from
config.Config.SchedulingMode, subject to the oracle's GetSchedulingMode
override):

  - FIFO: insertion order (Attach sequence), oldest first.
  - FAIR: descending task-set weight (TaskSetProperties.Weight; unset
    weighs the same as 1), ties broken by insertion order.
  - CPU: descending task-set priority, as resolved by the oracle's
    TaskSetPriority(stageID, submitted) on every call — the oracle can
    reprioritize a stage between rounds without the pool knowing.
  - NONE: insertion order, with no speculation or preemption hook.

# Usage

	p := pool.New("root", types.ModeFAIR, 1, oc)
	p.Attach(mgr, ts.Properties.Priority)
	defer p.Detach(mgr)

	for _, mgr := range p.GetSortedTaskSetQueue() {
		// hand mgr to the placement engine for this round
	}

CheckSpeculatableTasks is the hook the SpeculationTicker polls; it skips
zombie managers and otherwise just forwards to the caller-supplied
predicate, since this reference pool has no task-duration statistics of
its own to decide speculation eligibility.
*/
package pool
