/*
Package placement implements Engine.ResourceOffers and its three selectable
policies: runDefault (round-robin by locality), runPPA (priority placement,
largest-demand-first onto the min-residual worker), and runBPA (bin
placement, tasks taken in the order they were drained). No GPA policy is
implemented — Engine.ResourceOffers falls back to runDefault for any policy
it doesn't recognize.

The engine owns no registry or pool state of its own — every call is handed
the current task-set queue and the scheduler core's registry explicitly, so
the core stays the single owner of that state and the engine's locking
requirements stay at zero: it is always invoked under the scheduler core's
monitor and returns plain data for the caller to act on once the lock is
released.

# Policy selection

oracle.Oracle.IsCustomize and oracle.Oracle.Mode choose the policy for a
round: IsCustomize()==false always runs runDefault regardless of Mode;
otherwise Mode picks between runPPA and runBPA. PPA and BPA both consult
oracle.Oracle.CPUCore for per-task demand and call RePrediction when a
task's demand does not fit: PPA after placing the task on the worker with
the most residual capacity, BPA when no bin can take the task (the task is
then returned to its manager and the BPA round stops). Either way a real
oracle can adjust its future estimate for that task.

# Prioritize

Prioritize implements host-balanced ordering independent of the rest of
the package: given a map from host to its ordered container list, it
interleaves hosts by descending list length — every host's i-th container
before any host's (i+1)-th — so that walking the returned slice spreads
allocations across hosts instead of draining one host at a time.

# Usage

	engine := placement.New(oracle, cfg.CPUsPerTask)
	dispatches, newExecutors, launchedAny := engine.ResourceOffers(offers, queue, registry)
*/
package placement
