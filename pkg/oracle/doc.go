/*
Package oracle defines Oracle, the PredictionOracle contract the placement
engine and pool consult for per-task CPU demand estimates and two
scheduling overrides, and ships Static — a small, deterministic reference
implementation for tests and the demo CLI. The production oracle is an
external collaborator that would run real prediction models; nothing here
is meant to be one.

# What the oracle decides

  - CPUCore(taskID) — the predicted demand for a task, consumed by PPA/BPA
    placement to choose which worker to offer it to.
  - RePrediction(taskID, residual) — placement's feedback loop: a task's
    demand did not fit and only residual cores were available (PPA places
    it there anyway, BPA leaves it unplaced), so a real oracle would
    downgrade its future estimate. Static only logs the call for test
    assertions; it does not change CPUCore's answer.
  - GetSchedulingMode(current) — lets the oracle override the configured
    Pool scheduling mode outright. Static is a passthrough: it always
    returns current unchanged.
  - TaskSetPriority(stageID, submitted) — lets the oracle override a
    task set's CPU-mode sort priority, reconsulted on every
    GetSortedTaskSetQueue call so a reprioritization takes effect on the
    very next round. Static defaults to submitted unless
    SetTaskSetPriority was called for that stage.

# Usage

	oc := oracle.NewStatic(types.PolicyPPA, map[int64]int{1: 40, 2: 20})
	oc.SetDemand(3, 60)           // simulate a later prediction update
	oc.SetTaskSetPriority(7, 99)  // simulate the oracle reprioritizing stage 7

	core, err := scheduler.New(cfg, backend, stagePlanner, oc, rd, false)
*/
package oracle
