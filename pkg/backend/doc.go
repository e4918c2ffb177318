/*
Package backend defines the two external collaborator contracts the
scheduler core drives but never implements for production use — the
cluster-manager-facing Backend, and the StagePlanner upcall surface the
scheduler uses to report executor lifecycle events and heartbeats — and
ships Fake, a single in-memory type that satisfies both, for tests and the
demo CLI. Fake records every call instead of driving real workers or a real
stage planner, modeled on a request/response method shape but with no real
transport underneath.

# Monitor boundary

Every Backend method is called from scheduler.Core only after releasing
its monitor; a real backend implementation may itself hold a lock while
invoking ReviveOffers or KillTask, and calling it under the scheduler's own
lock risks lock-order deadlock. StagePlanner methods follow the same rule.

# Usage

	be := backend.NewFake("app-1", 400)   // one Fake is a Backend...
	sp := backend.NewFake("app-1-sp", 0)  // ...and a second is a StagePlanner

	core, err := scheduler.New(cfg, be, sp, oracle, deserializer, true)
	// ...
	assert.Equal(t, 1, be.ReviveCount())
	assert.Equal(t, []string{"exec-1"}, sp.Added())
*/
package backend
