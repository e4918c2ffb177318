/*
Package metrics instruments the scheduler core's hot path with Prometheus
series, registered at package init against the default registry and exposed
via Handler() for an HTTP /metrics endpoint.

Metrics Catalog

flywheel_tasks_dispatched_total{policy}: counter, one increment per
TaskDescription handed to a worker offer.

flywheel_tasks_failed_total{state}: counter, one increment per terminal
non-success statusUpdate.

flywheel_placement_latency_seconds{policy}: histogram, wall time of one
resourceOffers round.

flywheel_speculative_tasks_total: counter, one increment per
SpeculationTicker tick that finds speculatable work and requests a fresh
offer round.

flywheel_active_executors: gauge, mirrors TaskRegistry.ActiveExecutorCount.

flywheel_starvation_warnings_total: counter, one increment per
StarvationWatchdog warning (one per tick until the first task launches).

Use NewTimer at the start of a round and ObserveDurationVec at the end to
record PlacementLatency; the other series are plain Inc/Set calls from the
scheduler core and placement engine.
*/
package metrics
