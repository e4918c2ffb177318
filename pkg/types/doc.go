/*
Package types defines the data structures shared by every scheduler-core
package: TaskSet and its properties, TaskDescription (a dispatch decision),
WorkerOffer, and the small enums (LocalityLevel, TaskState, SchedulingMode,
PlacementPolicy) that describe how they move through the scheduler.

None of these types carry behavior beyond simple accessors and the
String()/IsTerminal() helpers on the enums; the state machines that mutate
them live in pkg/taskset, pkg/pool, pkg/placement and pkg/scheduler.

# Locality

LocalityLevel values are ordered from most to least preferred:
ProcessLocal, NodeLocal, NoPref, RackLocal, Any. TaskSetProperties carries
the ordered list a task set is willing to try, most preferred first; the
placement policies walk it in that order.

# Scheduling knobs

A TaskSet's Properties.Priority and Properties.Weight feed pkg/pool's
ModeCPU and ModeFAIR sorts respectively — Priority is the submitted value
an oracle may override at sort time, Weight is this task set's FAIR-mode
share (unset weighs the same as 1). Properties.Pool names which pool the
task set is attached to; this module's reference scheduler only ever
constructs one pool, so every task set shares it.

# PlacementOutcome

PlacementOutcome is a tri-state result instead of an error return: a
failed serialization should abort only the current task set for this
resourceOffers round, not the whole round, so ResourceOffer reports
SerializationFailed rather than returning an error the caller would have
to decide whether to propagate.
*/
package types
