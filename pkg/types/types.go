package types

// LocalityLevel is the ordered preference for co-locating a task with its
// input data. Lower values are more preferred.
type LocalityLevel int

const (
	ProcessLocal LocalityLevel = iota
	NodeLocal
	NoPref
	RackLocal
	Any
)

func (l LocalityLevel) String() string {
	switch l {
	case ProcessLocal:
		return "PROCESS_LOCAL"
	case NodeLocal:
		return "NODE_LOCAL"
	case NoPref:
		return "NO_PREF"
	case RackLocal:
		return "RACK_LOCAL"
	case Any:
		return "ANY"
	default:
		return "UNKNOWN"
	}
}

// TaskState is the lifecycle state of a single dispatched task.
type TaskState string

const (
	TaskLaunching TaskState = "LAUNCHING"
	TaskRunning   TaskState = "RUNNING"
	TaskFinished  TaskState = "FINISHED"
	TaskFailed    TaskState = "FAILED"
	TaskKilled    TaskState = "KILLED"
	TaskLost      TaskState = "LOST"
)

// IsTerminal reports whether a task in this state will never change state
// again.
func (s TaskState) IsTerminal() bool {
	switch s {
	case TaskFinished, TaskFailed, TaskKilled, TaskLost:
		return true
	default:
		return false
	}
}

// SchedulingMode selects the ordering strategy a Pool uses when it sorts its
// children into the task-set queue.
type SchedulingMode string

const (
	ModeFIFO SchedulingMode = "FIFO"
	ModeFAIR SchedulingMode = "FAIR"
	ModeCPU  SchedulingMode = "CPU"
	ModeNONE SchedulingMode = "NONE"
)

// PlacementPolicy selects which algorithm resourceOffers uses for a round.
type PlacementPolicy string

const (
	PolicyDefault PlacementPolicy = "DEFAULT"
	PolicyPPA     PlacementPolicy = "PPA"
	PolicyBPA     PlacementPolicy = "BPA"
)

// TaskSetProperties carries the scheduling-relevant metadata of a task set
// that isn't the tasks themselves.
type TaskSetProperties struct {
	Pool     string
	Priority int
	// Weight is this task set's share under ModeFAIR; unset (zero) weighs
	// the same as 1.
	Weight         int
	LocalityLevels []LocalityLevel
}

// TaskSet is an immutable batch of tasks belonging to one (StageID,
// StageAttemptID). It is produced by the stage planner and handed to the
// scheduler core via SubmitTasks.
type TaskSet struct {
	StageID        int
	StageAttemptID int
	Tasks          []TaskInfo
	Properties     TaskSetProperties
}

// TaskInfo is the static description of one task within a TaskSet, as known
// at submission time (before any dispatch decision has been made).
type TaskInfo struct {
	Index int // position within the TaskSet, stable across speculative copies
}

// TaskDescription is a dispatch decision: one task, on one executor, with its
// serialized payload. TaskID is globally unique and strictly monotonic within
// one scheduler-core lifetime (see scheduler.Core.NextTaskID).
type TaskDescription struct {
	TaskID     int64
	Index      int
	StageID    int
	AttemptID  int
	ExecutorID string
	Payload    []byte
}

// WorkerOffer is one worker's offer of free capacity for a single
// resourceOffers round. Cores are integer units of 1/100 of a worker, so a
// fully idle worker reports 100.
type WorkerOffer struct {
	ExecutorID string
	Host       string
	Cores      int
}

// PlacementOutcome is the tri-state result of asking a TaskSetManager for a
// dispatch at a given locality level, used instead of an error return so a
// failed serialization aborts only the current task set for this round, not
// the whole engine.
type PlacementOutcome int

const (
	// Dispatched means a TaskDescription was produced and should be placed.
	Dispatched PlacementOutcome = iota
	// NoTask means the manager had nothing to offer at this locality level;
	// the caller should move on to the next worker or locality.
	NoTask
	// SerializationFailed means the manager found a task but failed to
	// serialize it; the current task set is skipped for this round only.
	SerializationFailed
)
