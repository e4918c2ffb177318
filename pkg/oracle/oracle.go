package oracle

import (
	"sync"

	"github.com/flywheel-sh/flywheel/pkg/types"
)

// Oracle is the PredictionOracle contract.
type Oracle interface {
	// IsCustomize reports whether a non-default placement policy is active.
	IsCustomize() bool
	// Mode returns the active custom policy ("PPA" or "BPA"). Only
	// meaningful when IsCustomize returns true.
	Mode() types.PlacementPolicy
	// CPUCore returns the predicted CPU demand (in the same 1/100-worker
	// units as WorkerOffer.Cores) for the given task.
	CPUCore(taskID int64) int
	// RePrediction records that taskID's predicted demand did not fit and
	// only residual cores were available (PPA: the task was placed there
	// anyway; BPA: the task was not placed), so the oracle can downgrade its
	// future estimate for it.
	RePrediction(taskID int64, residual int)
	// GetSchedulingMode lets the oracle override the configured Pool
	// scheduling mode; returning the input unchanged means "no override".
	GetSchedulingMode(current types.SchedulingMode) types.SchedulingMode
	// TaskSetPriority lets the oracle override the submitted priority used to
	// order a stage under ModeCPU; returning submitted unchanged means "no
	// override". Consulted on every GetSortedTaskSetQueue call, so an oracle
	// can reprioritize a stage as its predictions change.
	TaskSetPriority(stageID int, submitted int) int
}

// Static is a reference Oracle implementation: a fixed policy, a
// caller-supplied per-task demand map, and a log of RePrediction calls a
// test can assert against.
type Static struct {
	mu         sync.Mutex
	customize  bool
	policy     types.PlacementPolicy
	demand     map[int64]int
	repreds    []RePredictionRecord
	priorities map[int]int
}

// RePredictionRecord is one call to RePrediction, retained for assertions.
type RePredictionRecord struct {
	TaskID   int64
	Residual int
}

// NewStatic builds a Static oracle. When policy is empty, IsCustomize
// reports false and the engine falls back to the default round-robin
// policy.
func NewStatic(policy types.PlacementPolicy, demand map[int64]int) *Static {
	d := make(map[int64]int, len(demand))
	for k, v := range demand {
		d[k] = v
	}
	return &Static{
		customize:  policy == types.PolicyPPA || policy == types.PolicyBPA,
		policy:     policy,
		demand:     d,
		priorities: make(map[int]int),
	}
}

// SetDemand sets (or overrides) the predicted demand for a task.
func (s *Static) SetDemand(taskID int64, cores int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.demand[taskID] = cores
}

func (s *Static) IsCustomize() bool { return s.customize }

func (s *Static) Mode() types.PlacementPolicy { return s.policy }

func (s *Static) CPUCore(taskID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.demand[taskID]
}

func (s *Static) RePrediction(taskID int64, residual int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repreds = append(s.repreds, RePredictionRecord{TaskID: taskID, Residual: residual})
}

// RePredictions returns a copy of every RePrediction call recorded so far.
func (s *Static) RePredictions() []RePredictionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RePredictionRecord, len(s.repreds))
	copy(out, s.repreds)
	return out
}

func (s *Static) GetSchedulingMode(current types.SchedulingMode) types.SchedulingMode {
	return current
}

// SetTaskSetPriority overrides the priority TaskSetPriority reports for a
// stage, e.g. to simulate an oracle that has reprioritized it.
func (s *Static) SetTaskSetPriority(stageID int, priority int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.priorities[stageID] = priority
}

func (s *Static) TaskSetPriority(stageID int, submitted int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.priorities[stageID]; ok {
		return p
	}
	return submitted
}
