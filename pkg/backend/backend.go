package backend

import "github.com/flywheel-sh/flywheel/pkg/types"

// TaskMetric is one entry of the per-task metrics batch a heartbeat carries.
type TaskMetric struct {
	TaskID    int64
	StageID   int
	AttemptID int
	Metrics   map[string]float64
}

// Backend is the scheduler's view of the cluster manager / worker-facing
// transport. Every method that crosses into a Backend implementation must be
// called outside the scheduler core's monitor — a real implementation may
// itself hold a lock while calling back into the scheduler.
type Backend interface {
	Start() error
	Stop() error
	IsReady() bool
	DefaultParallelism() int
	ApplicationID() string
	ApplicationAttemptID() string

	// ReviveOffers asynchronously requests a fresh resourceOffers round.
	ReviveOffers()
	// KillTask asks the backend to terminate a running task. interruptThread
	// distinguishes a graceful cancel request from a forced interrupt.
	KillTask(taskID int64, executorID string, interruptThread bool)
}

// StagePlanner is the upcall surface the scheduler core drives when executor
// membership or heartbeats change.
type StagePlanner interface {
	ExecutorAdded(executorID, host string)
	ExecutorLost(executorID string)
	// ExecutorHeartbeatReceived reports liveness and returns false when the
	// heartbeat's block manager id is unrecognized and must re-register.
	ExecutorHeartbeatReceived(executorID string, metrics []TaskMetric, blockManagerID string) bool
}

// Fake is an in-memory Backend + StagePlanner pair for tests and the demo
// CLI. It records every call it receives instead of driving real workers,
// and lets a test or the CLI read that history back.
type Fake struct {
	appID       string
	attemptID   string
	parallelism int
	ready       bool

	reviveCount int
	killed      []FakeKill
	added       []string
	lost        []string
	heartbeats  []string
}

// FakeKill records one KillTask call.
type FakeKill struct {
	TaskID           int64
	ExecutorID       string
	InterruptThread  bool
}

// NewFake builds a ready Fake backend with the given default parallelism.
func NewFake(appID string, parallelism int) *Fake {
	return &Fake{
		appID:       appID,
		attemptID:   appID + "-attempt-1",
		parallelism: parallelism,
		ready:       true,
	}
}

func (f *Fake) Start() error { f.ready = true; return nil }
func (f *Fake) Stop() error  { f.ready = false; return nil }
func (f *Fake) IsReady() bool { return f.ready }
func (f *Fake) DefaultParallelism() int      { return f.parallelism }
func (f *Fake) ApplicationID() string        { return f.appID }
func (f *Fake) ApplicationAttemptID() string { return f.attemptID }

func (f *Fake) ReviveOffers() { f.reviveCount++ }

func (f *Fake) KillTask(taskID int64, executorID string, interruptThread bool) {
	f.killed = append(f.killed, FakeKill{TaskID: taskID, ExecutorID: executorID, InterruptThread: interruptThread})
}

// ReviveCount returns how many times ReviveOffers was called.
func (f *Fake) ReviveCount() int { return f.reviveCount }

// Killed returns every KillTask call recorded so far.
func (f *Fake) Killed() []FakeKill { return append([]FakeKill(nil), f.killed...) }

func (f *Fake) ExecutorAdded(executorID, host string) {
	f.added = append(f.added, executorID)
}

func (f *Fake) ExecutorLost(executorID string) {
	f.lost = append(f.lost, executorID)
}

func (f *Fake) ExecutorHeartbeatReceived(executorID string, metrics []TaskMetric, blockManagerID string) bool {
	f.heartbeats = append(f.heartbeats, executorID)
	return blockManagerID != ""
}

// Added returns every executor id reported via ExecutorAdded.
func (f *Fake) Added() []string { return append([]string(nil), f.added...) }

// Lost returns every executor id reported via ExecutorLost.
func (f *Fake) Lost() []string { return append([]string(nil), f.lost...) }

// Offer is a convenience constructor used by tests and the demo CLI to build
// a WorkerOffer without importing pkg/types directly at every call site.
func Offer(executorID, host string, cores int) types.WorkerOffer {
	return types.WorkerOffer{ExecutorID: executorID, Host: host, Cores: cores}
}
