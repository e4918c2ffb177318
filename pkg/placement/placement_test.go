package placement

import (
	"testing"

	"github.com/flywheel-sh/flywheel/pkg/oracle"
	"github.com/flywheel-sh/flywheel/pkg/registry"
	"github.com/flywheel-sh/flywheel/pkg/taskset"
	"github.com/flywheel-sh/flywheel/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskSet(stageID, n int) *types.TaskSet {
	tasks := make([]types.TaskInfo, n)
	for i := range tasks {
		tasks[i] = types.TaskInfo{Index: i}
	}
	return &types.TaskSet{
		StageID: stageID,
		Tasks:   tasks,
		Properties: types.TaskSetProperties{
			Pool:           "default",
			LocalityLevels: []types.LocalityLevel{types.Any},
		},
	}
}

func sequentialAllocator() taskset.IDAllocator {
	var next int64
	return func() int64 {
		next++
		return next
	}
}

// Two workers offering 4 cores each, CPUS_PER_TASK=1, one task set of 6
// ANY-locality tasks. Exactly 6 total dispatched, residual sums to 2 across
// the two workers.
func TestDefaultPolicy_DispatchesAllTasksAcrossWorkers(t *testing.T) {
	ts := newTaskSet(1, 6)
	mgr := taskset.NewDefault(ts, 4, sequentialAllocator())
	oc := oracle.NewStatic(types.PolicyDefault, nil)
	reg := registry.New()
	engine := New(oc, 1)

	offers := []types.WorkerOffer{
		{ExecutorID: "exec1", Host: "h1", Cores: 4},
		{ExecutorID: "exec2", Host: "h2", Cores: 4},
	}

	dispatches, _, launched := engine.ResourceOffers(offers, []taskset.Manager{mgr}, reg)
	require.True(t, launched)

	total := 0
	for _, perWorker := range dispatches {
		total += len(perWorker)
	}
	assert.Equal(t, 6, total)
}

// offers [(e1,100),(e2,60)], demands [80,40] ⇒ 80→e1 (minLeft 20), 40→e2
// (minLeft 20). Residuals: e1=20, e2=20.
func TestPPA_PlacesEachTaskOnMinResidualWorker(t *testing.T) {
	ts := newTaskSet(2, 2)
	mgr := taskset.NewDefault(ts, 4, sequentialAllocator())
	oc := oracle.NewStatic(types.PolicyPPA, map[int64]int{1: 80, 2: 40})
	reg := registry.New()
	engine := New(oc, 1)

	offers := []types.WorkerOffer{
		{ExecutorID: "e1", Host: "h1", Cores: 100},
		{ExecutorID: "e2", Host: "h2", Cores: 60},
	}

	dispatches, _, launched := engine.ResourceOffers(offers, []taskset.Manager{mgr}, reg)
	require.True(t, launched)

	byExec := map[string][]types.TaskDescription{}
	for i, perWorker := range dispatches {
		byExec[offers[i].ExecutorID] = perWorker
	}

	require.Len(t, byExec["e1"], 1)
	require.Len(t, byExec["e2"], 1)
	assert.Equal(t, int64(1), byExec["e1"][0].TaskID) // demand 80
	assert.Equal(t, int64(2), byExec["e2"][0].TaskID) // demand 40
}

// offers [(e1,30)], one task with demand 50 ⇒ placed on e1,
// RePrediction(taskId, 30) called exactly once.
func TestPPA_FallsBackToMaxResidualWorkerOnOversizedDemand(t *testing.T) {
	ts := newTaskSet(3, 1)
	mgr := taskset.NewDefault(ts, 4, sequentialAllocator())
	oc := oracle.NewStatic(types.PolicyPPA, map[int64]int{1: 50})
	reg := registry.New()
	engine := New(oc, 1)

	offers := []types.WorkerOffer{{ExecutorID: "e1", Host: "h1", Cores: 30}}

	dispatches, _, launched := engine.ResourceOffers(offers, []taskset.Manager{mgr}, reg)
	require.True(t, launched)
	require.Len(t, dispatches[0], 1)

	repreds := oc.RePredictions()
	require.Len(t, repreds, 1)
	assert.Equal(t, int64(1), repreds[0].TaskID)
	assert.Equal(t, 30, repreds[0].Residual)
}

// offers with residuals [100, 60, 30], demand 70 ⇒ taken from freeMachines
// (the 100 worker), which moves to activeMachines.
func TestBPA_PlacesLargeDemandOnFreeBinHead(t *testing.T) {
	ts := newTaskSet(4, 1)
	mgr := taskset.NewDefault(ts, 4, sequentialAllocator())
	oc := oracle.NewStatic(types.PolicyBPA, map[int64]int{1: 70})
	reg := registry.New()
	engine := New(oc, 1)

	offers := []types.WorkerOffer{
		{ExecutorID: "e100", Host: "h1", Cores: 100},
		{ExecutorID: "e60", Host: "h2", Cores: 60},
		{ExecutorID: "e30", Host: "h3", Cores: 30},
	}

	dispatches, _, launched := engine.ResourceOffers(offers, []taskset.Manager{mgr}, reg)
	require.True(t, launched)

	var placedOn string
	for i, perWorker := range dispatches {
		if len(perWorker) > 0 {
			placedOn = offers[i].ExecutorID
		}
	}
	assert.Equal(t, "e100", placedOn)
}

func TestPrioritize_LengthAndMultiset(t *testing.T) {
	hosts := []string{"h1", "h2", "h3"}
	containers := map[string][]string{
		"h1": {"a1", "a2", "a3"},
		"h2": {"b1"},
		"h3": {"c1", "c2"},
	}

	out := Prioritize(hosts, containers)
	assert.Len(t, out, 6)

	seen := map[string]bool{}
	for _, c := range out {
		seen[c] = true
	}
	for _, cs := range containers {
		for _, c := range cs {
			assert.True(t, seen[c], "missing %s in output", c)
		}
	}

	// h1 (3 containers) must place its first container before h3's second.
	index := func(v string) int {
		for i, c := range out {
			if c == v {
				return i
			}
		}
		return -1
	}
	assert.Less(t, index("a1"), index("c2"))
}
