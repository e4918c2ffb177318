package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddExecutor_FirstSeenHost(t *testing.T) {
	r := New()
	assert.True(t, r.AddExecutor("exec-1", "host-1", ""))
	assert.False(t, r.AddExecutor("exec-2", "host-1", ""))
	assert.True(t, r.AddExecutor("exec-3", "host-2", ""))
}

func TestDispatchIndexesRoundTrip(t *testing.T) {
	r := New()
	r.RecordDispatch(42, 1, "exec-1")

	stageID, ok := r.TaskSetFor(42)
	assert.True(t, ok)
	assert.Equal(t, 1, stageID)

	execID, ok := r.ExecutorFor(42)
	assert.True(t, ok)
	assert.Equal(t, "exec-1", execID)

	r.ClearTask(42)
	_, ok = r.TaskSetFor(42)
	assert.False(t, ok)
	_, ok = r.ExecutorFor(42)
	assert.False(t, ok)
}

func TestRemoveExecutor_PurgesHostAndRackIndexes(t *testing.T) {
	r := New()
	r.AddExecutor("exec-1", "host-1", "rack-a")
	r.AddExecutor("exec-2", "host-1", "rack-a")

	r.RemoveExecutor("exec-1")
	assert.True(t, r.IsActiveExecutor("exec-2"))
	assert.False(t, r.IsActiveExecutor("exec-1"))

	host, ok := r.HostFor("exec-1")
	assert.False(t, ok)
	assert.Empty(t, host)

	r.RemoveExecutor("exec-2")
	assert.Equal(t, 0, r.ActiveExecutorCount())
}

func TestRemoveExecutor_UnknownIsNoop(t *testing.T) {
	r := New()
	r.RemoveExecutor("never-added")
	assert.Equal(t, 0, r.ActiveExecutorCount())
}

func TestActiveExecutorCount(t *testing.T) {
	r := New()
	r.AddExecutor("exec-1", "host-1", "")
	r.AddExecutor("exec-2", "host-2", "")
	assert.Equal(t, 2, r.ActiveExecutorCount())
}

func TestQuiescentKeySetsMatch(t *testing.T) {
	r := New()
	assert.True(t, r.QuiescentKeySetsMatch())

	r.RecordDispatch(1, 1, "exec-1")
	assert.True(t, r.QuiescentKeySetsMatch())

	r.ClearTask(1)
	assert.True(t, r.QuiescentKeySetsMatch())
}
