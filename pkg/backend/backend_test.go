package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFake_StartStopReady(t *testing.T) {
	f := NewFake("app-1", 4)
	assert.True(t, f.IsReady())

	assert.NoError(t, f.Stop())
	assert.False(t, f.IsReady())

	assert.NoError(t, f.Start())
	assert.True(t, f.IsReady())
}

func TestFake_IdentityAndParallelism(t *testing.T) {
	f := NewFake("app-1", 8)
	assert.Equal(t, "app-1", f.ApplicationID())
	assert.Equal(t, "app-1-attempt-1", f.ApplicationAttemptID())
	assert.Equal(t, 8, f.DefaultParallelism())
}

func TestFake_ReviveOffersCountsCalls(t *testing.T) {
	f := NewFake("app-1", 1)
	f.ReviveOffers()
	f.ReviveOffers()
	f.ReviveOffers()
	assert.Equal(t, 3, f.ReviveCount())
}

func TestFake_KillTaskRecordsHistory(t *testing.T) {
	f := NewFake("app-1", 1)
	f.KillTask(1, "exec-a", true)
	f.KillTask(2, "exec-b", false)

	killed := f.Killed()
	if assert.Len(t, killed, 2) {
		assert.Equal(t, FakeKill{TaskID: 1, ExecutorID: "exec-a", InterruptThread: true}, killed[0])
		assert.Equal(t, FakeKill{TaskID: 2, ExecutorID: "exec-b", InterruptThread: false}, killed[1])
	}
}

func TestFake_ExecutorLifecycle(t *testing.T) {
	f := NewFake("app-1", 1)
	f.ExecutorAdded("exec-a", "host-1")
	f.ExecutorAdded("exec-b", "host-2")
	f.ExecutorLost("exec-a")

	assert.Equal(t, []string{"exec-a", "exec-b"}, f.Added())
	assert.Equal(t, []string{"exec-a"}, f.Lost())
}

func TestFake_ExecutorHeartbeatReceived(t *testing.T) {
	f := NewFake("app-1", 1)
	assert.True(t, f.ExecutorHeartbeatReceived("exec-a", nil, "bm-1"))
	assert.False(t, f.ExecutorHeartbeatReceived("exec-a", nil, ""))
}

func TestOffer(t *testing.T) {
	o := Offer("exec-a", "host-1", 400)
	assert.Equal(t, "exec-a", o.ExecutorID)
	assert.Equal(t, "host-1", o.Host)
	assert.Equal(t, 400, o.Cores)
}
