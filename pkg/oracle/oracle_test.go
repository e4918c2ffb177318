package oracle

import (
	"testing"

	"github.com/flywheel-sh/flywheel/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestNewStatic_IsCustomizeReflectsPolicy(t *testing.T) {
	assert.False(t, NewStatic(types.PolicyDefault, nil).IsCustomize())
	assert.False(t, NewStatic("", nil).IsCustomize())
	assert.True(t, NewStatic(types.PolicyPPA, nil).IsCustomize())
	assert.True(t, NewStatic(types.PolicyBPA, nil).IsCustomize())
}

func TestStatic_Mode(t *testing.T) {
	o := NewStatic(types.PolicyPPA, nil)
	assert.Equal(t, types.PolicyPPA, o.Mode())
}

func TestStatic_CPUCore(t *testing.T) {
	o := NewStatic(types.PolicyPPA, map[int64]int{1: 42})
	assert.Equal(t, 42, o.CPUCore(1))
	assert.Equal(t, 0, o.CPUCore(999)) // unknown task defaults to zero demand
}

func TestStatic_SetDemandOverridesInitialMap(t *testing.T) {
	o := NewStatic(types.PolicyPPA, map[int64]int{1: 10})
	o.SetDemand(1, 20)
	assert.Equal(t, 20, o.CPUCore(1))
}

func TestStatic_DemandMapIsCopiedOnConstruction(t *testing.T) {
	demand := map[int64]int{1: 10}
	o := NewStatic(types.PolicyPPA, demand)
	demand[1] = 999 // mutating the caller's map must not affect the oracle
	assert.Equal(t, 10, o.CPUCore(1))
}

func TestStatic_RePredictionsRecordsCalls(t *testing.T) {
	o := NewStatic(types.PolicyPPA, nil)
	assert.Empty(t, o.RePredictions())

	o.RePrediction(1, 30)
	o.RePrediction(2, 10)

	records := o.RePredictions()
	assert.Equal(t, []RePredictionRecord{{TaskID: 1, Residual: 30}, {TaskID: 2, Residual: 10}}, records)
}

func TestStatic_GetSchedulingModeIsPassthrough(t *testing.T) {
	o := NewStatic(types.PolicyDefault, nil)
	assert.Equal(t, types.ModeFAIR, o.GetSchedulingMode(types.ModeFAIR))
}

func TestStatic_TaskSetPriorityDefaultsToSubmitted(t *testing.T) {
	o := NewStatic(types.PolicyDefault, nil)
	assert.Equal(t, 5, o.TaskSetPriority(1, 5))
}

func TestStatic_TaskSetPriorityOverridesSubmitted(t *testing.T) {
	o := NewStatic(types.PolicyDefault, nil)
	o.SetTaskSetPriority(1, 99)
	assert.Equal(t, 99, o.TaskSetPriority(1, 5))
	assert.Equal(t, 7, o.TaskSetPriority(2, 7)) // untouched stage still passes through
}
