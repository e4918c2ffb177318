package deserializer

import (
	"testing"

	"github.com/flywheel-sh/flywheel/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestFake_DecodeSuccessCallsOnDecodedInline(t *testing.T) {
	f := NewFake()
	called := false
	f.DecodeSuccess(1, nil, func(ok bool) {
		called = true
		assert.True(t, ok)
	})
	assert.True(t, called)
	assert.Equal(t, []int64{1}, f.Decoded())
}

func TestFake_DecodeFailureCallsOnDecodedInline(t *testing.T) {
	f := NewFake()
	called := false
	f.DecodeFailure(2, types.TaskLost, nil, func(ok bool) {
		called = true
		assert.True(t, ok)
	})
	assert.True(t, called)
	assert.Equal(t, []int64{2}, f.Decoded())
}

func TestFake_DecodedRecordsCallOrder(t *testing.T) {
	f := NewFake()
	f.DecodeSuccess(1, nil, func(bool) {})
	f.DecodeFailure(2, types.TaskFailed, nil, func(bool) {})
	f.DecodeSuccess(3, nil, func(bool) {})
	assert.Equal(t, []int64{1, 2, 3}, f.Decoded())
}
