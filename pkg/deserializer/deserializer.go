// Package deserializer defines the ResultDeserializer contract: the
// external collaborator statusUpdate hands a task's raw result payload to,
// off the scheduler core's monitor. Decoding itself — the wire format of a
// successful result or a failure trace — is out of scope for this module;
// only the asynchronous hand-off shape is modeled, plus a synchronous fake
// for tests and the demo CLI.
package deserializer

import "github.com/flywheel-sh/flywheel/pkg/types"

// ResultDeserializer decodes a task's result payload and reports back via
// onDecoded once done. A real implementation may decode on a separate
// worker pool and call onDecoded from there, arbitrarily later and on a
// different goroutine; the caller must not assume onDecoded runs
// synchronously or on the calling goroutine.
type ResultDeserializer interface {
	// DecodeSuccess decodes a FINISHED task's payload. onDecoded(true) means
	// the manager should be told the task succeeded; onDecoded(false) means
	// decoding failed and the task should be treated as not yet resolved.
	DecodeSuccess(taskID int64, payload []byte, onDecoded func(ok bool))
	// DecodeFailure decodes a FAILED/KILLED/LOST task's payload (typically a
	// reason string or stack trace).
	DecodeFailure(taskID int64, state types.TaskState, payload []byte, onDecoded func(ok bool))
}

// Fake is a ResultDeserializer that decodes nothing and reports success
// synchronously, inline, before its method returns. It exists so the
// scheduler core can exercise the real hand-off shape (release the monitor,
// decode, reacquire to apply the result) without a real wire format.
type Fake struct {
	decoded []int64
}

// NewFake builds a Fake ResultDeserializer.
func NewFake() *Fake { return &Fake{} }

func (f *Fake) DecodeSuccess(taskID int64, payload []byte, onDecoded func(ok bool)) {
	f.decoded = append(f.decoded, taskID)
	onDecoded(true)
}

func (f *Fake) DecodeFailure(taskID int64, state types.TaskState, payload []byte, onDecoded func(ok bool)) {
	f.decoded = append(f.decoded, taskID)
	onDecoded(true)
}

// Decoded returns every task id handed to DecodeSuccess or DecodeFailure so
// far, in call order.
func (f *Fake) Decoded() []int64 { return append([]int64(nil), f.decoded...) }
