package input

import (
	"sync"
	"time"

	"autoclicker/internal/core/model"
)

// CallKind identifies a recorded executor call.
type CallKind string

const (
	CallPosition CallKind = "position"
	CallMove     CallKind = "move"
	CallClick    CallKind = "click"
)

// Call is one executor invocation captured by Recorder.
type Call struct {
	Kind   CallKind
	Point  model.Point
	Button model.Button
	At     time.Time
}

// Recorder is an Executor that performs no injection and keeps a log of calls.
// It backs the dry-run backend and the tests of packages that drive an Executor.
type Recorder struct {
	mu       sync.Mutex
	pointer  model.Point
	calls    []Call
	clickErr error
	onCall   func(Call)
}

// NewRecorder creates a Recorder whose pointer starts at origin.
func NewRecorder(origin model.Point) *Recorder {
	return &Recorder{pointer: origin}
}

// FailClicks makes every following Click return err. A nil err clears it.
func (recorder *Recorder) FailClicks(err error) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.clickErr = err
}

// OnCall registers a hook invoked after each call is recorded.
func (recorder *Recorder) OnCall(hook func(Call)) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.onCall = hook
}

func (recorder *Recorder) Position() (model.Point, error) {
	recorder.mu.Lock()
	point := recorder.pointer
	recorder.mu.Unlock()
	recorder.record(Call{Kind: CallPosition, Point: point})
	return point, nil
}

func (recorder *Recorder) Move(point model.Point) error {
	recorder.mu.Lock()
	recorder.pointer = point
	recorder.mu.Unlock()
	recorder.record(Call{Kind: CallMove, Point: point})
	return nil
}

func (recorder *Recorder) Click(button model.Button) error {
	recorder.mu.Lock()
	point := recorder.pointer
	err := recorder.clickErr
	recorder.mu.Unlock()
	if err != nil {
		return err
	}
	recorder.record(Call{Kind: CallClick, Point: point, Button: button})
	return nil
}

// Calls returns a copy of the recorded calls.
func (recorder *Recorder) Calls() []Call {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	out := make([]Call, len(recorder.calls))
	copy(out, recorder.calls)
	return out
}

// Clicks returns only the recorded clicks.
func (recorder *Recorder) Clicks() []Call {
	var clicks []Call
	for _, call := range recorder.Calls() {
		if call.Kind == CallClick {
			clicks = append(clicks, call)
		}
	}
	return clicks
}

// Reset drops the recorded calls.
func (recorder *Recorder) Reset() {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.calls = nil
}

func (recorder *Recorder) record(call Call) {
	call.At = time.Now()
	recorder.mu.Lock()
	recorder.calls = append(recorder.calls, call)
	hook := recorder.onCall
	recorder.mu.Unlock()
	if hook != nil {
		hook(call)
	}
}
