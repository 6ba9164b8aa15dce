package scheduler

import (
	stderrors "errors"
	"testing"
	"time"

	"autoclicker/internal/core/model"
	"autoclicker/internal/input"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T) (*Scheduler, *input.Recorder) {
	t.Helper()
	recorder := input.NewRecorder(model.Point{X: 300, Y: 400})
	logger, _ := logtest.NewNullLogger()
	scheduler := New(recorder, logger)
	t.Cleanup(scheduler.Close)
	return scheduler, recorder
}

func clickConfig(intervalMillis int) model.ClickConfig {
	config := model.DefaultClickConfig()
	config.IntervalMillis = intervalMillis
	return config
}

// drain collects events until the channel is quiet for the given window.
func drain(events <-chan Event, quiet time.Duration) []Event {
	var out []Event
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, event)
		case <-time.After(quiet):
			return out
		}
	}
}

func TestAutoStopAfterDuration(t *testing.T) {
	scheduler, recorder := newTestScheduler(t)
	events := scheduler.Subscribe(16)

	config := clickConfig(100)
	config.StopPolicy = model.StopForDuration
	config.StopDurationSeconds = 1
	require.NoError(t, scheduler.Enable(config))
	assert.True(t, scheduler.IsRunning())

	require.Eventually(t, func() bool { return !scheduler.IsRunning() }, 2*time.Second, 10*time.Millisecond)

	var autoStopped, stopped int
	for _, event := range drain(events, 300*time.Millisecond) {
		if event.Type != EventStateChange || event.Running {
			continue
		}
		stopped++
		if event.AutoStopped {
			autoStopped++
		}
	}
	assert.Equal(t, 1, autoStopped)
	assert.Equal(t, 1, stopped)
	assert.NotEmpty(t, recorder.Clicks())
}

func TestZeroDurationStopsImmediately(t *testing.T) {
	scheduler, recorder := newTestScheduler(t)

	config := clickConfig(50)
	config.StopPolicy = model.StopForDuration
	config.StopDurationSeconds = 0
	require.NoError(t, scheduler.Enable(config))

	require.Eventually(t, func() bool { return !scheduler.IsRunning() }, time.Second, 5*time.Millisecond)
	time.Sleep(120 * time.Millisecond)
	assert.LessOrEqual(t, len(recorder.Clicks()), 1)
}

func TestManualDisableCancelsAutoStop(t *testing.T) {
	scheduler, _ := newTestScheduler(t)
	events := scheduler.Subscribe(16)

	config := clickConfig(50)
	config.StopPolicy = model.StopForDuration
	config.StopDurationSeconds = 1
	require.NoError(t, scheduler.Enable(config))
	scheduler.Disable()

	time.Sleep(1200 * time.Millisecond)
	for _, event := range drain(events, 50*time.Millisecond) {
		assert.False(t, event.AutoStopped, "auto-stop fired after manual disable")
	}
}

func TestDisableStopsFurtherTicks(t *testing.T) {
	scheduler, recorder := newTestScheduler(t)

	require.NoError(t, scheduler.Enable(clickConfig(20)))
	require.Eventually(t, func() bool { return len(recorder.Clicks()) >= 2 }, time.Second, 5*time.Millisecond)

	scheduler.Disable()
	assert.False(t, scheduler.IsRunning())
	before := len(recorder.Clicks())

	time.Sleep(100 * time.Millisecond)
	after := len(recorder.Clicks())
	assert.LessOrEqual(t, after, before+1, "more than one in-flight tick after disable")

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, after, len(recorder.Clicks()))
}

func TestDisableIsIdempotent(t *testing.T) {
	scheduler, _ := newTestScheduler(t)
	events := scheduler.Subscribe(16)

	scheduler.Disable()
	require.NoError(t, scheduler.Enable(clickConfig(500)))
	scheduler.Disable()
	scheduler.Disable()

	received := drain(events, 50*time.Millisecond)
	require.Len(t, received, 2)
	assert.True(t, received[0].Running)
	assert.False(t, received[1].Running)
	assert.False(t, received[1].AutoStopped)
	assert.Equal(t, received[0].RunID, received[1].RunID)
}

func TestToggleTwiceRestoresState(t *testing.T) {
	scheduler, _ := newTestScheduler(t)
	require.NoError(t, scheduler.Reconfigure(clickConfig(500)))

	require.NoError(t, scheduler.Toggle())
	assert.True(t, scheduler.IsRunning())
	require.NoError(t, scheduler.Toggle())
	assert.False(t, scheduler.IsRunning())

	require.NoError(t, scheduler.Enable(clickConfig(500)))
	require.NoError(t, scheduler.Toggle())
	require.NoError(t, scheduler.Toggle())
	assert.True(t, scheduler.IsRunning())
	assert.Equal(t, 500, scheduler.Config().IntervalMillis)
}

func TestReconfigureRestartsCadence(t *testing.T) {
	scheduler, recorder := newTestScheduler(t)

	require.NoError(t, scheduler.Enable(clickConfig(400)))
	time.Sleep(100 * time.Millisecond)

	calledAt := time.Now()
	require.NoError(t, scheduler.Reconfigure(clickConfig(150)))
	assert.True(t, scheduler.IsRunning())

	require.Eventually(t, func() bool { return len(recorder.Clicks()) >= 1 }, time.Second, 2*time.Millisecond)
	first := recorder.Clicks()[0].At.Sub(calledAt)
	assert.GreaterOrEqual(t, first, 120*time.Millisecond)
	assert.Less(t, first, 280*time.Millisecond, "tick followed the old cadence")
}

func TestReconfigureWhileStoppedOnlyStores(t *testing.T) {
	scheduler, recorder := newTestScheduler(t)
	events := scheduler.Subscribe(4)

	config := clickConfig(20)
	config.Button = model.ButtonMiddle
	require.NoError(t, scheduler.Reconfigure(config))

	time.Sleep(80 * time.Millisecond)
	assert.False(t, scheduler.IsRunning())
	assert.Empty(t, recorder.Calls())
	assert.Empty(t, drain(events, 10*time.Millisecond))
	assert.Equal(t, model.ButtonMiddle, scheduler.Config().Button)
}

func TestReconfigureRejectsInvalidAndKeepsRun(t *testing.T) {
	scheduler, _ := newTestScheduler(t)
	require.NoError(t, scheduler.Enable(clickConfig(300)))

	config := clickConfig(100)
	config.ClickKind = "triple"
	err := scheduler.Reconfigure(config)

	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.True(t, scheduler.IsRunning())
	assert.Equal(t, 300, scheduler.Config().IntervalMillis)
}

func TestDoubleClickSecondPressAfterDelay(t *testing.T) {
	scheduler, recorder := newTestScheduler(t)

	config := clickConfig(200)
	config.ClickKind = model.ClickDouble
	require.NoError(t, scheduler.Enable(config))

	require.Eventually(t, func() bool { return len(recorder.Clicks()) >= 4 }, 2*time.Second, 2*time.Millisecond)
	scheduler.Disable()

	clicks := recorder.Clicks()
	gap := clicks[1].At.Sub(clicks[0].At)
	assert.GreaterOrEqual(t, gap, model.DoubleClickDelay)
	assert.Less(t, gap, 80*time.Millisecond)

	period := clicks[2].At.Sub(clicks[0].At)
	assert.InDelta(t, float64(200*time.Millisecond), float64(period), float64(60*time.Millisecond))
}

func TestFixedPositionScenario(t *testing.T) {
	scheduler, recorder := newTestScheduler(t)

	require.NoError(t, scheduler.Enable(model.ClickConfig{
		IntervalMillis: 100,
		PointerMode:    model.PointerFixed,
		FixedPosition:  model.Point{X: 10, Y: 20},
		Button:         model.ButtonLeft,
		ClickKind:      model.ClickSingle,
		StopPolicy:     model.StopUntilStopped,
	}))
	time.Sleep(250 * time.Millisecond)
	scheduler.Disable()

	calls := recorder.Calls()
	clicks := 0
	for i, call := range calls {
		if call.Kind != input.CallClick {
			continue
		}
		clicks++
		require.Greater(t, i, 0)
		previous := calls[i-1]
		assert.Equal(t, input.CallMove, previous.Kind)
		assert.Equal(t, model.Point{X: 10, Y: 20}, previous.Point)
		assert.Equal(t, model.ButtonLeft, call.Button)
	}
	assert.GreaterOrEqual(t, clicks, 2)
	assert.LessOrEqual(t, clicks, 3)
}

func TestTrackingModeReadsWithoutMoving(t *testing.T) {
	scheduler, recorder := newTestScheduler(t)

	require.NoError(t, scheduler.Enable(clickConfig(30)))
	require.Eventually(t, func() bool { return len(recorder.Clicks()) >= 2 }, time.Second, 5*time.Millisecond)
	scheduler.Disable()

	for _, call := range recorder.Calls() {
		assert.NotEqual(t, input.CallMove, call.Kind)
	}
	assert.Equal(t, model.Point{X: 300, Y: 400}, recorder.Clicks()[0].Point)
}

func TestDispatchFailureKeepsRunning(t *testing.T) {
	recorder := input.NewRecorder(model.Point{})
	recorder.FailClicks(stderrors.New("accessibility permission missing"))
	logger, hook := logtest.NewNullLogger()
	scheduler := New(recorder, logger)
	defer scheduler.Close()
	events := scheduler.Subscribe(16)

	require.NoError(t, scheduler.Enable(clickConfig(20)))

	var failure Event
	require.Eventually(t, func() bool {
		select {
		case event := <-events:
			if event.Type == EventDispatchError {
				failure = event
				return true
			}
		default:
		}
		return false
	}, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, failure.Err, input.ErrInjection)
	assert.True(t, scheduler.IsRunning())

	require.Eventually(t, func() bool {
		for _, entry := range hook.AllEntries() {
			if entry.Level == logrus.WarnLevel && entry.Message == "Click dispatch failed" {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
}

func TestNonPositiveIntervalFallsBack(t *testing.T) {
	scheduler, _ := newTestScheduler(t)

	require.NoError(t, scheduler.Reconfigure(clickConfig(0)))
	assert.Equal(t, model.DefaultIntervalMillis, scheduler.Config().IntervalMillis)

	require.NoError(t, scheduler.Enable(clickConfig(250)))
	require.NoError(t, scheduler.Enable(clickConfig(-5)))
	assert.Equal(t, 250, scheduler.Config().IntervalMillis)
}

func TestEnableRejectsMalformedConfig(t *testing.T) {
	scheduler, recorder := newTestScheduler(t)

	config := clickConfig(20)
	config.Button = "thumb"
	err := scheduler.Enable(config)

	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.False(t, scheduler.IsRunning())
	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, recorder.Calls())
}

func TestEnableWhileRunningLeavesSingleTimer(t *testing.T) {
	scheduler, recorder := newTestScheduler(t)
	events := scheduler.Subscribe(16)

	for i := 0; i < 5; i++ {
		require.NoError(t, scheduler.Enable(clickConfig(50)))
	}
	time.Sleep(275 * time.Millisecond)
	scheduler.Disable()

	assert.LessOrEqual(t, len(recorder.Clicks()), 6)
	started := 0
	for _, event := range drain(events, 20*time.Millisecond) {
		if event.Type == EventStateChange && event.Running {
			started++
		}
	}
	assert.Equal(t, 1, started)
}

func TestCloseStopsAndClosesSubscribers(t *testing.T) {
	scheduler, recorder := newTestScheduler(t)
	events := scheduler.Subscribe(4)

	require.NoError(t, scheduler.Enable(clickConfig(20)))
	scheduler.Close()

	assert.False(t, scheduler.IsRunning())
	assert.ErrorIs(t, scheduler.Enable(clickConfig(20)), ErrClosed)

	received := drain(events, 50*time.Millisecond)
	require.Len(t, received, 2)
	_, open := <-events
	assert.False(t, open)

	count := len(recorder.Clicks())
	time.Sleep(60 * time.Millisecond)
	assert.LessOrEqual(t, len(recorder.Clicks()), count+1)

	_, open = <-scheduler.Subscribe(1)
	assert.False(t, open)
}
