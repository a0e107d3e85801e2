package galaxy

import (
	"time"
)

// Time is the frame clock. Dt is the wall time since the previous frame.
type Time struct {
	Time    time.Time
	Dt      time.Duration
	Elapsed time.Duration
	Frame   uint64
	start   time.Time
}

type TimeModule struct{}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := time.Now()
	cmd.AddResources(&Time{Time: now, start: now})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude),
	)
}

func timeSystem(t *Time) {
	t.advance(time.Now())
}

func (t *Time) advance(now time.Time) {
	t.Dt = now.Sub(t.Time)
	t.Time = now
	t.Elapsed = now.Sub(t.start)
	t.Frame++
}
