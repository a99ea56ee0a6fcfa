package game

import "time"

// Frame summarizes one call to Loop.Advance.
type Frame struct {
	Steps   int // simulation steps run
	Dropped int // steps skipped because the cap was reached
}

// Loop keeps a simulated clock that advances in fixed quanta behind a
// wall clock.
type Loop struct {
	step     time.Duration
	maxSteps int
	simTime  time.Duration
}

// NewLoop creates a loop with the given quantum. maxSteps bounds the number
// of steps run per Advance; zero or less means no bound.
func NewLoop(step time.Duration, maxSteps int) *Loop {
	return &Loop{step: step, maxSteps: maxSteps}
}

// SimTime returns the simulated time reached so far.
func (l *Loop) SimTime() time.Duration {
	return l.simTime
}

// Sync moves the simulated clock to the last step boundary at or before now
// without running any steps.
func (l *Loop) Sync(now time.Duration) {
	l.simTime = now - now%l.step
}

// Step returns the quantum.
func (l *Loop) Step() time.Duration {
	return l.step
}

// Advance runs tick once for every step boundary the wall clock has passed,
// passing the boundary being advanced to. tick returning false stops the
// catch-up immediately.
//
// When maxSteps boundaries have been processed and the wall clock is still
// ahead, the remaining whole steps are dropped: the simulated clock jumps to
// the last boundary at or before now. The world then runs slower than real
// time instead of bursting through a long backlog after a stall.
func (l *Loop) Advance(now time.Duration, tick func(boundary time.Duration) bool) Frame {
	var f Frame
	for l.simTime+l.step <= now {
		if l.maxSteps > 0 && f.Steps >= l.maxSteps {
			behind := (now - l.simTime) / l.step
			f.Dropped = int(behind)
			l.simTime += behind * l.step
			break
		}
		next := l.simTime + l.step
		f.Steps++
		cont := tick(next)
		l.simTime = next
		if !cont {
			break
		}
	}
	return f
}
