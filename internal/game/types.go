package game

import "time"

// Stats tracks loop timing for the debug overlay and for tests.
type Stats struct {
	TotalSteps   uint64
	TotalDropped uint64
	LastFrame    Frame
	SimTime      time.Duration
}

func (s *Stats) record(f Frame, simTime time.Duration) {
	s.TotalDropped += uint64(f.Dropped)
	s.LastFrame = f
	s.SimTime = simTime
}
