package simulation

// Side identifies a paddle or half of the field.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

// String returns "left", "right" or "none".
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// StepResult reports what happened during one step.
type StepResult struct {
	WallBounce   bool
	PaddleBounce Side
	Scored       Side // side that won the point
}

// Stepper advances a World by one fixed quantum.
type Stepper struct {
	cfg Config
	dt  float64
}

// NewStepper creates a stepper for the given rules.
func NewStepper(cfg Config) *Stepper {
	return &Stepper{cfg: cfg, dt: cfg.StepSeconds()}
}

// Config returns the rules the stepper was built with.
func (s *Stepper) Config() Config {
	return s.cfg
}

// Step advances w by exactly one quantum. The order is fixed: ball motion,
// wall bounce, left then right paddle plane, paddle motion, paddle clamp.
func (s *Stepper) Step(w *World) StepResult {
	var res StepResult
	ball := &w.Ball
	height := s.cfg.Window.Height

	ball.Position = ball.Position.Add(ball.Velocity.Scale(s.dt))

	// One step of penetration is allowed; the reversal brings it back.
	if ball.Top() <= 0 || ball.Bottom() >= height {
		ball.Velocity.Y = -ball.Velocity.Y
		res.WallBounce = true
	}

	left := w.PaddleLeft
	if ball.Left() <= left.Right() {
		if ball.OverlapsVertically(left) {
			ball.Velocity.X = -ball.Velocity.X
			res.PaddleBounce = SideLeft
		}
		if ball.Left() <= 0 {
			*ball = NewBall(s.cfg)
			res.Scored = SideRight
		}
	}

	right := w.PaddleRight
	if ball.Left() >= right.Left()-ball.Extent.X {
		if ball.OverlapsVertically(right) {
			ball.Velocity.X = -ball.Velocity.X
			res.PaddleBounce = SideRight
		}
		if ball.Left() >= s.cfg.Window.Width {
			*ball = NewBall(s.cfg)
			res.Scored = SideLeft
		}
	}

	s.movePaddle(&w.PaddleLeft)
	s.movePaddle(&w.PaddleRight)

	return res
}

func (s *Stepper) movePaddle(p *Entity) {
	p.Position.Y += p.Velocity.Y * s.dt

	maxY := s.cfg.Window.Height - p.Extent.Y
	if p.Position.Y < 0 {
		p.Position.Y = 0
	} else if p.Position.Y > maxY {
		p.Position.Y = maxY
	}
}
