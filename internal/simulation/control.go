package simulation

// KeyState is the held state of the left paddle's keys.
type KeyState struct {
	Up   bool
	Down bool
}

// Axis returns -1, 0 or +1 (screen y grows downwards).
func (k KeyState) Axis() float64 {
	var axis float64
	if k.Down {
		axis++
	}
	if k.Up {
		axis--
	}
	return axis
}

// ApplyKeyboard sets the paddle's vertical velocity from the held keys.
// Position is left to the stepper.
func ApplyKeyboard(p *Entity, keys KeyState, speed float64) {
	p.Velocity.Y = keys.Axis() * speed
}

// ApplyPointer steers the paddle towards the pointer's y coordinate. Within
// deadzone pixels of the paddle center the paddle stops, which keeps it from
// chattering around the pointer.
func ApplyPointer(p *Entity, pointerY, deadzone, speed float64) {
	delta := pointerY - p.CenterY()
	switch {
	case delta > deadzone:
		p.Velocity.Y = speed
	case delta < -deadzone:
		p.Velocity.Y = -speed
	default:
		p.Velocity.Y = 0
	}
}
