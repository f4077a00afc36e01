package components

// Location is the ECS component holding a mirrored entity's world position.
type Location struct {
	X, Y float32
}

// Set copies a board position into the component.
func (l *Location) Set(p Position) {
	l.X = float32(p.X)
	l.Y = float32(p.Y)
}

// Heading tracks the direction of an ant's most recent step.
type Heading struct {
	DX, DY float32 // last displacement
}
