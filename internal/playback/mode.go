package playback

// Direction is the order in which frames are visited.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Backward {
		return Forward
	}
	return Backward
}

// ParseDirection converts a string to a Direction, reporting false for
// unknown names.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "forward", "fwd":
		return Forward, true
	case "backward", "back", "reverse":
		return Backward, true
	}
	return Forward, false
}

// LoopMode decides what happens when the cursor runs off the playback range.
type LoopMode int

const (
	Loop     LoopMode = iota // wrap around to the other end
	PingPong                 // bounce and reverse direction
)

func (m LoopMode) String() string {
	if m == PingPong {
		return "ping-pong"
	}
	return "loop"
}

// Next cycles to the other loop mode.
func (m LoopMode) Next() LoopMode {
	if m == PingPong {
		return Loop
	}
	return PingPong
}

// ParseLoopMode converts a string to a LoopMode, reporting false for
// unknown names.
func ParseLoopMode(s string) (LoopMode, bool) {
	switch s {
	case "loop":
		return Loop, true
	case "ping-pong", "pingpong", "bounce":
		return PingPong, true
	}
	return Loop, false
}
