package sim

// Input is one participant's intent for a single tick. It is a plain value:
// inputs are compared with == to detect mispredictions, stored by value in
// the input history, and carried inside State for edge detection.
type Input struct {
	Left    bool
	Right   bool
	Crouch  bool
	Attack1 bool
	Attack2 bool
	Attack3 bool
}

// Neutral is the all-released input, used as the prediction fallback when
// nothing is known about a participant yet.
var Neutral = Input{}
