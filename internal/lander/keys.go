package lander

// KeyState is the keyboard state for one tick.
type KeyState struct {
	Left  bool
	Right bool
	Down  bool
	Shift bool
}

// Intent translates keys to thrusters.
//
// Left/Right alone fire the bottom-left/bottom-right thrusters, Shift+Left/Right
// fire the upper thrusters instead, and Down fires the main engine. Shift also
// puts the main engine in precision mode.
func (k KeyState) Intent() Intent {
	var in Intent
	in.Thrusters.Set(ThrusterBottomLeft, k.Left && !k.Shift)
	in.Thrusters.Set(ThrusterBottomRight, k.Right && !k.Shift)
	in.Thrusters.Set(ThrusterBottomCenter, k.Down)
	in.Thrusters.Set(ThrusterUpperLeft, k.Left && k.Shift)
	in.Thrusters.Set(ThrusterUpperRight, k.Right && k.Shift)
	in.Precision = k.Shift
	return in
}
