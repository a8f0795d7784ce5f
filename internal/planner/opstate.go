package planner

// OpState is the tiny per-operation state machine that replaces ad-hoc busy
// booleans. Every long-running operation owns one; the event loop moves it
// to InFlight when the request is issued and back on the result message, so
// a failure can never leave the UI stuck busy.
type OpState int

const (
	OpIdle OpState = iota
	OpInFlight
	OpFailed
)

// Busy reports whether the triggering control should be disabled.
func (s OpState) Busy() bool { return s == OpInFlight }

func (s OpState) String() string {
	switch s {
	case OpInFlight:
		return "in-flight"
	case OpFailed:
		return "failed"
	default:
		return "idle"
	}
}
