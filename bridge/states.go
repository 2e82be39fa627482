package bridge

// State is the phase of a bridge attempt. A single attempt moves forward
// through the phases; any failure after chain alignment lands in
// StateSettledFailure, and Settled returns to StateIdle after the settle
// delay.
type State int

const (
	StateIdle State = iota
	StateValidatingInput
	StateCheckingChain
	StateSwitchingChain
	StateQuoting
	StateCheckingApproval
	StateApproving
	StateSubmitting
	StateConfirming
	StateSettledSuccess
	StateSettledFailure
)

// String returns the phase name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidatingInput:
		return "validating-input"
	case StateCheckingChain:
		return "checking-chain"
	case StateSwitchingChain:
		return "switching-chain"
	case StateQuoting:
		return "quoting"
	case StateCheckingApproval:
		return "checking-approval"
	case StateApproving:
		return "approving"
	case StateSubmitting:
		return "submitting"
	case StateConfirming:
		return "confirming"
	case StateSettledSuccess:
		return "settled-success"
	case StateSettledFailure:
		return "settled-failure"
	default:
		return "unknown"
	}
}

// Settled reports whether the attempt has reached a terminal phase.
func (s State) Settled() bool {
	return s == StateSettledSuccess || s == StateSettledFailure
}
