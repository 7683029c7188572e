package intake

// Step is the current position in the client-intake dialogue.
type Step int

const (
	StepIdle Step = iota
	StepAwaitLastNameConfirm
	StepAwaitFirstName
	StepAwaitAddress
	StepAwaitPhone
	StepAwaitEmail
	// StepAwaitLastName is only reachable when the trigger-phrase gate is
	// enabled: the trigger utterance starts the flow without carrying a name.
	StepAwaitLastName
)

// Field keys under which collected answers are stored.
const (
	FieldLastName  = "last_name"
	FieldFirstName = "first_name"
	FieldAddress   = "address"
	FieldPhone     = "phone"
	FieldEmail     = "email"
)

// State is one in-progress (or idle) intake dialogue for a single session.
type State struct {
	Step      Step              `json:"step"`
	Collected map[string]string `json:"collected"`
}

func NewState() State {
	return State{Step: StepIdle, Collected: map[string]string{}}
}

// valid reports whether a stored state is structurally sound: a known step,
// and collected fields consistent with how far the dialogue has advanced.
// Idle means nothing collected; any capture step past the confirm step
// requires a last name on record.
func (s State) valid() bool {
	if s.Step < StepIdle || s.Step > StepAwaitLastName {
		return false
	}
	switch s.Step {
	case StepIdle:
		return len(s.Collected) == 0
	case StepAwaitLastName:
		return len(s.Collected) == 0
	case StepAwaitLastNameConfirm, StepAwaitFirstName, StepAwaitAddress, StepAwaitPhone, StepAwaitEmail:
		return s.Collected[FieldLastName] != ""
	}
	return false
}

// Clone returns a deep copy so callers can hold state without sharing the map.
func (s State) Clone() State {
	out := State{Step: s.Step, Collected: make(map[string]string, len(s.Collected))}
	for k, v := range s.Collected {
		out.Collected[k] = v
	}
	return out
}
