package container

// ScratchState is the lifecycle state of a Scratch carrier.
type ScratchState uint8

const (
	// ScratchReset means the carrier holds nothing.
	ScratchReset ScratchState = iota
	// ScratchInitialized means a phase has stored a value.
	ScratchInitialized
)

// Scratch carries intra-call scratch state between the validate and record
// phases of a single call. A validate phase initializes it; releasing
// without persisting resets it, while Persist followed by Release leaves it
// initialized for the next phase of the same call. A Scratch is owned by
// the call context on one goroutine and is never shared.
type Scratch struct {
	state   ScratchState
	persist bool
	val     any
}

// State returns the current lifecycle state.
func (s *Scratch) State() ScratchState { return s.state }

// Init stores v and moves the carrier to ScratchInitialized. Re-initializing
// an initialized carrier replaces the value.
func (s *Scratch) Init(v any) {
	s.val = v
	s.state = ScratchInitialized
}

// Value returns the stored value, if initialized.
func (s *Scratch) Value() (any, bool) {
	if s.state != ScratchInitialized {
		return nil, false
	}
	return s.val, true
}

// Persist marks the carrier to survive the next Release.
func (s *Scratch) Persist() {
	s.persist = true
}

// Release ends a phase. If Persist was called since the last Release the
// carrier stays initialized for the following phase; otherwise it resets.
func (s *Scratch) Release() {
	if s.persist {
		s.persist = false
		return
	}
	s.val = nil
	s.state = ScratchReset
}
