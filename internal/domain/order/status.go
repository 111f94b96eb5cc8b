package order

// Status is the lifecycle state of an order. The set is closed: draft, ready, done.
type Status string

const (
	StatusDraft Status = "draft"
	StatusReady Status = "ready"
	StatusDone  Status = "done"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusReady, StatusDone:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusDraft:
		return target == StatusReady
	case StatusReady:
		return target == StatusDone
	case StatusDone:
		return false // Terminal state
	}
	return false
}

// Next returns the status one step ahead. Done has no successor and returns itself.
func (s Status) Next() Status {
	switch s {
	case StatusDraft:
		return StatusReady
	case StatusReady:
		return StatusDone
	}
	return s
}

// IsTerminal reports whether no further transition is possible
func (s Status) IsTerminal() bool {
	return s == StatusDone
}

// AcceptsLines reports whether line items can still be appended
func (s Status) AcceptsLines() bool {
	return s == StatusDraft || s == StatusReady
}
