package domain

// PTOStatus is the approval state of a PTO request
type PTOStatus string

const (
	PTOPending  PTOStatus = "Pending"
	PTOApproved PTOStatus = "Approved"
	PTORejected PTOStatus = "Rejected"
)

// IsTerminal reports whether no further transition is possible
func (s PTOStatus) IsTerminal() bool {
	return s == PTOApproved || s == PTORejected
}

// CanTransitionTo allows only Pending -> Approved and Pending -> Rejected
func (s PTOStatus) CanTransitionTo(next PTOStatus) bool {
	return s == PTOPending && next.IsTerminal()
}

// Valid reports whether s is a known status
func (s PTOStatus) Valid() bool {
	return s == PTOPending || s.IsTerminal()
}
