package reservation

// Status values are stored and served as-is; the mobile client matches on
// the Spanish words.
type Status string

const (
	StatusPending  Status = "pendiente"
	StatusApproved Status = "aprobada"
	StatusRejected Status = "rechazada"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// CancelClass classifies an allowed cancellation by how close it happened
// to the reservation start.
type CancelClass string

const (
	CancelNormal CancelClass = "normal"
	CancelLate   CancelClass = "late"
)

func (c CancelClass) String() string {
	return string(c)
}
