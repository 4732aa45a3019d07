package booking

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// ActiveStatuses contam contra a capacidade do slot e contra a regra
// de um agendamento ativo por doador.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// ===============================
// Transições
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return ErrInvalidTransition
	}
	return nil
}

func CanCancel(current Status) error {
	if !current.IsActive() {
		return ErrInvalidTransition
	}
	return nil
}

func CanComplete(current Status) error {
	if !current.IsActive() {
		return ErrInvalidTransition
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if !current.IsActive() {
		return ErrInvalidTransition
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
