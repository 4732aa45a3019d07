package booking

import "errors"

// Erros de negócio do motor de agendamento. Os handlers mapeiam cada um
// para o status HTTP adequado; nenhum é engolido nos use cases.
var (
	ErrSlotNotFound      = errors.New("slot_not_found")
	ErrSlotFull          = errors.New("slot_full")
	ErrInvalidTransition = errors.New("invalid_transition")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("booking_not_found")
	ErrConflict          = errors.New("active_bookings_exist")
)

// ValidationError cobre entrada malformada (datas invertidas, capacidade
// não positiva, data no passado).
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}

func ErrValidation(msg string) error {
	return ValidationError{Msg: msg}
}

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// Motivos de inelegibilidade.
const (
	ReasonActiveBooking      = "ACTIVE_BOOKING_EXISTS"
	ReasonIntervalNotElapsed = "INTERVAL_NOT_ELAPSED"
)

// NotEligibleError carrega o motivo e, quando aplicável, a próxima data
// em que o doador poderá agendar.
type NotEligibleError struct {
	Reason           string
	NextEligibleDate string // YYYY-MM-DD, vazio quando não se aplica
}

func (e NotEligibleError) Error() string {
	return "not_eligible: " + e.Reason
}
