package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/RenatoWlk/projeto-aplicado-II/internal/domain/booking"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/httperr"
)

// writeDomainError traduz a taxonomia de erros do domínio para HTTP. Todos
// os handlers de agendamento passam por aqui para manter o contrato único.
func writeDomainError(c *gin.Context, err error) {
	var notEligible domain.NotEligibleError
	if errors.As(err, &notEligible) {
		httperr.WriteDetails(
			c,
			http.StatusUnprocessableEntity,
			"not_eligible",
			"Doador não elegível para agendamento.",
			gin.H{
				"reason":             notEligible.Reason,
				"next_eligible_date": notEligible.NextEligibleDate,
			},
		)
		return
	}

	var validation domain.ValidationError
	if errors.As(err, &validation) {
		httperr.BadRequest(c, validation.Msg, "Dados inválidos.")
		return
	}

	var business httperr.BusinessError
	if errors.As(err, &business) {
		httperr.BadRequest(c, business.Code, "Operação não permitida.")
		return
	}

	switch {
	case errors.Is(err, domain.ErrSlotNotFound):
		httperr.NotFound(c, "slot_not_found", "Slot não encontrado.")
	case errors.Is(err, domain.ErrNotFound):
		httperr.NotFound(c, "booking_not_found", "Agendamento não encontrado.")
	case errors.Is(err, domain.ErrSlotFull):
		httperr.Conflict(c, "slot_full", "Slot sem capacidade disponível.")
	case errors.Is(err, domain.ErrConflict):
		httperr.Conflict(c, "active_bookings_exist", "Existem agendamentos ativos para a data.")
	case errors.Is(err, domain.ErrInvalidTransition):
		httperr.Conflict(c, "invalid_transition", "Transição de status inválida.")
	case errors.Is(err, domain.ErrForbidden):
		httperr.Forbidden(c, "forbidden", "Operação não autorizada.")
	default:
		httperr.Internal(c, "internal_error", "Erro interno.")
	}
}
