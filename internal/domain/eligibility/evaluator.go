package eligibility

import (
	"time"

	"github.com/RenatoWlk/projeto-aplicado-II/internal/domain/booking"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/models"
)

const dateLayout = "2006-01-02"

// IntervalTable devolve o intervalo mínimo entre doações, em dias, para o
// gênero do doador. Injetada a partir da configuração para a regra existir
// em um lugar só.
type IntervalTable func(gender string) int

type Result struct {
	Eligible         bool   `json:"eligible"`
	Reason           string `json:"reason,omitempty"`
	NextEligibleDate string `json:"next_eligible_date"`

	LastCompletedDonationDate string `json:"last_completed_donation_date,omitempty"`
	HasActiveBooking          bool   `json:"has_active_booking"`
}

type Evaluator struct {
	intervalDays IntervalTable
}

func NewEvaluator(intervalDays IntervalTable) *Evaluator {
	return &Evaluator{intervalDays: intervalDays}
}

// Evaluate decide se o doador pode criar um novo agendamento em asOf,
// olhando só para o histórico recebido:
//  1. agendamento PENDING/CONFIRMED aberto → inelegível;
//  2. nenhuma doação COMPLETED → elegível já;
//  3. senão, elegível a partir da última COMPLETED + intervalo do gênero.
func (e *Evaluator) Evaluate(gender string, history []models.Booking, asOf time.Time) Result {
	asOfDate := asOf.Format(dateLayout)

	for _, b := range history {
		if booking.Status(b.Status).IsActive() {
			return Result{
				Eligible:         false,
				Reason:           booking.ReasonActiveBooking,
				HasActiveBooking: true,
			}
		}
	}

	lastCompleted := ""
	for _, b := range history {
		if booking.Status(b.Status) != booking.StatusCompleted {
			continue
		}
		if b.Date > lastCompleted {
			lastCompleted = b.Date
		}
	}

	if lastCompleted == "" {
		return Result{Eligible: true, NextEligibleDate: asOfDate}
	}

	last, err := time.Parse(dateLayout, lastCompleted)
	if err != nil {
		// data corrompida no histórico: trata como sem histórico
		return Result{Eligible: true, NextEligibleDate: asOfDate}
	}

	next := last.AddDate(0, 0, e.intervalDays(gender)).Format(dateLayout)

	return Result{
		Eligible:                  asOfDate >= next,
		Reason:                    reasonFor(asOfDate, next),
		NextEligibleDate:          next,
		LastCompletedDonationDate: lastCompleted,
	}
}

func reasonFor(asOfDate, next string) string {
	if asOfDate >= next {
		return ""
	}
	return booking.ReasonIntervalNotElapsed
}
