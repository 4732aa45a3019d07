package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/RenatoWlk/projeto-aplicado-II/internal/audit"
	domain "github.com/RenatoWlk/projeto-aplicado-II/internal/domain/booking"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/domain/eligibility"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/domain/schedule"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/events"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/models"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/slotlock"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	UserID    uint
	Gender    string
	BloodType string

	BloodBankID uint
	Date        string // YYYY-MM-DD
	Time        string // HH:mm

	// Chave do cliente para deduplicar retries; vazia → geramos uma.
	IdempotencyKey string
}

// ======================================================
// USE CASE
// ======================================================

type Book struct {
	repo      domain.Repository
	locks     *slotlock.Manager
	evaluator *eligibility.Evaluator
	events    *events.Dispatcher
	audit     *audit.Dispatcher
}

func NewBook(
	repo domain.Repository,
	locks *slotlock.Manager,
	evaluator *eligibility.Evaluator,
	eventsDisp *events.Dispatcher,
	auditDisp *audit.Dispatcher,
) *Book {
	return &Book{
		repo:      repo,
		locks:     locks,
		evaluator: evaluator,
		events:    eventsDisp,
		audit:     auditDisp,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute cria um agendamento PENDING. Elegibilidade e capacidade são
// revalidadas dentro da seção crítica do slot: com capacidade 1 e dois
// doadores competindo, exatamente um vence.
func (uc *Book) Execute(
	ctx context.Context,
	in BookInput,
) (*models.Booking, error) {

	bank, err := uc.repo.GetBloodBankByID(ctx, in.BloodBankID)
	if err != nil {
		return nil, domain.ErrSlotNotFound
	}

	if !validDate(in.Date) || !validTime(in.Time) {
		return nil, domain.ErrValidation("invalid_date_or_time")
	}

	// data estritamente no futuro, no fuso do banco de sangue
	today := timezone.Today(bank.Timezone)
	if in.Date <= today {
		return nil, domain.ErrValidation("date_not_in_future")
	}

	key := in.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	unlock := uc.locks.Lock(slotlock.Key(in.BloodBankID, in.Date, in.Time))
	defer unlock()

	// retry com a mesma chave devolve o agendamento original
	if existing, err := uc.repo.GetBookingByIdempotencyKey(ctx, key); err == nil && existing != nil {
		return existing, nil
	}

	slot, err := uc.repo.GetSlot(ctx, in.BloodBankID, in.Date, in.Time)
	if err != nil {
		return nil, domain.ErrSlotNotFound
	}

	history, err := uc.repo.ListBookingsByUser(ctx, in.UserID, false)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(bank.Timezone)
	result := uc.evaluator.Evaluate(in.Gender, history, now)
	if !result.Eligible {
		return nil, domain.NotEligibleError{
			Reason:           result.Reason,
			NextEligibleDate: result.NextEligibleDate,
		}
	}

	booked, err := uc.repo.CountActiveBySlot(ctx, in.BloodBankID, in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	if booked >= int64(slot.TotalCapacity) {
		return nil, domain.ErrSlotFull
	}

	b := &models.Booking{
		ID:             uuid.NewString(),
		UserID:         in.UserID,
		BloodBankID:    in.BloodBankID,
		Date:           in.Date,
		Time:           in.Time,
		BloodType:      in.BloodType,
		Status:         string(domain.InitialStatus()),
		IdempotencyKey: key,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		Type:        events.BookingCreated,
		BookingID:   b.ID,
		UserID:      b.UserID,
		BloodBankID: b.BloodBankID,
		Date:        b.Date,
		Time:        b.Time,
	})

	uc.audit.Dispatch(audit.Event{
		BloodBankID: in.BloodBankID,
		UserID:      &in.UserID,
		Action:      "booking_created",
		Entity:      "booking",
		EntityID:    b.ID,
	})

	return b, nil
}

func validDate(s string) bool {
	_, err := time.Parse(schedule.DateLayout, s)
	return err == nil
}

func validTime(s string) bool {
	_, err := time.Parse(schedule.TimeLayout, s)
	return err == nil
}
