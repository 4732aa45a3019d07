package availability

import (
	"context"

	"github.com/RenatoWlk/projeto-aplicado-II/internal/audit"
	domain "github.com/RenatoWlk/projeto-aplicado-II/internal/domain/booking"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/domain/schedule"
	"github.com/RenatoWlk/projeto-aplicado-II/internal/models"
)

// ======================================================
// PUBLISH
// ======================================================

type Publish struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewPublish(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
) *Publish {
	return &Publish{
		repo:  repo,
		audit: auditDisp,
	}
}

// Execute expande a janela em slots concretos e publica, substituindo
// qualquer slot já publicado nas datas cobertas (republicação de uma data
// é sobrescrita, não acumulada).
func (uc *Publish) Execute(
	ctx context.Context,
	window schedule.AvailabilityWindow,
) ([]models.PublishedSlot, error) {

	if _, err := uc.repo.GetBloodBankByID(ctx, window.BloodBankID); err != nil {
		return nil, domain.ErrNotFound
	}

	slots, err := schedule.Generate(window)
	if err != nil {
		return nil, err
	}

	dates, err := schedule.Dates(window)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.ReplaceSlotsForDates(ctx, window.BloodBankID, dates, slots); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BloodBankID: window.BloodBankID,
		Action:      "availability_published",
		Entity:      "published_slot",
		Metadata: map[string]any{
			"start_date": window.StartDate,
			"end_date":   window.EndDate,
			"slots":      len(slots),
		},
	})

	return slots, nil
}
