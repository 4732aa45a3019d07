package availability

import (
	"context"

	"github.com/RenatoWlk/projeto-aplicado-II/internal/audit"
	domain "github.com/RenatoWlk/projeto-aplicado-II/internal/domain/booking"
)

type Unpublish struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUnpublish(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
) *Unpublish {
	return &Unpublish{
		repo:  repo,
		audit: auditDisp,
	}
}

// Execute remove todos os slots de uma data. Se a data ainda tem
// agendamentos ativos a operação falha: o banco precisa cancelá-los
// explicitamente antes (cada cancelamento notifica o doador), nunca como
// efeito colateral administrativo.
func (uc *Unpublish) Execute(
	ctx context.Context,
	bloodBankID uint,
	date string,
) error {

	active, err := uc.repo.CountActiveForDate(ctx, bloodBankID, date)
	if err != nil {
		return err
	}
	if active > 0 {
		return domain.ErrConflict
	}

	if err := uc.repo.DeleteSlotsForDate(ctx, bloodBankID, date); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		BloodBankID: bloodBankID,
		Action:      "availability_unpublished",
		Entity:      "published_slot",
		Metadata:    map[string]any{"date": date},
	})

	return nil
}
