package appointment

import (
	"context"

	"github.com/scheduly/booking-core/internal/audit"
	domain "github.com/scheduly/booking-core/internal/domain/booking"
	"github.com/scheduly/booking-core/internal/httperr"
	"github.com/scheduly/booking-core/internal/models"
	"github.com/scheduly/booking-core/internal/timezone"
)

// ======================================================
// SUBMIT BOOKING
// ======================================================

// Persister é o wrapper resiliente: remoto primeiro, fallback durável
// em caso de falha, idempotente por nonce.
type Persister interface {
	Persist(
		ctx context.Context,
		nonce string,
		ap *models.Appointment,
	) (domain.Receipt, error)
}

// SubmitBooking converte a seleção completa do wizard em um
// agendamento durável. É o SubmitFunc injetado em cada wizard.
type SubmitBooking struct {
	tenantID  uint
	store     domain.Store
	persister Persister
	audit     *audit.Dispatcher
}

func NewSubmitBooking(
	tenantID uint,
	store domain.Store,
	persister Persister,
	auditDispatcher *audit.Dispatcher,
) *SubmitBooking {
	return &SubmitBooking{
		tenantID:  tenantID,
		store:     store,
		persister: persister,
		audit:     auditDispatcher,
	}
}

func (uc *SubmitBooking) Execute(
	ctx context.Context,
	nonce string,
	sel domain.Selection,
) (domain.Receipt, error) {

	service, err := uc.store.GetService(ctx, uc.tenantID, sel.ServiceID)
	if err != nil {
		return domain.Receipt{}, httperr.ErrBusiness("service_not_found")
	}

	if !service.Active {
		return domain.Receipt{}, httperr.ErrBusiness("service_inactive")
	}

	if _, err := uc.store.GetProfessional(ctx, uc.tenantID, sel.ProfessionalID); err != nil {
		return domain.Receipt{}, httperr.ErrBusiness("professional_not_found")
	}

	settings, err := uc.store.GetSettings(ctx, uc.tenantID)
	if err != nil {
		return domain.Receipt{}, err
	}

	loc := timezone.Location(settings.Timezone)
	now := timezone.NowIn(settings.Timezone)

	ap, err := domain.BuildAppointment(uc.tenantID, sel, service, loc, now)
	if err != nil {
		return domain.Receipt{}, err
	}

	receipt, err := uc.persister.Persist(ctx, nonce, ap)
	if err != nil {
		return domain.Receipt{}, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: uc.tenantID,
		Action:   "appointment_submitted",
		Entity:   "appointment",
		Metadata: map[string]any{
			"nonce": nonce,
			"via":   receipt.Via,
		},
	})

	return receipt, nil
}
