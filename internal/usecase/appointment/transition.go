package appointment

import (
	"context"
	"time"

	"github.com/scheduly/booking-core/internal/audit"
	domain "github.com/scheduly/booking-core/internal/domain/booking"
	"github.com/scheduly/booking-core/internal/httperr"
	"github.com/scheduly/booking-core/internal/models"
	"github.com/scheduly/booking-core/internal/timezone"
)

// ======================================================
// STATUS TRANSITIONS (staff)
// ======================================================

// TransitionAppointment cobre confirm/cancel/complete. Transição fora
// do conjunto permitido é rejeitada sem mutação.
type TransitionAppointment struct {
	store domain.Store
	audit *audit.Dispatcher
}

func NewTransitionAppointment(
	store domain.Store,
	auditDispatcher *audit.Dispatcher,
) *TransitionAppointment {
	return &TransitionAppointment{
		store: store,
		audit: auditDispatcher,
	}
}

func (uc *TransitionAppointment) Confirm(
	ctx context.Context,
	tenantID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.apply(ctx, tenantID, userID, appointmentID, domain.Confirm, "appointment_confirmed")
}

func (uc *TransitionAppointment) Cancel(
	ctx context.Context,
	tenantID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.apply(ctx, tenantID, userID, appointmentID, domain.Cancel, "appointment_cancelled")
}

func (uc *TransitionAppointment) Complete(
	ctx context.Context,
	tenantID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.apply(ctx, tenantID, userID, appointmentID, domain.Complete, "appointment_completed")
}

func (uc *TransitionAppointment) apply(
	ctx context.Context,
	tenantID uint,
	userID uint,
	appointmentID uint,
	action func(*models.Appointment, time.Time) error,
	auditAction string,
) (*models.Appointment, error) {

	settings, err := uc.store.GetSettings(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.store.GetAppointment(ctx, tenantID, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(settings.Timezone)
	if err := action(ap, now); err != nil {
		return nil, err
	}

	if err := uc.store.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   auditAction,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
