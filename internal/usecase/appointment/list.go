package appointment

import (
	"context"

	"github.com/scheduly/booking-core/internal/models"
)

// Lister abstrai a leitura resiliente (remoto com fallback local).
type Lister interface {
	ListByTenant(ctx context.Context, tenantID uint) ([]models.Appointment, error)
}

type ListAppointments struct {
	lister Lister
}

func NewListAppointments(lister Lister) *ListAppointments {
	return &ListAppointments{lister: lister}
}

// Execute lista os agendamentos do tenant, mais recente primeiro.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	tenantID uint,
) ([]models.Appointment, error) {
	return uc.lister.ListByTenant(ctx, tenantID)
}
