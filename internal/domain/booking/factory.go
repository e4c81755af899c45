package booking

import (
	"time"

	"github.com/scheduly/booking-core/internal/httperr"
	"github.com/scheduly/booking-core/internal/models"
)

// ===============================
// Appointment Factory
// ===============================

// BuildAppointment monta o registro canônico a partir de uma seleção completa.
// Construção pura: não atribui ID durável (responsabilidade do store).
//
// O wizard já validou a seleção; o erro aqui é checagem defensiva de
// invariante, nunca retorna registro parcial.
func BuildAppointment(
	tenantID uint,
	sel Selection,
	service *models.Service,
	loc *time.Location,
	now time.Time,
) (*models.Appointment, error) {

	if err := sel.Complete(false); err != nil {
		return nil, err
	}

	if service == nil || service.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_service")
	}

	if sel.ServiceID != service.ID {
		return nil, httperr.ErrBusiness("service_mismatch")
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		sel.Date+" "+sel.Slot,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date_or_time")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	return &models.Appointment{
		TenantID:       tenantID,
		ClientName:     sel.ClientName,
		ClientEmail:    sel.ClientEmail,
		ClientPhone:    sel.ClientPhone,
		ServiceID:      service.ID,
		ProfessionalID: sel.ProfessionalID,
		StartTime:      start,
		EndTime:        end,
		Status:         string(InitialStatus()),
		PaymentMethod:  string(sel.PaymentMethod),
		CreatedAt:      now,
	}, nil
}
