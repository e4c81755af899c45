package booking

import (
	"context"

	"github.com/scheduly/booking-core/internal/models"
)

// Store é a fronteira de persistência consumida pelo core.
// A implementação remota vive em infra; o wrapper resiliente a envolve.
type Store interface {
	// -------- Tenant --------
	GetTenantBySlug(
		ctx context.Context,
		slug string,
	) (*models.Tenant, error)

	GetSettings(
		ctx context.Context,
		tenantID uint,
	) (*models.TenantSettings, error)

	// -------- Catálogo --------
	GetService(
		ctx context.Context,
		tenantID uint,
		serviceID uint,
	) (*models.Service, error)

	ListServices(
		ctx context.Context,
		tenantID uint,
	) ([]models.Service, error)

	GetProfessional(
		ctx context.Context,
		tenantID uint,
		professionalID uint,
	) (*models.Professional, error)

	ListProfessionals(
		ctx context.Context,
		tenantID uint,
	) ([]models.Professional, error)

	// -------- Appointment --------
	InsertAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		tenantID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	GetAppointmentByNonce(
		ctx context.Context,
		nonce string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// ListAppointmentsByTenant retorna do mais recente para o mais antigo.
	ListAppointmentsByTenant(
		ctx context.Context,
		tenantID uint,
	) ([]models.Appointment, error)
}
