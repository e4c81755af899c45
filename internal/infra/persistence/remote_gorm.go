package persistence

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/scheduly/booking-core/internal/domain/booking"
	"github.com/scheduly/booking-core/internal/models"
)

// GormStore é a implementação remota (Postgres) da fronteira de
// persistência. Unicidade de (professional_id, start_time) e de nonce
// ficam a cargo dos índices do banco.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// --------------------------------------------------
// Tenant
// --------------------------------------------------

func (s *GormStore) GetTenantBySlug(
	ctx context.Context,
	slug string,
) (*models.Tenant, error) {

	var tenant models.Tenant
	if err := s.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (s *GormStore) GetSettings(
	ctx context.Context,
	tenantID uint,
) (*models.TenantSettings, error) {

	var settings models.TenantSettings
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// --------------------------------------------------
// Catálogo
// --------------------------------------------------

func (s *GormStore) GetService(
	ctx context.Context,
	tenantID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", serviceID, tenantID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (s *GormStore) ListServices(
	ctx context.Context,
	tenantID uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND active = true", tenantID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (s *GormStore) GetProfessional(
	ctx context.Context,
	tenantID uint,
	professionalID uint,
) (*models.Professional, error) {

	var prof models.Professional
	if err := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", professionalID, tenantID).
		First(&prof).Error; err != nil {
		return nil, err
	}
	return &prof, nil
}

func (s *GormStore) ListProfessionals(
	ctx context.Context,
	tenantID uint,
) ([]models.Professional, error) {

	var profs []models.Professional
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND active = true", tenantID).
		Order("id ASC").
		Find(&profs).Error; err != nil {
		return nil, err
	}
	return profs, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (s *GormStore) InsertAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return s.db.WithContext(ctx).Create(ap).Error
}

func (s *GormStore) GetAppointment(
	ctx context.Context,
	tenantID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", appointmentID, tenantID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (s *GormStore) GetAppointmentByNonce(
	ctx context.Context,
	nonce string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := s.db.WithContext(ctx).
		Where("nonce = ?", nonce).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (s *GormStore) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return s.db.WithContext(ctx).Save(ap).Error
}

func (s *GormStore) ListAppointmentsByTenant(
	ctx context.Context,
	tenantID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := s.db.WithContext(ctx).
		Preload("Service").
		Preload("Professional").
		Where("tenant_id = ?", tenantID).
		Order("start_time DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Store = (*GormStore)(nil)
