package appointment

import (
	"context"
	"errors"

	domain "github.com/scheduly/booking-core/internal/domain/booking"
	"github.com/scheduly/booking-core/internal/models"
)

var errNotFound = errors.New("not found")

// mockStore implementa domain.Store em memória para os testes.
type mockStore struct {
	tenant        *models.Tenant
	settings      *models.TenantSettings
	services      map[uint]*models.Service
	professionals map[uint]*models.Professional
	appointments  map[uint]*models.Appointment
	nextID        uint

	updateErr error
	updated   []uint
}

func newMockStore() *mockStore {
	return &mockStore{
		tenant: &models.Tenant{ID: 1, Name: "Jardel Barber", Slug: "jardelbarber"},
		settings: &models.TenantSettings{
			ID:          1,
			TenantID:    1,
			WorkStart:   "09:00",
			WorkEnd:     "20:00",
			SlotStepMin: 30,
			Timezone:    "America/Sao_Paulo",
		},
		services:      map[uint]*models.Service{},
		professionals: map[uint]*models.Professional{},
		appointments:  map[uint]*models.Appointment{},
	}
}

func (m *mockStore) GetTenantBySlug(_ context.Context, slug string) (*models.Tenant, error) {
	if m.tenant != nil && m.tenant.Slug == slug {
		return m.tenant, nil
	}
	return nil, errNotFound
}

func (m *mockStore) GetSettings(_ context.Context, tenantID uint) (*models.TenantSettings, error) {
	if m.settings != nil && m.settings.TenantID == tenantID {
		return m.settings, nil
	}
	return nil, errNotFound
}

func (m *mockStore) GetService(_ context.Context, _ uint, serviceID uint) (*models.Service, error) {
	if s, ok := m.services[serviceID]; ok {
		return s, nil
	}
	return nil, errNotFound
}

func (m *mockStore) ListServices(_ context.Context, _ uint) ([]models.Service, error) {
	out := []models.Service{}
	for _, s := range m.services {
		if s.Active {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockStore) GetProfessional(_ context.Context, _ uint, id uint) (*models.Professional, error) {
	if p, ok := m.professionals[id]; ok {
		return p, nil
	}
	return nil, errNotFound
}

func (m *mockStore) ListProfessionals(_ context.Context, _ uint) ([]models.Professional, error) {
	out := []models.Professional{}
	for _, p := range m.professionals {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockStore) InsertAppointment(_ context.Context, ap *models.Appointment) error {
	m.nextID++
	ap.ID = m.nextID
	m.appointments[ap.ID] = ap
	return nil
}

func (m *mockStore) GetAppointment(_ context.Context, _ uint, id uint) (*models.Appointment, error) {
	if ap, ok := m.appointments[id]; ok {
		copied := *ap
		return &copied, nil
	}
	return nil, errNotFound
}

func (m *mockStore) GetAppointmentByNonce(_ context.Context, nonce string) (*models.Appointment, error) {
	for _, ap := range m.appointments {
		if ap.Nonce == nonce {
			return ap, nil
		}
	}
	return nil, errNotFound
}

func (m *mockStore) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.appointments[ap.ID] = ap
	m.updated = append(m.updated, ap.ID)
	return nil
}

func (m *mockStore) ListAppointmentsByTenant(_ context.Context, _ uint) ([]models.Appointment, error) {
	out := []models.Appointment{}
	for _, ap := range m.appointments {
		out = append(out, *ap)
	}
	return out, nil
}

var _ domain.Store = (*mockStore)(nil)
