package persistence

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/scheduly/booking-core/internal/domain/booking"
	"github.com/scheduly/booking-core/internal/httperr"
	"github.com/scheduly/booking-core/internal/models"
)

// mockRemote simula o store remoto, com falha configurável.
type mockRemote struct {
	insertErr error
	listErr   error
	nextID    uint
	inserted  []*models.Appointment
	listing   []models.Appointment
}

func (m *mockRemote) InsertAppointment(_ context.Context, ap *models.Appointment) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	for _, prev := range m.inserted {
		if prev.Nonce == ap.Nonce {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	m.nextID++
	ap.ID = m.nextID
	m.inserted = append(m.inserted, ap)
	return nil
}

func (m *mockRemote) GetAppointmentByNonce(_ context.Context, nonce string) (*models.Appointment, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	for _, ap := range m.inserted {
		if ap.Nonce == nonce {
			return ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRemote) ListAppointmentsByTenant(_ context.Context, _ uint) ([]models.Appointment, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listing, nil
}

func newTestLog(t *testing.T) *FallbackLog {
	t.Helper()
	log, err := NewFallbackLog(filepath.Join(t.TempDir(), "fallback.db"))
	require.NoError(t, err)
	return log
}

func appointmentFixture() *models.Appointment {
	return &models.Appointment{
		TenantID:       1,
		ClientName:     "Ana",
		ClientPhone:    "11999999999",
		ServiceID:      1,
		ProfessionalID: 2,
		StartTime:      time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2026, 3, 10, 14, 20, 0, 0, time.UTC),
		Status:         "pending",
	}
}

func newTestResilient(t *testing.T, remote *mockRemote) (*Resilient, *FallbackLog) {
	t.Helper()
	log := newTestLog(t)
	r := NewResilient(remote, log, NewMemoryNonces(), time.Second, zap.NewNop())
	return r, log
}

func TestPersist_RemoteSuccess(t *testing.T) {
	remote := &mockRemote{}
	r, log := newTestResilient(t, remote)

	receipt, err := r.Persist(context.Background(), "nonce-1", appointmentFixture())
	require.NoError(t, err)

	assert.Equal(t, domain.ViaRemote, receipt.Via)
	assert.Equal(t, "1", receipt.ID)

	count, err := log.Len(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPersist_RemoteFailureFallsBack(t *testing.T) {
	remote := &mockRemote{insertErr: errors.New("connection refused")}
	r, log := newTestResilient(t, remote)

	receipt, err := r.Persist(context.Background(), "nonce-1", appointmentFixture())
	require.NoError(t, err)

	assert.Equal(t, domain.ViaFallback, receipt.Via)
	assert.NotEmpty(t, receipt.ID)

	count, err := log.Len(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	apps, err := log.List(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "Ana", apps[0].ClientName)
}

func TestPersist_IdempotentByNonce(t *testing.T) {
	remote := &mockRemote{}
	r, _ := newTestResilient(t, remote)
	ctx := context.Background()

	first, err := r.Persist(ctx, "nonce-1", appointmentFixture())
	require.NoError(t, err)

	second, err := r.Persist(ctx, "nonce-1", appointmentFixture())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, remote.inserted, 1)
}

func TestPersist_IdempotentOnFallback(t *testing.T) {
	remote := &mockRemote{insertErr: errors.New("timeout")}
	r, log := newTestResilient(t, remote)
	ctx := context.Background()

	first, err := r.Persist(ctx, "nonce-1", appointmentFixture())
	require.NoError(t, err)

	second, err := r.Persist(ctx, "nonce-1", appointmentFixture())
	require.NoError(t, err)

	assert.Equal(t, first, second)

	count, err := log.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPersist_DuplicateNonceRaceReturnsFirstResult(t *testing.T) {
	remote := &mockRemote{}
	log := newTestLog(t)

	// Dois wrappers com registros de nonce separados simulam processos
	// distintos; o índice único do remoto é a barreira final.
	a := NewResilient(remote, log, NewMemoryNonces(), time.Second, zap.NewNop())
	b := NewResilient(remote, log, NewMemoryNonces(), time.Second, zap.NewNop())
	ctx := context.Background()

	first, err := a.Persist(ctx, "nonce-x", appointmentFixture())
	require.NoError(t, err)

	second, err := b.Persist(ctx, "nonce-x", appointmentFixture())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, remote.inserted, 1)
}

func TestPersist_BothFailIsFatal(t *testing.T) {
	remote := &mockRemote{insertErr: errors.New("connection refused")}
	log := newTestLog(t)
	r := NewResilient(remote, log, NewMemoryNonces(), time.Second, zap.NewNop())

	// Fecha o banco do fallback para forçar erro no append.
	sqlDB, err := log.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = r.Persist(context.Background(), "nonce-1", appointmentFixture())
	assert.True(t, httperr.IsFatalPersistence(err))
}

func TestListByTenant_FallsBackWhenRemoteDown(t *testing.T) {
	remote := &mockRemote{listErr: errors.New("connection refused"), insertErr: errors.New("connection refused")}
	r, _ := newTestResilient(t, remote)
	ctx := context.Background()

	// Represa dois agendamentos no log local.
	older := appointmentFixture()
	_, err := r.Persist(ctx, "nonce-1", older)
	require.NoError(t, err)

	newer := appointmentFixture()
	newer.ClientName = "Bruno"
	_, err = r.Persist(ctx, "nonce-2", newer)
	require.NoError(t, err)

	apps, err := r.ListByTenant(ctx, 1)
	require.NoError(t, err)
	require.Len(t, apps, 2)

	// Mais recente primeiro.
	assert.Equal(t, "Bruno", apps[0].ClientName)
	assert.Equal(t, "Ana", apps[1].ClientName)
}

func TestListByTenant_PrefersRemote(t *testing.T) {
	remote := &mockRemote{listing: []models.Appointment{{ClientName: "Carla"}}}
	r, _ := newTestResilient(t, remote)

	apps, err := r.ListByTenant(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "Carla", apps[0].ClientName)
}
