package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/scheduly/booking-core/internal/domain/booking"
	"github.com/scheduly/booking-core/internal/httperr"
	"github.com/scheduly/booking-core/internal/models"
)

// fakePersister registra chamadas do wrapper resiliente.
type fakePersister struct {
	err      error
	receipts map[string]domain.Receipt
	calls    []string
	last     *models.Appointment
}

func (f *fakePersister) Persist(_ context.Context, nonce string, ap *models.Appointment) (domain.Receipt, error) {
	f.calls = append(f.calls, nonce)
	f.last = ap

	if f.err != nil {
		return domain.Receipt{}, f.err
	}

	if f.receipts == nil {
		f.receipts = map[string]domain.Receipt{}
	}
	if r, ok := f.receipts[nonce]; ok {
		return r, nil
	}

	r := domain.Receipt{ID: "1", Via: domain.ViaRemote}
	f.receipts[nonce] = r
	return r, nil
}

func submitSelection() domain.Selection {
	return domain.Selection{
		ServiceID:      1,
		ProfessionalID: 2,
		Date:           "2026-03-10",
		Slot:           "14:00",
		ClientName:     "Ana",
		ClientPhone:    "11999999999",
		PaymentMethod:  domain.PaymentAtShop,
	}
}

func TestSubmitBooking(t *testing.T) {
	store := newMockStore()
	store.services[1] = &models.Service{ID: 1, TenantID: 1, Name: "Corte", DurationMin: 20, Price: 50, Active: true}
	store.professionals[2] = &models.Professional{ID: 2, TenantID: 1, Name: "X", Active: true}

	persister := &fakePersister{}
	uc := NewSubmitBooking(1, store, persister, newTestDispatcher(t))

	receipt, err := uc.Execute(context.Background(), "nonce-1", submitSelection())
	require.NoError(t, err)
	assert.Equal(t, domain.ViaRemote, receipt.Via)

	require.NotNil(t, persister.last)
	assert.Equal(t, "pending", persister.last.Status)
	assert.Equal(t, 20*time.Minute, persister.last.EndTime.Sub(persister.last.StartTime))
	assert.Equal(t, 14, persister.last.StartTime.Hour())
}

func TestSubmitBooking_UnknownService(t *testing.T) {
	store := newMockStore()
	persister := &fakePersister{}
	uc := NewSubmitBooking(1, store, persister, newTestDispatcher(t))

	_, err := uc.Execute(context.Background(), "nonce-1", submitSelection())
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
	assert.Empty(t, persister.calls)
}

func TestSubmitBooking_InactiveService(t *testing.T) {
	store := newMockStore()
	store.services[1] = &models.Service{ID: 1, TenantID: 1, DurationMin: 20, Active: false}

	uc := NewSubmitBooking(1, store, &fakePersister{}, newTestDispatcher(t))

	_, err := uc.Execute(context.Background(), "nonce-1", submitSelection())
	assert.True(t, httperr.IsBusiness(err, "service_inactive"))
}

func TestSubmitBooking_PersistFailurePropagates(t *testing.T) {
	store := newMockStore()
	store.services[1] = &models.Service{ID: 1, TenantID: 1, DurationMin: 20, Active: true}
	store.professionals[2] = &models.Professional{ID: 2, TenantID: 1, Active: true}

	persister := &fakePersister{err: httperr.FatalPersistenceError{}}
	uc := NewSubmitBooking(1, store, persister, newTestDispatcher(t))

	_, err := uc.Execute(context.Background(), "nonce-1", submitSelection())
	assert.True(t, httperr.IsFatalPersistence(err))
}

func TestGetAvailability(t *testing.T) {
	store := newMockStore()
	uc := NewGetAvailability(store)

	date := time.Date(2030, 3, 10, 0, 0, 0, 0, time.UTC)
	slots, err := uc.Execute(context.Background(), 1, date)
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "19:30", slots[len(slots)-1])
}

func TestGetAvailability_InvalidHours(t *testing.T) {
	store := newMockStore()
	store.settings.WorkStart = "20:00"
	store.settings.WorkEnd = "09:00"

	uc := NewGetAvailability(store)

	_, err := uc.Execute(context.Background(), 1, time.Now().AddDate(0, 0, 1))
	assert.True(t, httperr.IsBusiness(err, "work_start_after_work_end"))
}
