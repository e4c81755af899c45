package appointment

import (
	"context"
	"time"

	domain "github.com/scheduly/booking-core/internal/domain/booking"
	"github.com/scheduly/booking-core/internal/timezone"
)

type GetAvailability struct {
	store domain.Store
}

func NewGetAvailability(store domain.Store) *GetAvailability {
	return &GetAvailability{store: store}
}

// Execute devolve a grade de horários do dia segundo o expediente
// configurado do tenant. Horários de hoje já passados não aparecem.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	tenantID uint,
	date time.Time,
) ([]string, error) {

	settings, err := uc.store.GetSettings(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	hours := domain.HoursFromSettings(settings)
	if err := hours.Validate(); err != nil {
		return nil, err
	}

	now := timezone.NowIn(settings.Timezone)

	return domain.GenerateSlots(date, hours, now)
}
