package booking

import (
	"time"

	"github.com/scheduly/booking-core/internal/httperr"
	"github.com/scheduly/booking-core/internal/models"
)

// ===============================
// Business Hours
// ===============================

// BusinessHours é injetado explicitamente em quem precisa (slots, wizard).
// Nunca lido de estado global.
type BusinessHours struct {
	WorkStart   string // HH:MM
	WorkEnd     string // HH:MM
	SlotStepMin int
	BufferMin   int // reservado para espaçamento futuro; hoje apenas informativo
	Timezone    string
}

func HoursFromSettings(s *models.TenantSettings) BusinessHours {
	return BusinessHours{
		WorkStart:   s.WorkStart,
		WorkEnd:     s.WorkEnd,
		SlotStepMin: s.SlotStepMin,
		BufferMin:   s.BufferMin,
		Timezone:    s.Timezone,
	}
}

func (h BusinessHours) Validate() error {
	start, err := parseHM(h.WorkStart)
	if err != nil {
		return httperr.ErrBusiness("invalid_work_start")
	}

	end, err := parseHM(h.WorkEnd)
	if err != nil {
		return httperr.ErrBusiness("invalid_work_end")
	}

	if !start.Before(end) {
		return httperr.ErrBusiness("work_start_after_work_end")
	}

	if h.SlotStepMin <= 0 {
		return httperr.ErrBusiness("invalid_slot_step")
	}

	if h.BufferMin < 0 {
		return httperr.ErrBusiness("invalid_buffer")
	}

	return nil
}

// parseHM interpreta "HH:MM" como horário do dia (data zero do Go).
func parseHM(hm string) (time.Time, error) {
	return time.Parse("15:04", hm)
}

// at ancora um horário do dia em uma data concreta, no fuso da data.
func at(date time.Time, hm time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		hm.Hour(), hm.Minute(), 0, 0,
		date.Location(),
	)
}
