package booking

import (
	"strings"

	"github.com/scheduly/booking-core/internal/httperr"
	"github.com/scheduly/booking-core/internal/validators"
)

// ===============================
// Booking Selection
// ===============================

type PaymentMethod string

const (
	PaymentPix    PaymentMethod = "pix"
	PaymentCard   PaymentMethod = "card"
	PaymentAtShop PaymentMethod = "at_shop"
)

func IsValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentPix, PaymentCard, PaymentAtShop:
		return true
	}
	return false
}

// Selection é a captura transitória de uma sessão do wizard.
// Nunca persistida antes da submissão; descartada em reset.
type Selection struct {
	ServiceID      uint          `json:"service_id"`
	ProfessionalID uint          `json:"professional_id"`
	Date           string        `json:"date"` // YYYY-MM-DD
	Slot           string        `json:"slot"` // HH:MM
	ClientName     string        `json:"client_name"`
	ClientEmail    string        `json:"client_email"`
	ClientPhone    string        `json:"client_phone"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
}

// ValidateDetails aplica as regras do passo de dados do cliente.
// E-mail só é obrigatório quando requireEmail está ligado (configurável
// por tenant; as variantes históricas do fluxo divergiam nisso).
func (s Selection) ValidateDetails(requireEmail bool) error {
	if strings.TrimSpace(s.ClientName) == "" {
		return httperr.ErrValidation("missing_name")
	}

	if strings.TrimSpace(s.ClientPhone) == "" {
		return httperr.ErrValidation("missing_phone")
	}

	if !validators.IsValidPhone(s.ClientPhone) {
		return httperr.ErrValidation("invalid_phone")
	}

	if requireEmail && strings.TrimSpace(s.ClientEmail) == "" {
		return httperr.ErrValidation("missing_email")
	}

	if strings.TrimSpace(s.ClientEmail) != "" && !validators.IsValidEmail(s.ClientEmail) {
		return httperr.ErrValidation("invalid_email")
	}

	return nil
}

// Complete verifica todos os campos exigidos para construir o agendamento.
func (s Selection) Complete(requireEmail bool) error {
	if s.ServiceID == 0 {
		return httperr.ErrValidation("missing_service")
	}
	if s.ProfessionalID == 0 {
		return httperr.ErrValidation("missing_professional")
	}
	if s.Date == "" {
		return httperr.ErrValidation("missing_date")
	}
	if s.Slot == "" {
		return httperr.ErrValidation("missing_slot")
	}
	return s.ValidateDetails(requireEmail)
}
