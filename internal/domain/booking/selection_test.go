package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scheduly/booking-core/internal/httperr"
)

func TestValidateDetails(t *testing.T) {
	sel := Selection{ClientName: "Ana", ClientPhone: "(85) 99945-1711"}
	assert.NoError(t, sel.ValidateDetails(false))

	sel.ClientName = "  "
	assert.Equal(t, "missing_name", httperr.ValidationCode(sel.ValidateDetails(false)))

	sel = Selection{ClientName: "Ana", ClientPhone: "abc"}
	assert.Equal(t, "invalid_phone", httperr.ValidationCode(sel.ValidateDetails(false)))

	sel = Selection{ClientName: "Ana"}
	assert.Equal(t, "missing_phone", httperr.ValidationCode(sel.ValidateDetails(false)))
}

func TestValidateDetails_EmailFlag(t *testing.T) {
	sel := Selection{ClientName: "Ana", ClientPhone: "11999999999"}

	// Sem flag, e-mail ausente passa.
	assert.NoError(t, sel.ValidateDetails(false))

	// Com flag, passa a ser obrigatório.
	assert.Equal(t, "missing_email", httperr.ValidationCode(sel.ValidateDetails(true)))

	// E-mail presente mas malformado falha nos dois modos.
	sel.ClientEmail = "ana@"
	assert.Equal(t, "invalid_email", httperr.ValidationCode(sel.ValidateDetails(false)))

	sel.ClientEmail = "ana@example.com"
	assert.NoError(t, sel.ValidateDetails(true))
}

func TestSelectionComplete(t *testing.T) {
	sel := selectionFixture()
	assert.NoError(t, sel.Complete(false))

	sel.ServiceID = 0
	assert.Equal(t, "missing_service", httperr.ValidationCode(sel.Complete(false)))

	sel = selectionFixture()
	sel.ProfessionalID = 0
	assert.Equal(t, "missing_professional", httperr.ValidationCode(sel.Complete(false)))

	sel = selectionFixture()
	sel.Date = ""
	assert.Equal(t, "missing_date", httperr.ValidationCode(sel.Complete(false)))
}
