package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/scheduly/booking-core/internal/domain/booking"
	"github.com/scheduly/booking-core/internal/httperr"
	"github.com/scheduly/booking-core/internal/timezone"
	ucAppointment "github.com/scheduly/booking-core/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	store        domain.Store
	availability *ucAppointment.GetAvailability
}

func NewPublicHandler(
	store domain.Store,
	availability *ucAppointment.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		store:        store,
		availability: availability,
	}
}

////////////////////////////////////////////////////////
// CATÁLOGO
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	slug := c.Param("slug")

	tenant, err := h.store.GetTenantBySlug(c.Request.Context(), slug)
	if err != nil {
		httperr.NotFound(c, "tenant_not_found", "Estabelecimento não encontrado.")
		return
	}

	services, err := h.store.ListServices(c.Request.Context(), tenant.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tenant":   tenant,
		"services": services,
	})
}

func (h *PublicHandler) ListProfessionals(c *gin.Context) {
	slug := c.Param("slug")

	tenant, err := h.store.GetTenantBySlug(c.Request.Context(), slug)
	if err != nil {
		httperr.NotFound(c, "tenant_not_found", "Estabelecimento não encontrado.")
		return
	}

	professionals, err := h.store.ListProfessionals(c.Request.Context(), tenant.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tenant":        tenant,
		"professionals": professionals,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")

	if dateStr == "" {
		httperr.BadRequest(c, "missing_params", "Data obrigatória.")
		return
	}

	tenant, err := h.store.GetTenantBySlug(c.Request.Context(), slug)
	if err != nil {
		httperr.NotFound(c, "tenant_not_found", "Estabelecimento não encontrado.")
		return
	}

	settings, err := h.store.GetSettings(c.Request.Context(), tenant.ID)
	if err != nil {
		httperr.Internal(c, "settings_not_found", "Erro ao carregar configurações.")
		return
	}

	date, err := time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(settings.Timezone),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), tenant.ID, date)
	if err != nil {
		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}
