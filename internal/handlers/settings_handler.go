package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/scheduly/booking-core/internal/domain/booking"
	"github.com/scheduly/booking-core/internal/httperr"
	"github.com/scheduly/booking-core/internal/middleware"
	"github.com/scheduly/booking-core/internal/models"
	"github.com/scheduly/booking-core/internal/timezone"
)

////////////////////////////////////////////////////////
// HANDLER (painel)
////////////////////////////////////////////////////////

type SettingsHandler struct {
	db *gorm.DB
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

// --------- Requests ---------

// Campos ponteiro: só o que veio no corpo é alterado.
type UpdateSettingsRequest struct {
	WorkStart   *string `json:"work_start"`
	WorkEnd     *string `json:"work_end"`
	SlotStepMin *int    `json:"slot_step_min"`
	BufferMin   *int    `json:"buffer_min"`
	Timezone    *string `json:"timezone"`

	LocationAddress *string `json:"location_address"`
	LocationCity    *string `json:"location_city"`
	LocationState   *string `json:"location_state"`

	SocialInstagram *string `json:"social_instagram"`
	SocialFacebook  *string `json:"social_facebook"`
	WhatsappNumber  *string `json:"whatsapp_number"`

	PixCopyPaste *string `json:"pix_copy_paste"`
	PixQrURL     *string `json:"pix_qr_url"`
}

// --------- Handlers ---------

func (h *SettingsHandler) Get(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var settings models.TenantSettings
	if err := h.db.Where("tenant_id = ?", tenantID).First(&settings).Error; err != nil {
		httperr.NotFound(c, "settings_not_found", "Configurações não encontradas.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// Update valida o expediente resultante antes de gravar: uma janela
// inválida nunca chega ao banco.
func (h *SettingsHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_body", "Corpo da requisição inválido.")
		return
	}

	var settings models.TenantSettings
	if err := h.db.Where("tenant_id = ?", tenantID).First(&settings).Error; err != nil {
		httperr.NotFound(c, "settings_not_found", "Configurações não encontradas.")
		return
	}

	if req.WorkStart != nil {
		settings.WorkStart = *req.WorkStart
	}
	if req.WorkEnd != nil {
		settings.WorkEnd = *req.WorkEnd
	}
	if req.SlotStepMin != nil {
		settings.SlotStepMin = *req.SlotStepMin
	}
	if req.BufferMin != nil {
		settings.BufferMin = *req.BufferMin
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		settings.Timezone = *req.Timezone
	}

	if req.LocationAddress != nil {
		settings.LocationAddress = *req.LocationAddress
	}
	if req.LocationCity != nil {
		settings.LocationCity = *req.LocationCity
	}
	if req.LocationState != nil {
		settings.LocationState = *req.LocationState
	}
	if req.SocialInstagram != nil {
		settings.SocialInstagram = *req.SocialInstagram
	}
	if req.SocialFacebook != nil {
		settings.SocialFacebook = *req.SocialFacebook
	}
	if req.WhatsappNumber != nil {
		settings.WhatsappNumber = *req.WhatsappNumber
	}
	if req.PixCopyPaste != nil {
		settings.PixCopyPaste = *req.PixCopyPaste
	}
	if req.PixQrURL != nil {
		settings.PixQrURL = *req.PixQrURL
	}

	if err := domain.HoursFromSettings(&settings).Validate(); err != nil {
		var be httperr.BusinessError
		if errors.As(err, &be) {
			httperr.BadRequest(c, be.Code, "Configuração de expediente inválida.")
			return
		}
		httperr.BadRequest(c, "invalid_settings", "Configuração de expediente inválida.")
		return
	}

	if err := h.db.Save(&settings).Error; err != nil {
		httperr.Internal(c, "failed_to_update_settings", "Erro ao salvar configurações.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
