package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/scheduly/booking-core/internal/httperr"
	"github.com/scheduly/booking-core/internal/httpresp"
	"github.com/scheduly/booking-core/internal/middleware"
	"github.com/scheduly/booking-core/internal/models"
)

////////////////////////////////////////////////////////
// HANDLER (painel)
////////////////////////////////////////////////////////

type ProfessionalHandler struct {
	db *gorm.DB
}

func NewProfessionalHandler(db *gorm.DB) *ProfessionalHandler {
	return &ProfessionalHandler{db: db}
}

// --------- Requests ---------

type CreateProfessionalRequest struct {
	Name      string `json:"name" binding:"required"`
	Specialty string `json:"specialty"`
	AvatarURL string `json:"avatar_url"`
}

type UpdateProfessionalRequest struct {
	Name      *string `json:"name"`
	Specialty *string `json:"specialty"`
	Active    *bool   `json:"active"`
	AvatarURL *string `json:"avatar_url"`
}

// --------- Handlers ---------

func (h *ProfessionalHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var profs []models.Professional
	if err := h.db.
		Where("tenant_id = ?", tenantID).
		Order("id ASC").
		Find(&profs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	httpresp.List(c, profs)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_body", "Corpo da requisição inválido.")
		return
	}

	prof := models.Professional{
		TenantID:  tenantID,
		Name:      req.Name,
		Specialty: req.Specialty,
		Active:    true,
		AvatarURL: req.AvatarURL,
	}

	if err := h.db.Create(&prof).Error; err != nil {
		httperr.Internal(c, "failed_to_create_professional", "Erro ao criar profissional.")
		return
	}

	httpresp.Created(c, gin.H{"professional": prof})
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_body", "Corpo da requisição inválido.")
		return
	}

	var prof models.Professional
	if err := h.db.
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&prof).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	if req.Name != nil {
		prof.Name = *req.Name
	}
	if req.Specialty != nil {
		prof.Specialty = *req.Specialty
	}
	if req.Active != nil {
		prof.Active = *req.Active
	}
	if req.AvatarURL != nil {
		prof.AvatarURL = *req.AvatarURL
	}

	if err := h.db.Save(&prof).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao atualizar profissional.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"professional": prof})
}
