package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scheduly/booking-core/internal/audit"
	"github.com/scheduly/booking-core/internal/config"
	domain "github.com/scheduly/booking-core/internal/domain/booking"
	"github.com/scheduly/booking-core/internal/httperr"
	"github.com/scheduly/booking-core/internal/timezone"
	ucAppointment "github.com/scheduly/booking-core/internal/usecase/appointment"
	"github.com/scheduly/booking-core/internal/wizard"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// BookingHandler expõe o fluxo de agendamento em passos por HTTP.
// Cada sessão carrega seu próprio wizard; o estado vive em memória
// e expira pelo TTL configurado.
type BookingHandler struct {
	store     domain.Store
	persister ucAppointment.Persister
	audit     *audit.Dispatcher
	sessions  *wizard.Sessions
	cfg       *config.Config
}

func NewBookingHandler(
	store domain.Store,
	persister ucAppointment.Persister,
	auditDispatcher *audit.Dispatcher,
	sessions *wizard.Sessions,
	cfg *config.Config,
) *BookingHandler {
	return &BookingHandler{
		store:     store,
		persister: persister,
		audit:     auditDispatcher,
		sessions:  sessions,
		cfg:       cfg,
	}
}

////////////////////////////////////////////////////////
// MENSAGENS
////////////////////////////////////////////////////////

var wizardMessages = map[string]string{
	"missing_service":        "Selecione um serviço.",
	"missing_professional":   "Selecione um profissional.",
	"missing_date":           "Selecione uma data.",
	"missing_slot":           "Selecione um horário.",
	"invalid_date":           "Data inválida.",
	"slot_unavailable":       "Horário indisponível. Escolha outro.",
	"missing_name":           "Informe seu nome.",
	"missing_phone":          "Informe seu telefone.",
	"invalid_phone":          "Telefone inválido.",
	"missing_email":          "Informe seu e-mail.",
	"invalid_email":          "E-mail inválido.",
	"missing_payment_method": "Escolha a forma de pagamento.",
	"service_not_found":      "Serviço não encontrado.",
	"service_inactive":       "Serviço indisponível no momento.",
	"professional_not_found": "Profissional não encontrado.",
	"at_first_step":          "Você já está no primeiro passo.",
	"already_submitted":      "Agendamento já enviado.",
	"submission_in_flight":   "Envio em andamento. Aguarde.",
}

func wizardMessage(code string) string {
	if msg, ok := wizardMessages[code]; ok {
		return msg
	}
	return "Não foi possível processar o pedido."
}

////////////////////////////////////////////////////////
// SESSÃO
////////////////////////////////////////////////////////

// Start cria uma sessão de wizard para o tenant do slug. O expediente
// é congelado no início da sessão; mudanças de configuração valem
// para sessões novas.
func (h *BookingHandler) Start(c *gin.Context) {
	slug := c.Param("slug")

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

	hours := domain.HoursFromSettings(settings)
	if err := hours.Validate(); err != nil {
		httperr.Internal(c, "invalid_settings", "Configuração de expediente inválida.")
		return
	}

	loc := timezone.Location(settings.Timezone)
	submit := ucAppointment.NewSubmitBooking(tenant.ID, h.store, h.persister, h.audit)

	wiz := wizard.New(
		wizard.Config{
			Hours:          hours,
			RequireEmail:   h.cfg.BookingRequireEmail,
			RequirePayment: h.cfg.BookingRequirePayment,
			PixCopyPaste:   settings.PixCopyPaste,
		},
		loc,
		func() time.Time { return timezone.NowIn(settings.Timezone) },
		submit.Execute,
	)

	id := h.sessions.Start(wiz)

	c.JSON(http.StatusCreated, gin.H{
		"session_id": id,
		"step":       wiz.Step(),
	})
}

// State devolve o passo atual, a seleção acumulada e, quando houver,
// o comprovante da submissão.
func (h *BookingHandler) State(c *gin.Context) {
	wiz, ok := h.sessions.Get(c.Param("session"))
	if !ok {
		httperr.NotFound(c, "session_not_found", "Sessão expirada ou inexistente.")
		return
	}

	c.JSON(http.StatusOK, wizardState(wiz))
}

// wizardState monta a resposta padrão: passo, seleção e, se a sessão
// já submeteu, comprovante (com o código PIX quando o método é pix).
func wizardState(wiz *wizard.Wizard) gin.H {
	sel := wiz.Selection()

	resp := gin.H{
		"step":      wiz.Step(),
		"selection": sel,
	}

	if r := wiz.Receipt(); r != nil {
		resp["receipt"] = r
		if sel.PaymentMethod == domain.PaymentPix {
			resp["pix_copy_paste"] = wiz.PixCopyPaste()
		}
	}
	return resp
}

////////////////////////////////////////////////////////
// TRANSIÇÕES
////////////////////////////////////////////////////////

func (h *BookingHandler) Advance(c *gin.Context) {
	wiz, ok := h.sessions.Get(c.Param("session"))
	if !ok {
		httperr.NotFound(c, "session_not_found", "Sessão expirada ou inexistente.")
		return
	}

	var in wizard.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_body", "Corpo da requisição inválido.")
		return
	}

	if err := wiz.Advance(c.Request.Context(), in); err != nil {
		h.writeWizardError(c, err)
		return
	}

	c.JSON(http.StatusOK, wizardState(wiz))
}

func (h *BookingHandler) Retreat(c *gin.Context) {
	wiz, ok := h.sessions.Get(c.Param("session"))
	if !ok {
		httperr.NotFound(c, "session_not_found", "Sessão expirada ou inexistente.")
		return
	}

	if err := wiz.Retreat(); err != nil {
		h.writeWizardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"step":      wiz.Step(),
		"selection": wiz.Selection(),
	})
}

func (h *BookingHandler) Reset(c *gin.Context) {
	wiz, ok := h.sessions.Get(c.Param("session"))
	if !ok {
		httperr.NotFound(c, "session_not_found", "Sessão expirada ou inexistente.")
		return
	}

	if err := wiz.Reset(); err != nil {
		h.writeWizardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"step": wiz.Step(),
	})
}

////////////////////////////////////////////////////////
// ERROS
////////////////////////////////////////////////////////

// writeWizardError traduz as falhas do wizard para o wire:
// validação nunca vira 5xx; falha fatal de persistência instrui retry.
func (h *BookingHandler) writeWizardError(c *gin.Context, err error) {
	if httperr.IsValidation(err) {
		code := httperr.ValidationCode(err)
		if code == "slot_unavailable" {
			httperr.Unprocessable(c, code, wizardMessage(code))
			return
		}
		httperr.BadRequest(c, code, wizardMessage(code))
		return
	}

	if httperr.IsFatalPersistence(err) {
		httperr.ServiceUnavailable(
			c,
			"persistence_failed",
			"Não foi possível salvar o agendamento. Tente novamente.",
		)
		return
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		httperr.BadRequest(c, be.Code, wizardMessage(be.Code))
		return
	}

	httperr.Internal(c, "wizard_error", "Erro inesperado no agendamento.")
}
