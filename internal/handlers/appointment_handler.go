package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scheduly/booking-core/internal/httperr"
	"github.com/scheduly/booking-core/internal/httpresp"
	"github.com/scheduly/booking-core/internal/middleware"
	"github.com/scheduly/booking-core/internal/models"
	ucAppointment "github.com/scheduly/booking-core/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER (painel)
////////////////////////////////////////////////////////

type AppointmentHandler struct {
	list       *ucAppointment.ListAppointments
	transition *ucAppointment.TransitionAppointment
}

func NewAppointmentHandler(
	list *ucAppointment.ListAppointments,
	transition *ucAppointment.TransitionAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		list:       list,
		transition: transition,
	}
}

////////////////////////////////////////////////////////
// LISTAGEM
////////////////////////////////////////////////////////

func (h *AppointmentHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	appointments, err := h.list.Execute(c.Request.Context(), tenantID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, appointments)
}

////////////////////////////////////////////////////////
// TRANSIÇÕES DE STATUS
////////////////////////////////////////////////////////

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.applyTransition(c, h.transition.Confirm)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.applyTransition(c, h.transition.Cancel)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.applyTransition(c, h.transition.Complete)
}

type transitionFunc func(
	ctx context.Context,
	tenantID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error)

func (h *AppointmentHandler) applyTransition(c *gin.Context, fn transitionFunc) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	ap, err := fn(c.Request.Context(), tenantID, userID, uint(id))
	if err != nil {
		var be httperr.BusinessError
		if errors.As(err, &be) {
			switch be.Code {
			case "appointment_not_found":
				httperr.NotFound(c, be.Code, "Agendamento não encontrado.")
			case "invalid_transition":
				httperr.Unprocessable(c, be.Code, "Transição de status não permitida.")
			default:
				httperr.BadRequest(c, be.Code, "Não foi possível atualizar o agendamento.")
			}
			return
		}
		httperr.Internal(c, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": ap})
}
