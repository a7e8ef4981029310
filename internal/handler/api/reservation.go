package api

import (
	"errors"
	"net/http"

	reqdto "resione-server/internal/handler/dto/request"
	resdto "resione-server/internal/handler/dto/response"
	"resione-server/internal/handler/middleware"
	"resione-server/internal/usecase/commands"
	"resione-server/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	reservationQueries  queries.ReservationQueries
}

func NewReservationHandler(
	reservationCommands commands.ReservationCommands,
	reservationQueries queries.ReservationQueries,
) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		reservationQueries:  reservationQueries,
	}
}

func (h *ReservationHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.reservationCommands.Submit(c.Request.Context(), req, actor)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.MessageReservationResponse{
		Message:     "Reserva registrada, pendiente de aprobación",
		Reservation: resdto.FromReservationView(view),
	})
}

func (h *ReservationHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.reservationID(c)
	if !ok {
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), h.viewer(actor), id)
	if err != nil {
		h.writeQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// List serves both the admin queue (?estado=pendiente) and the resident's
// own history. Residents are always scoped to their own records.
func (h *ReservationHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	filter := queries.ReservationFilter{
		Status:        c.Query("estado"),
		ResidentEmail: c.Query("residenteCorreo"),
		Zone:          c.Query("zona"),
		Date:          c.Query("fecha"),
	}

	views, err := h.reservationQueries.List(c.Request.Context(), h.viewer(actor), filter)
	if err != nil {
		h.writeQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// Calendar serves the approved reservations for one zone and date.
func (h *ReservationHandler) Calendar(c *gin.Context) {
	zone := c.Query("zona")
	date := c.Query("fecha")
	if zone == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "zona and fecha query parameters are required"})
		return
	}

	entries, err := h.reservationQueries.Calendar(c.Request.Context(), zone, date)
	if err != nil {
		h.writeQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *ReservationHandler) Approve(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.reservationID(c)
	if !ok {
		return
	}

	view, err := h.reservationCommands.Approve(c.Request.Context(), id, actor)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageReservationResponse{
		Message:     "Reserva aprobada",
		Reservation: resdto.FromReservationView(view),
	})
}

func (h *ReservationHandler) Reject(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.reservationID(c)
	if !ok {
		return
	}

	var req reqdto.RejectReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "razonRechazo is required"})
		return
	}

	view, err := h.reservationCommands.Reject(c.Request.Context(), id, req.Reason, actor)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageReservationResponse{
		Message:     "Reserva rechazada",
		Reservation: resdto.FromReservationView(view),
	})
}

func (h *ReservationHandler) Edit(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.reservationID(c)
	if !ok {
		return
	}

	var req reqdto.EditReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.reservationCommands.Edit(c.Request.Context(), id, req, actor)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageReservationResponse{
		Message:     "Reserva actualizada",
		Reservation: resdto.FromReservationView(view),
	})
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.reservationID(c)
	if !ok {
		return
	}

	result, err := h.reservationCommands.Cancel(c.Request.Context(), id, actor)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	message := "Reserva cancelada"
	if !result.WasApproved {
		message = "Solicitud retirada"
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: message})
}

func (h *ReservationHandler) actor(c *gin.Context) (commands.Actor, bool) {
	userID, okID := middleware.GetUserID(c)
	email, okEmail := middleware.GetUserEmail(c)
	role, okRole := middleware.GetUserRole(c)
	if !okID || !okEmail || !okRole {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return commands.Actor{}, false
	}
	return commands.Actor{ID: userID, Email: email, Role: role.String()}, true
}

func (h *ReservationHandler) viewer(actor commands.Actor) queries.Viewer {
	return queries.Viewer{Email: actor.Email, IsAdmin: actor.IsAdmin()}
}

func (h *ReservationHandler) reservationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID format"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *ReservationHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
	case errors.Is(err, commands.ErrReservationConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "El horario se cruza con una reserva aprobada"})
	case errors.Is(err, commands.ErrReservationNotPending),
		errors.Is(err, commands.ErrReservationNotApproved),
		errors.Is(err, commands.ErrReservationTerminal):
		c.JSON(http.StatusConflict, gin.H{"error": "Operation not valid for the reservation's current state"})
	case errors.Is(err, commands.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Reservation belongs to another resident"})
	case errors.Is(err, commands.ErrTooLateToCancel):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "La reserva no puede cancelarse a menos de 2 horas del inicio"})
	case errors.Is(err, commands.ErrEmptyRejectReason):
		c.JSON(http.StatusBadRequest, gin.H{"error": "razonRechazo is required"})
	case errors.Is(err, commands.ErrRequesterIncomplete):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Resident profile is missing required fields"})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (h *ReservationHandler) writeQueryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrViewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
	case errors.Is(err, queries.ErrViewForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Reservation belongs to another resident"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
