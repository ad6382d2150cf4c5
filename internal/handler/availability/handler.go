package availability

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-slots/internal/handler"
	"github.com/jwalitptl/clinic-slots/internal/service/availability"
	"github.com/jwalitptl/clinic-slots/internal/slot"
	"github.com/jwalitptl/clinic-slots/pkg/auth"
	apperrors "github.com/jwalitptl/clinic-slots/pkg/errors"
	"github.com/jwalitptl/clinic-slots/pkg/validator"
)

// Service is the availability use-case surface the handler drives.
type Service interface {
	Slots(ctx context.Context, q availability.SlotQuery) (*availability.SlotResult, error)
	RescheduleSlots(ctx context.Context, appointmentID, employeeID uuid.UUID, date slot.Date) (*availability.SlotResult, error)
	AffectedAppointments(ctx context.Context, employeeID uuid.UUID, from, to slot.Date) ([]availability.AffectedAppointment, error)
	Compute(ctx context.Context, req availability.ComputeRequest) (*availability.SlotResult, error)
}

type RoleGuard interface {
	RequireRole(roles ...auth.Role) gin.HandlerFunc
}

type Handler struct {
	service   Service
	validator *validator.Validator
}

func NewHandler(service Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

type slotsQuery struct {
	EmployeeID    string `form:"employee_id" validate:"required,uuid"`
	ServiceID     string `form:"service_id" validate:"omitempty,uuid"`
	Date          string `form:"date" validate:"required,isodate"`
	Duration      int    `form:"duration" validate:"gte=0"`
	IncludeBooked bool   `form:"include_booked"`
}

type rescheduleQuery struct {
	EmployeeID string `form:"employee_id" validate:"omitempty,uuid"`
	Date       string `form:"date" validate:"required,isodate"`
}

type affectedQuery struct {
	EmployeeID string `form:"employee_id" validate:"omitempty,uuid"`
	DateFrom   string `form:"date_from" validate:"required,isodate"`
	DateTo     string `form:"date_to" validate:"required,isodate"`
}

// RegisterRoutes mounts the availability routes on an authenticated group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, guard RoleGuard) {
	staff := guard.RequireRole(auth.RoleReceptionist, auth.RoleAdmin)

	slots := r.Group("/availability")
	{
		slots.GET("/slots", h.GetSlots)
		slots.POST("/compute", h.Compute)
	}

	r.GET("/appointments/:id/reschedule-slots", staff, h.GetRescheduleSlots)
	r.GET("/schedules/exceptions/affected-appointments", staff, h.GetAffectedAppointments)
}

func (h *Handler) GetSlots(c *gin.Context) {
	var q slotsQuery
	if err := h.bindQuery(c, &q); err != nil {
		handler.RespondError(c, err)
		return
	}

	query := availability.SlotQuery{
		EmployeeID:      uuid.MustParse(q.EmployeeID),
		Date:            mustDate(q.Date),
		DurationMinutes: q.Duration,
		IncludeBooked:   q.IncludeBooked,
		Flow:            flowFor(auth.Role(c.GetString(handler.ContextRole))),
	}
	if q.ServiceID != "" {
		query.ServiceID = uuid.MustParse(q.ServiceID)
	}

	result, err := h.service.Slots(c.Request.Context(), query)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) Compute(c *gin.Context) {
	var req availability.ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.NewBadRequest("malformed request body", err))
		return
	}
	if err := h.validator.Validate(req); err != nil {
		handler.RespondError(c, handler.BindError(err))
		return
	}

	result, err := h.service.Compute(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) GetRescheduleSlots(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.RespondError(c, apperrors.NewBadRequest("invalid appointment ID", err))
		return
	}

	var q rescheduleQuery
	if err := h.bindQuery(c, &q); err != nil {
		handler.RespondError(c, err)
		return
	}

	employeeID := uuid.Nil
	if q.EmployeeID != "" {
		employeeID = uuid.MustParse(q.EmployeeID)
	}

	result, err := h.service.RescheduleSlots(c.Request.Context(), appointmentID, employeeID, mustDate(q.Date))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) GetAffectedAppointments(c *gin.Context) {
	var q affectedQuery
	if err := h.bindQuery(c, &q); err != nil {
		handler.RespondError(c, err)
		return
	}

	employeeID := uuid.Nil
	if q.EmployeeID != "" {
		employeeID = uuid.MustParse(q.EmployeeID)
	}

	affected, err := h.service.AffectedAppointments(c.Request.Context(), employeeID, mustDate(q.DateFrom), mustDate(q.DateTo))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(affected))
}

func (h *Handler) bindQuery(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindQuery(dst); err != nil {
		return apperrors.NewBadRequest("malformed query", err)
	}
	if err := h.validator.Validate(dst); err != nil {
		return handler.BindError(err)
	}
	return nil
}

// flowFor picks the booking flow from the caller's role. Staff book on behalf
// of patients and may see taken slots.
func flowFor(role auth.Role) availability.Flow {
	switch role {
	case auth.RoleReceptionist, auth.RoleAdmin, auth.RoleManager, auth.RoleDoctor:
		return availability.FlowReception
	default:
		return availability.FlowSelfBooking
	}
}

// mustDate parses a date the validator has already accepted.
func mustDate(s string) slot.Date {
	d, _ := slot.ParseDate(s)
	return d
}
