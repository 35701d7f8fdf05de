package clinic

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careloop/scheduling-api/internal/handler"
	"github.com/careloop/scheduling-api/internal/model"
	"github.com/careloop/scheduling-api/internal/service/clinic"
	"github.com/careloop/scheduling-api/pkg/timeutil"
)

type Handler struct {
	service clinic.ClinicServicer
}

func NewHandler(service clinic.ClinicServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	clinics := r.Group("/clinics")
	{
		clinics.GET("", h.ListClinics)
		clinics.GET("/:id", h.GetClinic)
		clinics.GET("/:id/calendar", h.GetCalendar)
		clinics.PUT("/:id/calendar", h.UpdateCalendar)
	}
}

func (h *Handler) GetClinic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	cl, err := h.service.GetClinic(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(cl))
}

func (h *Handler) ListClinics(c *gin.Context) {
	orgID, err := uuid.Parse(c.Query("organization_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid organization ID"))
		return
	}

	clinics, err := h.service.ListClinics(c.Request.Context(), orgID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(clinics))
}

// calendarView renders minute offsets back to "HH:MM" for clients.
type calendarView struct {
	ClinicID      string   `json:"clinic_id"`
	WorkingDays   []string `json:"working_days"`
	WorkStart     string   `json:"work_start"`
	WorkEnd       string   `json:"work_end"`
	HasLunchBreak bool     `json:"has_lunch_break"`
	LunchStart    string   `json:"lunch_start,omitempty"`
	LunchEnd      string   `json:"lunch_end,omitempty"`
}

func (h *Handler) GetCalendar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	cal, err := h.service.GetCalendar(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(renderCalendar(cal)))
}

func (h *Handler) UpdateCalendar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	var req model.UpdateCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	cal, err := h.service.UpdateCalendar(c.Request.Context(), id, &req)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(renderCalendar(cal)))
}

func renderCalendar(cal *model.ClinicCalendar) calendarView {
	view := calendarView{
		ClinicID:      cal.ClinicID.String(),
		WorkingDays:   make([]string, 0, len(cal.WorkingDays)),
		WorkStart:     timeutil.FormatMinuteOfDay(cal.WorkStart),
		WorkEnd:       timeutil.FormatMinuteOfDay(cal.WorkEnd),
		HasLunchBreak: cal.HasLunchBreak,
	}
	for _, d := range cal.WorkingDays {
		view.WorkingDays = append(view.WorkingDays, d.String())
	}
	if cal.HasLunchBreak {
		view.LunchStart = timeutil.FormatMinuteOfDay(cal.LunchStart)
		view.LunchEnd = timeutil.FormatMinuteOfDay(cal.LunchEnd)
	}
	return view
}
