package availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	engine "github.com/careloop/scheduling-api/internal/availability"
	"github.com/careloop/scheduling-api/internal/handler"
	"github.com/careloop/scheduling-api/internal/model"
	availabilityService "github.com/careloop/scheduling-api/internal/service/availability"
	apperrors "github.com/careloop/scheduling-api/pkg/errors"
	"github.com/careloop/scheduling-api/pkg/timeutil"
)

const defaultDurationMinutes = 30

type Handler struct {
	service *availabilityService.Service
}

func NewHandler(service *availabilityService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	clinics := r.Group("/clinics")
	{
		clinics.GET("/:id/availability", h.GetDayAvailability)
	}
}

type availabilityQuery struct {
	Date     string `form:"date" binding:"required"`
	Duration int    `form:"duration" binding:"omitempty,min=1,max=240"`
}

// slotView adds the formatted clock times the UI renders; the engine
// output itself stays in minute offsets.
type slotView struct {
	Start     string        `json:"start"`
	End       string        `json:"end"`
	Segment   model.Segment `json:"segment"`
	Available bool          `json:"available"`
	Reason    model.Reason  `json:"reason,omitempty"`
}

type segmentView struct {
	Segment model.Segment `json:"segment"`
	Slots   []slotView    `json:"slots"`
}

type dayView struct {
	Date            string        `json:"date"`
	DurationMinutes int           `json:"duration_minutes"`
	Segments        []segmentView `json:"segments"`
	HasAvailability bool          `json:"has_availability"`
}

// GetDayAvailability reports failures through c.Error so the error
// middleware maps them to a status and logs them with the request ID.
func (h *Handler) GetDayAvailability(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.BadRequest("invalid clinic ID", err))
		return
	}

	var query availabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(apperrors.BadRequest("invalid query parameters", err))
		return
	}

	date, err := time.Parse("2006-01-02", query.Date)
	if err != nil {
		c.Error(apperrors.BadRequest("invalid date format, expected YYYY-MM-DD", err))
		return
	}

	duration := query.Duration
	if duration == 0 {
		duration = defaultDurationMinutes
	}

	day, err := h.service.GetDayAvailability(c.Request.Context(), clinicID, date, duration)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidInput) {
			c.Error(apperrors.BadRequest(err.Error(), err))
			return
		}
		c.Error(apperrors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(renderDay(day)))
}

func renderDay(day *model.DayAvailability) dayView {
	view := dayView{
		Date:            day.Date.Format("2006-01-02"),
		DurationMinutes: day.DurationMinutes,
		Segments:        make([]segmentView, 0, len(day.Segments)),
		HasAvailability: day.HasAvailability,
	}
	for _, group := range day.Segments {
		sv := segmentView{Segment: group.Segment, Slots: make([]slotView, 0, len(group.Slots))}
		for _, slot := range group.Slots {
			sv.Slots = append(sv.Slots, slotView{
				Start:     timeutil.FormatMinuteOfDay(slot.StartMinute),
				End:       timeutil.FormatMinuteOfDay(slot.EndMinute),
				Segment:   slot.Segment,
				Available: slot.Available,
				Reason:    slot.Reason,
			})
		}
		view.Segments = append(view.Segments, sv)
	}
	return view
}
