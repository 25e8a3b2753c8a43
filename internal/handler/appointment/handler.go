package appointment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/podocentro/clinic-api/internal/handler"
	"github.com/podocentro/clinic-api/internal/model"
	"github.com/podocentro/clinic-api/internal/schedule"
	"github.com/podocentro/clinic-api/internal/service/appointment"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
	r.GET("/agenda", h.Agenda)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	apt, err := h.service.CreateAppointment(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(apt))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	apt, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	var filters model.AppointmentFilters

	if v := c.Query("sede"); v != "" {
		sede := model.Sede(v)
		if !sede.Valid() {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid sede"))
			return
		}
		filters.Sede = sede
	}
	if v := c.Query("professional_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid professional ID"))
			return
		}
		filters.ProfessionalID = id
	}
	if v := c.Query("patient_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
			return
		}
		filters.PatientID = id
	}
	if v := c.Query("status"); v != "" {
		status := model.AppointmentStatus(v)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid status"))
			return
		}
		filters.Status = status
	}
	if v := c.Query("from"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid from date, expected YYYY-MM-DD"))
			return
		}
		filters.From = from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid to date, expected YYYY-MM-DD"))
			return
		}
		filters.To = to
	}

	appointments, err := h.service.ListAppointments(c.Request.Context(), &filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	apt, err := h.service.UpdateAppointment(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	if err := h.service.DeleteAppointment(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

// Agenda renders the scheduling grid. Query parameters: date (YYYY-MM-DD,
// defaults to today), mode (day|week|month, defaults to week) and location
// (all|norte|sur, defaults to all).
func (h *Handler) Agenda(c *gin.Context) {
	state := schedule.ViewState{
		Reference: time.Now(),
		Mode:      schedule.ViewWeek,
		Location:  schedule.LocationAll,
	}

	if v := c.Query("date"); v != "" {
		ref, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date, expected YYYY-MM-DD"))
			return
		}
		state.Reference = ref
	}
	if v := c.Query("mode"); v != "" {
		state.Mode = schedule.ViewMode(v)
	}
	if v := c.Query("location"); v != "" {
		state.Location = v
	}

	view, err := h.service.Agenda(c.Request.Context(), state)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(view))
}
