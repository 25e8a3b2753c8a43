package report

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/podocentro/clinic-api/internal/handler"
	"github.com/podocentro/clinic-api/internal/service/report"
)

type Handler struct {
	service *report.Service
}

func NewHandler(service *report.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("/summary", h.Summary)
		reports.GET("/income", h.Income)
	}
}

func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(summary))
}

// Income reports revenue over a period. Pass either ?year=&month= for a
// calendar month or ?from=&to= (YYYY-MM-DD, half-open). Defaults to the
// current month.
func (h *Handler) Income(c *gin.Context) {
	if c.Query("from") != "" || c.Query("to") != "" {
		from, err := time.Parse("2006-01-02", c.Query("from"))
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid from date, expected YYYY-MM-DD"))
			return
		}
		to, err := time.Parse("2006-01-02", c.Query("to"))
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid to date, expected YYYY-MM-DD"))
			return
		}
		if !to.After(from) {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("to must be after from"))
			return
		}

		income, err := h.service.Income(c.Request.Context(), from, to)
		if err != nil {
			handler.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(income))
		return
	}

	now := time.Now()
	year, month := now.Year(), now.Month()

	if v := c.Query("year"); v != "" {
		parsed, err := time.Parse("2006", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid year"))
			return
		}
		year = parsed.Year()
	}
	if v := c.Query("month"); v != "" {
		parsed, err := time.Parse("1", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid month"))
			return
		}
		month = parsed.Month()
	}

	income, err := h.service.MonthlyIncome(c.Request.Context(), year, month)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(income))
}
