package ficha

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/podocentro/clinic-api/internal/handler"
	"github.com/podocentro/clinic-api/internal/model"
	"github.com/podocentro/clinic-api/internal/service/ficha"
)

type Handler struct {
	service *ficha.Service
}

func NewHandler(service *ficha.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	fichas := r.Group("/fichas")
	{
		fichas.POST("", h.CreateFicha)
		fichas.GET("/:id", h.GetFicha)
		fichas.PUT("/:id", h.UpdateFicha)
		fichas.DELETE("/:id", h.DeleteFicha)
	}
	r.GET("/patients/:id/fichas", h.ListByPatient)
}

func (h *Handler) CreateFicha(c *gin.Context) {
	var req model.CreateFichaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	f, err := h.service.CreateFicha(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(f))
}

func (h *Handler) GetFicha(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid ficha ID"))
		return
	}

	f, err := h.service.GetFicha(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(f))
}

func (h *Handler) UpdateFicha(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid ficha ID"))
		return
	}

	var req model.CreateFichaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	f, err := h.service.UpdateFicha(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(f))
}

func (h *Handler) DeleteFicha(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid ficha ID"))
		return
	}

	if err := h.service.DeleteFicha(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListByPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	fichas, err := h.service.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(fichas))
}
