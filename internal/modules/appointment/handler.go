package appointment

import (
	"net/http"

	"petcare/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	appointments := protected.Group("/appointments")
	{
		appointments.GET("/clinics", h.ListClinics)
		appointments.GET("", h.List)
		appointments.POST("", h.Create)
	}
}

func (h *Handler) ListClinics(c *gin.Context) {
	clinics, err := h.service.GetClinics(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, clinics)
}

func (h *Handler) List(c *gin.Context) {
	appointments, err := h.service.GetUserAppointments(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	a, err := h.service.CreateAppointment(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}
