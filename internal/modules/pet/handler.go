package pet

import (
	"net/http"
	"strconv"

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
	pets := protected.Group("/pets")
	{
		pets.GET("", h.List)
		pets.POST("", h.Create)
		pets.GET("/:id", h.Get)
		pets.POST("/:id/weights", h.AddWeight)
		pets.POST("/:id/vaccines", h.AddVaccine)
	}
}

func (h *Handler) List(c *gin.Context) {
	pets, err := h.service.GetUserPets(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, pets)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	p, err := h.service.CreatePet(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) Get(c *gin.Context) {
	petID, err := parseID(c)
	if err != nil {
		return
	}

	p, err := h.service.GetPetDetails(c.Request.Context(), petID, c.GetInt64("user_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) AddWeight(c *gin.Context) {
	petID, err := parseID(c)
	if err != nil {
		return
	}

	var req AddWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	log, err := h.service.AddWeight(c.Request.Context(), c.GetInt64("user_id"), petID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

func (h *Handler) AddVaccine(c *gin.Context) {
	petID, err := parseID(c)
	if err != nil {
		return
	}

	var req AddVaccineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	v, err := h.service.AddVaccine(c.Request.Context(), c.GetInt64("user_id"), petID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid pet ID")
		return 0, err
	}
	return id, nil
}
