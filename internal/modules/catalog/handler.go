package catalog

import (
	"net/http"

	"altoev/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/vehicles", h.GetVehicles)
	rg.GET("/extras", h.GetExtras)
}

func (h *Handler) GetVehicles(c *gin.Context) {
	vehicles, err := h.service.ListVehicles(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve vehicles")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"vehicles": vehicles})
}

func (h *Handler) GetExtras(c *gin.Context) {
	extras, err := h.service.ListExtras(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve extras")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"extras": extras})
}
