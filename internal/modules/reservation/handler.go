package reservation

import (
	"errors"
	"net/http"
	"strconv"

	"altoev/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public reservation endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reservations", h.List)
	rg.POST("/reservations/generate-number", h.GenerateNumber)
}

// RegisterProtectedRoutes mounts the endpoints that require auth.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations/:id/cancel", h.Cancel)
}

func (h *Handler) List(c *gin.Context) {
	records, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve reservations")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservations": records})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation id")
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Reservation cancelled successfully"})
}

func (h *Handler) GenerateNumber(c *gin.Context) {
	number, err := h.service.GenerateNumber(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate reservation number")
		return
	}

	response.Success(c, http.StatusOK, GenerateNumberResponse{ReservationNumber: number})
}
