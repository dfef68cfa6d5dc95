package http

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Musoye/GeoSmart/module/alarm/domain"
	"github.com/Musoye/GeoSmart/module/alarm/internal/auth"
)

type trackerService interface {
	ProcessReport(ctx context.Context, userID string, lat, lng float64) (*domain.UpdateResult, error)
}

type tokenManager interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

type locationUpdateRequest struct {
	Token     string   `json:"token" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required,latitude"`
	Longitude *float64 `json:"longitude" binding:"required,longitude"`
}

type locationUpdateResponse struct {
	DistanceMeters float64 `json:"distance_meters"`
	InZone         bool    `json:"in_zone"`
	Transitioned   bool    `json:"transitioned"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
}

type LocationHandler struct {
	trackerSvc trackerService
	tokens     tokenManager
}

func NewLocationHandler(trackerSvc trackerService, tokens tokenManager) *LocationHandler {
	return &LocationHandler{trackerSvc: trackerSvc, tokens: tokens}
}

func (h *LocationHandler) Register(r *gin.RouterGroup) {
	r.POST("/login", h.Login)
	r.POST("/location-update", h.UpdateLocation)
}

func (h *LocationHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required", "category": "invalid_input"})
		return
	}

	token, err := h.tokens.Issue(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token", "category": "server"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	var req locationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token and in-range latitude/longitude are required", "category": "invalid_input"})
		return
	}

	userID, err := h.tokens.Verify(req.Token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenMalformed):
			log.Printf("location update rejected: malformed token")
		case errors.Is(err, auth.ErrTokenExpired):
			log.Printf("location update rejected: expired token")
		default:
			log.Printf("location update rejected: invalid token")
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "category": "unauthorized"})
		return
	}

	result, err := h.trackerSvc.ProcessReport(c.Request.Context(), userID, *req.Latitude, *req.Longitude)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoTarget):
			c.JSON(http.StatusNotFound, gin.H{"error": "no target location", "category": "not_found"})
		case errors.Is(err, domain.ErrInvalidCoordinates):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "category": "invalid_input"})
		default:
			log.Printf("location update for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process location update", "category": "storage"})
		}
		return
	}

	c.JSON(http.StatusOK, locationUpdateResponse{
		DistanceMeters: result.DistanceMeters,
		InZone:         result.InZone,
		Transitioned:   result.Transitioned,
	})
}
