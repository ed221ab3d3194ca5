package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arlearn/assessment-api/internal/handler/dto"
)

// DataSeeder loads the sample catalog
type DataSeeder interface {
	SeedSampleData(ctx context.Context) (string, error)
}

// AdminHandler serves admin-only maintenance endpoints
type AdminHandler struct {
	seeder DataSeeder
}

// NewAdminHandler creates the admin handler
func NewAdminHandler(seeder DataSeeder) *AdminHandler {
	return &AdminHandler{seeder: seeder}
}

// InitializeData seeds sample subjects, models and questions once
func (h *AdminHandler) InitializeData(c *gin.Context) {
	msg, err := h.seeder.SeedSampleData(c.Request.Context())
	if err != nil {
		handleError(c, err, "InitializeData")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: msg})
}
