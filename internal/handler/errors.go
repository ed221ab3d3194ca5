package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/arlearn/assessment-api/internal/pkg/errors"
)

// handleError maps service errors to HTTP responses
func handleError(c *gin.Context, err error, op string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrExpiredToken):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrConflict):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		log.Printf("[Handler] %s failed: %v", op, err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	msg, ok := apperrors.PublicMessage(err)
	if !ok {
		msg = err.Error()
	}
	c.JSON(status, gin.H{"error": msg})
}

// bindError answers a malformed request body
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
}
