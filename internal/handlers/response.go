package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edudraft/edudraft-backend/internal/apierr"
	"github.com/edudraft/edudraft-backend/internal/services"
)

// RespondOK wraps every successful JSON response in the same envelope.
func RespondOK(c *gin.Context, status int, data gin.H) {
	body := gin.H{"success": true}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(status, body)
}

// RespondError maps service errors onto status codes without string
// matching: apierr carries its own status, known sentinels map explicitly,
// and everything else is a 500 with a generic message.
func RespondError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"success": false, "error": apiErr.Error(), "code": apiErr.Code})
		return
	}

	var insufficient *services.InsufficientCreditsError
	switch {
	case errors.As(err, &insufficient):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"success":   false,
			"error":     insufficient.Error(),
			"code":      "insufficient_credits",
			"required":  insufficient.Required,
			"available": insufficient.Available,
		})
	case errors.Is(err, services.ErrArtifactNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "artifact not found"})
	case errors.Is(err, services.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "account not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
	}
}
