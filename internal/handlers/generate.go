package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edudraft/edudraft-backend/internal/content"
	"github.com/edudraft/edudraft-backend/internal/logger"
	"github.com/edudraft/edudraft-backend/internal/requestdata"
	"github.com/edudraft/edudraft-backend/internal/services"
	"github.com/edudraft/edudraft-backend/internal/stream"
)

type GenerateHandler struct {
	log           *logger.Logger
	generationSvc services.GenerationService
}

func NewGenerateHandler(baseLog *logger.Logger, generationSvc services.GenerationService) *GenerateHandler {
	return &GenerateHandler{
		log:           baseLog.With("handler", "GenerateHandler"),
		generationSvc: generationSvc,
	}
}

// Generate runs one credit-metered generation. Rejections caught before the
// stream opens (unknown kind, missing user, not enough credits) go out as a
// plain JSON error with a real status code; once streaming starts the
// response is committed as 200 and failures travel inside the stream as
// error events.
func (gh *GenerateHandler) Generate(c *gin.Context) {
	var req struct {
		Kind       string `json:"kind"`
		Topic      string `json:"topic"`
		GradeLevel string `json:"grade_level"`
		Subject    string `json:"subject"`
		ItemCount  int    `json:"item_count"`
		Duration   string `json:"duration"`
		Extra      string `json:"extra"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	if req.Topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "topic is required"})
		return
	}

	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing or invalid token"})
		return
	}

	kind, ok := content.ParseKind(req.Kind)
	if !ok {
		// Let Precheck produce the invalid_kind rejection with the
		// requested name in it.
		kind = content.Kind(req.Kind)
	}
	user, _, err := gh.generationSvc.Precheck(c.Request.Context(), rd.UserID, kind)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.Writer.Header().Set("Content-Type", "application/x-ndjson")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)

	enc := stream.NewEncoder(c.Writer)
	// The request context cancels when the client disconnects, which
	// aborts the provider stream mid-flight.
	gh.generationSvc.Run(c.Request.Context(), user, services.GenerationRequest{
		Kind:       kind,
		Topic:      req.Topic,
		GradeLevel: req.GradeLevel,
		Subject:    req.Subject,
		ItemCount:  req.ItemCount,
		Duration:   req.Duration,
		Extra:      req.Extra,
	}, enc)
}
