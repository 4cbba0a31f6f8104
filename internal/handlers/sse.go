package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/edudraft/edudraft-backend/internal/sse"
)

type SSEHandler struct {
	hub *sse.SSEHub
}

func NewSSEHandler(hub *sse.SSEHub) *SSEHandler {
	return &SSEHandler{hub: hub}
}

// Subscribe opens the caller's notification stream. Each user listens on
// their own channel; artifact and credit events land there as they happen.
func (sh *SSEHandler) Subscribe(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	client := sh.hub.NewSSEClient(userID)
	sh.hub.AddChannel(client, userID.String())
	defer sh.hub.RemoveClient(client)
	sh.hub.ServeHTTP(c.Writer, c.Request, client)
}
