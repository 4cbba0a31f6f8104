package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edudraft/edudraft-backend/internal/content"
	"github.com/edudraft/edudraft-backend/internal/requestdata"
	"github.com/edudraft/edudraft-backend/internal/services"
)

type ArtifactHandler struct {
	artifactSvc services.ArtifactService
}

func NewArtifactHandler(artifactSvc services.ArtifactService) *ArtifactHandler {
	return &ArtifactHandler{artifactSvc: artifactSvc}
}

func callerID(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing or invalid token"})
		return uuid.Nil, false
	}
	return rd.UserID, true
}

func artifactID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid artifact id"})
		return uuid.Nil, false
	}
	return id, true
}

func (ah *ArtifactHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	kind := c.Query("kind")
	if kind != "" {
		if _, valid := content.ParseKind(kind); !valid {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown artifact kind"})
			return
		}
	}
	artifacts, err := ah.artifactSvc.ListForUser(c.Request.Context(), userID, kind)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"artifacts": artifacts})
}

func (ah *ArtifactHandler) Get(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := artifactID(c)
	if !ok {
		return
	}
	artifact, err := ah.artifactSvc.GetForUser(c.Request.Context(), userID, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"artifact": artifact})
}

func (ah *ArtifactHandler) Rename(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := artifactID(c)
	if !ok {
		return
	}
	var req struct {
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "title is required"})
		return
	}
	if err := ah.artifactSvc.Rename(c.Request.Context(), userID, id, req.Title); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, nil)
}

func (ah *ArtifactHandler) Retag(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := artifactID(c)
	if !ok {
		return
	}
	var req struct {
		Tags []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	// Ownership check before the blind update.
	if _, err := ah.artifactSvc.GetForUser(c.Request.Context(), userID, id); err != nil {
		RespondError(c, err)
		return
	}
	if err := ah.artifactSvc.SetTags(c.Request.Context(), id, req.Tags); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, nil)
}

func (ah *ArtifactHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := artifactID(c)
	if !ok {
		return
	}
	if err := ah.artifactSvc.Delete(c.Request.Context(), userID, id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, nil)
}
