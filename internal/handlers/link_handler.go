package handlers

import (
	"net/http"
	"strconv"

	"clientboard/internal/services"

	"github.com/gin-gonic/gin"
)

type LinkHandler struct {
	linkService services.ApprovalLinkService
}

func NewLinkHandler(linkService services.ApprovalLinkService) *LinkHandler {
	return &LinkHandler{linkService: linkService}
}

type issueLinkRequest struct {
	ClientID uint   `json:"client_id" binding:"required"`
	Period   string `json:"month_year_ref" binding:"required"`
}

func (h *LinkHandler) Issue(c *gin.Context) {
	var req issueLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	link, url, err := h.linkService.IssueLink(currentUserID(c), req.ClientID, req.Period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"unique_id":  link.UniqueID,
		"url":        url,
		"expires_at": link.ExpiresAt,
	})
}

func (h *LinkHandler) List(c *gin.Context) {
	var clientID uint
	if raw := c.Query("client_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client_id"})
			return
		}
		clientID = uint(id)
	}

	links, err := h.linkService.ListLinks(currentUserID(c), clientID, c.Query("month_year_ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

func (h *LinkHandler) Revoke(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.linkService.RevokeLink(currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Approval link revoked"})
}
