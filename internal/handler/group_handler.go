package handler

import (
	"errors"
	"net/http"

	"inkwell/internal/pkg"
	"inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	svc *service.PostService
}

func NewGroupHandler(svc *service.PostService) *GroupHandler {
	return &GroupHandler{svc: svc}
}

func (h *GroupHandler) List(c *gin.Context) {
	page := pkg.ParsePage(c.Query("page"))
	list, err := h.svc.ListGroups(page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// Posts returns the group record and its page of posts.
func (h *GroupHandler) Posts(c *gin.Context) {
	page := pkg.ParsePage(c.Query("page"))
	feed, err := h.svc.ListGroup(c.Param("slug"), page)
	if errors.Is(err, pkg.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "group not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, feed)
}
