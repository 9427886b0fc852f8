package handler

import (
	"errors"
	"net/http"

	"inkwell/internal/middleware"
	"inkwell/internal/pkg"
	"inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	svc *service.SubscriptionService
}

type SubscribeReq struct {
	Username string `json:"username" binding:"required"`
}

func NewSubscriptionHandler(svc *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req SubscribeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	err := h.svc.Subscribe(userID, req.Username)
	switch {
	case errors.Is(err, pkg.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "author not found"})
	case errors.Is(err, service.ErrSelfSubscription):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "subscribe failed"})
	default:
		c.JSON(http.StatusOK, gin.H{"msg": "subscribed"})
	}
}

func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	err := h.svc.Unsubscribe(userID, c.Param("username"))
	switch {
	case errors.Is(err, pkg.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "author not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "unsubscribe failed"})
	default:
		c.JSON(http.StatusOK, gin.H{"msg": "unsubscribed"})
	}
}

func (h *SubscriptionHandler) Relation(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	subscribed, err := h.svc.IsSubscribed(userID, c.Param("username"))
	switch {
	case errors.Is(err, pkg.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "author not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "query failed"})
	default:
		c.JSON(http.StatusOK, gin.H{"subscribed": subscribed})
	}
}
