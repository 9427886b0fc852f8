package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"inkwell/internal/middleware"
	"inkwell/internal/pkg"
	"inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

func detailPath(postID uint64) string {
	return fmt.Sprintf("/api/post/%d", postID)
}

func profilePath(username string) string {
	return "/api/profile/" + username
}

// Index is the global feed.
func (h *PostHandler) Index(c *gin.Context) {
	page := pkg.ParsePage(c.Query("page"))
	feed, err := h.svc.ListIndex(page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, feed)
}

// Profile lists one author's posts plus their post count.
func (h *PostHandler) Profile(c *gin.Context) {
	page := pkg.ParsePage(c.Query("page"))
	profile, err := h.svc.ListProfile(c.Param("username"), page)
	if errors.Is(err, pkg.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "author not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Followed is the feed of authors the caller subscribes to.
func (h *PostHandler) Followed(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	page := pkg.ParsePage(c.Query("page"))
	feed, err := h.svc.ListFollowed(userID, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, feed)
}

// Detail shows one post; the is_author flag drives edit controls client-side.
func (h *PostHandler) Detail(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}

	detail, err := h.svc.GetDetail(middleware.CurrentUserID(c), postID)
	if errors.Is(err, pkg.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "detail failed"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Create publishes a new post for the authenticated caller and points the
// client at their profile listing.
func (h *PostHandler) Create(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var in service.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	post, err := h.svc.Create(userID, in)
	var verrs pkg.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "create failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       post.ID,
		"redirect": profilePath(post.Author.Username),
	})
}

// Edit updates text/group of the caller's own post. A non-author gets a soft
// redirect to the detail view, not an authorization error.
func (h *PostHandler) Edit(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}

	var in service.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	post, err := h.svc.Edit(userID, postID, in)
	switch {
	case errors.Is(err, pkg.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "post not found"})
		return
	case errors.Is(err, pkg.ErrNotAuthor):
		c.Redirect(http.StatusFound, detailPath(postID))
		return
	}
	var verrs pkg.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "edit failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       post.ID,
		"redirect": detailPath(post.ID),
	})
}
