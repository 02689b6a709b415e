package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unighana/unighana-backend/internal/usecase"
)

type BookmarkHandler struct {
	bookmarkUsecase *usecase.BookmarkUsecase
	logger          *slog.Logger
}

func NewBookmarkHandler(bookmarkUsecase *usecase.BookmarkUsecase, logger *slog.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkUsecase: bookmarkUsecase,
		logger:          logger.With("component", "bookmark_handler"),
	}
}

type bookmarkRequest struct {
	School map[string]any `json:"school" binding:"required"`
}

// POST /bookmark. The user comes from the bearer token, not the body.
func (h *BookmarkHandler) Add(c *gin.Context) {
	var req bookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "School data is required"})
		return
	}

	schoolID, _ := req.School["id"].(string)
	if schoolID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "School data is required"})
		return
	}

	userID := c.GetString("userID")
	if err := h.bookmarkUsecase.Add(c.Request.Context(), userID, schoolID, req.School); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "add bookmark", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "School bookmarked successfully"})
}

type unbookmarkRequest struct {
	SchoolID string `json:"schoolId" binding:"required"`
}

// POST /unbookmark
func (h *BookmarkHandler) Remove(c *gin.Context) {
	var req unbookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "School ID is required"})
		return
	}

	userID := c.GetString("userID")
	if err := h.bookmarkUsecase.Remove(c.Request.Context(), userID, req.SchoolID); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "remove bookmark", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Bookmark removed successfully"})
}

// GET /bookmarks/:userId
func (h *BookmarkHandler) List(c *gin.Context) {
	userID := c.Param("userId")

	bookmarks, err := h.bookmarkUsecase.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list bookmarks", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": errInternalServer})
		return
	}

	schools := make([]map[string]any, 0, len(bookmarks))
	for _, b := range bookmarks {
		schools = append(schools, b.School)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "bookmarks": schools})
}
