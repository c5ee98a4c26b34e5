package handlers

import (
	"net/http"

	"github.com/circlet-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles the like toggle
type LikeHandler struct {
	likeService *services.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.ToggleLike)
}

// ToggleLike likes the post if not yet liked, unlikes it otherwise
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	result, err := h.likeService.Toggle(currentUserID, postID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}
