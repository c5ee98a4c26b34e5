package handlers

import (
	"net/http"

	"github.com/circlet-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// BlockHandler handles block/unblock HTTP requests
type BlockHandler struct {
	blockService *services.BlockService
}

// NewBlockHandler creates a new BlockHandler
func NewBlockHandler(blockService *services.BlockService) *BlockHandler {
	return &BlockHandler{blockService: blockService}
}

// RegisterBlockRoutes registers block-related routes
func (h *BlockHandler) RegisterBlockRoutes(g *echo.Group) {
	g.POST("/users/:id/block", h.BlockUser)
	g.DELETE("/users/:id/block", h.UnblockUser)
}

// BlockUser blocks a user
func (h *BlockHandler) BlockUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.blockService.Block(currentUserID, targetID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "User blocked"})
}

// UnblockUser unblocks a user
func (h *BlockHandler) UnblockUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.blockService.Unblock(currentUserID, targetID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "User unblocked"})
}
