package handlers

import (
	"net/http"

	"github.com/circlet-app/backend/internal/models"
	"github.com/circlet-app/backend/internal/policies"
	"github.com/circlet-app/backend/internal/repositories"
	"github.com/circlet-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow, unfollow and follow-request HTTP requests
type FollowHandler struct {
	followService    *services.FollowService
	followRepository repositories.FollowRepository
	visibility       *policies.Visibility
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService, followRepo repositories.FollowRepository, visibility *policies.Visibility) *FollowHandler {
	return &FollowHandler{
		followService:    followService,
		followRepository: followRepo,
		visibility:       visibility,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
	g.GET("/follow-requests", h.GetPendingRequests)
	g.POST("/follow-requests/:id/accept", h.AcceptRequest)
	g.POST("/follow-requests/:id/reject", h.RejectRequest)
}

// FollowUser follows a public user directly or sends a follow request
// to a private one
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	outcome, request, err := h.followService.RequestFollow(currentUserID, targetID)
	if err != nil {
		return httpError(err)
	}

	switch outcome {
	case services.FollowIgnored:
		// The block stays invisible to the requester.
		return c.NoContent(http.StatusNoContent)
	case services.FollowCreated:
		return c.JSON(http.StatusCreated, echo.Map{"message": "Followed successfully"})
	default:
		return c.JSON(http.StatusCreated, echo.Map{"message": "Follow request sent", "request": request})
	}
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.followService.Unfollow(currentUserID, targetID); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetFollowers lists a user's followers, gated by profile visibility
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	return h.followListing(c, h.followRepository.GetFollowers)
}

// GetFollowing lists who a user follows, gated by profile visibility
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	return h.followListing(c, h.followRepository.GetFollowing)
}

func (h *FollowHandler) followListing(c echo.Context, list func(uint) ([]models.User, error)) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	canView, err := h.visibility.CanViewProfile(currentUserID, targetID)
	if err != nil {
		return httpError(err)
	}
	if !canView {
		return echo.NewHTTPError(http.StatusForbidden, "Profile is private")
	}

	users, err := list(targetID)
	if err != nil {
		return httpError(err)
	}

	results := make([]echo.Map, 0, len(users))
	for _, u := range users {
		results = append(results, echo.Map{
			"id":         u.ID,
			"username":   u.Username,
			"is_private": u.IsPrivate,
		})
	}
	return c.JSON(http.StatusOK, results)
}

// GetPendingRequests lists incoming pending follow requests for the
// authenticated user
func (h *FollowHandler) GetPendingRequests(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	requests, err := h.followService.PendingRequests(currentUserID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, requests)
}

// AcceptRequest accepts a pending follow request addressed to the
// authenticated user
func (h *FollowHandler) AcceptRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	requestID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.followService.AcceptRequest(requestID, currentUserID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Follow request accepted"})
}

// RejectRequest rejects a pending follow request addressed to the
// authenticated user
func (h *FollowHandler) RejectRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	requestID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.followService.RejectRequest(requestID, currentUserID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Follow request rejected"})
}
