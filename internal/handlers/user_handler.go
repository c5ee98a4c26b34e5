package handlers

import (
	"net/http"

	"github.com/circlet-app/backend/internal/models"
	"github.com/circlet-app/backend/internal/policies"
	"github.com/circlet-app/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// UserHandler handles profile-related HTTP requests
type UserHandler struct {
	userRepository repositories.UserRepository
	postRepository repositories.PostRepository
	visibility     *policies.Visibility
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository, visibility *policies.Visibility) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		postRepository: postRepo,
		visibility:     visibility,
	}
}

// RegisterUserRoutes registers profile-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetMe)
	g.PATCH("/users/me/privacy", h.UpdatePrivacy)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:id", h.GetUserByID)
}

// GetMe returns the authenticated user's profile with recent posts
func (h *UserHandler) GetMe(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return h.profileResponse(c, currentUserID)
}

// GetUserByID returns another user's profile, gated by the visibility
// policy. A missing user stays "not found"; a hidden profile is
// "forbidden" - the two are never conflated.
func (h *UserHandler) GetUserByID(c echo.Context) error {
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

	return h.profileResponse(c, targetID)
}

func (h *UserHandler) profileResponse(c echo.Context, userID uint) error {
	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return httpError(err)
	}

	page, limit := parsePagination(c, 10)
	posts, total, err := h.postRepository.GetPostsByAuthor(userID, (page-1)*limit, limit)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":  user,
		"page":  page,
		"limit": limit,
		"total": total,
		"posts": posts,
	})
}

// UpdatePrivacy toggles the authenticated user's privacy flag
func (h *UserHandler) UpdatePrivacy(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdatePrivacyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return httpError(err)
	}

	user.IsPrivate = *req.IsPrivate
	if err := h.userRepository.UpdateUser(user); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, user)
}

// SearchUsers searches users by username
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}

	page, limit := parsePagination(c, 10)
	users, total, err := h.userRepository.SearchUsers(query, (page-1)*limit, limit)
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

	return c.JSON(http.StatusOK, echo.Map{
		"page":  page,
		"limit": limit,
		"total": total,
		"users": results,
	})
}
