package handlers

import (
	"net/http"

	"github.com/circlet-app/backend/internal/models"
	"github.com/circlet-app/backend/internal/policies"
	"github.com/circlet-app/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts and replies
type PostHandler struct {
	postRepository repositories.PostRepository
	visibility     *policies.Visibility
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, visibility *policies.Visibility) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		visibility:     visibility,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.GET("/posts/:id/replies", h.GetReplies)
	g.GET("/posts/:id/likes", h.GetPostLikes)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a post or a reply when parent_id is set
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.ParentID != nil {
		// Replying requires the parent to be visible to the author.
		canView, err := h.visibility.CanViewPost(currentUserID, *req.ParentID)
		if err != nil {
			return httpError(err)
		}
		if !canView {
			return echo.NewHTTPError(http.StatusForbidden, "Cannot reply to this post")
		}
	}

	post := &models.Post{
		AuthorID: currentUserID,
		Text:     req.Text,
		ParentID: req.ParentID,
	}
	for _, m := range req.Media {
		post.Media = append(post.Media, models.Media{
			Type:   m.Type,
			URL:    m.URL,
			Width:  m.Width,
			Height: m.Height,
		})
	}

	if err := h.postRepository.CreatePost(post); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"post_id": post.ID})
}

// GetPost returns a post, gated by the author-centric visibility rule
func (h *PostHandler) GetPost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	canView, err := h.visibility.CanViewPost(currentUserID, postID)
	if err != nil {
		return httpError(err)
	}
	if !canView {
		return echo.NewHTTPError(http.StatusForbidden, "Post is not visible")
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, post)
}

// GetReplies lists the visible replies of a post. Each reply is
// filtered independently: a private author's replies stay gated even
// inside a public parent thread.
func (h *PostHandler) GetReplies(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	canView, err := h.visibility.CanViewPost(currentUserID, postID)
	if err != nil {
		return httpError(err)
	}
	if !canView {
		return echo.NewHTTPError(http.StatusForbidden, "Post is not visible")
	}

	replies, err := h.postRepository.GetReplies(postID)
	if err != nil {
		return httpError(err)
	}

	visible := make([]models.Post, 0, len(replies))
	for _, reply := range replies {
		ok, err := h.visibility.CanViewPostOf(currentUserID, reply.AuthorID)
		if err != nil {
			return httpError(err)
		}
		if ok {
			visible = append(visible, reply)
		}
	}

	return c.JSON(http.StatusOK, visible)
}

// GetPostLikes returns the cached like counter for a post
func (h *PostHandler) GetPostLikes(c echo.Context) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"like_count": post.LikeCount})
}

// DeletePost removes a post and its media; only the author may delete
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		return httpError(err)
	}
	if post.AuthorID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized to delete this post")
	}

	if err := h.postRepository.DeletePost(postID); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
