package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/circlet-app/backend/internal/models"
	"github.com/circlet-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

func TestToggleLikeRoundTrip(t *testing.T) {
	e := echo.New()
	store := newHandlerTestStore(t)
	h := NewLikeHandler(services.NewLikeService(store, services.NewNotifier(nil)))
	author := makeUser(t, store, "author", false)
	liker := makeUser(t, store, "liker", false)

	post := &models.Post{AuthorID: author.ID, Text: "hello"}
	if err := store.Posts().CreatePost(post); err != nil {
		t.Fatalf("creating post: %v", err)
	}

	toggle := func() services.ToggleResult {
		c, rec := newAuthedContext(e, http.MethodPost, "/", "", liker.ID)
		c.SetParamNames("id")
		c.SetParamValues(fmt.Sprint(post.ID))
		if err := h.ToggleLike(c); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var result services.ToggleResult
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		return result
	}

	if result := toggle(); !result.Liked || result.LikeCount != 1 {
		t.Fatalf("first toggle: %+v", result)
	}
	if result := toggle(); result.Liked || result.LikeCount != 0 {
		t.Fatalf("second toggle: %+v", result)
	}
}

func TestToggleLikeUnknownPost(t *testing.T) {
	e := echo.New()
	store := newHandlerTestStore(t)
	h := NewLikeHandler(services.NewLikeService(store, services.NewNotifier(nil)))
	liker := makeUser(t, store, "liker", false)

	c, _ := newAuthedContext(e, http.MethodPost, "/", "", liker.ID)
	c.SetParamNames("id")
	c.SetParamValues("9999")

	err := h.ToggleLike(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
}
