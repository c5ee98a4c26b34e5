package repositories

import (
	"errors"
	"testing"

	"github.com/circlet-app/backend/internal/errs"
	"github.com/circlet-app/backend/internal/models"
)

func seedUser(t *testing.T, store Store, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com"}
	if err := store.Users().CreateUser(user); err != nil {
		t.Fatalf("creating user %s: %v", username, err)
	}
	return user
}

func TestMemoryStoreUniqueness(t *testing.T) {
	store := NewMemoryStore()
	a := seedUser(t, store, "a")
	b := seedUser(t, store, "b")

	dup := &models.User{Username: "a", Email: "fresh@example.com"}
	if err := store.Users().CreateUser(dup); !errs.IsConflict(err) {
		t.Fatalf("expected conflict on duplicate username, got %v", err)
	}

	if err := store.Follows().CreateFollow(&models.Follow{FollowerID: a.ID, FollowingID: b.ID}); err != nil {
		t.Fatalf("follow failed: %v", err)
	}
	if err := store.Follows().CreateFollow(&models.Follow{FollowerID: a.ID, FollowingID: b.ID}); !errs.IsConflict(err) {
		t.Fatalf("expected conflict on duplicate follow, got %v", err)
	}

	if err := store.Likes().CreateLike(&models.Like{UserID: a.ID, PostID: 1}); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if err := store.Likes().CreateLike(&models.Like{UserID: a.ID, PostID: 1}); !errs.IsConflict(err) {
		t.Fatalf("expected conflict on duplicate like, got %v", err)
	}

	if err := store.FollowRequests().CreateRequest(&models.FollowRequest{RequesterID: a.ID, TargetID: b.ID}); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if err := store.FollowRequests().CreateRequest(&models.FollowRequest{RequesterID: a.ID, TargetID: b.ID}); !errs.IsConflict(err) {
		t.Fatalf("expected conflict on duplicate pending request, got %v", err)
	}
}

func TestMemoryStoreRequestStatusTransition(t *testing.T) {
	store := NewMemoryStore()
	a := seedUser(t, store, "a")
	b := seedUser(t, store, "b")

	request := &models.FollowRequest{RequesterID: a.ID, TargetID: b.ID}
	if err := store.FollowRequests().CreateRequest(request); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if err := store.FollowRequests().UpdateRequestStatus(request.ID,
		models.FollowRequestPending, models.FollowRequestAccepted); err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	// The from-status guard rejects a transition off a terminal state.
	err := store.FollowRequests().UpdateRequestStatus(request.ID,
		models.FollowRequestPending, models.FollowRequestRejected)
	if !errs.IsConflict(err) {
		t.Fatalf("expected conflict on second transition, got %v", err)
	}

	reloaded, _ := store.FollowRequests().GetRequestByID(request.ID)
	if reloaded.Status != models.FollowRequestAccepted {
		t.Fatalf("status must stay accepted, got %s", reloaded.Status)
	}

	// A terminal row frees the pending slot for a fresh request.
	if err := store.FollowRequests().CreateRequest(&models.FollowRequest{RequesterID: a.ID, TargetID: b.ID}); err != nil {
		t.Fatalf("new request after terminal state failed: %v", err)
	}
}

func TestMemoryStoreTransactionRollback(t *testing.T) {
	store := NewMemoryStore()
	user := seedUser(t, store, "tx")
	post := &models.Post{AuthorID: user.ID, Text: "before"}
	if err := store.Posts().CreatePost(post); err != nil {
		t.Fatalf("creating post: %v", err)
	}

	boom := errors.New("boom")
	err := store.Transaction(func(tx Store) error {
		if err := tx.Likes().CreateLike(&models.Like{UserID: user.ID, PostID: post.ID}); err != nil {
			return err
		}
		if err := tx.Posts().AddLikeCount(post.ID, 1); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the transaction error to surface, got %v", err)
	}

	// Both effects rolled back.
	if _, err := store.Likes().FindLike(user.ID, post.ID); !errs.IsNotFound(err) {
		t.Fatalf("like row must be rolled back, err=%v", err)
	}
	reloaded, err := store.Posts().GetPostByID(post.ID)
	if err != nil {
		t.Fatalf("loading post: %v", err)
	}
	if reloaded.LikeCount != 0 {
		t.Fatalf("likeCount must be rolled back, got %d", reloaded.LikeCount)
	}
}

func TestMemoryStoreTransactionCommit(t *testing.T) {
	store := NewMemoryStore()
	user := seedUser(t, store, "tx")
	post := &models.Post{AuthorID: user.ID, Text: "hello"}
	if err := store.Posts().CreatePost(post); err != nil {
		t.Fatalf("creating post: %v", err)
	}

	err := store.Transaction(func(tx Store) error {
		if err := tx.Likes().CreateLike(&models.Like{UserID: user.ID, PostID: post.ID}); err != nil {
			return err
		}
		return tx.Posts().AddLikeCount(post.ID, 1)
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}

	if _, err := store.Likes().FindLike(user.ID, post.ID); err != nil {
		t.Fatalf("like row must persist, err=%v", err)
	}
	reloaded, _ := store.Posts().GetPostByID(post.ID)
	if reloaded.LikeCount != 1 {
		t.Fatalf("likeCount must persist, got %d", reloaded.LikeCount)
	}
}

func TestMemoryStoreNestedTransaction(t *testing.T) {
	store := NewMemoryStore()
	user := seedUser(t, store, "nested")

	err := store.Transaction(func(tx Store) error {
		return tx.Transaction(func(inner Store) error {
			return inner.Blocks().CreateBlock(&models.Block{BlockerID: user.ID, BlockedID: user.ID + 1})
		})
	})
	if err != nil {
		t.Fatalf("nested transaction failed: %v", err)
	}
	if _, err := store.Blocks().FindBlock(user.ID, user.ID+1); err != nil {
		t.Fatalf("block row must persist, err=%v", err)
	}
}

func TestMemoryStorePagination(t *testing.T) {
	store := NewMemoryStore()
	author := seedUser(t, store, "author")
	for i := 0; i < 5; i++ {
		if err := store.Posts().CreatePost(&models.Post{AuthorID: author.ID, Text: "p"}); err != nil {
			t.Fatalf("creating post: %v", err)
		}
	}

	posts, total, err := store.Posts().GetPostsByAuthor(author.ID, 0, 2)
	if err != nil || total != 5 || len(posts) != 2 {
		t.Fatalf("page 1: total=%d len=%d err=%v", total, len(posts), err)
	}
	posts, total, err = store.Posts().GetPostsByAuthor(author.ID, 4, 2)
	if err != nil || total != 5 || len(posts) != 1 {
		t.Fatalf("offset 4: total=%d len=%d err=%v", total, len(posts), err)
	}
	posts, _, err = store.Posts().GetPostsByAuthor(author.ID, 10, 2)
	if err != nil || len(posts) != 0 {
		t.Fatalf("offset past end: len=%d err=%v", len(posts), err)
	}
}

func TestMemoryStoreSearchUsers(t *testing.T) {
	store := NewMemoryStore()
	seedUser(t, store, "alice")
	seedUser(t, store, "alina")
	seedUser(t, store, "bob")

	users, total, err := store.Users().SearchUsers("ali", 0, 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 2 || len(users) != 2 {
		t.Fatalf("expected 2 matches, got total=%d len=%d", total, len(users))
	}
	if users[0].Username != "alice" || users[1].Username != "alina" {
		t.Fatalf("expected alphabetical order, got %s, %s", users[0].Username, users[1].Username)
	}
}
