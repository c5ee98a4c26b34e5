package services

import (
	"sort"
	"sync"
	"testing"

	"github.com/circlet-app/backend/internal/errs"
	"github.com/circlet-app/backend/internal/models"
	"github.com/circlet-app/backend/internal/repositories"
)

func newTestPost(t *testing.T, store repositories.Store, authorID uint, text string) *models.Post {
	t.Helper()
	post := &models.Post{AuthorID: authorID, Text: text}
	if err := store.Posts().CreatePost(post); err != nil {
		t.Fatalf("creating post: %v", err)
	}
	return post
}

func assertCounterMatchesRows(t *testing.T, store repositories.Store, postID uint) {
	t.Helper()
	post, err := store.Posts().GetPostByID(postID)
	if err != nil {
		t.Fatalf("loading post: %v", err)
	}
	rows, err := store.Likes().CountByPostID(postID)
	if err != nil {
		t.Fatalf("counting likes: %v", err)
	}
	if int64(post.LikeCount) != rows {
		t.Fatalf("likeCount=%d but %d Like rows exist", post.LikeCount, rows)
	}
}

func TestToggleLikeAndUnlike(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := NewLikeService(store, NewNotifier(nil))
	author := newTestUser(t, store, "author", false)
	liker := newTestUser(t, store, "liker", false)
	post := newTestPost(t, store, author.ID, "hello")

	result, err := svc.Toggle(liker.ID, post.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !result.Liked || result.LikeCount != 1 {
		t.Fatalf("expected liked with count 1, got %+v", result)
	}
	assertCounterMatchesRows(t, store, post.ID)

	notes := notificationsFor(t, store, author.ID)
	if len(notes) != 1 || notes[0].Type != models.NotificationPostLiked {
		t.Fatalf("expected one post_liked notification, got %+v", notes)
	}
	if notes[0].Data.By != liker.ID || notes[0].Data.PostID != post.ID {
		t.Fatalf("unexpected notification payload %+v", notes[0].Data)
	}

	result, err = svc.Toggle(liker.ID, post.ID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if result.Liked || result.LikeCount != 0 {
		t.Fatalf("expected unliked with count 0, got %+v", result)
	}
	assertCounterMatchesRows(t, store, post.ID)

	// An unlike emits nothing; the original like notification stays.
	if notes := notificationsFor(t, store, author.ID); len(notes) != 1 {
		t.Fatalf("unlike must not emit, got %d notifications", len(notes))
	}
}

func TestToggleOwnPostDoesNotNotify(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := NewLikeService(store, NewNotifier(nil))
	author := newTestUser(t, store, "author", false)
	post := newTestPost(t, store, author.ID, "self like")

	result, err := svc.Toggle(author.ID, post.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !result.Liked || result.LikeCount != 1 {
		t.Fatalf("expected liked with count 1, got %+v", result)
	}
	if notes := notificationsFor(t, store, author.ID); len(notes) != 0 {
		t.Fatalf("liking your own post must not notify, got %d", len(notes))
	}
}

func TestToggleUnknownPost(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := NewLikeService(store, NewNotifier(nil))
	user := newTestUser(t, store, "liker", false)

	_, err := svc.Toggle(user.ID, 12345)
	if !errs.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestToggleConcurrentCountsAreExact(t *testing.T) {
	// The reported count is read inside the toggle's transaction, so
	// concurrent likers each observe a distinct counter value: the
	// results must be exactly 1..n in some order, never a stale repeat.
	store := repositories.NewMemoryStore()
	svc := NewLikeService(store, NewNotifier(nil))
	author := newTestUser(t, store, "author", false)
	post := newTestPost(t, store, author.ID, "contended")

	const likers = 8
	users := make([]*models.User, likers)
	for i := range users {
		users[i] = newTestUser(t, store, string(rune('a'+i)), false)
	}

	counts := make([]int, likers)
	var wg sync.WaitGroup
	for i, u := range users {
		wg.Add(1)
		go func(i int, userID uint) {
			defer wg.Done()
			result, err := svc.Toggle(userID, post.ID)
			if err != nil {
				t.Errorf("toggle failed: %v", err)
				return
			}
			counts[i] = result.LikeCount
		}(i, u.ID)
	}
	wg.Wait()

	sort.Ints(counts)
	for i, c := range counts {
		if c != i+1 {
			t.Fatalf("reported counts %v, want a permutation of 1..%d", counts, likers)
		}
	}
	assertCounterMatchesRows(t, store, post.ID)
}

func TestToggleManyLikers(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := NewLikeService(store, NewNotifier(nil))
	author := newTestUser(t, store, "author", false)
	post := newTestPost(t, store, author.ID, "popular")

	var likers []*models.User
	for _, name := range []string{"a", "b", "c", "d"} {
		likers = append(likers, newTestUser(t, store, name, false))
	}
	for _, u := range likers {
		if _, err := svc.Toggle(u.ID, post.ID); err != nil {
			t.Fatalf("toggle by %s failed: %v", u.Username, err)
		}
	}
	assertCounterMatchesRows(t, store, post.ID)

	count, err := svc.Count(post.ID)
	if err != nil || count != len(likers) {
		t.Fatalf("expected count %d, got %d err=%v", len(likers), count, err)
	}

	// One liker retracts; everyone else's like survives.
	if _, err := svc.Toggle(likers[0].ID, post.ID); err != nil {
		t.Fatalf("untoggle failed: %v", err)
	}
	assertCounterMatchesRows(t, store, post.ID)
	count, _ = svc.Count(post.ID)
	if count != len(likers)-1 {
		t.Fatalf("expected count %d, got %d", len(likers)-1, count)
	}
}
