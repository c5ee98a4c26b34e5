package services

import (
	"fmt"
	"testing"

	"github.com/circlet-app/backend/internal/errs"
	"github.com/circlet-app/backend/internal/models"
	"github.com/circlet-app/backend/internal/repositories"
)

func seedNotification(t *testing.T, store repositories.Store, recipientID uint, typ models.NotificationType) *models.Notification {
	t.Helper()
	note := &models.Notification{
		RecipientID: recipientID,
		Type:        typ,
		Data:        models.NotificationData{From: 1},
	}
	if err := store.Notifications().CreateNotification(note); err != nil {
		t.Fatalf("seeding notification: %v", err)
	}
	return note
}

func TestNotificationList(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := NewNotificationService(store, nil)
	recipient := newTestUser(t, store, "recipient", false)
	other := newTestUser(t, store, "other", false)

	for i := 0; i < 3; i++ {
		seedNotification(t, store, recipient.ID, models.NotificationFollowRequest)
	}
	seedNotification(t, store, other.ID, models.NotificationPostLiked)

	notes, total, err := svc.List(recipient.ID, nil, 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(notes) != 3 {
		t.Fatalf("expected 3 notifications, got total=%d len=%d", total, len(notes))
	}
	for _, n := range notes {
		if n.RecipientID != recipient.ID {
			t.Fatalf("leaked notification for recipient %d", n.RecipientID)
		}
	}

	// Read filter.
	if err := svc.MarkRead(notes[0].ID, recipient.ID); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	unread := false
	read := true
	if _, total, err = svc.List(recipient.ID, &read, 1, 20); err != nil || total != 1 {
		t.Fatalf("expected 1 read notification, got total=%d err=%v", total, err)
	}
	if _, total, err = svc.List(recipient.ID, &unread, 1, 20); err != nil || total != 2 {
		t.Fatalf("expected 2 unread notifications, got total=%d err=%v", total, err)
	}
}

func TestNotificationListPagination(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := NewNotificationService(store, nil)
	recipient := newTestUser(t, store, "recipient", false)

	for i := 0; i < 5; i++ {
		seedNotification(t, store, recipient.ID, models.NotificationPostLiked)
	}

	page1, total, err := svc.List(recipient.ID, nil, 1, 2)
	if err != nil || total != 5 || len(page1) != 2 {
		t.Fatalf("page 1: total=%d len=%d err=%v", total, len(page1), err)
	}
	page3, total, err := svc.List(recipient.ID, nil, 3, 2)
	if err != nil || total != 5 || len(page3) != 1 {
		t.Fatalf("page 3: total=%d len=%d err=%v", total, len(page3), err)
	}
}

func TestUnreadCountCap(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := NewNotificationService(store, nil)
	recipient := newTestUser(t, store, "busy", false)

	for i := 0; i < 130; i++ {
		seedNotification(t, store, recipient.ID, models.NotificationPostLiked)
	}

	count, err := svc.UnreadCount(recipient.ID)
	if err != nil {
		t.Fatalf("unread count failed: %v", err)
	}
	if count != maxUnreadCount {
		t.Fatalf("expected capped count %d, got %d", maxUnreadCount, count)
	}
}

func TestUnreadCountTracksReadFlag(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := NewNotificationService(store, nil)
	recipient := newTestUser(t, store, "recipient", false)

	var ids []uint
	for i := 0; i < 4; i++ {
		ids = append(ids, seedNotification(t, store, recipient.ID, models.NotificationFollowRequest).ID)
	}

	count, err := svc.UnreadCount(recipient.ID)
	if err != nil || count != 4 {
		t.Fatalf("expected 4 unread, got %d err=%v", count, err)
	}

	if err := svc.MarkRead(ids[0], recipient.ID); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	// Marking twice is harmless.
	if err := svc.MarkRead(ids[0], recipient.ID); err != nil {
		t.Fatalf("repeat mark read failed: %v", err)
	}

	count, _ = svc.UnreadCount(recipient.ID)
	if count != 3 {
		t.Fatalf("expected 3 unread after marking one, got %d", count)
	}
}

func TestMarkReadGuards(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := NewNotificationService(store, nil)
	recipient := newTestUser(t, store, "recipient", false)
	stranger := newTestUser(t, store, "stranger", false)

	note := seedNotification(t, store, recipient.ID, models.NotificationPostLiked)

	if err := svc.MarkRead(note.ID+99, recipient.ID); !errs.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := svc.MarkRead(note.ID, stranger.ID); !errs.IsForbidden(err) {
		t.Fatalf("expected forbidden for non-recipient, got %v", err)
	}

	reloaded, _ := store.Notifications().GetNotificationByID(note.ID)
	if reloaded.Read {
		t.Fatal("failed mark attempts must not flip the flag")
	}
}

func TestCapCount(t *testing.T) {
	cases := []struct {
		in, want int64
	}{
		{0, 0},
		{99, 99},
		{100, 100},
		{101, 100},
		{5000, 100},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%d", c.in), func(t *testing.T) {
			if got := capCount(c.in); got != c.want {
				t.Fatalf("capCount(%d) = %d, want %d", c.in, got, c.want)
			}
		})
	}
}
