package services

import (
	"github.com/circlet-app/backend/internal/errs"
	"github.com/circlet-app/backend/internal/models"
	"github.com/circlet-app/backend/internal/repositories"
	"github.com/circlet-app/backend/pkg/logger"
	"github.com/circlet-app/backend/pkg/redis"
	"go.uber.org/zap"
)

// maxUnreadCount caps the reported unread count.
const maxUnreadCount = 100

// NotificationService is the read side of notifications: listing,
// unread counting (cached), and the recipient-only read flag.
type NotificationService struct {
	store repositories.Store
	cache *redis.UnreadCache // optional
}

// NewNotificationService creates a new NotificationService. cache may
// be nil when Redis is not configured.
func NewNotificationService(store repositories.Store, cache *redis.UnreadCache) *NotificationService {
	return &NotificationService{store: store, cache: cache}
}

// List returns a page of the recipient's notifications, newest first,
// optionally filtered by read state.
func (s *NotificationService) List(recipientID uint, readFilter *bool, page, limit int) ([]models.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return s.store.Notifications().GetByRecipientID(recipientID, readFilter, (page-1)*limit, limit)
}

// UnreadCount returns the unread notification count, capped at 100.
// Reads go through the cache when available; the database repopulates
// it on a miss.
func (s *NotificationService) UnreadCount(recipientID uint) (int64, error) {
	if s.cache != nil {
		count, ok, err := s.cache.Get(recipientID)
		if err != nil {
			logger.Warn("unread cache read failed", zap.Uint("recipient_id", recipientID), zap.Error(err))
		} else if ok {
			return capCount(count), nil
		}
	}

	count, err := s.store.Notifications().GetUnreadCount(recipientID)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if err := s.cache.Set(recipientID, count); err != nil {
			logger.Warn("unread cache write failed", zap.Uint("recipient_id", recipientID), zap.Error(err))
		}
	}
	return capCount(count), nil
}

// MarkRead sets the read flag. Only the recipient may flip it.
func (s *NotificationService) MarkRead(notificationID, actingUserID uint) error {
	note, err := s.store.Notifications().GetNotificationByID(notificationID)
	if err != nil {
		return err
	}
	if note.RecipientID != actingUserID {
		return errs.Forbidden("not authorized to modify this notification")
	}
	if err := s.store.Notifications().MarkAsRead(notificationID); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(actingUserID); err != nil {
			logger.Warn("unread cache invalidation failed", zap.Uint("recipient_id", actingUserID), zap.Error(err))
		}
	}
	return nil
}

func capCount(count int64) int64 {
	if count > maxUnreadCount {
		return maxUnreadCount
	}
	return count
}
