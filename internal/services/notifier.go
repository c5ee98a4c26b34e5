package services

import (
	"github.com/circlet-app/backend/internal/models"
	"github.com/circlet-app/backend/internal/repositories"
	"github.com/circlet-app/backend/pkg/logger"
	"github.com/circlet-app/backend/pkg/redis"
	"go.uber.org/zap"
)

// Notifier records notifications produced by state transitions. Emit
// writes through whatever Store handle the caller passes, so a caller
// inside a transaction keeps the notification atomic with the rest of
// the transition: if the row insert fails, the transition fails.
type Notifier struct {
	cache *redis.UnreadCache // optional
}

// NewNotifier creates a new Notifier. cache may be nil when Redis is
// not configured.
func NewNotifier(cache *redis.UnreadCache) *Notifier {
	return &Notifier{cache: cache}
}

// Emit creates an unread notification row for the recipient.
func (n *Notifier) Emit(store repositories.Store, recipientID uint, typ models.NotificationType, data models.NotificationData) error {
	note := &models.Notification{
		RecipientID: recipientID,
		Type:        typ,
		Data:        data,
	}
	if err := store.Notifications().CreateNotification(note); err != nil {
		return err
	}

	// Cache invalidation is best effort; the row is the source of truth.
	if n.cache != nil {
		if err := n.cache.Invalidate(recipientID); err != nil {
			logger.Warn("unread cache invalidation failed",
				zap.Uint("recipient_id", recipientID), zap.Error(err))
		}
	}
	return nil
}
