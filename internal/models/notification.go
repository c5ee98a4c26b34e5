package models

import "time"

// NotificationType tags what state transition produced a notification.
type NotificationType string

const (
	NotificationFollowRequest   NotificationType = "follow_request"
	NotificationRequestAccepted NotificationType = "request_accepted"
	NotificationPostLiked       NotificationType = "post_liked"
)

// NotificationData is the structured payload attached to a
// notification. Fields are populated per type: follow_request carries
// From, request_accepted carries By, post_liked carries By and PostID.
type NotificationData struct {
	From   uint `json:"from,omitempty"`
	By     uint `json:"by,omitempty"`
	PostID uint `json:"post_id,omitempty"`
}

// Notification is owned by its recipient and never mutated after
// creation except for the read flag.
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	RecipientID uint             `json:"recipient_id" gorm:"index"`
	Type        NotificationType `json:"type" gorm:"type:varchar(30);index"`
	Data        NotificationData `json:"data" gorm:"serializer:json"`
	Read        bool             `json:"read" gorm:"default:false;index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
}
