package models

import "time"

// MediaType distinguishes image and video attachments.
type MediaType string

const (
	MediaImage MediaType = "IMAGE"
	MediaVideo MediaType = "VIDEO"
)

// Media is attachment metadata owned by a post. Binary storage lives
// behind an external object store; only the URL is recorded here.
type Media struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index"`
	Type      MediaType `json:"type" gorm:"type:varchar(10)"`
	URL       string    `json:"url"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateMediaRequest struct {
	Type   MediaType `json:"type" validate:"required,oneof=IMAGE VIDEO"`
	URL    string    `json:"url" validate:"required,url"`
	Width  int       `json:"width,omitempty" validate:"omitempty,min=0"`
	Height int       `json:"height,omitempty" validate:"omitempty,min=0"`
}
