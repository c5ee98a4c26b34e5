package models

import "time"

// Post is authored content, optionally a reply to another post.
// LikeCount is a cached counter kept equal to the number of Like rows
// for the post; it is only ever mutated alongside a Like row mutation.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	Text      string    `json:"text"`
	ParentID  *uint     `json:"parent_id,omitempty" gorm:"index"`
	LikeCount int       `json:"like_count" gorm:"default:0"`
	Media     []Media   `json:"media,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Text     string               `json:"text" validate:"required_without=Media,omitempty,max=2000"`
	ParentID *uint                `json:"parent_id,omitempty"`
	Media    []CreateMediaRequest `json:"media,omitempty" validate:"omitempty,dive"`
}
