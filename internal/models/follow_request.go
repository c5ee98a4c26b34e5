package models

import "time"

// FollowRequestStatus is the lifecycle state of a follow request.
// Requests are created pending and transition exactly once to a
// terminal state; terminal rows are never deleted.
type FollowRequestStatus string

const (
	FollowRequestPending  FollowRequestStatus = "pending"
	FollowRequestAccepted FollowRequestStatus = "accepted"
	FollowRequestRejected FollowRequestStatus = "rejected"
)

// FollowRequest rows are kept as history after they reach a terminal
// state. The partial unique index admits at most one pending row per
// ordered pair while leaving terminal rows unconstrained, so of two
// racing requests the second INSERT fails with a duplicate-key error.
type FollowRequest struct {
	ID          uint                `json:"id" gorm:"primaryKey"`
	RequesterID uint                `json:"requester_id" gorm:"index;uniqueIndex:idx_pending_pair,where:status = 'pending'"`
	TargetID    uint                `json:"target_id" gorm:"index;uniqueIndex:idx_pending_pair,where:status = 'pending'"`
	Status      FollowRequestStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
