package services

import (
	"github.com/circlet-app/backend/internal/errs"
	"github.com/circlet-app/backend/internal/models"
	"github.com/circlet-app/backend/internal/repositories"
)

// FollowOutcome says what a follow attempt actually did.
type FollowOutcome int

const (
	// FollowIgnored means the attempt was silently dropped because the
	// target has blocked the requester. The caller reports success with
	// no state change so the block is not revealed.
	FollowIgnored FollowOutcome = iota
	// FollowCreated means a Follow edge now exists (public target).
	FollowCreated
	// FollowRequested means a pending request awaits the target's
	// approval (private target).
	FollowRequested
)

// FollowService owns the follow-request state machine: request
// creation, acceptance, rejection, and the resulting Follow edge.
type FollowService struct {
	store    repositories.Store
	notifier *Notifier
}

// NewFollowService creates a new FollowService
func NewFollowService(store repositories.Store, notifier *Notifier) *FollowService {
	return &FollowService{store: store, notifier: notifier}
}

// RequestFollow initiates a follow from requester to target. Public
// targets are followed directly with no request row; private targets
// get a pending request plus a follow_request notification, written in
// one transaction.
func (s *FollowService) RequestFollow(requesterID, targetID uint) (FollowOutcome, *models.FollowRequest, error) {
	if requesterID == targetID {
		return 0, nil, errs.InvalidArgument("cannot follow yourself")
	}

	target, err := s.store.Users().GetUserByID(targetID)
	if err != nil {
		return 0, nil, err
	}

	// A target who blocked the requester gets a silent no-op so the
	// block stays invisible to the requester.
	_, err = s.store.Blocks().FindBlock(targetID, requesterID)
	if err == nil {
		return FollowIgnored, nil, nil
	}
	if !errs.IsNotFound(err) {
		return 0, nil, err
	}

	_, err = s.store.FollowRequests().FindPendingRequest(requesterID, targetID)
	if err == nil {
		return 0, nil, errs.Conflict("follow request already pending")
	}
	if !errs.IsNotFound(err) {
		return 0, nil, err
	}

	if !target.IsPrivate {
		follow := &models.Follow{FollowerID: requesterID, FollowingID: targetID}
		if err := s.store.Follows().CreateFollow(follow); err != nil {
			if errs.IsConflict(err) {
				// Already following; the follow is idempotent.
				return FollowCreated, nil, nil
			}
			return 0, nil, err
		}
		return FollowCreated, nil, nil
	}

	request := &models.FollowRequest{
		RequesterID: requesterID,
		TargetID:    targetID,
		Status:      models.FollowRequestPending,
	}
	err = s.store.Transaction(func(tx repositories.Store) error {
		if err := tx.FollowRequests().CreateRequest(request); err != nil {
			return err
		}
		return s.notifier.Emit(tx, targetID, models.NotificationFollowRequest,
			models.NotificationData{From: requesterID})
	})
	if err != nil {
		return 0, nil, err
	}
	return FollowRequested, request, nil
}

// AcceptRequest transitions a pending request to accepted, creates the
// Follow edge, and notifies the requester. The three effects share one
// transaction; a failure rolls all of them back. The pending check is
// repeated inside the transaction as part of the status UPDATE, so of
// two racing accepts only one wins and only one notification exists.
func (s *FollowService) AcceptRequest(requestID, actingUserID uint) error {
	request, err := s.store.FollowRequests().GetRequestByID(requestID)
	if err != nil {
		return err
	}
	if request.TargetID != actingUserID {
		return errs.Forbidden("not authorized to handle this follow request")
	}
	if request.Status != models.FollowRequestPending {
		return errs.Conflict("follow request already handled")
	}

	return s.store.Transaction(func(tx repositories.Store) error {
		if err := tx.FollowRequests().UpdateRequestStatus(requestID,
			models.FollowRequestPending, models.FollowRequestAccepted); err != nil {
			return err
		}
		follow := &models.Follow{FollowerID: request.RequesterID, FollowingID: request.TargetID}
		if err := tx.Follows().CreateFollow(follow); err != nil && !errs.IsConflict(err) {
			// A Conflict means the edge already exists, e.g. the target
			// flipped public and the requester followed in the meantime.
			return err
		}
		return s.notifier.Emit(tx, request.RequesterID, models.NotificationRequestAccepted,
			models.NotificationData{By: actingUserID})
	})
}

// RejectRequest transitions a pending request to rejected. No Follow
// edge, no notification.
func (s *FollowService) RejectRequest(requestID, actingUserID uint) error {
	request, err := s.store.FollowRequests().GetRequestByID(requestID)
	if err != nil {
		return err
	}
	if request.TargetID != actingUserID {
		return errs.Forbidden("not authorized to handle this follow request")
	}
	if request.Status != models.FollowRequestPending {
		return errs.Conflict("follow request already handled")
	}

	return s.store.FollowRequests().UpdateRequestStatus(requestID,
		models.FollowRequestPending, models.FollowRequestRejected)
}

// Unfollow removes the follower->target edge.
func (s *FollowService) Unfollow(followerID, targetID uint) error {
	return s.store.Follows().DeleteFollow(followerID, targetID)
}

// PendingRequests lists the incoming pending requests for a target.
func (s *FollowService) PendingRequests(targetID uint) ([]models.FollowRequest, error) {
	return s.store.FollowRequests().GetPendingForTarget(targetID)
}
