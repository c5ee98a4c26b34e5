package services

import (
	"github.com/circlet-app/backend/internal/errs"
	"github.com/circlet-app/backend/internal/models"
	"github.com/circlet-app/backend/internal/repositories"
)

// ToggleResult reports the like state after a toggle.
type ToggleResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// LikeService owns the like toggle and the cached like counter. The
// counter is mutated only here, only by +-1, and only in the same
// transaction as the matching Like row, so it always equals the number
// of Like rows for the post.
type LikeService struct {
	store    repositories.Store
	notifier *Notifier
}

// NewLikeService creates a new LikeService
func NewLikeService(store repositories.Store, notifier *Notifier) *LikeService {
	return &LikeService{store: store, notifier: notifier}
}

// Toggle likes the post if the user has not liked it, unlikes it
// otherwise. Liking someone else's post notifies the author.
func (s *LikeService) Toggle(userID, postID uint) (ToggleResult, error) {
	post, err := s.store.Posts().GetPostByID(postID)
	if err != nil {
		return ToggleResult{}, err
	}

	var result ToggleResult
	err = s.store.Transaction(func(tx repositories.Store) error {
		_, err := tx.Likes().FindLike(userID, postID)
		switch {
		case err == nil:
			if err := tx.Likes().DeleteLike(userID, postID); err != nil {
				return err
			}
			if err := tx.Posts().AddLikeCount(postID, -1); err != nil {
				return err
			}
			updated, err := tx.Posts().GetPostByID(postID)
			if err != nil {
				return err
			}
			result = ToggleResult{Liked: false, LikeCount: updated.LikeCount}
			return nil
		case errs.IsNotFound(err):
			if err := tx.Likes().CreateLike(&models.Like{UserID: userID, PostID: postID}); err != nil {
				return err
			}
			if err := tx.Posts().AddLikeCount(postID, 1); err != nil {
				return err
			}
			if post.AuthorID != userID {
				if err := s.notifier.Emit(tx, post.AuthorID, models.NotificationPostLiked,
					models.NotificationData{By: userID, PostID: postID}); err != nil {
					return err
				}
			}
			updated, err := tx.Posts().GetPostByID(postID)
			if err != nil {
				return err
			}
			result = ToggleResult{Liked: true, LikeCount: updated.LikeCount}
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return ToggleResult{}, err
	}
	return result, nil
}

// Count returns the cached like counter for a post.
func (s *LikeService) Count(postID uint) (int, error) {
	post, err := s.store.Posts().GetPostByID(postID)
	if err != nil {
		return 0, err
	}
	return post.LikeCount, nil
}
