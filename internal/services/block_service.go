package services

import (
	"github.com/circlet-app/backend/internal/errs"
	"github.com/circlet-app/backend/internal/models"
	"github.com/circlet-app/backend/internal/repositories"
)

// BlockService manages the directed block edges between users.
type BlockService struct {
	store repositories.Store
}

// NewBlockService creates a new BlockService
func NewBlockService(store repositories.Store) *BlockService {
	return &BlockService{store: store}
}

// Block creates the blocker->target edge. Blocking the same user twice
// is a conflict; the opposite direction is an independent edge.
func (s *BlockService) Block(blockerID, targetID uint) error {
	if blockerID == targetID {
		return errs.InvalidArgument("cannot block yourself")
	}
	if _, err := s.store.Users().GetUserByID(targetID); err != nil {
		return err
	}

	err := s.store.Blocks().CreateBlock(&models.Block{BlockerID: blockerID, BlockedID: targetID})
	if errs.IsConflict(err) {
		return errs.Conflict("user already blocked")
	}
	return err
}

// Unblock removes the blocker->target edge.
func (s *BlockService) Unblock(blockerID, targetID uint) error {
	if blockerID == targetID {
		return errs.InvalidArgument("cannot unblock yourself")
	}
	return s.store.Blocks().DeleteBlock(blockerID, targetID)
}
