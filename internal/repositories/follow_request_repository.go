package repositories

import (
	"github.com/circlet-app/backend/internal/errs"
	"github.com/circlet-app/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRequestRepository defines the interface for follow request data operations
type FollowRequestRepository interface {
	CreateRequest(req *models.FollowRequest) error
	GetRequestByID(id uint) (*models.FollowRequest, error)
	FindPendingRequest(requesterID, targetID uint) (*models.FollowRequest, error)
	GetPendingForTarget(targetID uint) ([]models.FollowRequest, error)
	// UpdateRequestStatus transitions a request from one status to
	// another. The from-status guard is part of the UPDATE itself, so
	// of two racing transitions exactly one wins; the loser gets a
	// conflict error.
	UpdateRequestStatus(id uint, from, to models.FollowRequestStatus) error
}

// PostgresFollowRequestRepository implements FollowRequestRepository for PostgreSQL
type PostgresFollowRequestRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRequestRepository creates a new PostgresFollowRequestRepository
func NewPostgresFollowRequestRepository(db *gorm.DB) *PostgresFollowRequestRepository {
	return &PostgresFollowRequestRepository{db: db}
}

func (r *PostgresFollowRequestRepository) CreateRequest(req *models.FollowRequest) error {
	if req.Status == "" {
		req.Status = models.FollowRequestPending
	}
	return translateError(r.db.Create(req).Error, "follow request not found")
}

func (r *PostgresFollowRequestRepository) GetRequestByID(id uint) (*models.FollowRequest, error) {
	var req models.FollowRequest
	if err := r.db.First(&req, id).Error; err != nil {
		return nil, translateError(err, "follow request not found")
	}
	return &req, nil
}

func (r *PostgresFollowRequestRepository) FindPendingRequest(requesterID, targetID uint) (*models.FollowRequest, error) {
	var req models.FollowRequest
	err := r.db.Where("requester_id = ? AND target_id = ? AND status = ?",
		requesterID, targetID, models.FollowRequestPending).First(&req).Error
	if err != nil {
		return nil, translateError(err, "follow request not found")
	}
	return &req, nil
}

func (r *PostgresFollowRequestRepository) GetPendingForTarget(targetID uint) ([]models.FollowRequest, error) {
	var requests []models.FollowRequest
	err := r.db.Where("target_id = ? AND status = ?", targetID, models.FollowRequestPending).
		Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *PostgresFollowRequestRepository) UpdateRequestStatus(id uint, from, to models.FollowRequestStatus) error {
	res := r.db.Model(&models.FollowRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.Conflict("follow request already handled")
	}
	return nil
}
