package repositories

import (
	"github.com/circlet-app/backend/internal/models"
	"gorm.io/gorm"
)

// BlockRepository defines the interface for block data operations
type BlockRepository interface {
	CreateBlock(block *models.Block) error
	DeleteBlock(blockerID, blockedID uint) error
	FindBlock(blockerID, blockedID uint) (*models.Block, error)
	// ExistsBetween reports whether a block edge exists in either
	// direction between the two users.
	ExistsBetween(userA, userB uint) (bool, error)
}

// PostgresBlockRepository implements BlockRepository for PostgreSQL
type PostgresBlockRepository struct {
	db *gorm.DB
}

// NewPostgresBlockRepository creates a new PostgresBlockRepository
func NewPostgresBlockRepository(db *gorm.DB) *PostgresBlockRepository {
	return &PostgresBlockRepository{db: db}
}

func (r *PostgresBlockRepository) CreateBlock(block *models.Block) error {
	return translateError(r.db.Create(block).Error, "block not found")
}

func (r *PostgresBlockRepository) DeleteBlock(blockerID, blockedID uint) error {
	res := r.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).Delete(&models.Block{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "block not found")
	}
	return nil
}

func (r *PostgresBlockRepository) FindBlock(blockerID, blockedID uint) (*models.Block, error) {
	var block models.Block
	if err := r.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).First(&block).Error; err != nil {
		return nil, translateError(err, "block not found")
	}
	return &block, nil
}

func (r *PostgresBlockRepository) ExistsBetween(userA, userB uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
