package repositories

import (
	"github.com/circlet-app/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPostsByAuthor(authorID uint, offset, limit int) ([]models.Post, int64, error)
	GetReplies(parentID uint) ([]models.Post, error)
	DeletePost(id uint) error
	// AddLikeCount shifts the cached like counter by delta. Callers must
	// only invoke it alongside the matching Like row mutation, in the
	// same transaction.
	AddLikeCount(postID uint, delta int) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return translateError(r.db.Create(post).Error, "post not found")
}

func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Media").First(&post, id).Error; err != nil {
		return nil, translateError(err, "post not found")
	}
	return &post, nil
}

func (r *PostgresPostRepository) GetPostsByAuthor(authorID uint, offset, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	if err := r.db.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Preload("Media").Where("author_id = ?", authorID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, total, err
}

// GetReplies enumerates direct replies by parent id; the reply thread
// is an adjacency query, not a traversed pointer structure.
func (r *PostgresPostRepository) GetReplies(parentID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Media").Where("parent_id = ?", parentID).
		Order("created_at ASC").Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) DeletePost(id uint) error {
	res := r.db.Select("Media").Delete(&models.Post{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "post not found")
	}
	return nil
}

func (r *PostgresPostRepository) AddLikeCount(postID uint, delta int) error {
	res := r.db.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "post not found")
	}
	return nil
}
