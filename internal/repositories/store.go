package repositories

import (
	"errors"

	"github.com/circlet-app/backend/internal/errs"
	"gorm.io/gorm"
)

// Store aggregates the per-entity repositories behind one handle so a
// caller can run several writes in a single transaction scope.
type Store interface {
	Users() UserRepository
	Follows() FollowRepository
	FollowRequests() FollowRequestRepository
	Blocks() BlockRepository
	Likes() LikeRepository
	Posts() PostRepository
	Notifications() NotificationRepository

	// Transaction runs fn against a transaction-scoped Store. Any error
	// returned by fn rolls the whole transaction back; no partial effect
	// survives.
	Transaction(fn func(Store) error) error
}

// PostgresStore implements Store on top of a GORM connection.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore creates a new PostgresStore
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Users() UserRepository { return NewPostgresUserRepository(s.db) }

func (s *PostgresStore) Follows() FollowRepository { return NewPostgresFollowRepository(s.db) }

func (s *PostgresStore) FollowRequests() FollowRequestRepository {
	return NewPostgresFollowRequestRepository(s.db)
}

func (s *PostgresStore) Blocks() BlockRepository { return NewPostgresBlockRepository(s.db) }

func (s *PostgresStore) Likes() LikeRepository { return NewPostgresLikeRepository(s.db) }

func (s *PostgresStore) Posts() PostRepository { return NewPostgresPostRepository(s.db) }

func (s *PostgresStore) Notifications() NotificationRepository {
	return NewPostgresNotificationRepository(s.db)
}

func (s *PostgresStore) Transaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewPostgresStore(tx))
	})
}

// translateError maps GORM errors onto the store's error kinds so the
// services above never see driver-level sentinels. Relies on
// gorm.Config{TranslateError: true} for duplicate-key detection.
func translateError(err error, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NotFound("%s", notFoundMsg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.Conflict("duplicate row violates a uniqueness constraint")
	default:
		return err
	}
}
