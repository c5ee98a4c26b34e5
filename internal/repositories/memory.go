package repositories

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/circlet-app/backend/internal/errs"
	"github.com/circlet-app/backend/internal/models"
)

// MemoryStore is an in-memory Store with the same invariant behavior
// as the Postgres implementation: pair uniqueness surfaces as a
// Conflict error and Transaction rolls back every effect on failure.
// It backs the test suites and local experimentation without a
// database.
type MemoryStore struct {
	mu   sync.Mutex
	data *memoryData
	// inTx marks a transaction-scoped handle; such handles share the
	// parent's data and must not re-acquire the parent's lock.
	inTx bool
}

type memoryData struct {
	users         map[uint]models.User
	follows       map[uint]models.Follow
	requests      map[uint]models.FollowRequest
	blocks        map[uint]models.Block
	likes         map[uint]models.Like
	posts         map[uint]models.Post
	notifications map[uint]models.Notification
	nextID        uint
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: &memoryData{
		users:         make(map[uint]models.User),
		follows:       make(map[uint]models.Follow),
		requests:      make(map[uint]models.FollowRequest),
		blocks:        make(map[uint]models.Block),
		likes:         make(map[uint]models.Like),
		posts:         make(map[uint]models.Post),
		notifications: make(map[uint]models.Notification),
	}}
}

func (s *MemoryStore) Users() UserRepository                   { return s }
func (s *MemoryStore) Follows() FollowRepository               { return s }
func (s *MemoryStore) FollowRequests() FollowRequestRepository { return s }
func (s *MemoryStore) Blocks() BlockRepository                 { return s }
func (s *MemoryStore) Likes() LikeRepository                   { return s }
func (s *MemoryStore) Posts() PostRepository                   { return s }
func (s *MemoryStore) Notifications() NotificationRepository   { return s }

func (s *MemoryStore) Transaction(fn func(Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.data.clone()
	if err := fn(&MemoryStore{data: s.data, inTx: true}); err != nil {
		*s.data = *snapshot
		return err
	}
	return nil
}

// locked runs fn under the store lock unless already inside a
// transaction, which holds the lock for its whole scope.
func (s *MemoryStore) locked(fn func(d *memoryData) error) error {
	if !s.inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.data)
}

func (d *memoryData) clone() *memoryData {
	c := &memoryData{
		users:         make(map[uint]models.User, len(d.users)),
		follows:       make(map[uint]models.Follow, len(d.follows)),
		requests:      make(map[uint]models.FollowRequest, len(d.requests)),
		blocks:        make(map[uint]models.Block, len(d.blocks)),
		likes:         make(map[uint]models.Like, len(d.likes)),
		posts:         make(map[uint]models.Post, len(d.posts)),
		notifications: make(map[uint]models.Notification, len(d.notifications)),
		nextID:        d.nextID,
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.follows {
		c.follows[k] = v
	}
	for k, v := range d.requests {
		c.requests[k] = v
	}
	for k, v := range d.blocks {
		c.blocks[k] = v
	}
	for k, v := range d.likes {
		c.likes[k] = v
	}
	for k, v := range d.posts {
		v.Media = append([]models.Media(nil), v.Media...)
		c.posts[k] = v
	}
	for k, v := range d.notifications {
		c.notifications[k] = v
	}
	return c
}

func (d *memoryData) allocID() uint {
	d.nextID++
	return d.nextID
}

// --- UserRepository ---

func (s *MemoryStore) CreateUser(user *models.User) error {
	return s.locked(func(d *memoryData) error {
		for _, u := range d.users {
			if u.Username == user.Username || u.Email == user.Email {
				return errs.Conflict("duplicate row violates a uniqueness constraint")
			}
		}
		user.ID = d.allocID()
		user.CreatedAt = time.Now()
		user.UpdatedAt = user.CreatedAt
		d.users[user.ID] = *user
		return nil
	})
}

func (s *MemoryStore) GetUserByID(id uint) (*models.User, error) {
	var out *models.User
	err := s.locked(func(d *memoryData) error {
		u, ok := d.users[id]
		if !ok {
			return errs.NotFound("user not found")
		}
		out = &u
		return nil
	})
	return out, err
}

func (s *MemoryStore) GetUserByUsername(username string) (*models.User, error) {
	var out *models.User
	err := s.locked(func(d *memoryData) error {
		for _, u := range d.users {
			if u.Username == username {
				out = &u
				return nil
			}
		}
		return errs.NotFound("user not found")
	})
	return out, err
}

func (s *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	var out *models.User
	err := s.locked(func(d *memoryData) error {
		for _, u := range d.users {
			if u.Email == email {
				out = &u
				return nil
			}
		}
		return errs.NotFound("user not found")
	})
	return out, err
}

func (s *MemoryStore) UpdateUser(user *models.User) error {
	return s.locked(func(d *memoryData) error {
		if _, ok := d.users[user.ID]; !ok {
			return errs.NotFound("user not found")
		}
		user.UpdatedAt = time.Now()
		d.users[user.ID] = *user
		return nil
	})
}

func (s *MemoryStore) SearchUsers(query string, offset, limit int) ([]models.User, int64, error) {
	var users []models.User
	err := s.locked(func(d *memoryData) error {
		for _, u := range d.users {
			if strings.Contains(strings.ToLower(u.Username), strings.ToLower(query)) {
				users = append(users, u)
			}
		}
		sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(users))
	return paginate(users, offset, limit), total, nil
}

// --- FollowRepository ---

func (s *MemoryStore) CreateFollow(follow *models.Follow) error {
	return s.locked(func(d *memoryData) error {
		for _, f := range d.follows {
			if f.FollowerID == follow.FollowerID && f.FollowingID == follow.FollowingID {
				return errs.Conflict("duplicate row violates a uniqueness constraint")
			}
		}
		follow.ID = d.allocID()
		follow.CreatedAt = time.Now()
		d.follows[follow.ID] = *follow
		return nil
	})
}

func (s *MemoryStore) DeleteFollow(followerID, followingID uint) error {
	return s.locked(func(d *memoryData) error {
		for id, f := range d.follows {
			if f.FollowerID == followerID && f.FollowingID == followingID {
				delete(d.follows, id)
				return nil
			}
		}
		return errs.NotFound("follow relationship not found")
	})
}

func (s *MemoryStore) FindFollow(followerID, followingID uint) (*models.Follow, error) {
	var out *models.Follow
	err := s.locked(func(d *memoryData) error {
		for _, f := range d.follows {
			if f.FollowerID == followerID && f.FollowingID == followingID {
				cp := f
				out = &cp
				return nil
			}
		}
		return errs.NotFound("follow relationship not found")
	})
	return out, err
}

func (s *MemoryStore) IsFollowing(followerID, followingID uint) (bool, error) {
	_, err := s.FindFollow(followerID, followingID)
	if errs.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *MemoryStore) GetFollowers(userID uint) ([]models.User, error) {
	var users []models.User
	err := s.locked(func(d *memoryData) error {
		for _, f := range d.follows {
			if f.FollowingID == userID {
				if u, ok := d.users[f.FollowerID]; ok {
					users = append(users, u)
				}
			}
		}
		sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
		return nil
	})
	return users, err
}

func (s *MemoryStore) GetFollowing(userID uint) ([]models.User, error) {
	var users []models.User
	err := s.locked(func(d *memoryData) error {
		for _, f := range d.follows {
			if f.FollowerID == userID {
				if u, ok := d.users[f.FollowingID]; ok {
					users = append(users, u)
				}
			}
		}
		sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
		return nil
	})
	return users, err
}

// --- FollowRequestRepository ---

func (s *MemoryStore) CreateRequest(req *models.FollowRequest) error {
	return s.locked(func(d *memoryData) error {
		if req.Status == "" {
			req.Status = models.FollowRequestPending
		}
		for _, r := range d.requests {
			if r.RequesterID == req.RequesterID && r.TargetID == req.TargetID && r.Status == models.FollowRequestPending && req.Status == models.FollowRequestPending {
				return errs.Conflict("duplicate row violates a uniqueness constraint")
			}
		}
		req.ID = d.allocID()
		req.CreatedAt = time.Now()
		req.UpdatedAt = req.CreatedAt
		d.requests[req.ID] = *req
		return nil
	})
}

func (s *MemoryStore) GetRequestByID(id uint) (*models.FollowRequest, error) {
	var out *models.FollowRequest
	err := s.locked(func(d *memoryData) error {
		r, ok := d.requests[id]
		if !ok {
			return errs.NotFound("follow request not found")
		}
		out = &r
		return nil
	})
	return out, err
}

func (s *MemoryStore) FindPendingRequest(requesterID, targetID uint) (*models.FollowRequest, error) {
	var out *models.FollowRequest
	err := s.locked(func(d *memoryData) error {
		for _, r := range d.requests {
			if r.RequesterID == requesterID && r.TargetID == targetID && r.Status == models.FollowRequestPending {
				cp := r
				out = &cp
				return nil
			}
		}
		return errs.NotFound("follow request not found")
	})
	return out, err
}

func (s *MemoryStore) GetPendingForTarget(targetID uint) ([]models.FollowRequest, error) {
	var requests []models.FollowRequest
	err := s.locked(func(d *memoryData) error {
		for _, r := range d.requests {
			if r.TargetID == targetID && r.Status == models.FollowRequestPending {
				requests = append(requests, r)
			}
		}
		sort.Slice(requests, func(i, j int) bool { return requests[i].ID > requests[j].ID })
		return nil
	})
	return requests, err
}

func (s *MemoryStore) UpdateRequestStatus(id uint, from, to models.FollowRequestStatus) error {
	return s.locked(func(d *memoryData) error {
		r, ok := d.requests[id]
		if !ok {
			return errs.NotFound("follow request not found")
		}
		if r.Status != from {
			return errs.Conflict("follow request already handled")
		}
		r.Status = to
		r.UpdatedAt = time.Now()
		d.requests[id] = r
		return nil
	})
}

// --- BlockRepository ---

func (s *MemoryStore) CreateBlock(block *models.Block) error {
	return s.locked(func(d *memoryData) error {
		for _, b := range d.blocks {
			if b.BlockerID == block.BlockerID && b.BlockedID == block.BlockedID {
				return errs.Conflict("duplicate row violates a uniqueness constraint")
			}
		}
		block.ID = d.allocID()
		block.CreatedAt = time.Now()
		d.blocks[block.ID] = *block
		return nil
	})
}

func (s *MemoryStore) DeleteBlock(blockerID, blockedID uint) error {
	return s.locked(func(d *memoryData) error {
		for id, b := range d.blocks {
			if b.BlockerID == blockerID && b.BlockedID == blockedID {
				delete(d.blocks, id)
				return nil
			}
		}
		return errs.NotFound("block not found")
	})
}

func (s *MemoryStore) FindBlock(blockerID, blockedID uint) (*models.Block, error) {
	var out *models.Block
	err := s.locked(func(d *memoryData) error {
		for _, b := range d.blocks {
			if b.BlockerID == blockerID && b.BlockedID == blockedID {
				cp := b
				out = &cp
				return nil
			}
		}
		return errs.NotFound("block not found")
	})
	return out, err
}

func (s *MemoryStore) ExistsBetween(userA, userB uint) (bool, error) {
	var exists bool
	err := s.locked(func(d *memoryData) error {
		for _, b := range d.blocks {
			if (b.BlockerID == userA && b.BlockedID == userB) || (b.BlockerID == userB && b.BlockedID == userA) {
				exists = true
				return nil
			}
		}
		return nil
	})
	return exists, err
}

// --- LikeRepository ---

func (s *MemoryStore) CreateLike(like *models.Like) error {
	return s.locked(func(d *memoryData) error {
		for _, l := range d.likes {
			if l.UserID == like.UserID && l.PostID == like.PostID {
				return errs.Conflict("duplicate row violates a uniqueness constraint")
			}
		}
		like.ID = d.allocID()
		like.CreatedAt = time.Now()
		d.likes[like.ID] = *like
		return nil
	})
}

func (s *MemoryStore) DeleteLike(userID, postID uint) error {
	return s.locked(func(d *memoryData) error {
		for id, l := range d.likes {
			if l.UserID == userID && l.PostID == postID {
				delete(d.likes, id)
				return nil
			}
		}
		return errs.NotFound("like not found")
	})
}

func (s *MemoryStore) FindLike(userID, postID uint) (*models.Like, error) {
	var out *models.Like
	err := s.locked(func(d *memoryData) error {
		for _, l := range d.likes {
			if l.UserID == userID && l.PostID == postID {
				cp := l
				out = &cp
				return nil
			}
		}
		return errs.NotFound("like not found")
	})
	return out, err
}

func (s *MemoryStore) CountByPostID(postID uint) (int64, error) {
	var count int64
	err := s.locked(func(d *memoryData) error {
		for _, l := range d.likes {
			if l.PostID == postID {
				count++
			}
		}
		return nil
	})
	return count, err
}

// --- PostRepository ---

func (s *MemoryStore) CreatePost(post *models.Post) error {
	return s.locked(func(d *memoryData) error {
		post.ID = d.allocID()
		post.CreatedAt = time.Now()
		post.UpdatedAt = post.CreatedAt
		for i := range post.Media {
			post.Media[i].ID = d.allocID()
			post.Media[i].PostID = post.ID
			post.Media[i].CreatedAt = post.CreatedAt
		}
		cp := *post
		cp.Media = append([]models.Media(nil), post.Media...)
		d.posts[post.ID] = cp
		return nil
	})
}

func (s *MemoryStore) GetPostByID(id uint) (*models.Post, error) {
	var out *models.Post
	err := s.locked(func(d *memoryData) error {
		p, ok := d.posts[id]
		if !ok {
			return errs.NotFound("post not found")
		}
		p.Media = append([]models.Media(nil), p.Media...)
		out = &p
		return nil
	})
	return out, err
}

func (s *MemoryStore) GetPostsByAuthor(authorID uint, offset, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	err := s.locked(func(d *memoryData) error {
		for _, p := range d.posts {
			if p.AuthorID == authorID {
				posts = append(posts, p)
			}
		}
		sort.Slice(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(posts))
	return paginate(posts, offset, limit), total, nil
}

func (s *MemoryStore) GetReplies(parentID uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.locked(func(d *memoryData) error {
		for _, p := range d.posts {
			if p.ParentID != nil && *p.ParentID == parentID {
				posts = append(posts, p)
			}
		}
		sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
		return nil
	})
	return posts, err
}

func (s *MemoryStore) DeletePost(id uint) error {
	return s.locked(func(d *memoryData) error {
		if _, ok := d.posts[id]; !ok {
			return errs.NotFound("post not found")
		}
		delete(d.posts, id)
		return nil
	})
}

func (s *MemoryStore) AddLikeCount(postID uint, delta int) error {
	return s.locked(func(d *memoryData) error {
		p, ok := d.posts[postID]
		if !ok {
			return errs.NotFound("post not found")
		}
		p.LikeCount += delta
		d.posts[postID] = p
		return nil
	})
}

// --- NotificationRepository ---

func (s *MemoryStore) CreateNotification(notification *models.Notification) error {
	return s.locked(func(d *memoryData) error {
		notification.ID = d.allocID()
		notification.CreatedAt = time.Now()
		d.notifications[notification.ID] = *notification
		return nil
	})
}

func (s *MemoryStore) GetNotificationByID(id uint) (*models.Notification, error) {
	var out *models.Notification
	err := s.locked(func(d *memoryData) error {
		n, ok := d.notifications[id]
		if !ok {
			return errs.NotFound("notification not found")
		}
		out = &n
		return nil
	})
	return out, err
}

func (s *MemoryStore) GetByRecipientID(recipientID uint, readFilter *bool, offset, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	err := s.locked(func(d *memoryData) error {
		for _, n := range d.notifications {
			if n.RecipientID != recipientID {
				continue
			}
			if readFilter != nil && n.Read != *readFilter {
				continue
			}
			notifications = append(notifications, n)
		}
		sort.Slice(notifications, func(i, j int) bool { return notifications[i].ID > notifications[j].ID })
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(notifications))
	return paginate(notifications, offset, limit), total, nil
}

func (s *MemoryStore) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := s.locked(func(d *memoryData) error {
		for _, n := range d.notifications {
			if n.RecipientID == recipientID && !n.Read {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (s *MemoryStore) MarkAsRead(id uint) error {
	return s.locked(func(d *memoryData) error {
		n, ok := d.notifications[id]
		if !ok {
			return errs.NotFound("notification not found")
		}
		n.Read = true
		d.notifications[id] = n
		return nil
	})
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
