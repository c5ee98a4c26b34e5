package policies

import (
	"github.com/circlet-app/backend/internal/errs"
	"github.com/circlet-app/backend/internal/repositories"
)

// Visibility answers who may view a user's profile or a post. The
// decisions are pure reads; callers decide how to surface a false
// answer (the transport maps it to forbidden, never to not-found).
type Visibility struct {
	store repositories.Store
}

// NewVisibility creates a new Visibility policy over the given store
func NewVisibility(store repositories.Store) *Visibility {
	return &Visibility{store: store}
}

// CanViewProfile determines whether a viewer can see a target user's profile.
// Rules, in order:
//  1. A user can always view their own profile.
//  2. A block in either direction hides the profile.
//  3. A public account is visible to everyone.
//  4. A private account is visible only to its direct followers.
//
// Returns a not-found error when the target does not exist, so callers
// never conflate "missing" and "hidden".
func (v *Visibility) CanViewProfile(viewerID, targetID uint) (bool, error) {
	if viewerID == targetID {
		return true, nil
	}

	target, err := v.store.Users().GetUserByID(targetID)
	if err != nil {
		return false, err
	}

	blocked, err := v.store.Blocks().ExistsBetween(viewerID, targetID)
	if err != nil {
		return false, err
	}
	if blocked {
		return false, nil
	}

	if !target.IsPrivate {
		return true, nil
	}

	return v.store.Follows().IsFollowing(viewerID, targetID)
}

// CanViewPost determines whether a viewer can see a post. The check is
// author-centric: replies inherit the same rule as the author's
// top-level posts.
//  1. An author always sees their own posts.
//  2. If the author has blocked the viewer, the post is hidden.
//  3. Posts of public accounts are visible.
//  4. Posts of private accounts are visible only to followers.
func (v *Visibility) CanViewPost(viewerID, postID uint) (bool, error) {
	post, err := v.store.Posts().GetPostByID(postID)
	if err != nil {
		return false, err
	}
	return v.canViewAuthoredBy(viewerID, post.AuthorID)
}

// CanViewPostOf applies the post rule when the caller already resolved
// the post, e.g. while filtering a reply listing.
func (v *Visibility) CanViewPostOf(viewerID, authorID uint) (bool, error) {
	return v.canViewAuthoredBy(viewerID, authorID)
}

func (v *Visibility) canViewAuthoredBy(viewerID, authorID uint) (bool, error) {
	if viewerID == authorID {
		return true, nil
	}

	author, err := v.store.Users().GetUserByID(authorID)
	if err != nil {
		if errs.IsNotFound(err) {
			return false, errs.NotFound("post author not found")
		}
		return false, err
	}

	// Post visibility only checks the author->viewer block direction;
	// a viewer who blocked the author simply will not ask for the feed.
	_, err = v.store.Blocks().FindBlock(authorID, viewerID)
	if err == nil {
		return false, nil
	}
	if !errs.IsNotFound(err) {
		return false, err
	}

	if !author.IsPrivate {
		return true, nil
	}

	return v.store.Follows().IsFollowing(viewerID, authorID)
}
