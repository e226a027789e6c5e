// ABOUTME: Optimistic mutation model for likes, comments, and deletes
// ABOUTME: Pure reducer plus explicit inverse applied only on remote failure

package optimistic

import "time"

// LikeState is the client-local projection of a session's like status.
// It is derived, never authoritative; the server's last confirmed value
// overwrites it on success and the inverse restores it on failure.
type LikeState struct {
	Liked bool
	Count int
}

// Comment is a client-side comment entry, ordered per session.
type Comment struct {
	ID        string
	UID       string
	Author    string
	Text      string
	CreatedAt time.Time
}

// Projection holds all client-local social state keyed by session id.
type Projection struct {
	Likes    map[string]LikeState
	Comments map[string][]Comment
}

// NewProjection returns an empty projection.
func NewProjection() Projection {
	return Projection{
		Likes:    map[string]LikeState{},
		Comments: map[string][]Comment{},
	}
}

// Action is a mutation intent applied to a projection.
type Action interface {
	isAction()
}

// ToggleLike flips the liked flag and moves the count by exactly one.
type ToggleLike struct {
	SessionID string
}

// AddComment appends a comment to a session's ordered list.
type AddComment struct {
	SessionID string
	Comment   Comment
}

// RemoveComment removes a comment by id. Used as the inverse of
// AddComment when the remote call fails.
type RemoveComment struct {
	SessionID string
	CommentID string
}

// DeleteSession removes the session's like and comment entries in one
// step so no orphaned keys remain. It has no inverse: callers apply it
// only after the server confirms the delete.
type DeleteSession struct {
	SessionID string
}

func (ToggleLike) isAction()    {}
func (AddComment) isAction()    {}
func (RemoveComment) isAction() {}
func (DeleteSession) isAction() {}

// Apply is the pure state transition. The input projection is not
// mutated; affected entries are copied.
func Apply(p Projection, a Action) Projection {
	switch a := a.(type) {
	case ToggleLike:
		next := cloneLikes(p)
		ls := next.Likes[a.SessionID]
		if ls.Liked {
			ls.Liked = false
			ls.Count--
		} else {
			ls.Liked = true
			ls.Count++
		}
		next.Likes[a.SessionID] = ls
		return next

	case AddComment:
		next := cloneComments(p)
		next.Comments[a.SessionID] = append(append([]Comment{}, p.Comments[a.SessionID]...), a.Comment)
		return next

	case RemoveComment:
		next := cloneComments(p)
		kept := make([]Comment, 0, len(p.Comments[a.SessionID]))
		for _, c := range p.Comments[a.SessionID] {
			if c.ID != a.CommentID {
				kept = append(kept, c)
			}
		}
		next.Comments[a.SessionID] = kept
		return next

	case DeleteSession:
		next := Projection{
			Likes:    make(map[string]LikeState, len(p.Likes)),
			Comments: make(map[string][]Comment, len(p.Comments)),
		}
		for k, v := range p.Likes {
			if k != a.SessionID {
				next.Likes[k] = v
			}
		}
		for k, v := range p.Comments {
			if k != a.SessionID {
				next.Comments[k] = v
			}
		}
		return next
	}
	return p
}

// Inverse returns the compensating action for a, or false when the
// action is not reversible (deletes are confirm-then-apply).
func Inverse(a Action) (Action, bool) {
	switch a := a.(type) {
	case ToggleLike:
		return a, true
	case AddComment:
		return RemoveComment{SessionID: a.SessionID, CommentID: a.Comment.ID}, true
	}
	return nil, false
}

func cloneLikes(p Projection) Projection {
	next := p
	next.Likes = make(map[string]LikeState, len(p.Likes)+1)
	for k, v := range p.Likes {
		next.Likes[k] = v
	}
	return next
}

func cloneComments(p Projection) Projection {
	next := p
	next.Comments = make(map[string][]Comment, len(p.Comments)+1)
	for k, v := range p.Comments {
		next.Comments[k] = v
	}
	return next
}

// Controller owns a projection and serializes read-modify-write
// updates against the latest in-memory value, so a second mutation on
// the same session builds on the first's optimistic result rather than
// a stale snapshot.
type Controller struct {
	proj Projection
}

// NewController returns a controller with an empty projection.
func NewController() *Controller {
	return &Controller{proj: NewProjection()}
}

// Projection returns the current projection.
func (c *Controller) Projection() Projection {
	return c.proj
}

// Like returns the current like projection for a session.
func (c *Controller) Like(sessionID string) LikeState {
	return c.proj.Likes[sessionID]
}

// Comments returns the current ordered comment list for a session.
func (c *Controller) Comments(sessionID string) []Comment {
	return c.proj.Comments[sessionID]
}

// Apply runs an action against the latest projection.
func (c *Controller) Apply(a Action) {
	c.proj = Apply(c.proj, a)
}

// Rollback applies the inverse of a failed action. Returns false when
// the action has no inverse.
func (c *Controller) Rollback(a Action) bool {
	inv, ok := Inverse(a)
	if !ok {
		return false
	}
	c.proj = Apply(c.proj, inv)
	return true
}

// SeedLike installs a server-reported like state, typically when a
// feed page loads.
func (c *Controller) SeedLike(sessionID string, liked bool, count int) {
	next := cloneLikes(c.proj)
	next.Likes[sessionID] = LikeState{Liked: liked, Count: count}
	c.proj = next
}

// ConfirmLike overwrites the optimistic projection with the server's
// authoritative value. Using the reported count rather than the local
// increment avoids drift when a concurrent like landed elsewhere.
func (c *Controller) ConfirmLike(sessionID string, liked bool, count int) {
	c.SeedLike(sessionID, liked, count)
}

// SeedComments installs a server-reported comment list.
func (c *Controller) SeedComments(sessionID string, comments []Comment) {
	next := cloneComments(c.proj)
	next.Comments[sessionID] = append([]Comment{}, comments...)
	c.proj = next
}

// ConfirmComment swaps the optimistic placeholder for the
// server-created comment, preserving order.
func (c *Controller) ConfirmComment(sessionID, placeholderID string, confirmed Comment) {
	next := cloneComments(c.proj)
	list := append([]Comment{}, c.proj.Comments[sessionID]...)
	for i, cm := range list {
		if cm.ID == placeholderID {
			list[i] = confirmed
			break
		}
	}
	next.Comments[sessionID] = list
	c.proj = next
}
