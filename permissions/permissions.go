// Package permissions holds the per-action authorization predicates. Reads on
// posts are public; everything else resolves against the caller identity
// carried in the request context.
package permissions

import "github.com/siay72/SnapBook/models"

// Caller is the identity resolved from a request's bearer token.
type Caller struct {
	UserID uint
	Email  string
	Admin  bool
}

// CanModifyPost allows updates and deletes by the post owner or an admin.
func CanModifyPost(c Caller, post *models.Post) bool {
	return c.UserID == post.UserID || c.Admin
}

// CanModifyComment allows updates and deletes by the comment author only.
// Admins get no special treatment here: non-authors are read-only.
func CanModifyComment(c Caller, comment *models.Comment) bool {
	return c.UserID == comment.UserID
}
