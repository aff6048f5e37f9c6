package serializers

import (
	"time"

	"github.com/siay72/SnapBook/models"
)

// CommentResponse is the serialized form of a comment. The author email is
// derived from the user relation and cannot be set by clients.
type CommentResponse struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	UserEmail string    `json:"user_email"`
	CreatedAt time.Time `json:"created_at"`
}

// SerializeComment converts a comment whose User relation is preloaded.
func SerializeComment(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Text:      c.Text,
		UserEmail: c.User.Email,
		CreatedAt: c.CreatedAt,
	}
}
