// Package serializers builds the wire representations of entities. Derived
// fields (owner email, like/unlike counts) are computed here from live
// associations rather than cached counters, and read-only fields never appear
// in request bindings.
package serializers

import (
	"time"

	"gorm.io/gorm"

	"github.com/siay72/SnapBook/models"
)

// PostResponse is the serialized form of a post, including the embedded
// comment list and live relation counts.
type PostResponse struct {
	ID           uint              `json:"id"`
	UserEmail    string            `json:"user_email"`
	Caption      string            `json:"caption"`
	Image        string            `json:"image"`
	VideoURL     string            `json:"video_url"`
	CreatedAt    time.Time         `json:"created_at"`
	TotalLikes   int64             `json:"total_likes"`
	TotalUnlikes int64             `json:"total_unlikes"`
	Comments     []CommentResponse `json:"comments"`
}

// SerializePost converts a post to its response form. The post must have its
// User and Comments (with comment users) preloaded; counts are read from the
// relation tables at call time.
func SerializePost(db *gorm.DB, post *models.Post) PostResponse {
	comments := make([]CommentResponse, 0, len(post.Comments))
	for i := range post.Comments {
		comments = append(comments, SerializeComment(&post.Comments[i]))
	}
	return PostResponse{
		ID:           post.ID,
		UserEmail:    post.User.Email,
		Caption:      post.Caption,
		Image:        post.Image,
		VideoURL:     post.VideoURL,
		CreatedAt:    post.CreatedAt,
		TotalLikes:   db.Model(post).Association("Likes").Count(),
		TotalUnlikes: db.Model(post).Association("Unlikes").Count(),
		Comments:     comments,
	}
}

// SerializePosts converts a page of posts.
func SerializePosts(db *gorm.DB, posts []models.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, SerializePost(db, &posts[i]))
	}
	return out
}
