package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/siay72/SnapBook/models"
	"github.com/siay72/SnapBook/permissions"
	"github.com/siay72/SnapBook/serializers"
	"github.com/siay72/SnapBook/utils"
)

// CommentController manages comments scoped to a parent post. The route
// carries the parent id; comments of other posts are never visible. With
// ownerOnly set the parent post itself must belong to the caller.
type CommentController struct {
	db        *gorm.DB
	ownerOnly bool
}

// NewCommentController creates the controller for /posts/:id/comments.
func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{db: db}
}

// NewMyCommentController creates the controller for /my-posts/:id/comments.
func NewMyCommentController(db *gorm.DB) *CommentController {
	return &CommentController{db: db, ownerOnly: true}
}

// parentPost loads the post named by the route within the caller's visible
// queryset.
func (c *CommentController) parentPost(ctx *gin.Context) (*models.Post, error) {
	query := c.db
	if c.ownerOnly {
		uid, _ := getUserID(ctx)
		query = query.Where("posts.user_id = ?", uid)
	}
	var post models.Post
	if err := query.First(&post, "posts.id = ?", ctx.Param("id")).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListComments returns the comments belonging to the parent post.
func (c *CommentController) ListComments(ctx *gin.Context) {
	post, err := c.parentPost(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		} else {
			utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load post")
		}
		return
	}

	var comments []models.Comment
	err = c.db.Where("post_id = ?", post.ID).
		Preload("User").
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to list comments")
		return
	}

	items := make([]serializers.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, serializers.SerializeComment(&comments[i]))
	}
	utils.Success(ctx, gin.H{"items": items})
}

// GetComment returns one comment of the parent post.
func (c *CommentController) GetComment(ctx *gin.Context) {
	comment, ok := c.fetchComment(ctx)
	if !ok {
		return
	}
	utils.Success(ctx, gin.H{"comment": serializers.SerializeComment(comment)})
}

// CreateComment attaches a comment to the parent post. Author and post come
// from the request context; client-supplied values for them are ignored.
func (c *CommentController) CreateComment(ctx *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40004, "invalid request payload")
		return
	}

	text := utils.Sanitize(strings.TrimSpace(req.Text))
	if text == "" {
		utils.Error(ctx, http.StatusBadRequest, 40005, "text cannot be empty")
		return
	}

	post, err := c.parentPost(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// referencing a missing parent is a validation failure, not a 404
			utils.Error(ctx, http.StatusBadRequest, 40006, "post does not exist")
		} else {
			utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to load post")
		}
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	comment := models.Comment{
		PostID: post.ID,
		UserID: userID,
		Text:   text,
	}
	if err := c.db.Create(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50044, "failed to create comment")
		return
	}
	if err := c.db.Preload("User").First(&comment, comment.ID).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50045, "failed to load comment")
		return
	}

	utils.Success(ctx, gin.H{"comment": serializers.SerializeComment(&comment)})
}

// UpdateComment lets the author edit the text. Non-authors are read-only.
func (c *CommentController) UpdateComment(ctx *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40004, "invalid request payload")
		return
	}

	comment, ok := c.fetchComment(ctx)
	if !ok {
		return
	}

	cl, ok := caller(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	if !permissions.CanModifyComment(cl, comment) {
		utils.Error(ctx, http.StatusForbidden, 40303, "you can only edit your own comments")
		return
	}

	text := utils.Sanitize(strings.TrimSpace(req.Text))
	if text == "" {
		utils.Error(ctx, http.StatusBadRequest, 40005, "text cannot be empty")
		return
	}
	comment.Text = text

	if err := c.db.Save(comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50046, "failed to update comment")
		return
	}

	utils.Success(ctx, gin.H{"comment": serializers.SerializeComment(comment)})
}

// DeleteComment lets the author delete their comment.
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	comment, ok := c.fetchComment(ctx)
	if !ok {
		return
	}

	cl, ok := caller(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	if !permissions.CanModifyComment(cl, comment) {
		utils.Error(ctx, http.StatusForbidden, 40304, "you can only delete your own comments")
		return
	}

	if err := c.db.Delete(comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50047, "failed to delete comment")
		return
	}

	utils.Success(ctx, gin.H{"message": "comment deleted"})
}

// fetchComment loads a comment of the parent post, answering 404 when either
// the post or the comment is outside the caller's visible queryset.
func (c *CommentController) fetchComment(ctx *gin.Context) (*models.Comment, bool) {
	post, err := c.parentPost(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		} else {
			utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load post")
		}
		return nil, false
	}

	var comment models.Comment
	err = c.db.Where("post_id = ?", post.ID).
		Preload("User").
		First(&comment, "comments.id = ?", ctx.Param("commentId")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40402, "comment not found")
		} else {
			utils.Error(ctx, http.StatusInternalServerError, 50048, "failed to load comment")
		}
		return nil, false
	}
	return &comment, true
}
