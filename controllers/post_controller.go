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

// PostController manages CRUD and like/unlike operations for posts. With
// ownerOnly set, every queryset is restricted to the caller's own posts, so a
// foreign post id falls outside the visible set and answers not-found.
type PostController struct {
	db        *gorm.DB
	ownerOnly bool
}

// NewPostController creates the controller backing the public /posts routes.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

// NewMyPostController creates the controller backing the /my-posts routes.
func NewMyPostController(db *gorm.DB) *PostController {
	return &PostController{db: db, ownerOnly: true}
}

// scope returns the base post queryset for this request.
func (p *PostController) scope(ctx *gin.Context) *gorm.DB {
	if !p.ownerOnly {
		return p.db
	}
	uid, _ := getUserID(ctx)
	return p.db.Where("posts.user_id = ?", uid)
}

// fetchPost loads one post from the caller's visible queryset with its
// relations preloaded.
func (p *PostController) fetchPost(ctx *gin.Context, id string) (*models.Post, bool) {
	var post models.Post
	err := p.scope(ctx).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.created_at ASC") }).
		Preload("Comments.User").
		First(&post, "posts.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		} else {
			utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to load post")
		}
		return nil, false
	}
	return &post, true
}

// ListPosts returns posts newest-first, optionally filtered by a search term
// matched against the caption or the owner's email, paginated.
func (p *PostController) ListPosts(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	search := strings.TrimSpace(ctx.Query("search"))

	query := p.scope(ctx).Model(&models.Post{}).Order("posts.created_at DESC")
	if search != "" {
		pattern := "%" + search + "%"
		query = query.
			Joins("JOIN users ON users.id = posts.user_id").
			Where("posts.caption LIKE ? OR users.email LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to count posts")
		return
	}

	var posts []models.Post
	err := query.
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.created_at ASC") }).
		Preload("Comments.User").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to list posts")
		return
	}

	utils.Success(ctx, gin.H{
		"items":      serializers.SerializePosts(p.db, posts),
		"pagination": paginationPayload(page, pageSize, total),
	})
}

// GetPost returns a single post with comments and like/unlike counts.
func (p *PostController) GetPost(ctx *gin.Context) {
	post, ok := p.fetchPost(ctx, ctx.Param("id"))
	if !ok {
		return
	}
	utils.Success(ctx, gin.H{"post": serializers.SerializePost(p.db, post)})
}

// CreatePost creates a post owned by the authenticated caller. Caption, image
// and video URL are each optional but at least one must be supplied.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Caption  string `json:"caption"`
		Image    string `json:"image"`
		VideoURL string `json:"video_url" binding:"omitempty,url"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	post := models.Post{
		UserID:   userID,
		Caption:  utils.Sanitize(strings.TrimSpace(req.Caption)),
		Image:    strings.TrimSpace(req.Image),
		VideoURL: strings.TrimSpace(req.VideoURL),
	}
	if !post.HasContent() {
		utils.Error(ctx, http.StatusBadRequest, 40002, "post needs a caption, image or video url")
		return
	}

	if err := p.db.Create(&post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to create post")
		return
	}
	if err := p.db.Preload("User").First(&post, post.ID).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to load post")
		return
	}

	utils.Success(ctx, gin.H{"post": serializers.SerializePost(p.db, &post)})
}

// UpdatePost lets the owner or an admin modify caption, image or video URL.
// Fields absent from the payload keep their value.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	var req struct {
		Caption  *string `json:"caption"`
		Image    *string `json:"image"`
		VideoURL *string `json:"video_url"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	post, ok := p.fetchPost(ctx, ctx.Param("id"))
	if !ok {
		return
	}

	c, ok := caller(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	if !permissions.CanModifyPost(c, post) {
		utils.Error(ctx, http.StatusForbidden, 40301, "you can only update your own posts")
		return
	}

	if req.Caption != nil {
		post.Caption = utils.Sanitize(strings.TrimSpace(*req.Caption))
	}
	if req.Image != nil {
		post.Image = strings.TrimSpace(*req.Image)
	}
	if req.VideoURL != nil {
		post.VideoURL = strings.TrimSpace(*req.VideoURL)
	}

	if err := p.db.Save(post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to update post")
		return
	}

	utils.Success(ctx, gin.H{"post": serializers.SerializePost(p.db, post)})
}

// DeletePost lets the owner or an admin delete a post; comments and relation
// rows cascade.
func (p *PostController) DeletePost(ctx *gin.Context) {
	post, ok := p.fetchPost(ctx, ctx.Param("id"))
	if !ok {
		return
	}

	c, ok := caller(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	if !permissions.CanModifyPost(c, post) {
		utils.Error(ctx, http.StatusForbidden, 40302, "you can only delete your own posts")
		return
	}

	if err := p.db.Select("Comments", "Likes", "Unlikes").Delete(post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50027, "failed to delete post")
		return
	}

	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// LikePost removes the caller from the unlikes relation and adds them to
// likes. Appending an already-present member is a no-op, so repeated calls
// are safe.
func (p *PostController) LikePost(ctx *gin.Context) {
	p.react(ctx, "Unlikes", "Likes", "Post liked successfully.")
}

// UnlikePost is the symmetric toggle: drop from likes, add to unlikes.
func (p *PostController) UnlikePost(ctx *gin.Context) {
	p.react(ctx, "Likes", "Unlikes", "Post unliked successfully.")
}

// react moves the caller out of one relation table and into the other, then
// reports the live counts. The remove-then-add pair is what keeps the two
// sets disjoint per user.
func (p *PostController) react(ctx *gin.Context, removeFrom, addTo, message string) {
	post, ok := p.fetchPost(ctx, ctx.Param("id"))
	if !ok {
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	user := models.User{ID: userID}
	if err := p.db.Model(post).Association(removeFrom).Delete(&user); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50028, "failed to update reaction")
		return
	}
	if err := p.db.Model(post).Association(addTo).Append(&user); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50028, "failed to update reaction")
		return
	}

	utils.Success(ctx, gin.H{
		"message":       message,
		"total_likes":   p.db.Model(post).Association("Likes").Count(),
		"total_unlikes": p.db.Model(post).Association("Unlikes").Count(),
	})
}
