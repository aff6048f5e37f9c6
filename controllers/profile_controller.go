package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/siay72/SnapBook/models"
	"github.com/siay72/SnapBook/serializers"
	"github.com/siay72/SnapBook/utils"
)

// ProfileController serves the caller's own profile as a singleton resource.
// The profile is provisioned at registration and never removed through this
// interface: create and delete always answer method-not-allowed.
type ProfileController struct {
	db *gorm.DB
}

// NewProfileController creates a ProfileController.
func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{db: db}
}

func (p *ProfileController) currentUser(ctx *gin.Context) (*models.User, bool) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return nil, false
	}

	var user models.User
	if err := p.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40403, "user not found")
		return nil, false
	}
	return &user, true
}

// GetProfile returns the caller's profile object, not a collection.
func (p *ProfileController) GetProfile(ctx *gin.Context) {
	user, ok := p.currentUser(ctx)
	if !ok {
		return
	}
	utils.Success(ctx, serializers.SerializeProfile(user))
}

// UpdateProfile mutates name, location and phone number. Email is the login
// identity and stays read-only; a client-supplied value is ignored.
func (p *ProfileController) UpdateProfile(ctx *gin.Context) {
	var req struct {
		FirstName   *string `json:"first_name"`
		LastName    *string `json:"last_name"`
		Location    *string `json:"location"`
		PhoneNumber *string `json:"phone_number"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40007, "invalid request payload")
		return
	}

	user, ok := p.currentUser(ctx)
	if !ok {
		return
	}

	if req.Location != nil {
		loc := strings.TrimSpace(*req.Location)
		if loc != "" && !models.ValidLocation(loc) {
			utils.Error(ctx, http.StatusBadRequest, 40008, "unknown location")
			return
		}
		user.Location = loc
	}
	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}

	if err := p.db.Save(user).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to update profile")
		return
	}

	utils.Success(ctx, serializers.SerializeProfile(user))
}

// MethodNotAllowed rejects the disabled profile verbs regardless of caller.
func (p *ProfileController) MethodNotAllowed(ctx *gin.Context) {
	utils.Error(ctx, http.StatusMethodNotAllowed, 40500, "method not allowed")
}
