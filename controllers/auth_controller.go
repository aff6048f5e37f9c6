package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/siay72/SnapBook/models"
	"github.com/siay72/SnapBook/serializers"
	"github.com/siay72/SnapBook/utils"
)

const (
	accessTokenTTL  = 72 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

// AuthController provisions accounts and issues token pairs. Everything
// outside this controller only consumes the identity resolved from claims.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

func (a *AuthController) tokenPair(user *models.User) (gin.H, error) {
	access, err := utils.GenerateToken(user.ID, user.Email, user.IsAdmin(), utils.TokenTypeAccess, accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateToken(user.ID, user.Email, user.IsAdmin(), utils.TokenTypeRefresh, refreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return gin.H{"access": access, "refresh": refresh}, nil
}

// Register provisions a user with email as the login key and returns a token
// pair. The profile endpoint handles all later mutation.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required,min=6,max=64"`
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name"`
		Location    string `json:"location"`
		PhoneNumber string `json:"phone_number" binding:"omitempty,max=15"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid request payload")
		return
	}

	email := models.NormalizeEmail(req.Email)

	location := strings.TrimSpace(req.Location)
	if location != "" && !models.ValidLocation(location) {
		utils.Error(ctx, http.StatusBadRequest, 40008, "unknown location")
		return
	}

	var existing models.User
	if err := a.db.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusConflict, 40901, "email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to hash password")
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Location:     location,
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
	}
	if err := a.db.Create(&user).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to create user")
		return
	}

	tokens, err := a.tokenPair(&user)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to generate token")
		return
	}
	tokens["user"] = serializers.SerializeProfile(&user)
	utils.Success(ctx, tokens)
}

// Login verifies credentials and issues a token pair.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40012, "invalid request payload")
		return
	}

	var user models.User
	err := a.db.Where("email = ?", models.NormalizeEmail(req.Email)).First(&user).Error
	if err != nil || !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40107, "invalid email or password")
		return
	}

	tokens, err := a.tokenPair(&user)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}
	tokens["user"] = serializers.SerializeProfile(&user)
	utils.Success(ctx, tokens)
}

// Refresh exchanges a valid refresh token for a fresh pair. The admin flag is
// re-read from the database so privilege changes take effect on rotation.
func (a *AuthController) Refresh(ctx *gin.Context) {
	var req struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40013, "invalid request payload")
		return
	}

	if utils.IsTokenDenied(req.Refresh) {
		utils.Error(ctx, http.StatusUnauthorized, 40104, "token revoked")
		return
	}

	claims, err := utils.ParseToken(req.Refresh)
	if err != nil || claims.TokenType != utils.TokenTypeRefresh {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid refresh token")
		return
	}

	var user models.User
	if err := a.db.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusUnauthorized, 40108, "account no longer exists")
		} else {
			utils.Error(ctx, http.StatusInternalServerError, 50005, "failed to load user")
		}
		return
	}

	tokens, err := a.tokenPair(&user)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to generate token")
		return
	}
	utils.Success(ctx, tokens)
}

// Logout denylists the presented access token until its natural expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid authorization header")
		return
	}

	token := strings.TrimSpace(parts[1])
	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
		return
	}

	expiresAt := time.Now().Add(accessTokenTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	utils.DenylistToken(token, expiresAt)
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the current authenticated user's profile.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40403, "user not found")
		return
	}

	utils.Success(ctx, serializers.SerializeProfile(&user))
}
