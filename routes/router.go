package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/siay72/SnapBook/config"
	"github.com/siay72/SnapBook/controllers"
	"github.com/siay72/SnapBook/middleware"
	"github.com/siay72/SnapBook/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	// Replace the default console logger with the rolling zap access log
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db)
	myPostController := controllers.NewMyPostController(db)
	commentController := controllers.NewCommentController(db)
	myCommentController := controllers.NewMyCommentController(db)
	profileController := controllers.NewProfileController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/refresh", authController.Refresh)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	// list and retrieve are open to anonymous callers
	postsGroup := api.Group("/posts")
	postsGroup.GET("", postController.ListPosts)
	postsGroup.GET("/:id", postController.GetPost)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())
	protected.POST("/posts", postController.CreatePost)
	protected.PUT("/posts/:id", postController.UpdatePost)
	protected.PATCH("/posts/:id", postController.UpdatePost)
	protected.DELETE("/posts/:id", postController.DeletePost)
	protected.POST("/posts/:id/like", postController.LikePost)
	protected.POST("/posts/:id/unlike", postController.UnlikePost)

	protected.GET("/posts/:id/comments", commentController.ListComments)
	protected.GET("/posts/:id/comments/:commentId", commentController.GetComment)
	protected.POST("/posts/:id/comments", commentController.CreateComment)
	protected.PUT("/posts/:id/comments/:commentId", commentController.UpdateComment)
	protected.PATCH("/posts/:id/comments/:commentId", commentController.UpdateComment)
	protected.DELETE("/posts/:id/comments/:commentId", commentController.DeleteComment)

	// same shape as /posts, queryset always restricted to the caller
	protected.GET("/my-posts", myPostController.ListPosts)
	protected.GET("/my-posts/:id", myPostController.GetPost)
	protected.POST("/my-posts", myPostController.CreatePost)
	protected.PUT("/my-posts/:id", myPostController.UpdatePost)
	protected.PATCH("/my-posts/:id", myPostController.UpdatePost)
	protected.DELETE("/my-posts/:id", myPostController.DeletePost)
	protected.POST("/my-posts/:id/like", myPostController.LikePost)
	protected.POST("/my-posts/:id/unlike", myPostController.UnlikePost)
	protected.GET("/my-posts/:id/comments", myCommentController.ListComments)
	protected.GET("/my-posts/:id/comments/:commentId", myCommentController.GetComment)
	protected.POST("/my-posts/:id/comments", myCommentController.CreateComment)
	protected.PUT("/my-posts/:id/comments/:commentId", myCommentController.UpdateComment)
	protected.PATCH("/my-posts/:id/comments/:commentId", myCommentController.UpdateComment)
	protected.DELETE("/my-posts/:id/comments/:commentId", myCommentController.DeleteComment)

	protected.GET("/profile", profileController.GetProfile)
	protected.PUT("/profile", profileController.UpdateProfile)
	protected.PATCH("/profile", profileController.UpdateProfile)
	// the profile is provisioned at registration and never removed here
	protected.POST("/profile", profileController.MethodNotAllowed)
	protected.DELETE("/profile", profileController.MethodNotAllowed)
	protected.DELETE("/profile/:id", profileController.MethodNotAllowed)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
