package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/siay72/SnapBook/middleware"
	"github.com/siay72/SnapBook/permissions"
)

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := 10
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}

func paginationPayload(page, pageSize int, total int64) gin.H {
	return gin.H{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
}

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

func isAdmin(ctx *gin.Context) bool {
	value, exists := ctx.Get(middleware.ContextAdminKey)
	if !exists {
		return false
	}
	admin, _ := value.(bool)
	return admin
}

// caller resolves the request identity for permission predicates.
func caller(ctx *gin.Context) (permissions.Caller, bool) {
	uid, ok := getUserID(ctx)
	if !ok {
		return permissions.Caller{}, false
	}
	email, _ := ctx.Get(middleware.ContextEmailKey)
	emailStr, _ := email.(string)
	return permissions.Caller{UserID: uid, Email: emailStr, Admin: isAdmin(ctx)}, true
}
