package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/siay72/SnapBook/models"
	"github.com/siay72/SnapBook/routes"
	"github.com/siay72/SnapBook/utils"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("GIN_MODE", "test")
	os.Setenv("GIN_PATH", filepath.Join(os.TempDir(), "snapbook_access_test.log"))
	os.Setenv("RATE_LIMIT_PER_MINUTE", "100000")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// setupTestDB creates an in-memory SQLite database mirroring the schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}))
	return db
}

// setupRouter builds the full engine the way main does.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return routes.SetupRouter(db), db
}

func createUser(t *testing.T, db *gorm.DB, email string, admin bool) *models.User {
	t.Helper()
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)
	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		IsStaff:      admin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func accessToken(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(user.ID, user.Email, user.IsAdmin(), utils.TokenTypeAccess, time.Hour)
	require.NoError(t, err)
	return token
}

// doRequest performs a JSON request against the engine and returns the
// recorder. A non-empty token is sent as a bearer credential.
func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// envelope mirrors the uniform response structure.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func createPost(t *testing.T, r *gin.Engine, token, caption string) uint {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/api/v1/posts", token, map[string]string{"caption": caption})
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Post struct {
			ID uint `json:"id"`
		} `json:"post"`
	}
	decodeData(t, w, &data)
	return data.Post.ID
}
