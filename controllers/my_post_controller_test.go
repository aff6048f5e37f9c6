package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siay72/SnapBook/models"
)

func TestMyPostsScopedToCaller(t *testing.T) {
	r, db := setupRouter(t)
	alice := createUser(t, db, "alice@example.com", false)
	bob := createUser(t, db, "bob@example.com", false)
	aliceToken := accessToken(t, alice)
	bobToken := accessToken(t, bob)

	alicePost := createPost(t, r, aliceToken, "alice post")
	createPost(t, r, bobToken, "bob post")

	t.Run("list requires authentication", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/v1/my-posts", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("list returns only own posts", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/api/v1/my-posts", bobToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var data listData
		decodeData(t, w, &data)
		require.Len(t, data.Items, 1)
		assert.Equal(t, "bob post", data.Items[0].Caption)
	})

	t.Run("foreign post is invisible, not forbidden", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/my-posts/%d", alicePost)

		w := doRequest(t, r, http.MethodGet, path, bobToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doRequest(t, r, http.MethodPut, path, bobToken, map[string]string{"caption": "hijack"})
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doRequest(t, r, http.MethodDelete, path, bobToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doRequest(t, r, http.MethodPost, path+"/like", bobToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		var post models.Post
		require.NoError(t, db.First(&post, alicePost).Error)
		assert.Equal(t, "alice post", post.Caption)
	})

	t.Run("own post fully reachable", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/my-posts/%d", alicePost)

		w := doRequest(t, r, http.MethodGet, path, aliceToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doRequest(t, r, http.MethodPatch, path, aliceToken, map[string]string{"caption": "alice edited"})
		assert.Equal(t, http.StatusOK, w.Code)

		w = doRequest(t, r, http.MethodPost, path+"/like", aliceToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var react reactionData
		decodeData(t, w, &react)
		assert.Equal(t, int64(1), react.TotalLikes)
	})
}

func TestMyPostsNestedComments(t *testing.T) {
	r, db := setupRouter(t)
	alice := createUser(t, db, "alice@example.com", false)
	bob := createUser(t, db, "bob@example.com", false)
	aliceToken := accessToken(t, alice)
	bobToken := accessToken(t, bob)

	alicePost := createPost(t, r, aliceToken, "alice post")
	commentsPath := fmt.Sprintf("/api/v1/my-posts/%d/comments", alicePost)

	// commenting on a foreign post through my-posts fails validation:
	// the parent is outside bob's queryset
	w := doRequest(t, r, http.MethodPost, commentsPath, bobToken, map[string]string{"text": "nice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPost, commentsPath, aliceToken, map[string]string{"text": "my own note"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, commentsPath, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Items []struct {
			Text string `json:"text"`
		} `json:"items"`
	}
	decodeData(t, w, &data)
	require.Len(t, data.Items, 1)
	assert.Equal(t, "my own note", data.Items[0].Text)

	w = doRequest(t, r, http.MethodGet, commentsPath, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
