package post

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/JayMehta0113/Towson-Media/cmd/models"
	"github.com/JayMehta0113/Towson-Media/storage"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTest(t *testing.T) (*mux.Router, *gorm.DB, *storage.LocalStore) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", url.PathEscape(t.Name()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Like{}, &models.Comment{}))

	store, err := storage.NewLocalStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	router := mux.NewRouter()
	NewHandler(db, store).RegisterRoutes(router)
	return router, db, store
}

func multipartRequest(t *testing.T, target string, fields map[string]string, fileField, fileName string, file []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func createPost(t *testing.T, db *gorm.DB, userID uint, title string, deleted bool) models.Post {
	t.Helper()
	p := models.Post{Title: title, PostBody: "body of " + title, UserID: userID, IsDeleted: deleted}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestCreatePost(t *testing.T) {
	router, _, _ := setupTest(t)

	req := multipartRequest(t, "/posts", map[string]string{
		"title":    "first",
		"postbody": "hello",
		"user_id":  "1",
	}, "", "", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Post
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.NotZero(t, created.PostID)
	assert.Equal(t, "first", created.Title)
	assert.Equal(t, "hello", created.PostBody)
	assert.Equal(t, uint(1), created.UserID)
	assert.Nil(t, created.Media)
	assert.False(t, created.IsDeleted)
}

func TestCreatePostMissingField(t *testing.T) {
	router, _, _ := setupTest(t)

	req := multipartRequest(t, "/posts", map[string]string{
		"title":   "no body",
		"user_id": "1",
	}, "", "", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Title, postbody, and user_id are required", body["error"])
}

func TestCreatePostWithMedia(t *testing.T) {
	router, _, store := setupTest(t)

	req := multipartRequest(t, "/posts", map[string]string{
		"title":    "with media",
		"postbody": "look at this",
		"user_id":  "2",
	}, "media", "photo.png", []byte("fake png bytes"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Post
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	require.NotNil(t, created.Media)
	assert.True(t, strings.HasPrefix(*created.Media, "http://localhost:8080/media/"))
	assert.True(t, strings.HasSuffix(*created.Media, "photo.png"))

	// exactly one blob written
	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGetPostsFiltersSoftDeleted(t *testing.T) {
	router, db, _ := setupTest(t)

	first := createPost(t, db, 1, "visible one", false)
	createPost(t, db, 1, "hidden", true)
	second := createPost(t, db, 2, "visible two", false)

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var posts []models.Post
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&posts))
	require.Len(t, posts, 2)
	assert.Equal(t, first.PostID, posts[0].PostID)
	assert.Equal(t, second.PostID, posts[1].PostID)
}

func TestGetPost(t *testing.T) {
	router, db, _ := setupTest(t)

	p := createPost(t, db, 1, "fetch me", false)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/posts/%d", p.PostID), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Post
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, p.PostID, got.PostID)
	assert.Equal(t, "fetch me", got.Title)
}

func TestGetPostNotFound(t *testing.T) {
	router, _, _ := setupTest(t)

	req := httptest.NewRequest(http.MethodGet, "/posts/999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Post not found", body["error"])
}

func TestGetPostSoftDeleted(t *testing.T) {
	router, db, _ := setupTest(t)

	p := createPost(t, db, 1, "gone", true)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/posts/%d", p.PostID), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetUserPosts(t *testing.T) {
	router, db, _ := setupTest(t)

	mine := createPost(t, db, 7, "mine", false)
	createPost(t, db, 7, "mine but deleted", true)
	createPost(t, db, 8, "someone else's", false)

	req := httptest.NewRequest(http.MethodGet, "/users/7/posts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var posts []models.Post
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&posts))
	require.Len(t, posts, 1)
	assert.Equal(t, mine.PostID, posts[0].PostID)
}

func TestGetUserPostsEmpty(t *testing.T) {
	router, _, _ := setupTest(t)

	req := httptest.NewRequest(http.MethodGet, "/users/42/posts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}
