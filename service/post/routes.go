package post

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/JayMehta0113/Towson-Media/cmd/models"
	"github.com/JayMehta0113/Towson-Media/cmd/utils"
	"github.com/JayMehta0113/Towson-Media/storage"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Handler struct {
	db    *gorm.DB
	store storage.Store
}

func NewHandler(db *gorm.DB, store storage.Store) *Handler {
	return &Handler{db: db, store: store}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	// Post routes
	router.HandleFunc("/posts", h.CreatePost).Methods("POST")
	router.HandleFunc("/posts", h.GetPosts).Methods("GET")
	router.HandleFunc("/posts/{postId}", h.GetPost).Methods("GET")
	router.HandleFunc("/users/{userId}/posts", h.GetUserPosts).Methods("GET")

	// Like routes
	router.HandleFunc("/posts/{postId}/likes", h.GetLikeCount).Methods("GET")
	router.HandleFunc("/likes", h.CreateLike).Methods("POST")
	router.HandleFunc("/likes", h.DeleteLikes).Methods("DELETE")

	// Comment routes
	router.HandleFunc("/comments", h.CreateComment).Methods("POST")
	router.HandleFunc("/posts/{postId}/comments", h.GetComments).Methods("GET")
}

// CreatePost creates a post from a multipart form with an optional media
// file. The media is uploaded before the row is inserted; if the insert
// fails afterwards the blob is left orphaned rather than compensated.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(storage.MaxUploadSize); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Error parsing form")
		return
	}

	title := r.FormValue("title")
	postBody := r.FormValue("postbody")
	userIDValue := r.FormValue("user_id")
	if title == "" || postBody == "" || userIDValue == "" {
		utils.WriteError(w, http.StatusBadRequest, "Title, postbody, and user_id are required")
		return
	}

	userID, err := strconv.ParseUint(userIDValue, 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var mediaURL *string
	file, header, err := r.FormFile("media")
	switch {
	case err == nil:
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Error processing media")
			return
		}
		url, err := h.store.Upload(r.Context(), data, header.Filename, header.Header.Get("Content-Type"))
		if err != nil {
			logrus.WithError(err).Error("Error uploading media")
			utils.WriteError(w, http.StatusInternalServerError, "Failed to save post")
			return
		}
		mediaURL = &url
	case errors.Is(err, http.ErrMissingFile):
		// text-only post
	default:
		utils.WriteError(w, http.StatusBadRequest, "Error reading media")
		return
	}

	post := models.Post{
		Title:    title,
		PostBody: postBody,
		Media:    mediaURL,
		UserID:   uint(userID),
	}

	if err := h.db.Create(&post).Error; err != nil {
		logrus.WithError(err).Error("Error creating post")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to save post")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, post)
}

// GetPosts retrieves all posts that have not been soft-deleted, in
// insertion order.
func (h *Handler) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts := []models.Post{}
	if err := h.db.Where("is_deleted = ?", false).Order("post_id").Find(&posts).Error; err != nil {
		logrus.WithError(err).Error("Error retrieving posts")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, posts)
}

// GetPost retrieves a specific post
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, err := strconv.ParseUint(vars["postId"], 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var post models.Post
	if err := h.db.Where("post_id = ? AND is_deleted = ?", postID, false).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Post not found")
			return
		}
		logrus.WithError(err).Error("Error fetching post")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, post)
}

// GetUserPosts retrieves all non-deleted posts for a user. An unknown user
// yields an empty array, not an error.
func (h *Handler) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseUint(vars["userId"], 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	posts := []models.Post{}
	if err := h.db.Where("user_id = ? AND is_deleted = ?", userID, false).Order("post_id").Find(&posts).Error; err != nil {
		logrus.WithError(err).Error("Error retrieving user posts")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, posts)
}
