package post

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/JayMehta0113/Towson-Media/cmd/models"
	"github.com/JayMehta0113/Towson-Media/cmd/utils"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// GetLikeCount returns the number of like rows for a post, zero included.
func (h *Handler) GetLikeCount(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, err := strconv.ParseUint(vars["postId"], 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var count int64
	if err := h.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		logrus.WithError(err).Error("Error counting likes")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]int64{"likes": count})
}

// CreateLike inserts a like unconditionally. There is no uniqueness check:
// liking the same post twice produces two rows.
func (h *Handler) CreateLike(w http.ResponseWriter, r *http.Request) {
	var likeRequest struct {
		PostID uint `json:"post_id" validate:"required"`
		UserID uint `json:"user_id" validate:"required"`
	}
	if err := utils.DecodeJSON(r, &likeRequest); err != nil {
		if errors.Is(err, utils.ErrMalformedBody) {
			utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		} else {
			utils.WriteError(w, http.StatusBadRequest, "post_id and user_id are required")
		}
		return
	}

	like := models.Like{
		PostID: likeRequest.PostID,
		UserID: likeRequest.UserID,
	}

	if err := h.db.Create(&like).Error; err != nil {
		logrus.WithError(err).Error("Error creating like")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, like)
}

// DeleteLikes removes every like row belonging to the user, regardless of
// post. Responds with the first deleted row, or 404 if the user had none.
func (h *Handler) DeleteLikes(w http.ResponseWriter, r *http.Request) {
	var deleteRequest struct {
		UserID uint `json:"user_id" validate:"required"`
	}
	if err := utils.DecodeJSON(r, &deleteRequest); err != nil {
		if errors.Is(err, utils.ErrMalformedBody) {
			utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		} else {
			utils.WriteError(w, http.StatusBadRequest, "user_id is required")
		}
		return
	}

	tx := h.db.Begin()

	var likes []models.Like
	if err := tx.Where("user_id = ?", deleteRequest.UserID).Find(&likes).Error; err != nil {
		tx.Rollback()
		logrus.WithError(err).Error("Error fetching likes")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if len(likes) == 0 {
		tx.Rollback()
		utils.WriteError(w, http.StatusNotFound, "Like not found")
		return
	}

	if err := tx.Where("user_id = ?", deleteRequest.UserID).Delete(&models.Like{}).Error; err != nil {
		tx.Rollback()
		logrus.WithError(err).Error("Error deleting likes")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := tx.Commit().Error; err != nil {
		logrus.WithError(err).Error("Error committing like deletion")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, likes[0])
}
