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

// CreateComment adds a comment to a post. post_id must be the server's
// integer post identity; a string identifier fails to decode and is
// rejected.
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var commentRequest struct {
		UserID uint   `json:"user_id" validate:"required"`
		PostID uint   `json:"post_id" validate:"required"`
		Body   string `json:"body" validate:"required"`
	}
	if err := utils.DecodeJSON(r, &commentRequest); err != nil {
		if errors.Is(err, utils.ErrMalformedBody) {
			utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		} else {
			utils.WriteError(w, http.StatusBadRequest, "user_id, post_id, and body are required")
		}
		return
	}

	comment := models.Comment{
		UserID: commentRequest.UserID,
		PostID: commentRequest.PostID,
		Body:   commentRequest.Body,
	}

	if err := h.db.Create(&comment).Error; err != nil {
		logrus.WithError(err).Error("Error creating comment")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, comment)
}

// GetComments retrieves all comments for a post in insertion order.
func (h *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, err := strconv.ParseUint(vars["postId"], 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	comments := []models.Comment{}
	if err := h.db.Where("post_id = ?", postID).Order("comment_id").Find(&comments).Error; err != nil {
		logrus.WithError(err).Error("Error retrieving comments")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, comments)
}
