package user

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/JayMehta0113/Towson-Media/cmd/models"
	"github.com/JayMehta0113/Towson-Media/cmd/utils"
	"github.com/JayMehta0113/Towson-Media/storage"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Handler struct {
	db    *gorm.DB
	store storage.Store
}

func NewHandler(db *gorm.DB, store storage.Store) *Handler {
	return &Handler{db: db, store: store}
}

// RegisterRoutes sets up all user-related routes
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/users", h.CreateUser).Methods("POST")
	router.HandleFunc("/login", h.Login).Methods("POST")
	router.HandleFunc("/users/username/{username}", h.GetUserByUsername).Methods("GET")
	router.HandleFunc("/users/{userId}", h.GetUser).Methods("GET")
}

// CreateUser registers a user from a multipart form with an optional
// profile picture. The picture is uploaded before the row is inserted; an
// orphaned blob from a failed insert is accepted and not compensated.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(storage.MaxUploadSize); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Error parsing form")
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		utils.WriteError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	var profilePictureURL *string
	file, header, err := r.FormFile("profile_picture")
	switch {
	case err == nil:
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "Error processing profile picture")
			return
		}
		url, err := h.store.Upload(r.Context(), data, header.Filename, header.Header.Get("Content-Type"))
		if err != nil {
			logrus.WithError(err).Error("Error uploading profile picture")
			utils.WriteError(w, http.StatusInternalServerError, "Failed to save user")
			return
		}
		profilePictureURL = &url
	case errors.Is(err, http.ErrMissingFile):
		// no picture supplied
	default:
		utils.WriteError(w, http.StatusBadRequest, "Error reading profile picture")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := models.User{
		Username:       username,
		Password:       string(passwordHash),
		ProfilePicture: profilePictureURL,
	}
	if bio := r.FormValue("bio"); bio != "" {
		user.Bio = &bio
	}

	if err := h.db.Create(&user).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") || strings.Contains(err.Error(), "duplicate key") {
			utils.WriteError(w, http.StatusConflict, "Username is already in use")
			return
		}
		logrus.WithError(err).Error("Error creating user")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to save user")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, user)
}

// Login verifies a username/password pair and returns the user row. No
// token is issued; the client keeps its own credential cache.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var loginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := utils.DecodeJSON(r, &loginRequest); err != nil {
		if errors.Is(err, utils.ErrMalformedBody) {
			utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		} else {
			utils.WriteError(w, http.StatusBadRequest, "Username and password are required")
		}
		return
	}

	var user models.User
	if err := h.db.Where("username = ?", loginRequest.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		logrus.WithError(err).Error("Error fetching user for login")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(loginRequest.Password)); err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	utils.WriteJSON(w, http.StatusOK, user)
}

// GetUser retrieves a user by ID
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseUint(vars["userId"], 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var user models.User
	if err := h.db.First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		logrus.WithError(err).Error("Error fetching user")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, user)
}

// GetUserByUsername retrieves a user by username
func (h *Handler) GetUserByUsername(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	username := vars["username"]

	var user models.User
	if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		logrus.WithError(err).Error("Error fetching user by username")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, user)
}
