package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/duddn2012/GameServer/internal/constants"
	"github.com/duddn2012/GameServer/internal/game"
	"github.com/duddn2012/GameServer/internal/storage"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// AuthHandler groups account and session endpoints.
type AuthHandler struct {
	repo       storage.Repository
	sessionTTL time.Duration
}

func NewAuthHandler(repo storage.Repository, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{repo: repo, sessionTTL: sessionTTL}
}

type SignupPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email"`
}

// Signup registers a new account.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if _, err := h.repo.GetUserByUsername(req.Username); err == nil {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrUsernameTaken})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession})
		return
	}
	u := game.User{Username: req.Username, Email: req.Email, PasswordHash: string(hash)}
	if err := h.repo.CreateUser(&u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user_id": u.ID, "username": u.Username})
}

type LoginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns an account-scoped token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	u, err := h.repo.GetUserByUsername(req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidCredentials})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidCredentials})
		return
	}

	token, err := createSessionToken(u.ID, 0, h.sessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": u.ID})
}

type SessionTokenPayload struct {
	CharacterID uint `json:"character_id" binding:"required"`
}

// SessionToken exchanges an account token for a character-scoped one.
// Play actions identify the caller by character id, so clients pick a
// character after login and use the returned token from then on.
func (h *AuthHandler) SessionToken(c *gin.Context) {
	var req SessionTokenPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	userID := sessionUserID(c)
	ch, err := h.repo.GetCharacterByID(req.CharacterID)
	if err != nil || ch.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	token, err := createSessionToken(userID, ch.ID, h.sessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "character_id": ch.ID})
}

type GoogleOAuthCallbackRequest struct {
	Code string `json:"code"`
}

// GoogleOAuthCallback signs a user in via a Google authorization code,
// creating the account on first sight, and returns an account token.
func (h *AuthHandler) GoogleOAuthCallback(c *gin.Context) {
	var req GoogleOAuthCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	googleClientID := os.Getenv(constants.EnvGoogleClientID)
	googleClientSecret := os.Getenv(constants.EnvGoogleClientSecret)
	if googleClientID == "" || googleClientSecret == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMissingGoogleEnv})
		return
	}

	conf := &oauth2.Config{
		ClientID:     googleClientID,
		ClientSecret: googleClientSecret,
		RedirectURL:  constants.GoogleOAuthRedirect,
		Scopes:       constants.GoogleUserInfoScopes,
		Endpoint:     google.Endpoint,
	}

	token, err := conf.Exchange(context.Background(), req.Code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrFailedExchangeToken, constants.JSONKeyDetails: err.Error()})
		return
	}

	client := conf.Client(context.Background(), token)
	resp, err := client.Get(constants.GoogleUserInfoURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedGetUserInfo, constants.JSONKeyDetails: err.Error()})
		return
	}
	defer resp.Body.Close()

	userData, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedGetUserInfo})
		return
	}

	// Parse minimal fields from user info
	var payload map[string]any
	_ = json.Unmarshal(userData, &payload)
	email, _ := payload["email"].(string)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrNoEmailInGoogleProfile})
		return
	}

	u, err := h.repo.GetUserByEmail(email)
	if err != nil {
		u = &game.User{Username: email, Email: email}
		if err := h.repo.CreateUser(u); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession})
			return
		}
	}

	sess, err := createSessionToken(u.ID, 0, h.sessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession, constants.JSONKeyDetails: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": sess, "user_id": u.ID, "email": email})
}
