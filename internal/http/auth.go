package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelierdv/portfolio-migrator/internal/auth"
)

// AuthController handles the single-admin password login flow.
type AuthController struct {
	sessions     *auth.SessionManager
	passwordHash string
}

func NewAuthController(sessions *auth.SessionManager, passwordHash string) *AuthController {
	return &AuthController{
		sessions:     sessions,
		passwordHash: passwordHash,
	}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login verifies the admin password and establishes a session.
func (a *AuthController) Login(c *gin.Context) {
	if a.passwordHash == "" {
		respondInternalError(c, errors.New("admin password hash is not configured"), "login")
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "password is required")
		return
	}

	if err := auth.CheckPassword(req.Password, a.passwordHash); err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			respondUnauthorized(c, "invalid password")
			return
		}
		respondInternalError(c, err, "login")
		return
	}

	if err := a.sessions.CreateSession(c.Request); err != nil {
		respondInternalError(c, err, "login")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout destroys the current session. Safe to call without one.
func (a *AuthController) Logout(c *gin.Context) {
	if err := a.sessions.DestroySession(c.Request); err != nil {
		respondInternalError(c, err, "logout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Session reports whether the request carries an authenticated session.
func (a *AuthController) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"authenticated": a.sessions.IsAuthenticated(c.Request),
	})
}
