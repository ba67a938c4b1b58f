package api

import (
	"log"
	"net/http"

	"fintrack/identity"

	"github.com/gin-gonic/gin"
)

// AuthHandler forwards signup/login to the identity provider and maps its
// structured error codes onto HTTP statuses.
type AuthHandler struct {
	provider identity.Provider
}

// NewAuthHandler creates an auth handler over the given provider.
func NewAuthHandler(provider identity.Provider) *AuthHandler {
	return &AuthHandler{provider: provider}
}

// SignupRequest is the signup payload.
type SignupRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"password123"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"password123"`
}

// Signup registers a new user
// @Summary Sign up
// @Description Creates an account with the identity provider, storing the username as profile metadata.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "signup fields"
// @Success 200 {object} map[string]interface{} "message and created user"
// @Failure 400 {object} ErrorResponse "missing fields or provider error"
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Please provide all fields")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		BadRequest(c, "Please provide all fields")
		return
	}

	user, err := h.provider.SignUp(c.Request.Context(), identity.SignUpParams{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
	})
	if err != nil {
		log.Printf("signup error: %v", err)
		BadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Signup successful! You can now login.",
		"user":    user,
	})
}

// Login verifies credentials
// @Summary Log in
// @Description Password login against the identity provider. Unknown email maps to 404, wrong password to 401.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "login fields"
// @Success 200 {object} map[string]interface{} "message, user and session"
// @Failure 400 {object} ErrorResponse "missing fields or provider error"
// @Failure 401 {object} ErrorResponse "incorrect password"
// @Failure 404 {object} ErrorResponse "user not found"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Provide email and password")
		return
	}
	if req.Email == "" || req.Password == "" {
		BadRequest(c, "Provide email and password")
		return
	}

	sess, err := h.provider.SignInWithPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch identity.CodeOf(err) {
		case identity.CodeUserNotFound:
			NotFound(c, "User not found")
		case identity.CodeInvalidCredentials:
			Unauthorized(c, "Incorrect password")
		default:
			log.Printf("login error: %v", err)
			BadRequest(c, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful!",
		"user":    sess.User,
		"session": gin.H{
			"access_token": sess.AccessToken,
			"token_type":   sess.TokenType,
			"expires_in":   sess.ExpiresIn,
		},
	})
}
