// controllers/auth.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"quotedesk-backend/config"
	"quotedesk-backend/utils"
)

type LoginInput struct {
	Password string `json:"password" binding:"required"`
}

// AuthController checks the shared staff password and issues session tokens.
type AuthController struct {
	passwordHash string
	secret       string
	ttl          time.Duration
	secureCookie bool
}

// NewAuthController hashes a plain AUTH_PASSWORD once at startup when no
// precomputed hash is configured.
func NewAuthController(cfg config.AuthConfig, secureCookie bool) (*AuthController, error) {
	hash := cfg.PasswordHash
	if hash == "" && cfg.Password != "" {
		var err error
		if hash, err = utils.HashPassword(cfg.Password); err != nil {
			return nil, err
		}
	}

	return &AuthController{
		passwordHash: hash,
		secret:       cfg.JWTSecret,
		ttl:          cfg.TokenTTL(),
		secureCookie: secureCookie,
	}, nil
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if !bindJSON(c, &input) {
		return
	}

	if ac.passwordHash == "" || !utils.CheckPasswordHash(input.Password, ac.passwordHash) {
		zerolog.Ctx(c.Request.Context()).Warn().Str("client_ip", c.ClientIP()).Msg("failed login attempt")
		utils.RespondError(c, utils.Unauthorized("Invalid password"))
		return
	}

	token, err := utils.GenerateToken(ac.secret, ac.ttl)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.SetCookie(utils.TokenCookie, token, int(ac.ttl.Seconds()), "/", "", ac.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie(utils.TokenCookie, "", -1, "/", "", ac.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
