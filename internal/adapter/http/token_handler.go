package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/freshcart/freshcart-api/configs"
	"github.com/freshcart/freshcart-api/internal/security"
)

type TokenHandler struct {
	cfg configs.Config
}

func NewTokenHandler(cfg configs.Config) *TokenHandler {
	return &TokenHandler{cfg: cfg}
}

// POST /v1/token (form fields: user_id, secret)
// Issues a session JWT whose subject is the user id.
func (h *TokenHandler) IssueToken(c *gin.Context) {
	userID := c.PostForm("user_id")
	secret := c.PostForm("secret")
	if userID == "" || secret == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	u, ok := security.Users[userID]
	if !ok || !u.Enabled || secret != u.Secret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss": h.cfg.Security.Issuer,
		"aud": h.cfg.Security.Audience,
		"sub": u.ID,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": now.Add(h.cfg.Security.TTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.Security.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": signed,
		"token_type":   "Bearer",
		"expires_in":   int(h.cfg.Security.TTL.Seconds()),
	})
}
