package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aguacates-backend/pkg/jwt"
)

const (
	// Cookie settings
	CartSessionCookieName = "ta_cart_session"
	CartSessionMaxAge     = 60 * 60 * 24 * 30 // 30 days in seconds

	// Context keys
	ContextKeySessionID = "session_id"
)

// CartSessionConfig holds configuration for the cart session middleware.
type CartSessionConfig struct {
	Secret         string // HMAC secret for signing session tokens
	CookieDomain   string // "" for current domain
	CookiePath     string
	CookieSecure   bool
	CookieSameSite http.SameSite
}

// DefaultCartSessionConfig returns secure default configuration.
// Set CookieSecure=false for localhost development.
func DefaultCartSessionConfig(secret string) CartSessionConfig {
	return CartSessionConfig{
		Secret:         secret,
		CookieDomain:   "",
		CookiePath:     "/",
		CookieSecure:   true,
		CookieSameSite: http.SameSiteLaxMode,
	}
}

// CartSession identifies the guest shopping session behind every cart
// request. The session id travels in a signed JWT cookie so it cannot be
// forged to read another visitor's cart.
//
// Flow:
//  1. Read and verify the session cookie.
//  2. On a missing or invalid token, mint a fresh session id and set the cookie.
//  3. Expose session_id in the gin context for handlers.
func CartSession(config CartSessionConfig) gin.HandlerFunc {
	manager := jwt.NewManager(config.Secret, CartSessionMaxAge*time.Second)

	return func(c *gin.Context) {
		sessionID := ""

		if token, err := c.Cookie(CartSessionCookieName); err == nil && token != "" {
			sessionID, _ = manager.ValidateSessionToken(token)
		}

		if sessionID == "" {
			sessionID = uuid.New().String()

			token, err := manager.GenerateSessionToken(sessionID)
			if err == nil {
				setSessionCookie(c, token, config)
			}
		}

		c.Set(ContextKeySessionID, sessionID)
		c.Next()
	}
}

// GetSessionID returns the cart session id set by CartSession.
func GetSessionID(c *gin.Context) string {
	return c.GetString(ContextKeySessionID)
}

func setSessionCookie(c *gin.Context, token string, config CartSessionConfig) {
	c.SetSameSite(config.CookieSameSite)
	c.SetCookie(
		CartSessionCookieName,
		token,
		CartSessionMaxAge,
		config.CookiePath,
		config.CookieDomain,
		config.CookieSecure,
		true, // httpOnly
	)
}
