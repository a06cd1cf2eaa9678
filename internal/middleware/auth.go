package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextBuyerID = "buyerId"
	ContextToken   = "token"
)

// BuyerAuth resolves the calling buyer. With a demo buyer configured every
// request is attributed to that fixed buyer and no token is required — the
// demo deployment has no login flow. Otherwise the bearer token must be a
// valid HS256 JWT carrying a buyerId claim; the raw token is kept in the
// context so it can be passed through to the upstream order API.
func BuyerAuth(secret, demoBuyerID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))

		if demoBuyerID != "" {
			c.Set(ContextBuyerID, demoBuyerID)
			c.Set(ContextToken, raw)
			c.Next()
			return
		}

		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		buyerID, ok := claims["buyerId"].(string)
		if !ok || strings.TrimSpace(buyerID) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(ContextBuyerID, buyerID)
		c.Set(ContextToken, raw)
		c.Next()
	}
}
