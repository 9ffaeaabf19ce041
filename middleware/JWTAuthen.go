package middleware

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"pmeboard/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthCheckTimeout bounds the remote side of a protected route's auth check.
// Exceeding it answers 401 so the client falls back to the login page.
const AuthCheckTimeout = 10 * time.Second

func AccessTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Request.Header.Get("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "Authorization header is missing"})
			return
		}

		tokenString := strings.Replace(header, "Bearer ", "", 1)
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(os.Getenv("JWT_SECRET_KEY")), nil
		})
		if err != nil {
			c.AbortWithStatusJSON(403, gin.H{"error": "Token is expired or invalid: " + err.Error()})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			c.AbortWithStatusJSON(401, gin.H{"error": "Invalid token claims"})
			return
		}
		c.Set("claims", claims)

		userID, ok := claims["userId"].(string)
		if !ok {
			c.AbortWithStatusJSON(401, gin.H{"error": "Invalid userId in token claims"})
			return
		}
		c.Set("userId", userID)
		c.Set("roles", claimRoles(claims))

		c.Next()
	}
}

// SessionUserMiddleware resolves the full profile+roles for the token's
// user and stores it under "sessionUser". The resolution runs against the
// auth-check deadline; a timeout is treated as not authenticated.
func SessionUserMiddleware(resolver *services.UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userId").(string)

		ctx, cancel := context.WithTimeout(c.Request.Context(), AuthCheckTimeout)
		defer cancel()

		user, err := resolver.FetchUserData(ctx, userID)
		if err != nil {
			// Covers both store failures and the deadline firing before
			// even the fallback path could settle.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Failed to resolve session user"})
			return
		}
		c.Set("sessionUser", user)
		c.Next()
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rolesValue, exists := c.Get("roles")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Claims not found"})
			return
		}
		roles, ok := rolesValue.([]string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid claims format"})
			return
		}
		for _, role := range roles {
			if role == "admin" {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	}
}

func RefreshTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "Refresh token is missing"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
			c.AbortWithStatusJSON(401, gin.H{"error": "Invalid token format"})
			return
		}
		refreshToken := bearerToken[1]

		token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(os.Getenv("JWT_REFRESH_SECRET_KEY")), nil
		})
		if err != nil {
			c.AbortWithStatusJSON(403, gin.H{"error": "Invalid refresh token: " + err.Error()})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			c.AbortWithStatusJSON(401, gin.H{"error": "Invalid refresh token claims"})
			return
		}
		userID, found := claims["userId"].(string)
		if !found {
			c.AbortWithStatusJSON(401, gin.H{"error": "Invalid token claims: userId not found"})
			return
		}

		c.Set("userId", userID)
		c.Set("refreshToken", refreshToken)
		c.Next()
	}
}

func claimRoles(claims jwt.MapClaims) []string {
	raw, ok := claims["roles"].([]interface{})
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}
