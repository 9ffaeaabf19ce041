package auth

import (
	"net/http"

	"pmeboard/middleware"
	"pmeboard/model"
	"pmeboard/services"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
)

func RefreshTokenController(router *gin.Engine, firestoreClient *firestore.Client, resolver *services.UserResolver) {
	router.POST("/auth/refresh", middleware.RefreshTokenMiddleware(), func(c *gin.Context) {
		Refresh(c, firestoreClient, resolver)
	})
}

// Refresh validates the presented refresh token against its stored hash and
// issues a new access token.
func Refresh(c *gin.Context, firestoreClient *firestore.Client, resolver *services.UserResolver) {
	userID := c.MustGet("userId").(string)
	refreshToken := c.MustGet("refreshToken").(string)

	ctx := c.Request.Context()
	doc, err := firestoreClient.Collection("refreshTokens").Doc(userID).Get(ctx)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token not found"})
		return
	}
	var stored model.TokenResponse
	if err := doc.DataTo(&stored); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse refresh token record"})
		return
	}
	if stored.Revoked {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token revoked"})
		return
	}
	if err := services.CompareRefreshToken(stored.RefreshToken, refreshToken); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token mismatch"})
		return
	}

	user, err := resolver.FetchUserData(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
		return
	}
	accessToken, err := services.CreateAccessToken(user.UserID, user.Email, user.Roles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}
