package auth

import (
	"net/http"

	"pmeboard/middleware"
	"pmeboard/services"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SignOutController(router *gin.Engine, firestoreClient *firestore.Client, cache *services.QueryCache, resolver *services.UserResolver) {
	router.POST("/auth/signout", middleware.AccessTokenMiddleware(), func(c *gin.Context) {
		Signout(c, firestoreClient, cache, resolver)
	})
}

// Signout revokes the stored refresh token and drops every cached query
// result in the process, the same way the client tears down on logout.
func Signout(c *gin.Context, firestoreClient *firestore.Client, cache *services.QueryCache, resolver *services.UserResolver) {
	userID := c.MustGet("userId").(string)

	ctx := c.Request.Context()
	if _, err := firestoreClient.Collection("refreshTokens").Doc(userID).Update(ctx, []firestore.Update{
		{Path: "revoked", Value: true},
	}); err != nil && !services.IsNotFound(err) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke refresh token"})
		return
	}

	cache.Clear()
	resolver.Clear()

	zap.L().Info("user signed out", zap.String("userId", userID))
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}
