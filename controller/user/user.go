package user

import (
	"net/http"

	"pmeboard/dto"
	"pmeboard/middleware"
	"pmeboard/services"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func UserController(router *gin.Engine, firestoreClient *firestore.Client, resolver *services.UserResolver) {
	routes := router.Group("/user", middleware.AccessTokenMiddleware())
	{
		routes.GET("/profile", func(c *gin.Context) {
			GetProfile(c, resolver)
		})
		routes.PUT("/profile", func(c *gin.Context) {
			UpdateProfile(c, firestoreClient, resolver)
		})
	}
}

func GetProfile(c *gin.Context, resolver *services.UserResolver) {
	userID := c.MustGet("userId").(string)

	user, err := resolver.FetchUserData(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func UpdateProfile(c *gin.Context, firestoreClient *firestore.Client, resolver *services.UserResolver) {
	userID := c.MustGet("userId").(string)

	var request dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var updates []firestore.Update
	if request.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *request.Name})
	}
	if request.AvatarURL != nil {
		updates = append(updates, firestore.Update{Path: "avatar_url", Value: *request.AvatarURL})
	}
	if len(updates) > 0 {
		if _, err := firestoreClient.Collection("profiles").Doc(userID).Update(ctx, updates); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}

	if request.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		if _, err := firestoreClient.Collection("auth_users").Doc(userID).Update(ctx, []firestore.Update{
			{Path: "password", Value: string(hashed)},
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
			return
		}
	}

	if len(updates) == 0 && request.Password == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	// The next FetchUserData re-reads the fresh profile.
	resolver.Forget(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
