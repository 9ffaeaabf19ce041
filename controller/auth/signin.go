package auth

import (
	"net/http"
	"time"

	"pmeboard/dto"
	"pmeboard/model"
	"pmeboard/services"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func SignInController(router *gin.Engine, firestoreClient *firestore.Client, resolver *services.UserResolver) {
	router.POST("/auth/signin", func(c *gin.Context) {
		Signin(c, firestoreClient, resolver)
	})
}

func Signin(c *gin.Context, firestoreClient *firestore.Client, resolver *services.UserResolver) {
	var request dto.SigninRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	authUser, err := services.AuthUserByEmail(ctx, firestoreClient, request.Email)
	if err != nil {
		// Invalid credentials never leave partial session state behind.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(authUser.Password), []byte(request.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	user, err := resolver.FetchUserDataWithMeta(ctx, authUser.UserID, authUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
		return
	}

	accessToken, err := services.CreateAccessToken(user.UserID, user.Email, user.Roles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access token"})
		return
	}
	refreshToken, err := services.CreateRefreshToken(user.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create refresh token"})
		return
	}
	hashedRefreshToken, err := services.HashRefreshToken(refreshToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash refresh token"})
		return
	}

	now := time.Now()
	refreshTokenData := model.TokenResponse{
		UserID:       user.UserID,
		RefreshToken: hashedRefreshToken,
		CreatedAt:    now.Unix(),
		Revoked:      false,
		ExpiresIn:    int64((7 * 24 * time.Hour).Seconds()),
	}
	if _, err := firestoreClient.Collection("refreshTokens").Doc(user.UserID).Set(ctx, refreshTokenData); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store refresh token"})
		return
	}

	zap.L().Info("user signed in", zap.String("userId", user.UserID))
	c.JSON(http.StatusOK, gin.H{
		"message": "Login Successfully",
		"user":    user,
		"token": gin.H{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
	})
}
