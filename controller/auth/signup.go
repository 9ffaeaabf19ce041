package auth

import (
	"net/http"
	"time"

	"pmeboard/dto"
	"pmeboard/model"
	"pmeboard/services"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func SignUpController(router *gin.Engine, firestoreClient *firestore.Client) {
	router.POST("/auth/signup", func(c *gin.Context) {
		Signup(c, firestoreClient)
	})
}

// Signup creates the credential row, then the profile, then the default role
// assignment, then the welcome-mail audit record. The chain aborts on the
// first failure and does not clean up what already landed; the resolver's
// fallback path repairs a missing profile on the next signin.
func Signup(c *gin.Context, firestoreClient *firestore.Client) {
	var request dto.SignupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	exists, err := services.EmailRegistered(ctx, firestoreClient, request.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing email"})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already registered"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	userID := uuid.New().String()
	authUser := model.AuthUser{
		UserID:    userID,
		Name:      request.Name,
		Email:     request.Email,
		Password:  string(hashedPassword),
		CreatedAt: time.Now(),
	}
	if _, err := firestoreClient.Collection("auth_users").Doc(userID).Set(ctx, authUser); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	profile := model.UserProfile{
		UserID: userID,
		Name:   request.Name,
		Email:  request.Email,
	}
	if _, err := firestoreClient.Collection("profiles").Doc(userID).Set(ctx, profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
		return
	}

	role := model.UserRole{UserID: userID, Role: model.RoleCorretor}
	if _, err := firestoreClient.Collection("user_roles").Doc(userID+"_"+model.RoleCorretor).Set(ctx, role); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign role"})
		return
	}

	if err := services.RecordEmail(ctx, firestoreClient, userID, request.Email, "welcome"); err != nil {
		zap.L().Warn("welcome email record failed", zap.String("userId", userID), zap.Error(err))
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"userId":  userID,
	})
}
