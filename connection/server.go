package connection

import (
	"pmeboard/controller/attachment"
	"pmeboard/controller/auth"
	"pmeboard/controller/board"
	"pmeboard/controller/card"
	"pmeboard/controller/comment"
	"pmeboard/controller/legacy"
	"pmeboard/controller/proposal"
	"pmeboard/controller/stage"
	"pmeboard/controller/user"
	"pmeboard/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func StartServer() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	router := gin.Default()

	firestoreClient, err := FBConnection()
	if err != nil {
		logger.Fatal("failed to initialize Firestore client", zap.Error(err))
	}
	storageClient, err := StorageConnection()
	if err != nil {
		logger.Fatal("failed to initialize Storage client", zap.Error(err))
	}

	cache := services.NewQueryCache()
	resolver := services.NewUserResolver(&services.FirestoreUserStore{Client: firestoreClient})

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})

	router.Use(cors.Default())

	auth.SignInController(router, firestoreClient, resolver)
	auth.SignUpController(router, firestoreClient)
	auth.SignOutController(router, firestoreClient, cache, resolver)
	auth.RefreshTokenController(router, firestoreClient, resolver)

	board.BoardController(router, firestoreClient, cache, resolver)
	stage.StageController(router, firestoreClient, cache, resolver)
	stage.StageFieldController(router, firestoreClient, cache)
	card.CardController(router, firestoreClient, cache, resolver)
	comment.CommentController(router, firestoreClient, cache)
	attachment.AttachmentController(router, firestoreClient, storageClient, cache)
	proposal.CreateProposalController(router, firestoreClient, cache)
	user.UserController(router, firestoreClient, resolver)

	legacy.LegacyController(router, legacy.NewProxy())

	router.Run()
}
