package router

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	commonmw "github.com/OrangesCloud/wealist-advanced-go-pkg/middleware"

	"teamup-board-api/internal/client"
	"teamup-board-api/internal/handler"
	"teamup-board-api/internal/metrics"
	"teamup-board-api/internal/middleware"
	"teamup-board-api/internal/realtime"
	"teamup-board-api/internal/repository"
	"teamup-board-api/internal/response"
	"teamup-board-api/internal/service"
)

const serviceName = "teamup-board-api"

// Config holds router configuration
type Config struct {
	DB             *gorm.DB
	Redis          *redis.Client // optional, checked by /ready
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	BasePath       string
	AllowedOrigins []string

	Tokens      *service.TokenIssuer
	Revocations service.RevocationStore

	// Broker carries change events. Hub serves them over websockets and
	// must be running on the same broker.
	Broker realtime.Broker
	Hub    *realtime.Hub

	EmailClient client.EmailClient
	S3Client    client.S3ClientInterface // nil disables attachment routes
	Invitations service.InvitationSettings
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(commonmw.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	health := newHealthHandler(cfg.DB, cfg.Redis)
	metricsHandler := gin.WrapH(promhttp.Handler())

	r.GET("/health", health.Health)
	r.GET("/ready", health.Ready)
	r.GET("/metrics", metricsHandler)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Repositories
	profileRepo := repository.NewProfileRepository(cfg.DB)
	companyRepo := repository.NewCompanyRepository(cfg.DB)
	membershipRepo := repository.NewMembershipRepository(cfg.DB)
	invitationRepo := repository.NewInvitationRepository(cfg.DB)
	boardRepo := repository.NewBoardRepository(cfg.DB)
	columnRepo := repository.NewColumnRepository(cfg.DB)
	itemRepo := repository.NewItemRepository(cfg.DB)
	valueRepo := repository.NewItemValueRepository(cfg.DB)
	attachmentRepo := repository.NewAttachmentRepository(cfg.DB)

	revocations := cfg.Revocations
	if revocations == nil {
		revocations = service.NewMemoryRevocationStore()
	}
	emailClient := cfg.EmailClient
	if emailClient == nil {
		emailClient = client.NewNoOpEmailClient(cfg.Logger)
	}
	broker := cfg.Broker
	if broker == nil {
		broker = realtime.NewLocalBroker(cfg.Logger)
	}

	// Services
	authService := service.NewAuthService(profileRepo, companyRepo, cfg.Tokens, revocations, cfg.Logger)
	membershipService := service.NewMembershipService(membershipRepo, boardRepo)
	companyService := service.NewCompanyService(companyRepo, membershipRepo, membershipService, cfg.Metrics, cfg.Logger)
	invitationService := service.NewInvitationService(invitationRepo, companyRepo, membershipRepo, profileRepo,
		membershipService, emailClient, cfg.Invitations, cfg.Metrics, cfg.Logger)
	boardService := service.NewBoardService(boardRepo, membershipService, cfg.Metrics, cfg.Logger)
	columnService := service.NewColumnService(columnRepo, membershipService, broker, cfg.Metrics, cfg.Logger)
	itemService := service.NewItemService(itemRepo, columnRepo, membershipService, broker, cfg.Metrics, cfg.Logger)
	cellService := service.NewCellService(itemRepo, columnRepo, valueRepo, membershipService, broker, cfg.Metrics, cfg.Logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	companyHandler := handler.NewCompanyHandler(companyService)
	invitationHandler := handler.NewInvitationHandler(invitationService)
	boardHandler := handler.NewBoardHandler(boardService, cellService)
	columnHandler := handler.NewColumnHandler(columnService)
	itemHandler := handler.NewItemHandler(itemService)
	cellHandler := handler.NewCellHandler(cellService)

	basePath := strings.TrimRight(strings.TrimSpace(cfg.BasePath), "/")
	api := r.Group(basePath)
	{
		// the root routes above already serve an empty base path
		if basePath != "" {
			api.GET("/health", health.Health)
			api.GET("/ready", health.Ready)
			api.GET("/metrics", metricsHandler)
		}

		// Public
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.SignUp)
			authGroup.POST("/signin", authHandler.SignIn)
		}
		api.GET("/invitations/:token", invitationHandler.GetInvitationByToken)

		// The websocket route authenticates with a query token, so it stays outside the auth group
		if cfg.Hub != nil {
			wsHandler := handler.NewWSHandler(authService, membershipService, cfg.Hub, cfg.AllowedOrigins, cfg.Logger)
			api.GET("/boards/:boardId/ws", wsHandler.ServeBoard)
		}

		protected := api.Group("")
		protected.Use(middleware.Auth(authService))
		{
			protected.POST("/auth/signout", authHandler.SignOut)
			protected.GET("/auth/session", authHandler.GetSession)

			companies := protected.Group("/companies")
			{
				companies.POST("", companyHandler.CreateCompany)
				companies.GET("", companyHandler.ListMyCompanies)
				companies.GET("/:companyId", companyHandler.GetCompany)
				companies.GET("/:companyId/members", companyHandler.ListMembers)
				companies.PUT("/:companyId/members/:userId/role", companyHandler.UpdateMemberRole)
				companies.DELETE("/:companyId/members/:userId", companyHandler.RemoveMember)

				companies.POST("/:companyId/invitations", invitationHandler.CreateInvitation)
				companies.GET("/:companyId/invitations", invitationHandler.ListInvitations)
				companies.POST("/:companyId/invitations/:invitationId/cancel", invitationHandler.CancelInvitation)
				companies.POST("/:companyId/access-codes", invitationHandler.CreateAccessCode)
				companies.GET("/:companyId/access-codes", invitationHandler.ListAccessCodes)
				companies.DELETE("/:companyId/access-codes/:invitationId", invitationHandler.DeleteAccessCode)

				companies.POST("/:companyId/boards", boardHandler.CreateBoard)
				companies.GET("/:companyId/boards", boardHandler.ListBoards)
			}

			protected.POST("/invitations/accept", invitationHandler.AcceptInvitation)
			protected.POST("/access-codes/validate", invitationHandler.ValidateAccessCode)

			boards := protected.Group("/boards")
			{
				boards.GET("/:boardId", boardHandler.GetBoard)
				boards.PUT("/:boardId", boardHandler.UpdateBoard)
				boards.DELETE("/:boardId", boardHandler.DeleteBoard)
				boards.GET("/:boardId/grid", boardHandler.GetGrid)

				boards.POST("/:boardId/columns", columnHandler.AddColumn)
				boards.GET("/:boardId/columns", columnHandler.ListColumns)

				boards.POST("/:boardId/items", itemHandler.AddItem)
				boards.GET("/:boardId/items", itemHandler.ListItems)
			}

			protected.PUT("/columns/:columnId", columnHandler.UpdateColumn)

			items := protected.Group("/items")
			{
				items.PUT("/:itemId", itemHandler.RenameItem)
				items.DELETE("/:itemId", itemHandler.DeleteItem)
				items.PUT("/:itemId/values/:columnId", cellHandler.CommitCellValue)
				items.GET("/:itemId/values/:columnId", cellHandler.GetCellValue)
			}

			if cfg.S3Client != nil {
				attachmentService := service.NewAttachmentService(attachmentRepo, itemRepo, columnRepo,
					cfg.S3Client, cellService, membershipService, cfg.Logger)
				attachmentHandler := handler.NewAttachmentHandler(attachmentService)

				items.POST("/:itemId/values/:columnId/attachments/presigned-url", attachmentHandler.GeneratePresignedURL)
				items.GET("/:itemId/values/:columnId/attachments", attachmentHandler.ListCellAttachments)
				protected.POST("/attachments/:attachmentId/confirm", attachmentHandler.ConfirmUpload)
				protected.GET("/attachments/:attachmentId/url", attachmentHandler.GetDownloadURL)
			} else {
				items.POST("/:itemId/values/:columnId/attachments/presigned-url", storageUnavailable)
				items.GET("/:itemId/values/:columnId/attachments", storageUnavailable)
				protected.POST("/attachments/:attachmentId/confirm", storageUnavailable)
				protected.GET("/attachments/:attachmentId/url", storageUnavailable)
			}
		}
	}

	return r
}

func storageUnavailable(c *gin.Context) {
	response.SendError(c, http.StatusServiceUnavailable, response.ErrCodeInternal, "File storage is not configured")
}

type healthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func newHealthHandler(db *gorm.DB, redisClient *redis.Client) *healthHandler {
	return &healthHandler{db: db, redis: redisClient}
}

func (h *healthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
}

// Ready pings the database and, when configured, Redis
func (h *healthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": "database not connected"})
		return
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": "database error"})
		return
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": "database not reachable"})
		return
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": "redis not reachable"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "service": serviceName})
}
