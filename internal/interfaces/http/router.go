package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"fixdesk/internal/application/ticket/usecases"
	"fixdesk/internal/infrastructure/auth"
	"fixdesk/internal/infrastructure/cache"
	"fixdesk/internal/infrastructure/config"
	"fixdesk/internal/infrastructure/repository"
	"fixdesk/internal/infrastructure/storage"
	"fixdesk/internal/interfaces/http/handlers"
	"fixdesk/internal/interfaces/http/middleware"
	"fixdesk/internal/shared/db"
	"fixdesk/internal/shared/logger"
)

// Router wires the HTTP surface: repositories, use cases, handlers and
// middleware, assembled from the shared database and redis handles.
type Router struct {
	engine         *gin.Engine
	cfg            *config.Config
	authMiddleware *middleware.AuthMiddleware
	ticketHandler  *handlers.TicketHandler
	boardHandler   *handlers.BoardHandler
	catalogHandler *handlers.CatalogHandler
	logger         logger.Interface
}

func NewRouter(gdb *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Router, error) {
	ticketRepo := repository.NewTicketRepository(gdb)
	logRepo := repository.NewLogEntryRepository(gdb)
	attachRepo := repository.NewAttachmentRepository(gdb)
	fieldRepo := repository.NewFieldValueRepository(gdb)
	catalog := repository.NewWorkflowCatalogRepository(gdb)
	detailReader := repository.NewDetailReader(gdb)
	catalogOptions := repository.NewCatalogOptionsReader(gdb)

	boardReader, err := repository.NewBoardReader(gdb, &cfg.Board)
	if err != nil {
		return nil, err
	}

	resolver := cache.NewCachedResolver(repository.NewRoleTaskRepository(gdb), redisClient, log)
	detailCache := cache.NewTicketDetailCache(redisClient)

	fileStore, err := storage.NewLocalFileStore(&cfg.Storage)
	if err != nil {
		return nil, err
	}

	txManager := db.NewTransactionManager(gdb)

	createTicketUC := usecases.NewCreateTicketUseCase(
		resolver, catalog, ticketRepo, logRepo, attachRepo, fieldRepo, fileStore, txManager, log)
	executeResultUC := usecases.NewExecuteResultUseCase(
		resolver, catalog, ticketRepo, logRepo, detailCache, txManager, log)
	addCommentUC := usecases.NewAddCommentUseCase(ticketRepo, logRepo, detailCache, log)
	addAttachmentUC := usecases.NewAddAttachmentUseCase(
		ticketRepo, logRepo, attachRepo, fileStore, detailCache, txManager, log)
	downloadUC := usecases.NewDownloadAttachmentUseCase(attachRepo, fileStore, log)
	getDetailUC := usecases.NewGetTicketDetailUseCase(resolver, detailReader, cfg.Board.LogPageSize, log)
	cachedDetailUC := cache.NewCachedDetailExecutor(getDetailUC, detailCache, log)
	listBoardUC := usecases.NewListBoardUseCase(boardReader, log)
	creationCatalogUC := usecases.NewListCreationCatalogUseCase(catalogOptions, log)
	subtypeFieldsUC := usecases.NewListSubtypeFieldsUseCase(catalog, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	engine := gin.New()

	return &Router{
		engine:         engine,
		cfg:            cfg,
		authMiddleware: middleware.NewAuthMiddleware(jwtService, log),
		ticketHandler: handlers.NewTicketHandler(
			createTicketUC, cachedDetailUC, executeResultUC, addCommentUC, addAttachmentUC, downloadUC),
		boardHandler:   handlers.NewBoardHandler(listBoardUC),
		catalogHandler: handlers.NewCatalogHandler(creationCatalogUC, subtypeFieldsUC),
		logger:         log,
	}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api/v1")
	api.Use(r.authMiddleware.RequireAuth())
	{
		tickets := api.Group("/tickets")
		{
			tickets.POST("", r.ticketHandler.CreateTicket)
			tickets.GET("/:id", r.ticketHandler.GetTicketDetail)
			tickets.POST("/:id/results", r.ticketHandler.ExecuteResult)
			tickets.POST("/:id/comments", r.ticketHandler.AddComment)
			tickets.POST("/:id/attachments", r.ticketHandler.AddAttachment)
			tickets.GET("/:id/attachments/:attachmentId", r.ticketHandler.DownloadAttachment)
		}

		api.GET("/board", r.boardHandler.GetBoard)

		catalog := api.Group("/catalog")
		{
			catalog.GET("/creation", r.catalogHandler.GetCreationCatalog)
			catalog.GET("/subtypes/:id/fields", r.catalogHandler.GetSubtypeFields)
		}
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
