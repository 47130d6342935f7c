package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kudosboard/internal/config"
	"kudosboard/internal/db"
	"kudosboard/internal/gif"
	"kudosboard/internal/handler"
	"kudosboard/internal/middleware"
	"kudosboard/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Logger *zap.Logger
}

func Init(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	database, err := db.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(middleware.RecoveryMiddleware(logger, cfg.IsProduction()))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// Initialize repositories
	boardRepo := repository.NewBoardRepository(database)
	cardRepo := repository.NewCardRepository(database)

	// Initialize handlers
	boardHandler := handler.NewBoardHandler(boardRepo)
	cardHandler := handler.NewCardHandler(cardRepo, boardRepo)
	gifHandler := handler.NewGifHandler(gif.NewClient(cfg.GiphyKey))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Board routes
		api.GET("/boards", boardHandler.GetAll)
		api.GET("/boards/:id", boardHandler.GetByID)
		api.POST("/boards", boardHandler.Create)
		api.PUT("/boards/:id", boardHandler.Update)
		api.DELETE("/boards/:id", boardHandler.Delete)
		api.POST("/boards/:id/upvote", boardHandler.Upvote)

		// Cards nested under their board
		api.GET("/boards/:id/cards", cardHandler.GetByBoardID)
		api.POST("/boards/:id/cards", cardHandler.Create)
		api.PUT("/boards/:id/cards/:cardId", cardHandler.UpdateOnBoard)
		api.DELETE("/boards/:id/cards/:cardId", cardHandler.DeleteOnBoard)
		api.POST("/boards/:id/cards/:cardId/upvote", cardHandler.UpvoteOnBoard)

		// Flat card routes
		api.GET("/cards/:id", cardHandler.GetByID)
		api.PUT("/cards/:id", cardHandler.Update)
		api.DELETE("/cards/:id", cardHandler.Delete)
		api.POST("/cards/:id/upvote", cardHandler.Upvote)
		api.POST("/cards/:id/pin", cardHandler.Pin)
		api.POST("/cards/:id/unpin", cardHandler.Unpin)

		// GIF search proxy
		api.GET("/gifs/search", gifHandler.Search)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return &Server{
		Engine: r,
		DB:     database,
		Config: cfg,
		Logger: logger,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Logger.Info("Server running", zap.String("port", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Logger.Fatal("Failed to listen", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	s.Logger.Info("Server exited properly")
}
