package server

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/docs"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/handler"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/middleware"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/repository"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Options struct {
	Logger    *slog.Logger
	Driver    string
	Version   string
	StartTime time.Time
}

// NewRouter wires every catalog resource onto a fresh engine.
func NewRouter(database *gorm.DB, opts Options) (*gin.Engine, error) {
	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying DB: %w", err)
	}

	e := gin.New()
	e.Use(
		middleware.RequestID(),
		middleware.AccessLog(opts.Logger),
		gin.Recovery(),
	)

	if err := e.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}

	e.GET("/", handler.Home)

	healthHandler := handler.NewHealthHandler(sqlDB, opts.Driver, opts.StartTime, opts.Version)
	healthHandler.RegisterRoutes(e)

	authors := repository.NewAuthorRepository(database)
	categories := repository.NewCategoryRepository(database)
	books := repository.NewBookRepository(database)
	users := repository.NewUserRepository(database)
	members := repository.NewMemberRepository(database)
	loans := repository.NewLoanRepository(database)

	api := e.Group("")
	{
		handler.NewAuthorHandler(authors).RegisterRoutes(api)
		handler.NewCategoryHandler(categories).RegisterRoutes(api)
		handler.NewBookHandler(books, authors, categories).RegisterRoutes(api)
		handler.NewMemberHandler(members, users).RegisterRoutes(api)
		handler.NewLoanHandler(loans, members, books).RegisterRoutes(api)
	}

	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Version = opts.Version
	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return e, nil
}
