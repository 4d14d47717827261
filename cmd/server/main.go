package main

import (
	"log"
	"net/http"

	"livre_manager_go/config"
	"livre_manager_go/db"
	"livre_manager_go/handlers"
	"livre_manager_go/models"
	"livre_manager_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.Acquisition{},
		&models.AcquiredItem{},
		&models.Book{},
		&models.BookAuthor{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Date input policy
	services.InitDatePolicy(cfg.StrictDateInput)
	if cfg.DefaultTimezone != "" {
		if _, err := services.ResolveTimezone(cfg.DefaultTimezone); err != nil {
			log.Fatalf("Invalid DEFAULT_TIMEZONE %q: %v", cfg.DefaultTimezone, err)
		}
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Form support data
	e.GET("/api/timezones", handlers.GetTimezonesHandler)

	// Acquisition routes
	acquisitionRoutes := e.Group("/api/acquisitions")
	{
		acquisitionRoutes.GET("", handlers.GetAcquisitionsHandler)
		acquisitionRoutes.GET("/:id", handlers.GetAcquisitionHandler)
		acquisitionRoutes.POST("", handlers.CreateAcquisitionHandler)
		acquisitionRoutes.PUT("/:id", handlers.UpdateAcquisitionHandler)
		acquisitionRoutes.DELETE("/:id", handlers.DeleteAcquisitionHandler)
	}

	// Book routes
	bookRoutes := e.Group("/api/books")
	{
		bookRoutes.GET("", handlers.GetBooksHandler)
		bookRoutes.GET("/:id", handlers.GetBookHandler)
		bookRoutes.POST("", handlers.CreateBookHandler)
		bookRoutes.PUT("/:id", handlers.UpdateBookHandler)
		bookRoutes.DELETE("/:id", handlers.DeleteBookHandler)
		bookRoutes.GET("/import/template", handlers.BookImportTemplateHandler)
		bookRoutes.POST("/import", handlers.ImportBooksHandler)
	}

	// Start server
	log.Printf("Starting server on port %s (%s)", cfg.ServerPort, cfg.Environment)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
