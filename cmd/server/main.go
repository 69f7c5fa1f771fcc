package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	_ "carlot/docs" // swagger docs

	"carlot/internal/auth"
	"carlot/internal/cache"
	"carlot/internal/config"
	"carlot/internal/db"
	"carlot/internal/handler"
	"carlot/internal/middleware"
	"carlot/internal/model"
	"carlot/internal/repository"
	"carlot/internal/router"
	"carlot/internal/service"
)

// @title Carlot Dealership API
// @version 1.0
// @description Dealership backend: public vehicle browsing, cookie JWT accounts, staff inventory CRUD, and an admin approval workflow.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
	cfg := config.Load()

	e := echo.New()
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Vehicle{},
			&model.Classification{},
			&model.Account{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Account{},
		&model.Classification{},
		&model.Vehicle{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(gormDB)
	classRepo := repository.NewClassificationRepository(gormDB)
	vehicleRepo := repository.NewVehicleRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	flash := middleware.NewFlashManager(cfg.SessionSecret)
	authMW := middleware.NewAuth(cfg.JWTSecret, tokenStore, flash)

	// Initialize services
	authService := service.NewAuthService(accountRepo, jwtService, tokenStore)
	accountService := service.NewAccountService(accountRepo)
	inventoryService := service.NewInventoryService(classRepo, vehicleRepo, cacheClient)
	approvalService := service.NewApprovalService(classRepo, vehicleRepo, cacheClient)

	// Initialize handlers
	baseHandler := handler.NewBaseHandler(inventoryService)
	accountHandler := handler.NewAccountHandler(authService, accountService, inventoryService, flash)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	adminHandler := handler.NewAdminHandler(approvalService, inventoryService)

	// Register routes
	router.Register(
		e,
		cfg,
		authMW,
		baseHandler,
		accountHandler,
		inventoryHandler,
		adminHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
