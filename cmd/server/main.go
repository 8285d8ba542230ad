package main

import (
	"log"

	"github.com/woffu/woffu/internal/config"
	"github.com/woffu/woffu/internal/database"
	"github.com/woffu/woffu/internal/routes"
	"github.com/woffu/woffu/internal/services"
)

func main() {
	log.Println("Starting application...")

	// Load configuration
	cfg := config.Load()
	log.Printf("Config loaded. Database Type: %s", cfg.DatabaseType)

	// Initialize database
	log.Println("Initializing database connection...")
	if err := database.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	log.Println("Database initialized successfully.")

	// Seed leader account
	authService := services.NewAuthService(cfg, database.GetDB())
	if err := routes.SeedLeader(cfg, authService); err != nil {
		log.Printf("Warning: failed to seed leader account: %v", err)
	} else {
		log.Println("Leader account ready (email: " + cfg.LeaderEmail + ")")
	}

	// Setup router
	log.Println("Setting up router...")
	router := routes.SetupRouter(cfg)

	// Start server
	addr := cfg.ServerHost + ":" + cfg.ServerPort
	log.Printf("Server starting on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
