package main

import (
	"log"

	"github.com/kanbankarma/karma/internal/config"
	"github.com/kanbankarma/karma/internal/logger"
	"github.com/kanbankarma/karma/server"
)

func main() {
	cfg := config.LoadServer()

	if cfg.JWTSecret == "" {
		log.Fatal("KARMA_JWT_SECRET must be set in production")
	}

	logCfg := logger.DefaultConfig()
	logCfg.Console = true
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	defer func() {
		if err := srv.Close(); err != nil {
			log.Printf("Error closing server: %v", err)
		}
	}()

	log.Printf("Kanban Karma server starting on :%s (%s)", cfg.Port, cfg.Env)
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
