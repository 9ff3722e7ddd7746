package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/macrolens/causeway/internal/config"
	"github.com/macrolens/causeway/internal/logger"
	"github.com/macrolens/causeway/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Could not load %s: %v. Continuing with environment configuration only", cfgPath, err)
		cfg = &config.Config{}
	}

	logg, err := logger.New(cfg.Server.Mode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	srv, err := server.NewServer(cfg, logg)
	if err != nil {
		logg.Fatal("failed to initialize server", "error", err)
	}

	port := cfg.Server.Port
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	if port == "" {
		port = "8080"
	}

	r := srv.SetupRouter()
	logg.Info("starting causeway server", "port", port)
	if err := r.Run(":" + port); err != nil {
		logg.Fatal("server exited", "error", err)
	}
}
