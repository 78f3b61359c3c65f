package main

import (
	"log"
	"os"

	"newsline/internal/app"
	"newsline/internal/config"
)

func main() {
	configPath := os.Getenv("NEWSLINE_CONFIG")
	if configPath == "" {
		configPath = "config.json"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("FATAL: could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("FATAL: invalid config: %v", err)
	}
	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("FATAL: could not initialize application: %v", err)
	}
	if err := application.Run(); err != nil {
		log.Fatalf("FATAL: application failed: %v", err)
	}
}
