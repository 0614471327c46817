package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/you/hotelauthsvc/internal/app"
	"github.com/you/hotelauthsvc/internal/config"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg, log); err != nil {
		log.Fatalf("app: %v", err)
	}
}
