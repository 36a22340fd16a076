package main

import (
	"fmt"

	"em-check/internal/config"
	"em-check/internal/database"
	"em-check/internal/logger"
	"em-check/internal/server"

	logrus "github.com/sirupsen/logrus"
)

func main() {
	logger.Setup()

	cfg := config.Load()
	database.Init(cfg)

	r := server.NewRouter(cfg)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logrus.Infof("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		logrus.Fatalf("server error: %v", err)
	}
}
