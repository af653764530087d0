package main

import (
	"manta/config"
	"manta/di"
	"manta/shared/logger"
)

// @title Manta Dive Center API
// @version 1.0
// @description Booking, rental and enrollment backend for a dive center.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	cfg.MustValidate()

	http := di.InitializeService()
	http.Serve()
}
