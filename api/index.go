package handler

import (
	"net/http"

	"manta/config"
	"manta/di"
	"manta/shared/logger"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	cfg.MustValidate()

	service := di.InitializeService()
	service.Handler().ServeHTTP(w, r)
}
