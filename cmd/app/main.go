package main

import (
	"context"
	"lodging/config"
	"lodging/di"
	"lodging/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Lodging API
// @version 1.0
// @description Lodging, room and reservation management with monthly revenue reports.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Get()

	logger.Init(cfg)

	app := di.InitializeService()
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if app.StartListener(ctx) {
		log.Info().Msg("Reservation event listener started")
	}

	app.HTTP.Serve()
}
