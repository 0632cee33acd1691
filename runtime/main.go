package main

import (
	"github.com/almaqal-media/almaqal_api/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.PostgresService{},
		&services.RedisService{},
		&services.MonitoringService{},

		&services.JWTService{},
		&services.RateLimitService{},
		&services.SecurityService{},
		&services.AnalyticsService{},

		&services.AdsService{},
		&services.ContentService{},
		&services.ToolsService{},
		&services.NewsletterService{},
		&services.AuthService{},
		&services.MediaService{},
		&services.SEOService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
