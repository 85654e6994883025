package main

import (
	"utmforge/internal/campaigns/events"
	"utmforge/internal/campaigns/handler"
	"utmforge/internal/campaigns/repository"
	"utmforge/internal/campaigns/service"
	"utmforge/internal/campaigns/validator"
	"utmforge/internal/extraction"
	"utmforge/pkg/app"
	"utmforge/pkg/config"
	"utmforge/pkg/reach"
)

func main() {
	cfg := config.Load("campaigns")
	cfg.Log.Info("Starting Campaigns service")

	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	publisher := initPublisher(cfg)
	defer publisher.Close()

	campaignService := initServices(cfg, publisher)

	application := app.NewApplication()
	application.SetApp(cfg,
		handler.NewCampaignHandler(campaignService),
		handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
	)
	application.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, campaign events disabled")
		return events.NoopPublisher{}
	}

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka publisher", "error", err)
	}

	cfg.Log.Info("Campaign event publisher initialized", "topic", cfg.KafkaTopic)
	return publisher
}

func initServices(cfg *config.Config, publisher events.Publisher) service.CampaignService {
	campaignValidator := validator.NewCampaignValidator()
	linkRepo := repository.NewMongoLinkRepository(cfg)
	extractor := extraction.NewClient(cfg)
	checker := reach.NewChecker(cfg.ReachTimeout)

	campaignService := service.NewCampaignService(
		linkRepo,
		campaignValidator,
		extractor,
		checker,
		publisher,
		cfg,
	)

	cfg.Log.Info("Campaign service initialized")
	return campaignService
}
