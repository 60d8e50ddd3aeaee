package main

import (
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/sitee-labs/sitee-backend/config"
	"github.com/sitee-labs/sitee-backend/internal/bootstrap"
	"github.com/sitee-labs/sitee-backend/internal/generation/inference"
	genservice "github.com/sitee-labs/sitee-backend/internal/generation/service"
	historyrepo "github.com/sitee-labs/sitee-backend/internal/history/repository"
	"github.com/sitee-labs/sitee-backend/internal/publish"
	"github.com/sitee-labs/sitee-backend/internal/scheduler"
	"github.com/sitee-labs/sitee-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	fileStore := store.NewFileStore(cfg.Store.UsersFile)

	client := inference.New(inference.Options{
		BaseURL:     cfg.Inference.BaseURL,
		APIKey:      cfg.Inference.APIKey,
		Model:       cfg.Inference.Model,
		VisionModel: cfg.Inference.VisionModel,
	})
	orchestrator := genservice.NewOrchestrator(client)

	publisher := publish.NewClient(cfg.Publish.Token, cfg.Publish.TeamID)
	if !publisher.Configured() {
		log.Println("VERCEL_ACCESS_TOKEN not set; publishing endpoints will refuse requests")
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	} else {
		log.Println("REDIS_ADDR not set; generation history disabled")
	}
	history := historyrepo.NewRepo(rdb)

	backup := scheduler.NewBackup(cfg.Store.UsersFile, cfg.Store.BackupDir)
	if err := backup.Start(); err != nil {
		log.Printf("backup scheduler: %v", err)
	}
	defer backup.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:  "sitee-backend",
		Version:      cfg.App.Version,
		Store:        fileStore,
		Orchestrator: orchestrator,
		Publisher:    publisher,
		History:      history,
		Redis:        rdb,
	})

	log.Printf("sitee api listening on :%s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
