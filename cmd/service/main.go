package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"admin-dashboard/internal/admin"
	"admin-dashboard/internal/auth"
	"admin-dashboard/internal/catalog"
	"admin-dashboard/internal/gateway"
)

func main() {
	ctx := context.Background()

	cfg, err := loadConfigFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	// One client for the open endpoints, one carrying the support bearer
	// token. Same base URL for every page.
	api := gateway.New(cfg.APIURL, gateway.WithTimeout(cfg.HTTPTimeout))
	supportAPI := gateway.New(cfg.APIURL,
		gateway.WithTimeout(cfg.HTTPTimeout),
		gateway.WithTokenSource(auth.NewFileTokenSource(cfg.SupportTokenFile)),
	)

	svcs := admin.Services{
		Music:     catalog.NewMusicService(api),
		Samples:   catalog.NewSampleService(api),
		Hot:       catalog.NewHotService(api),
		Playlists: catalog.NewPlaylistService(api),
		Store:     catalog.NewStoreService(api),
		Support:   catalog.NewSupportService(supportAPI),
	}

	// Redis is optional: without it upload progress stays in-process.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("admin-dashboard: invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(opt)
		defer rdb.Close()
	}

	hub := admin.NewHub()
	srv := admin.NewServer(svcs, hub, rdb)

	go hub.Run()
	if rdb != nil {
		go srv.RunRedisSubscriber(ctx)
	}

	r := srv.Router(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Timeout(60*time.Second),
	)

	log.Printf("admin-dashboard listening on :%s (API=%s)", cfg.Port, cfg.APIURL)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("admin-dashboard: %v", err)
	}
}
