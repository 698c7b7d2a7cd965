package main

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/DeejuSivadas/Malayalam-News/internal/aggregator"
	"github.com/DeejuSivadas/Malayalam-News/internal/api"
	"github.com/DeejuSivadas/Malayalam-News/internal/cache"
	"github.com/DeejuSivadas/Malayalam-News/internal/collector"
	"github.com/DeejuSivadas/Malayalam-News/internal/config"
	"github.com/DeejuSivadas/Malayalam-News/internal/fetch"
	"github.com/DeejuSivadas/Malayalam-News/internal/scheduler"
	"github.com/DeejuSivadas/Malayalam-News/internal/source"
)

func main() {
	cfg := config.Load()

	sources, err := source.Load(cfg.SourcesFile)
	if err != nil {
		log.Fatalf("load sources failed: %v", err)
	}
	active := source.Active(sources)
	if len(active) == 0 {
		log.Fatalf("no enabled sources in %s", cfg.SourcesFile)
	}
	log.Printf("%d sources configured, %d active", len(sources), len(active))

	client := fetch.NewClient(cfg.FetchTimeout)
	agg := aggregator.New(collector.BuildFetchers(active, client), client, aggregator.Options{
		RecencyWindow: cfg.RecencyWindow,
		EnrichWorkers: cfg.EnrichWorkers,
		EnrichMax:     cfg.EnrichMax,
	})
	gate := cache.NewGate(cfg.CacheTTL, agg.Run)

	// optional cron prewarm of the cache
	if cfg.CronSpec != "" {
		s, err := scheduler.New(cfg.CronSpec, gate)
		if err != nil {
			log.Fatalf("init scheduler failed: %v", err)
		}
		s.Start()
	}

	r := gin.Default()
	apiServer := api.NewServer(gate, cfg.RequestTimeout)
	apiServer.RegisterRoutes(r)

	// host the PWA frontend when a web root is configured
	if cfg.WebRoot != "" {
		assetsDir := filepath.Join(cfg.WebRoot, "assets")
		indexFile := filepath.Join(cfg.WebRoot, "index.html")
		r.Static("/assets", assetsDir)
		r.StaticFile("/manifest.json", filepath.Join(cfg.WebRoot, "manifest.json"))
		r.StaticFile("/sw.js", filepath.Join(cfg.WebRoot, "sw.js"))
		r.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet {
				c.Status(http.StatusNotFound)
				return
			}
			c.File(indexFile)
		})
	}

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}
