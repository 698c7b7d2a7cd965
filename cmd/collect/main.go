package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/DeejuSivadas/Malayalam-News/internal/aggregator"
	"github.com/DeejuSivadas/Malayalam-News/internal/collector"
	"github.com/DeejuSivadas/Malayalam-News/internal/config"
	"github.com/DeejuSivadas/Malayalam-News/internal/fetch"
	"github.com/DeejuSivadas/Malayalam-News/internal/source"
)

// runs a single aggregation pass and prints the result as JSON, for manual
// inspection of sources and extraction rules
func main() {
	cfg := config.Load()

	sources, err := source.Load(cfg.SourcesFile)
	if err != nil {
		log.Fatalf("load sources failed: %v", err)
	}

	client := fetch.NewClient(cfg.FetchTimeout)
	agg := aggregator.New(collector.BuildFetchers(source.Active(sources), client), client, aggregator.Options{
		RecencyWindow: cfg.RecencyWindow,
		EnrichWorkers: cfg.EnrichWorkers,
		EnrichMax:     cfg.EnrichMax,
	})

	res, err := agg.Run()
	if err != nil {
		log.Fatalf("aggregation failed: %v", err)
	}

	for _, st := range res.Stats {
		if st.Status == aggregator.StatusOK {
			log.Printf("source %s: %d items", st.Source, st.Count)
		} else {
			log.Printf("source %s: error: %s", st.Source, st.Error)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(res.Items); err != nil {
		log.Fatalf("encode result: %v", err)
	}
}
