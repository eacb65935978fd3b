package main

import (
	"log/slog"

	"github.com/use-agent/gridiron/cache"
	"github.com/use-agent/gridiron/config"
	"github.com/use-agent/gridiron/engine"
	"github.com/use-agent/gridiron/metrics"
	"github.com/use-agent/gridiron/pipeline"
	"github.com/use-agent/gridiron/scraper"
)

// stack is the fetch and parse machinery shared by serve, parse and batch.
type stack struct {
	pipeline *pipeline.Pipeline
	scraper  *scraper.Scraper
	cache    *cache.Cache
	memory   *engine.HostMemory
	metrics  *metrics.Metrics
}

// newStack wires the engines. Without a browser only the HTTP engine is
// available and every fetch mode uses it.
func newStack(cfg *config.Config, withBrowser bool) (*stack, error) {
	s := &stack{metrics: metrics.New()}

	httpEngine := engine.NewHTTPEngine(cfg.Engine.HTTPTimeout)
	engines := map[string]engine.Engine{
		"auto": httpEngine,
		"http": httpEngine,
	}

	if withBrowser {
		sc, err := scraper.NewScraper(cfg.Browser, cfg.Fetch)
		if err != nil {
			return nil, err
		}
		s.scraper = sc
		rod := engine.NewRodEngine(sc.Fetch, false)
		engines["browser"] = rod
		if cfg.Engine.EnableMultiEngine {
			s.memory = engine.NewHostMemory(cfg.Engine.MemoryTTL)
			engines["auto"] = engine.NewDispatcher(
				[]engine.Engine{httpEngine, rod, engine.NewRodEngine(sc.Fetch, true)},
				cfg.Engine.EscalationDelays,
				s.memory,
			)
			slog.Info("multi-engine dispatcher enabled", "delays", cfg.Engine.EscalationDelays)
		} else {
			engines["auto"] = rod
		}
	}

	if cfg.Cache.MaxEntries > 0 {
		s.cache = cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	s.pipeline = pipeline.New(pipeline.Options{
		Engines:           engines,
		Cache:             s.cache,
		Metrics:           s.metrics,
		BaseURL:           cfg.Fetch.BaseURL,
		DefaultTimeout:    cfg.Fetch.DefaultTimeout,
		MaxTimeout:        cfg.Fetch.MaxTimeout,
		RequestsPerMinute: cfg.Fetch.RequestsPerMinute,
	})
	return s, nil
}

func (s *stack) Close() {
	if s.cache != nil {
		s.cache.Stop()
	}
	if s.memory != nil {
		s.memory.Stop()
	}
	if s.scraper != nil {
		s.scraper.Close()
	}
}
