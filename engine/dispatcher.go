package engine

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"
)

// Dispatcher races engines with staged escalation: the cheapest engine
// starts at once and heavier ones join after their delay unless an
// earlier one already returned the page. A Dispatcher is itself an Engine.
type Dispatcher struct {
	engines []Engine
	delays  []time.Duration
	memory  *HostMemory
}

// NewDispatcher creates a Dispatcher. engines[i] starts delays[i] after the
// race begins; missing delays are zero.
func NewDispatcher(engines []Engine, delays []time.Duration, memory *HostMemory) *Dispatcher {
	d := make([]time.Duration, len(engines))
	copy(d, delays)
	return &Dispatcher{engines: engines, delays: d, memory: memory}
}

func (d *Dispatcher) Name() string { return "auto" }

// Fetch tries the engine that last won for the URL's host, then falls back
// to the full race. It returns the last error when every engine fails.
func (d *Dispatcher) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	host := hostOf(req.URL)

	if d.memory != nil {
		if remembered := d.memory.Get(host); remembered != "" {
			for _, eng := range d.engines {
				if eng.Name() != remembered {
					continue
				}
				result, err := eng.Fetch(ctx, req)
				if err == nil {
					slog.Debug("engine memory hit", "host", host, "engine", remembered)
					return result, nil
				}
				slog.Info("remembered engine failed, racing all engines",
					"host", host, "engine", remembered, "error", err)
				d.memory.Delete(host)
				break
			}
		}
	}
	return d.race(ctx, req, host)
}

func (d *Dispatcher) race(ctx context.Context, req *FetchRequest, host string) (*FetchResult, error) {
	type outcome struct {
		result *FetchResult
		err    error
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	outcomes := make(chan outcome, len(d.engines))
	var wg sync.WaitGroup
	for i, eng := range d.engines {
		wg.Add(1)
		go func(e Engine, delay time.Duration) {
			defer wg.Done()
			if delay > 0 {
				timer := time.NewTimer(delay)
				defer timer.Stop()
				select {
				case <-raceCtx.Done():
					return
				case <-timer.C:
				}
			}
			if raceCtx.Err() != nil {
				return
			}
			slog.Debug("engine starting", "engine", e.Name(), "url", req.URL)
			result, err := e.Fetch(raceCtx, req)
			if err != nil {
				slog.Debug("engine failed", "engine", e.Name(), "url", req.URL, "error", err)
			}
			outcomes <- outcome{result: result, err: err}
		}(eng, d.delays[i])
	}
	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var lastErr error
	for o := range outcomes {
		if o.err != nil {
			lastErr = o.err
			continue
		}
		cancel()
		slog.Info("engine won race", "engine", o.result.EngineName, "url", req.URL)
		if d.memory != nil {
			d.memory.Set(host, o.result.EngineName)
		}
		return o.result, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("dispatcher: all engines failed for %s", req.URL)
	}
	return nil, lastErr
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Hostname()
}
