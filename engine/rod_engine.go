package engine

import (
	"context"
	"fmt"
)

// RodFetchFunc runs one browser fetch. It is injected from main so that
// engine never imports the browser package.
type RodFetchFunc func(ctx context.Context, req *FetchRequest) (*FetchResult, error)

// RodEngine is a browser-backed engine. The stealth variant always sets
// Stealth on the request it forwards.
type RodEngine struct {
	fetch        RodFetchFunc
	forceStealth bool
	name         string
}

// NewRodEngine creates a RodEngine named "rod", or "rod-stealth" when
// forceStealth is set.
func NewRodEngine(fetch RodFetchFunc, forceStealth bool) *RodEngine {
	name := "rod"
	if forceStealth {
		name = "rod-stealth"
	}
	return &RodEngine{fetch: fetch, forceStealth: forceStealth, name: name}
}

func (e *RodEngine) Name() string { return e.name }

func (e *RodEngine) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	if e.fetch == nil {
		return nil, fmt.Errorf("%s: no browser configured", e.name)
	}
	r := *req
	if e.forceStealth {
		r.Stealth = true
	}
	result, err := e.fetch(ctx, &r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.name, err)
	}
	result.EngineName = e.name
	return result, nil
}
