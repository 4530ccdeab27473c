// Package catalog owns the job snapshot fetched from the provider and
// answers search/sort queries over it.
package catalog

import (
	"context"
	"errors"
	"io"
	"log"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"

	"job-finder/internal/model"
)

type Options struct {
	Logger *log.Logger
	Locale language.Tag
	// NewID generates ids for entries without one. Defaults to uuid v4.
	NewID func() string
}

// LoadReport describes what the most recent successful load did to the
// raw payload.
type LoadReport struct {
	Shape        PayloadShape `json:"shape"`
	Entries      int          `json:"entries"`
	Kept         int          `json:"kept"`
	Skipped      int          `json:"skipped"`
	Duplicates   int          `json:"duplicates"`
	GeneratedIDs int          `json:"generated_ids"`
	Invalid      int          `json:"invalid"`
	Warnings     []string     `json:"warnings,omitempty"`
	LoadedAt     time.Time    `json:"loaded_at"`
}

type Catalog struct {
	provider Provider
	logger   *log.Logger
	locale   language.Tag
	newID    func() string

	group singleflight.Group

	mu      sync.RWMutex
	state   model.CatalogState
	jobs    []model.Job
	report  LoadReport
	lastErr error
}

func New(provider Provider, opts Options) *Catalog {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	locale := opts.Locale
	if locale == language.Und {
		locale = DefaultLocale
	}
	return &Catalog{
		provider: provider,
		logger:   logger,
		locale:   locale,
		newID:    opts.NewID,
		state:    model.CatalogIdle,
		jobs:     []model.Job{},
	}
}

// Load fetches and normalizes a fresh snapshot. Calls that overlap an
// in-flight load join it and receive the same result; the joined call runs
// under the first caller's context. A failed load keeps the previous
// snapshot.
func (c *Catalog) Load(ctx context.Context) ([]model.Job, error) {
	if c.provider == nil {
		return nil, &FetchError{Err: errors.New("no job provider configured")}
	}

	v, err, shared := c.group.Do("load", func() (any, error) {
		return c.fetchAndApply(ctx)
	})
	if shared {
		c.logger.Printf("[catalog] load joined an in-flight request")
	}
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]model.Job)), nil
}

func (c *Catalog) fetchAndApply(ctx context.Context) ([]model.Job, error) {
	c.mu.Lock()
	if err := model.TransitionCatalogState(&c.state, model.CatalogLoading); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.mu.Unlock()

	payload, err := c.provider.Fetch(ctx)
	if err != nil {
		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			err = &FetchError{Err: err}
		}
		c.mu.Lock()
		_ = model.TransitionCatalogState(&c.state, model.CatalogLoadFailed)
		c.lastErr = err
		kept := len(c.jobs)
		c.mu.Unlock()
		c.logger.Printf("[catalog] load failed (keeping %d previous jobs): %v", kept, err)
		return nil, err
	}

	res := normalizePayload(payload, c.newID)
	for _, w := range res.Warnings {
		c.logger.Printf("[catalog] warning: %s", w)
	}
	report := LoadReport{
		Shape:        res.Shape,
		Entries:      res.Entries,
		Kept:         len(res.Jobs),
		Skipped:      res.Skipped,
		Duplicates:   res.Duplicates,
		GeneratedIDs: res.GeneratedIDs,
		Invalid:      res.Invalid,
		Warnings:     res.Warnings,
		LoadedAt:     time.Now().UTC(),
	}

	c.mu.Lock()
	_ = model.TransitionCatalogState(&c.state, model.CatalogLoaded)
	c.jobs = res.Jobs
	c.report = report
	c.lastErr = nil
	c.mu.Unlock()

	c.logger.Printf("[catalog] loaded %d jobs (shape=%s entries=%d duplicates=%d generated_ids=%d)",
		report.Kept, report.Shape, report.Entries, report.Duplicates, report.GeneratedIDs)
	return res.Jobs, nil
}

// Query filters the current snapshot by search text and orders it by key.
// It never mutates the snapshot.
func (c *Catalog) Query(search string, key model.SortKey) []model.Job {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Project(c.jobs, search, key, c.locale)
}

func (c *Catalog) Jobs() []model.Job {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.jobs)
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.jobs)
}

func (c *Catalog) State() model.CatalogState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Catalog) LastReport() LoadReport {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r := c.report
	r.Warnings = slices.Clone(c.report.Warnings)
	return r
}

func (c *Catalog) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Locale is the collation locale used by Query.
func (c *Catalog) Locale() language.Tag {
	return c.locale
}

// DiscardLogger is handy for callers that render their own diagnostics.
func DiscardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
