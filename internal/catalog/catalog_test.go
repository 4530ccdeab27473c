package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/text/language"

	"job-finder/internal/model"
)

func newTestCatalog(p Provider) *Catalog {
	return New(p, Options{Logger: DiscardLogger(), NewID: sequentialIDs()})
}

func TestLoadThenQueryScenario(t *testing.T) {
	c := newTestCatalog(StaticProvider(`[{"id":"a","companyName":"Zed"},{"id":"b","companyName":"Acorn"}]`))
	if c.State() != model.CatalogIdle {
		t.Fatalf("expected idle before load, got %q", c.State())
	}
	if got := c.Query("", model.SortNone); len(got) != 0 {
		t.Fatalf("expected no results before load, got %d", len(got))
	}

	jobs, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if c.State() != model.CatalogLoaded {
		t.Fatalf("expected loaded, got %q", c.State())
	}

	got := c.Query("", model.SortCompany)
	if ids(got) != "b,a" {
		t.Fatalf("expected b,a, got %s", ids(got))
	}
}

func TestQueryEmptySearchNoSortIsIdempotent(t *testing.T) {
	c := newTestCatalog(StaticProvider(`[{"id":"3"},{"id":"1"},{"id":"2"},{"id":"1"}]`))
	if _, err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	first := c.Query("", model.SortNone)
	second := c.Query("", model.SortNone)
	if ids(first) != "3,1,2" || ids(second) != "3,1,2" {
		t.Fatalf("expected stable load order 3,1,2, got %s then %s", ids(first), ids(second))
	}
	first[0].Title = "mutated"
	if c.Jobs()[0].Title == "mutated" {
		t.Fatal("query result aliases the catalog snapshot")
	}
}

func TestLoadOverHTTP(t *testing.T) {
	accept := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept <- r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jobs":[{"id":"1","title":"Engineer","companyName":"Acme","jobType":"full-time"}]}`))
	}))
	defer srv.Close()

	c := newTestCatalog(NewHTTPProvider(srv.URL, time.Second))
	jobs, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if gotAccept := <-accept; gotAccept != "application/json" {
		t.Fatalf("expected Accept: application/json, got %q", gotAccept)
	}
	if len(jobs) != 1 || jobs[0].JobType != "Full-time" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
	if r := c.LastReport(); r.Shape != ShapeJobsObject || r.Kept != 1 {
		t.Fatalf("unexpected report: %+v", r)
	}
}

func TestLoadNonSuccessStatusIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestCatalog(NewHTTPProvider(srv.URL, time.Second))
	_, err := c.Load(context.Background())
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fetchErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", fetchErr.StatusCode)
	}
	if c.State() != model.CatalogLoadFailed {
		t.Fatalf("expected load_failed, got %q", c.State())
	}
}

type scriptedProvider struct {
	mu    sync.Mutex
	steps []func() ([]byte, error)
}

func (p *scriptedProvider) Fetch(ctx context.Context) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	step := p.steps[0]
	if len(p.steps) > 1 {
		p.steps = p.steps[1:]
	}
	return step()
}

func TestFailedRefreshKeepsPreviousSnapshot(t *testing.T) {
	p := &scriptedProvider{steps: []func() ([]byte, error){
		func() ([]byte, error) { return []byte(`[{"id":"1"},{"id":"2"}]`), nil },
		func() ([]byte, error) { return nil, errors.New("connection reset") },
		func() ([]byte, error) { return []byte(`[{"id":"9"}]`), nil },
	}}
	c := newTestCatalog(p)

	if _, err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	_, err := c.Load(context.Background())
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected plain provider error to be wrapped as FetchError, got %v", err)
	}
	if c.State() != model.CatalogLoadFailed {
		t.Fatalf("expected load_failed, got %q", c.State())
	}
	if got := c.Query("", model.SortNone); ids(got) != "1,2" {
		t.Fatalf("expected stale snapshot 1,2 after failed refresh, got %s", ids(got))
	}
	if c.LastError() == nil {
		t.Fatal("expected LastError to be set")
	}

	if _, err := c.Load(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if got := c.Query("", model.SortNone); ids(got) != "9" {
		t.Fatalf("expected snapshot replaced wholesale, got %s", ids(got))
	}
	if c.LastError() != nil {
		t.Fatalf("expected LastError cleared, got %v", c.LastError())
	}
}

func TestMalformedPayloadLoadsEmptyWithWarning(t *testing.T) {
	c := newTestCatalog(StaticProvider(`{"results":[{"id":"1"}]}`))
	jobs, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("malformed payload must not be an error: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected zero jobs, got %d", len(jobs))
	}
	r := c.LastReport()
	if r.Shape != ShapeUnknown || len(r.Warnings) == 0 {
		t.Fatalf("expected unknown shape with warning, got %+v", r)
	}
}

type blockingProvider struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (p *blockingProvider) Fetch(ctx context.Context) ([]byte, error) {
	if p.calls.Add(1) == 1 {
		close(p.started)
	}
	<-p.release
	return []byte(`[{"id":"1"},{"id":"2"}]`), nil
}

func TestOverlappingLoadsShareOneFetch(t *testing.T) {
	p := &blockingProvider{started: make(chan struct{}), release: make(chan struct{})}
	c := newTestCatalog(p)

	type result struct {
		jobs []model.Job
		err  error
	}
	results := make(chan result, 2)
	load := func() {
		jobs, err := c.Load(context.Background())
		results <- result{jobs, err}
	}

	go load()
	<-p.started
	if c.State() != model.CatalogLoading {
		t.Fatalf("expected loading while fetch is in flight, got %q", c.State())
	}
	go load()

	deadline := time.Now().Add(2 * time.Second)
	for c.waiters.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("second load never joined")
		}
		time.Sleep(time.Millisecond)
	}
	// Give the second caller time to enter the singleflight group.
	time.Sleep(20 * time.Millisecond)
	close(p.release)

	for i := 0; i < 2; i++ {
		r := <-results
		if r.err != nil {
			t.Fatalf("load %d failed: %v", i, r.err)
		}
		if ids(r.jobs) != "1,2" {
			t.Fatalf("load %d unexpected jobs: %s", i, ids(r.jobs))
		}
	}
	if got := p.calls.Load(); got != 1 {
		t.Fatalf("expected one provider fetch for overlapping loads, got %d", got)
	}
	if c.State() != model.CatalogLoaded {
		t.Fatalf("expected loaded, got %q", c.State())
	}
}

func TestLoadWithoutProvider(t *testing.T) {
	c := New(nil, Options{Logger: DiscardLogger()})
	_, err := c.Load(context.Background())
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
}

func TestStaticProviderHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newTestCatalog(StaticProvider(`[]`))
	if _, err := c.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSalarySortWithNonNumericSalaryStrings(t *testing.T) {
	c := newTestCatalog(StaticProvider(`[{"id":"a","minSalary":300,"maxSalary":300},{"id":"n","minSalary":"NaN","maxSalary":"NaN"},{"id":"b","minSalary":100,"maxSalary":100}]`))
	if _, err := c.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	got := c.Query("", model.SortSalary)
	for i := 1; i < len(got); i++ {
		if !(got[i-1].SalaryMidpoint() <= got[i].SalaryMidpoint()) {
			t.Fatalf("salary order not non-decreasing at %d: %+v", i, got)
		}
	}
	if ids(got) != "n,b,a" {
		t.Fatalf("expected n,b,a, got %s", ids(got))
	}
}

func TestLocaleDefaultsToEnglish(t *testing.T) {
	if got := newTestCatalog(StaticProvider(`[]`)).Locale(); got != DefaultLocale {
		t.Fatalf("expected %v, got %v", DefaultLocale, got)
	}
	sv := New(StaticProvider(`[]`), Options{Logger: DiscardLogger(), Locale: language.Swedish})
	if got := sv.Locale(); got.String() != "sv" {
		t.Fatalf("expected sv, got %v", got)
	}
}
