package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnFetchStart(ctx, "github", "octo/hello")
	p.OnFetchComplete(ctx, "github", "octo/hello", 12, time.Second, nil)
	p.OnAnalyzeStart(ctx, 12)
	p.OnAnalyzeComplete(ctx, "Go", 1, time.Millisecond, nil)
	p.OnExtract(ctx, "go.mod", 3, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "github")
	c.OnCacheMiss(ctx, "gitlab")
	c.OnCacheSet(ctx, "analysis", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "api.github.com", "/repos/octo/hello")
	h.OnResponse(ctx, "GET", "api.github.com", "/repos/octo/hello", 200, time.Second)
	h.OnError(ctx, "GET", "api.github.com", "/repos/octo/hello", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestMetricsHooks(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	ctx := context.Background()

	m.OnExtract(ctx, "package.json", 4, nil)
	m.OnExtract(ctx, "package.json", 0, errors.New("bad json"))
	m.OnCacheHit(ctx, "github")
	m.OnCacheMiss(ctx, "github")
	m.OnResponse(ctx, "GET", "api.github.com", "/repos/a/b", 200, time.Millisecond)
	m.OnFetchComplete(ctx, "github", "a/b", 3, time.Second, nil)

	expected := `
# HELP repolens_extractions_total Total number of dependency files processed
# TYPE repolens_extractions_total counter
repolens_extractions_total{file="package.json",status="error"} 1
repolens_extractions_total{file="package.json",status="ok"} 1
`
	if err := testutil.CollectAndCompare(m.ExtractionsTotal, strings.NewReader(expected)); err != nil {
		t.Errorf("ExtractionsTotal mismatch: %v", err)
	}
	if got := testutil.ToFloat64(m.DependenciesSeen.WithLabelValues("package.json")); got != 4 {
		t.Errorf("DependenciesSeen = %v, want 4", got)
	}
	if got := testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("github")); got != 1 {
		t.Errorf("CacheHitsTotal = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.UpstreamRequestsTotal.WithLabelValues("api.github.com", "200")); got != 1 {
		t.Errorf("UpstreamRequestsTotal = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.FetchTotal.WithLabelValues("github", "ok")); got != 1 {
		t.Errorf("FetchTotal = %v, want 1", got)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	h := m.Middleware(func(*http.Request) string { return "/api/analyze" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/analyze", nil))

	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/analyze", "418")); got != 1 {
		t.Errorf("HTTPRequestsTotal = %v, want 1", got)
	}

	rec = httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "repolens_http_requests_total") {
		t.Error("Handler() output missing repolens_http_requests_total")
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
