package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/repolens/pkg/cache"
	apperrors "github.com/matzehuels/repolens/pkg/errors"
	"github.com/matzehuels/repolens/pkg/source"
)

func TestNewClient(t *testing.T) {
	headers := map[string]string{"Authorization": "Bearer token"}
	client := NewClient(cache.NewMemoryCache(8, time.Hour), "test:", time.Hour, headers)

	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.kind != "test" {
		t.Errorf("NewClient() kind = %q, want %q", client.kind, "test")
	}
	if client.headers["Authorization"] != "Bearer token" {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestNewClientNilCache(t *testing.T) {
	client := NewClient(nil, "test:", time.Hour, nil)
	if client.cache == nil {
		t.Fatal("NewClient(nil) should fall back to a null cache")
	}
	if client.headers != nil {
		t.Error("NewClient() should allow nil headers")
	}
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if ua := r.Header.Get("User-Agent"); ua != UserAgent {
			t.Errorf("User-Agent = %q, want %q", ua, UserAgent)
		}
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client := NewClient(nil, "test:", time.Hour, nil)
	client.SetHTTPClient(server.Client())

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
}

func TestClientGetWithHeaders(t *testing.T) {
	var custom, override string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		custom = r.Header.Get("X-Custom")
		override = r.Header.Get("X-Override")
		w.Header().Set("X-Next-Page", "3")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewClient(nil, "test:", time.Hour, map[string]string{"X-Override": "default"})

	var resp map[string]string
	h, err := client.GetWithHeaders(context.Background(), server.URL,
		map[string]string{"X-Custom": "custom", "X-Override": "overridden"}, &resp)
	if err != nil {
		t.Fatalf("GetWithHeaders() error: %v", err)
	}
	if custom != "custom" {
		t.Errorf("custom header = %q, want %q", custom, "custom")
	}
	if override != "overridden" {
		t.Errorf("override header = %q, want %q", override, "overridden")
	}
	if got := h.Get("X-Next-Page"); got != "3" {
		t.Errorf("response header X-Next-Page = %q, want 3", got)
	}
}

func TestClientGetText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("plain text response"))
	}))
	defer server.Close()

	client := NewClient(nil, "test:", time.Hour, nil)

	text, err := client.GetText(context.Background(), server.URL, nil)
	if err != nil {
		t.Fatalf("GetText() error: %v", err)
	}
	if text != "plain text response" {
		t.Errorf("GetText() = %q, want %q", text, "plain text response")
	}
}

func TestClientGet500IsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(nil, "test:", time.Hour, nil)

	var resp map[string]string
	err := client.Get(context.Background(), server.URL, &resp)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Get() error = %v, want ErrNetwork", err)
	}
	if !cache.IsRetryable(err) {
		t.Errorf("Get() error should be retryable, got %T", err)
	}
}

func TestClientCached(t *testing.T) {
	client := NewClient(cache.NewMemoryCache(8, time.Hour), "test:", time.Hour, nil)

	type testData struct {
		Value string `json:"value"`
	}

	fetchCount := 0
	fetch := func(v *testData) func() error {
		return func() error {
			fetchCount++
			v.Value = "fetched"
			return nil
		}
	}

	var first testData
	if err := client.Cached(context.Background(), "key", false, &first, fetch(&first)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}

	var second testData
	if err := client.Cached(context.Background(), "key", false, &second, fetch(&second)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if fetchCount != 1 {
		t.Errorf("fetch count = %d, want 1", fetchCount)
	}
	if second.Value != "fetched" {
		t.Errorf("cached value = %q, want %q", second.Value, "fetched")
	}

	var third testData
	if err := client.Cached(context.Background(), "key", true, &third, fetch(&third)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if fetchCount != 2 {
		t.Errorf("fetch count after refresh = %d, want 2", fetchCount)
	}
}

func TestClientCachedFetchError(t *testing.T) {
	client := NewClient(nil, "test:", time.Hour, nil)

	fetchCount := 0
	var value string
	err := client.Cached(context.Background(), "key", false, &value, func() error {
		fetchCount++
		return ErrNotFound
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Cached() error = %v, want ErrNotFound", err)
	}
	if fetchCount != 1 {
		t.Errorf("non-retryable error fetched %d times, want 1", fetchCount)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		header    map[string]string
		want      error
		retryable bool
	}{
		{name: "200 OK", code: 200},
		{name: "204 No Content", code: 204},
		{name: "404 Not Found", code: 404, want: ErrNotFound},
		{name: "401 Unauthorized", code: 401, want: ErrUnauthorized},
		{name: "403 Forbidden", code: 403, want: ErrForbidden},
		{name: "403 rate limit", code: 403, header: map[string]string{"X-RateLimit-Remaining": "0"}, want: ErrRateLimited},
		{name: "429 Too Many Requests", code: 429, header: map[string]string{"Retry-After": "30"}, want: ErrRateLimited},
		{name: "500 Internal Server Error", code: 500, want: ErrNetwork, retryable: true},
		{name: "503 Service Unavailable", code: 503, want: ErrNetwork, retryable: true},
		{name: "400 Bad Request", code: 400, want: ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{StatusCode: tt.code, Header: http.Header{}}
			for k, v := range tt.header {
				resp.Header.Set(k, v)
			}
			err := checkStatus(resp)

			if tt.want == nil {
				if err != nil {
					t.Errorf("checkStatus() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("checkStatus() error = %v, want %v", err, tt.want)
			}
			if got := cache.IsRetryable(err); got != tt.retryable {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want apperrors.Code
	}{
		{ErrNotFound, apperrors.ErrCodeRepoNotFound},
		{ErrUnauthorized, apperrors.ErrCodeUnauthorized},
		{ErrForbidden, apperrors.ErrCodeForbidden},
		{ErrRateLimited, apperrors.ErrCodeRateLimited},
		{cache.Retryable(ErrNetwork), apperrors.ErrCodeNetwork},
		{context.DeadlineExceeded, apperrors.ErrCodeTimeout},
		{errors.New("boom"), apperrors.ErrCodeInternal},
		{apperrors.New(apperrors.ErrCodeInvalidInput, "bad"), apperrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		if got := apperrors.GetCode(Classify(tt.err, "octo/hello")); got != tt.want {
			t.Errorf("Classify(%v) code = %s, want %s", tt.err, got, tt.want)
		}
	}
	if Classify(nil, "x") != nil {
		t.Error("Classify(nil) should be nil")
	}
}

func TestLoadContents(t *testing.T) {
	files := []source.File{
		{Name: "go.mod", Path: "go.mod", Type: source.TypeFile},
		{Name: "go.mod", Path: "gone/go.mod", Type: source.TypeFile},
		{Name: "main.go", Path: "main.go", Type: source.TypeFile},
		{Name: "go.mod", Path: "dir-named-go.mod", Type: source.TypeDir},
		{Name: "go.mod", Path: "huge/go.mod", Type: source.TypeFile, Size: apperrors.MaxManifestSize + 1},
		{Name: "go.mod", Path: "tools/go.mod", Type: source.TypeFile},
	}

	var mu sync.Mutex
	var fetched []string
	opts := source.Options{Wanted: func(name string) bool { return name == "go.mod" }, MaxContents: 2}

	err := LoadContents(context.Background(), files, opts, func(_ context.Context, p string) (string, error) {
		mu.Lock()
		fetched = append(fetched, p)
		mu.Unlock()
		if p == "gone/go.mod" {
			return "", ErrNotFound
		}
		return "module " + p, nil
	})
	if err != nil {
		t.Fatalf("LoadContents() error: %v", err)
	}
	if len(fetched) != 2 {
		t.Errorf("fetched %v, want the first 2 wanted files", fetched)
	}
	if files[0].Content == nil || *files[0].Content != "module go.mod" {
		t.Errorf("go.mod content = %v", files[0].Content)
	}
	if files[1].Content != nil {
		t.Error("missing file should have no content")
	}
	if files[5].Content != nil {
		t.Error("files beyond MaxContents should have no content")
	}
}

func TestLoadContentsError(t *testing.T) {
	files := []source.File{{Name: "go.mod", Path: "go.mod", Type: source.TypeFile}}
	opts := source.Options{Wanted: func(string) bool { return true }}

	err := LoadContents(context.Background(), files, opts, func(context.Context, string) (string, error) {
		return "", ErrForbidden
	})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("LoadContents() error = %v, want ErrForbidden", err)
	}
}

func TestNormalizeRepoURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"https url", "https://github.com/user/repo", "https://github.com/user/repo"},
		{"with .git suffix", "https://github.com/user/repo.git", "https://github.com/user/repo"},
		{"git@ to https", "git@github.com:user/repo", "https://github.com/user/repo"},
		{"gitlab git@", "git@gitlab.com:group/repo.git", "https://gitlab.com/group/repo"},
		{"git:// to https", "git://github.com/user/repo", "https://github.com/user/repo"},
		{"git+ prefix", "git+https://github.com/user/repo", "https://github.com/user/repo"},
		{"trailing slash", "https://github.com/user/repo/", "https://github.com/user/repo"},
		{"with spaces", "  https://github.com/user/repo  ", "https://github.com/user/repo"},
		{"combined", "git+git@github.com:user/repo.git", "https://github.com/user/repo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeRepoURL(tt.input); got != tt.want {
				t.Errorf("NormalizeRepoURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
