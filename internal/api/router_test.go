package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iconidentify/blogsmith/internal/api/handler"
	"github.com/iconidentify/blogsmith/internal/auth"
	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/imagery"
	"github.com/iconidentify/blogsmith/internal/pipeline"
	"github.com/iconidentify/blogsmith/internal/repository"
	"github.com/iconidentify/blogsmith/internal/service"
	"github.com/iconidentify/blogsmith/internal/validator"
)

type staticGenerator struct{}

func (staticGenerator) Run(ctx context.Context, rawPrompt string, observer pipeline.Observer) (*domain.GenerationResult, error) {
	return &domain.GenerationResult{Blog: domain.GeneratedBlog{Title: "T", Content: "Body text."}}, nil
}

type noImages struct{}

func (noImages) GenerateImage(ctx context.Context, prompt string, style imagery.Style, size string) imagery.Result {
	return imagery.Result{Images: []imagery.Image{}, Error: "disabled"}
}

func newTestRouter(t *testing.T) (http.Handler, *auth.TokenIssuer) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := repository.OpenSQLite(filepath.Join(t.TempDir(), "router.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tokens := auth.NewTokenIssuer("router-secret", time.Hour)
	jobs := repository.NewInMemoryJobRepository()
	blogs := service.NewBlogService(repository.NewSQLiteBlogRepository(db), staticGenerator{}, noImages{}, logger)
	users := service.NewAuthService(repository.NewSQLiteUserRepository(db), tokens, logger)
	v := validator.NewValidator()

	h := Handlers{
		Health: handler.NewHealthHandler(db, jobs, ""),
		Auth:   handler.NewAuthHandler(users, v, logger),
		Blog:   handler.NewBlogHandler(blogs, v, logger),
		Job:    handler.NewJobHandler(service.NewJobService(jobs, blogs, 2, logger), v, logger),
		Image:  handler.NewImageHandler(service.NewImageService(noImages{}, logger), v),
		Stream: handler.NewStreamHandler(blogs, v, nil, logger),
	}
	return NewRouter(h, users, RouterConfig{}, logger), tokens
}

func TestRouter_Routes(t *testing.T) {
	router, tokens := newTestRouter(t)
	token, err := tokens.Issue("user-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		token      string
		wantStatus int
	}{
		{"health", http.MethodGet, "/health", "", "", http.StatusOK},
		{"double slash cleaned", http.MethodGet, "//health", "", "", http.StatusOK},
		{"ready", http.MethodGet, "/ready", "", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", "", http.StatusOK},
		{"list blogs is public", http.MethodGet, "/api/blogs", "", "", http.StatusOK},
		{"missing blog", http.MethodGet, "/api/blogs/nope", "", "", http.StatusNotFound},
		{"me requires auth", http.MethodGet, "/api/auth/me", "", "", http.StatusUnauthorized},
		{"me with bad token", http.MethodGet, "/api/auth/me", "", "garbage", http.StatusUnauthorized},
		{"stats requires auth", http.MethodGet, "/api/stats", "", "", http.StatusUnauthorized},
		{"stats with token", http.MethodGet, "/api/stats", "", token, http.StatusOK},
		{"update requires auth", http.MethodPut, "/api/blogs/x", `{"title":"t"}`, "", http.StatusUnauthorized},
		{"delete requires auth", http.MethodDelete, "/api/blogs/x", "", "", http.StatusUnauthorized},
		{"delete with token", http.MethodDelete, "/api/blogs/x", "", token, http.StatusNotFound},
		{"generate is anonymous", http.MethodPost, "/api/blogs/generate", `{"prompt":"Write about composting"}`, "", http.StatusOK},
		{"generate ignores bad token", http.MethodPost, "/api/blogs/generate", `{"prompt":"Write about composting"}`, "garbage", http.StatusOK},
		{"enqueue", http.MethodPost, "/api/blogs/jobs", `{"prompt":"Write about composting"}`, "", http.StatusAccepted},
		{"image", http.MethodPost, "/api/images/generate", `{"prompt":"a lighthouse"}`, "", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/nothing", "", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("%s %s: status = %d, want %d: %s", tt.method, tt.path, w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/blogs/generate", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("expected CORS headers on preflight")
	}
}
