package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/iconidentify/blogsmith/internal/auth"
	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/imagery"
	"github.com/iconidentify/blogsmith/internal/pipeline"
	"github.com/iconidentify/blogsmith/internal/repository"
	"github.com/iconidentify/blogsmith/internal/service"
	"github.com/iconidentify/blogsmith/internal/validator"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockJobRepository is a test implementation of repository.JobRepository.
type mockJobRepository struct {
	mu       sync.Mutex
	stats    *repository.QueueStats
	statsErr error
	jobs     map[domain.JobID]*domain.GenerationJob
}

func newMockJobRepository() *mockJobRepository {
	return &mockJobRepository{
		stats: &repository.QueueStats{},
		jobs:  make(map[domain.JobID]*domain.GenerationJob),
	}
}

func (m *mockJobRepository) Enqueue(ctx context.Context, job *domain.GenerationJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job
	return nil
}

func (m *mockJobRepository) Dequeue(ctx context.Context) (*domain.GenerationJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, job := range m.jobs {
		if job.Status == domain.JobStatusQueued {
			return job, nil
		}
	}
	return nil, domain.ErrNoJobs
}

func (m *mockJobRepository) Get(ctx context.Context, id domain.JobID) (*domain.GenerationJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job, ok := m.jobs[id]; ok {
		return job, nil
	}
	return nil, domain.ErrJobNotFound
}

func (m *mockJobRepository) Update(ctx context.Context, job *domain.GenerationJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job
	return nil
}

func (m *mockJobRepository) Stats(ctx context.Context) (*repository.QueueStats, error) {
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	return m.stats, nil
}

func (m *mockJobRepository) ListPending(ctx context.Context) ([]*domain.GenerationJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var pending []*domain.GenerationJob
	for _, job := range m.jobs {
		if job.Status == domain.JobStatusQueued || job.Status == domain.JobStatusRetrying {
			pending = append(pending, job)
		}
	}
	return pending, nil
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(ctx context.Context) error { return p.err }

// fakeGenerator reports every pipeline stage and returns a fixed blog, or
// fails with err after the drafting stage.
type fakeGenerator struct {
	err error
}

func (g *fakeGenerator) Run(ctx context.Context, rawPrompt string, observer pipeline.Observer) (*domain.GenerationResult, error) {
	notify := func(s pipeline.Stage) {
		if observer != nil {
			observer.StageChanged(s)
		}
	}

	notify(pipeline.StageEnhancing)
	notify(pipeline.StageDrafting)
	if g.err != nil {
		notify(pipeline.StageFailed)
		return nil, g.err
	}
	notify(pipeline.StageAnalyzing)
	notify(pipeline.StageMerging)
	notify(pipeline.StageDone)

	return &domain.GenerationResult{
		Blog: domain.GeneratedBlog{
			Title:           "Home Composting for Beginners",
			Content:         "# Home Composting\n\n## Getting Started\nPick a bin and start.",
			MetaDescription: "Start composting at home.",
			Keywords:        []string{"compost bin"},
			Hashtags:        []string{"Compost"},
			WordCount:       9,
			PrimaryKeyword:  "home composting",
			URLSlug:         "home-composting",
		},
		EnhancedPrompt: "enhanced: " + rawPrompt,
		SEO:            domain.SEOAnalysis{PrimaryKeyword: "home composting"},
	}, nil
}

type fakeImages struct {
	result imagery.Result
}

func (f *fakeImages) GenerateImage(ctx context.Context, prompt string, style imagery.Style, size string) imagery.Result {
	return f.result
}

// testEnv wires real services over a temporary SQLite database.
type testEnv struct {
	blogs    *service.BlogService
	users    *service.AuthService
	jobs     *service.JobService
	images   *service.ImageService
	tokens   *auth.TokenIssuer
	gen      *fakeGenerator
	img      *fakeImages
	validate *validator.Validator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repository.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := testLogger()
	gen := &fakeGenerator{}
	img := &fakeImages{result: imagery.Result{
		Success: true,
		Images:  []imagery.Image{{URL: "https://img.example/1.png"}},
	}}
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	blogs := service.NewBlogService(repository.NewSQLiteBlogRepository(db), gen, img, logger)

	return &testEnv{
		blogs:    blogs,
		users:    service.NewAuthService(repository.NewSQLiteUserRepository(db), tokens, logger),
		jobs:     service.NewJobService(newMockJobRepository(), blogs, 2, logger),
		images:   service.NewImageService(img, logger),
		tokens:   tokens,
		gen:      gen,
		img:      img,
		validate: validator.NewValidator(),
	}
}

// seedBlog stores a generated blog and returns it.
func (e *testEnv) seedBlog(t *testing.T) *domain.Blog {
	t.Helper()
	res, err := e.blogs.Generate(context.Background(), "Write about home composting", "")
	if err != nil {
		t.Fatalf("seed blog: %v", err)
	}
	return res.Blog
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	decodeBody(t, w, &resp)
	return resp["error"]
}
