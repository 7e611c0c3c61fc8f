package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/imagery"
	"github.com/iconidentify/blogsmith/internal/pipeline"
	"github.com/iconidentify/blogsmith/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupDB(t *testing.T) (*repository.SQLiteBlogRepository, *repository.SQLiteUserRepository) {
	t.Helper()
	db, err := repository.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return repository.NewSQLiteBlogRepository(db), repository.NewSQLiteUserRepository(db)
}

// fakeGenerator reports every pipeline stage and returns a fixed blog.
type fakeGenerator struct {
	mu      sync.Mutex
	err     error
	prompts []string
}

func (g *fakeGenerator) Run(ctx context.Context, rawPrompt string, observer pipeline.Observer) (*domain.GenerationResult, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, rawPrompt)
	err := g.err
	g.mu.Unlock()

	stages := []pipeline.Stage{pipeline.StageEnhancing, pipeline.StageDrafting, pipeline.StageAnalyzing, pipeline.StageMerging}
	for _, s := range stages {
		if observer != nil {
			observer.StageChanged(s)
		}
	}
	if err != nil {
		if observer != nil {
			observer.StageChanged(pipeline.StageFailed)
		}
		return nil, err
	}
	if observer != nil {
		observer.StageChanged(pipeline.StageDone)
	}

	return &domain.GenerationResult{
		Blog: domain.GeneratedBlog{
			Title:           "Home Composting for Beginners",
			Content:         "## Intro\nCompost turns scraps into soil.",
			MetaDescription: "Start composting at home.",
			Keywords:        []string{"compost bin"},
			Hashtags:        []string{"Compost"},
			WordCount:       7,
			Summary:         "A composting guide.",
			PrimaryKeyword:  "home composting",
			URLSlug:         "home-composting",
		},
		EnhancedPrompt: "enhanced: " + rawPrompt,
		SEO:            domain.SEOAnalysis{PrimaryKeyword: "home composting"},
	}, nil
}

type fakeImages struct {
	result imagery.Result
	calls  []string
}

func (f *fakeImages) GenerateImage(ctx context.Context, prompt string, style imagery.Style, size string) imagery.Result {
	f.calls = append(f.calls, prompt+"|"+string(style)+"|"+size)
	return f.result
}

func okImages(url string) *fakeImages {
	return &fakeImages{result: imagery.Result{Success: true, Images: []imagery.Image{{URL: url}}}}
}
