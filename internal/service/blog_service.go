package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/imagery"
	"github.com/iconidentify/blogsmith/internal/pipeline"
	"github.com/iconidentify/blogsmith/internal/render"
	"github.com/iconidentify/blogsmith/internal/repository"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ErrImageFailed is returned when an image could not be generated for a blog.
var ErrImageFailed = errors.New("image generation failed")

// Generator runs the blog generation pipeline. *pipeline.Orchestrator
// implements it.
type Generator interface {
	Run(ctx context.Context, rawPrompt string, observer pipeline.Observer) (*domain.GenerationResult, error)
}

// ImageGenerator produces images. *imagery.Generator implements it.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, style imagery.Style, size string) imagery.Result
}

// BlogService generates, stores and edits blogs.
type BlogService struct {
	repo      repository.BlogRepository
	generator Generator
	images    ImageGenerator
	logger    *slog.Logger
}

// NewBlogService creates a new blog service.
func NewBlogService(
	repo repository.BlogRepository,
	generator Generator,
	images ImageGenerator,
	logger *slog.Logger,
) *BlogService {
	return &BlogService{
		repo:      repo,
		generator: generator,
		images:    images,
		logger:    logger,
	}
}

// GenerateResult is a stored generated blog with the pipeline's by-products.
type GenerateResult struct {
	Blog           *domain.Blog       `json:"blog"`
	EnhancedPrompt string             `json:"enhanced_prompt"`
	SEO            domain.SEOAnalysis `json:"seo"`
}

// BlogPage is one page of a blog listing.
type BlogPage struct {
	Blogs      []*domain.Blog    `json:"blogs"`
	Pagination domain.Pagination `json:"pagination"`
}

// RenderedBlog is a blog with its content rendered to HTML.
type RenderedBlog struct {
	Blog     *domain.Blog     `json:"blog"`
	Document *render.Document `json:"document"`
}

// Generate runs the pipeline for prompt and stores the result as a
// published blog.
func (s *BlogService) Generate(ctx context.Context, prompt string, authorID domain.UserID) (*GenerateResult, error) {
	return s.GenerateObserved(ctx, prompt, authorID, nil)
}

// GenerateObserved is Generate with pipeline stage changes reported to
// observer, which may be nil.
func (s *BlogService) GenerateObserved(
	ctx context.Context,
	prompt string,
	authorID domain.UserID,
	observer pipeline.Observer,
) (*GenerateResult, error) {
	prompt = strings.TrimSpace(prompt)

	res, err := s.generator.Run(ctx, prompt, observer)
	if err != nil {
		return nil, err
	}

	blog := domain.NewBlogFromGenerated(domain.BlogID(uuid.New().String()), prompt, &res.Blog, authorID)
	if err := s.repo.Create(ctx, blog); err != nil {
		return nil, fmt.Errorf("save blog: %w", err)
	}

	s.logger.Info("blog saved",
		"blog_id", blog.ID,
		"title", blog.Title,
		"word_count", blog.WordCount,
	)

	return &GenerateResult{
		Blog:           blog,
		EnhancedPrompt: res.EnhancedPrompt,
		SEO:            res.SEO,
	}, nil
}

// List returns a page of blogs, newest first. Page defaults to 1 and limit
// to DefaultPageSize, capped at MaxPageSize.
func (s *BlogService) List(ctx context.Context, filter domain.BlogFilter) (*BlogPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = DefaultPageSize
	}
	if filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}

	blogs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &BlogPage{
		Blogs:      blogs,
		Pagination: domain.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

// Get retrieves a blog by ID.
func (s *BlogService) Get(ctx context.Context, id domain.BlogID) (*domain.Blog, error) {
	return s.repo.Get(ctx, id)
}

// Render retrieves a blog and renders its content.
func (s *BlogService) Render(ctx context.Context, id domain.BlogID) (*RenderedBlog, error) {
	blog, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	doc := render.Markdown(blog.Content)
	return &RenderedBlog{Blog: blog, Document: &doc}, nil
}

// Update applies a partial update. ID and creation time are never changed;
// word count and read time follow the content.
func (s *BlogService) Update(ctx context.Context, id domain.BlogID, update domain.BlogUpdate) (*domain.Blog, error) {
	blog, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	update.Apply(blog)
	if err := s.repo.Update(ctx, blog); err != nil {
		return nil, err
	}

	s.logger.Info("blog updated", "blog_id", id)
	return blog, nil
}

// Delete removes a blog.
func (s *BlogService) Delete(ctx context.Context, id domain.BlogID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("blog deleted", "blog_id", id)
	return nil
}

// AttachImage generates an image and stores it as the blog's hero image or
// as an additional section image.
func (s *BlogService) AttachImage(ctx context.Context, id domain.BlogID, req domain.AttachImageRequest) (*domain.Blog, error) {
	blog, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	style, err := imagery.ParseStyle(req.Style)
	if err != nil {
		return nil, err
	}

	res := s.images.GenerateImage(ctx, req.Prompt, style, req.Size)
	if !res.Success || len(res.Images) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrImageFailed, res.Error)
	}

	if err := blog.AttachImage(req.Role, res.Images[0].URL); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, blog); err != nil {
		return nil, err
	}

	s.logger.Info("image attached", "blog_id", id, "role", req.Role)
	return blog, nil
}
