package domain

import (
	"strings"
	"time"
)

// BlogID is a unique identifier for a blog post.
type BlogID string

// String returns the string representation of the BlogID.
func (id BlogID) String() string {
	return string(id)
}

// BlogStatus represents the publication state of a blog post.
type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
)

// Valid reports whether s is a known status.
func (s BlogStatus) Valid() bool {
	return s == BlogStatusDraft || s == BlogStatusPublished
}

// WordsPerMinute is the reading speed used for read time estimates.
const WordsPerMinute = 200

// Blog is a persisted blog post.
type Blog struct {
	ID                BlogID     `json:"id"`
	Title             string     `json:"title"`
	Content           string     `json:"content"`
	MetaDescription   string     `json:"meta_description"`
	Keywords          []string   `json:"keywords"`
	Hashtags          []string   `json:"hashtags"`
	HeroImage         string     `json:"hero_image,omitempty"`
	SectionImages     []string   `json:"section_images"`
	Prompt            string     `json:"prompt"`
	Status            BlogStatus `json:"status"`
	WordCount         int        `json:"word_count"`
	EstimatedReadTime int        `json:"estimated_read_time"`
	Summary           string     `json:"summary,omitempty"`
	Slug              string     `json:"slug,omitempty"`
	AuthorID          UserID     `json:"author_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// CountWords returns the number of whitespace-delimited tokens in s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// EstimateReadTime returns the reading time in whole minutes, rounded up.
func EstimateReadTime(wordCount int) int {
	if wordCount <= 0 {
		return 0
	}
	return (wordCount + WordsPerMinute - 1) / WordsPerMinute
}

// SetContent replaces the body and recomputes the derived counts.
func (b *Blog) SetContent(content string) {
	b.Content = content
	b.WordCount = CountWords(content)
	b.EstimatedReadTime = EstimateReadTime(b.WordCount)
}

// NewBlogFromGenerated builds a published blog from a pipeline result.
func NewBlogFromGenerated(id BlogID, prompt string, g *GeneratedBlog, authorID UserID) *Blog {
	now := time.Now().UTC()
	b := &Blog{
		ID:              id,
		Title:           g.Title,
		MetaDescription: g.MetaDescription,
		Keywords:        append([]string(nil), g.Keywords...),
		Hashtags:        append([]string(nil), g.Hashtags...),
		SectionImages:   []string{},
		Prompt:          strings.TrimSpace(prompt),
		Status:          BlogStatusPublished,
		Summary:         g.Summary,
		Slug:            g.URLSlug,
		AuthorID:        authorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	b.SetContent(g.Content)
	return b
}

// BlogUpdate is a partial update. Nil fields are left unchanged; the ID,
// creation time and derived counts cannot be set.
type BlogUpdate struct {
	Title           *string     `json:"title,omitempty"`
	Content         *string     `json:"content,omitempty"`
	MetaDescription *string     `json:"meta_description,omitempty"`
	Keywords        []string    `json:"keywords,omitempty"`
	Hashtags        []string    `json:"hashtags,omitempty"`
	HeroImage       *string     `json:"hero_image,omitempty"`
	SectionImages   []string    `json:"section_images,omitempty"`
	Status          *BlogStatus `json:"status,omitempty"`
	Summary         *string     `json:"summary,omitempty"`
}

// Apply copies the set fields of u onto b and bumps UpdatedAt.
func (u *BlogUpdate) Apply(b *Blog) {
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Content != nil {
		b.SetContent(*u.Content)
	}
	if u.MetaDescription != nil {
		b.MetaDescription = *u.MetaDescription
	}
	if u.Keywords != nil {
		b.Keywords = u.Keywords
	}
	if u.Hashtags != nil {
		b.Hashtags = u.Hashtags
	}
	if u.HeroImage != nil {
		b.HeroImage = *u.HeroImage
	}
	if u.SectionImages != nil {
		b.SectionImages = u.SectionImages
	}
	if u.Status != nil {
		b.Status = *u.Status
	}
	if u.Summary != nil {
		b.Summary = *u.Summary
	}
	b.UpdatedAt = time.Now().UTC()
}

// BlogFilter selects a page of blogs.
type BlogFilter struct {
	Status BlogStatus
	Page   int
	Limit  int
}

// Offset returns the row offset for the filter's page.
func (f BlogFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// Pagination describes a page of results.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination computes the page count for total items.
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
