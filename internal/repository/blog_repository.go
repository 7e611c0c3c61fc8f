package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iconidentify/blogsmith/internal/domain"
)

const blogColumns = `id, title, content, meta_description, keywords, hashtags, hero_image,
section_images, prompt, status, word_count, estimated_read_time, summary, slug,
author_id, created_at, updated_at`

// SQLiteBlogRepository implements BlogRepository on SQLite. List fields are
// stored as JSON text.
type SQLiteBlogRepository struct {
	db *sql.DB
}

// NewSQLiteBlogRepository creates a blog repository on db.
func NewSQLiteBlogRepository(db *sql.DB) *SQLiteBlogRepository {
	return &SQLiteBlogRepository{db: db}
}

// Create inserts a new blog.
func (r *SQLiteBlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	args, err := blogArgs(blog)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO blogs (`+blogColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return fmt.Errorf("insert blog: %w", err)
	}
	return nil
}

// Get retrieves a blog by ID.
func (r *SQLiteBlogRepository) Get(ctx context.Context, id domain.BlogID) (*domain.Blog, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+blogColumns+` FROM blogs WHERE id = ?`, id.String())
	blog, err := scanBlog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBlogNotFound
	}
	return blog, err
}

// List returns a page of blogs, newest first.
func (r *SQLiteBlogRepository) List(ctx context.Context, filter domain.BlogFilter) ([]*domain.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs`
	var args []any
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset())
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	blogs := make([]*domain.Blog, 0)
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, nil
}

// Count returns the number of blogs with the filter's status, or all blogs
// when no status is set.
func (r *SQLiteBlogRepository) Count(ctx context.Context, filter domain.BlogFilter) (int, error) {
	query := `SELECT COUNT(*) FROM blogs`
	var args []any
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(filter.Status))
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count blogs: %w", err)
	}
	return n, nil
}

// Update replaces every mutable column of a stored blog.
func (r *SQLiteBlogRepository) Update(ctx context.Context, blog *domain.Blog) error {
	keywords, hashtags, sections, err := encodeLists(blog)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `UPDATE blogs SET
		title = ?, content = ?, meta_description = ?, keywords = ?, hashtags = ?,
		hero_image = ?, section_images = ?, status = ?, word_count = ?,
		estimated_read_time = ?, summary = ?, slug = ?, updated_at = ?
		WHERE id = ?`,
		blog.Title, blog.Content, blog.MetaDescription, keywords, hashtags,
		blog.HeroImage, sections, string(blog.Status), blog.WordCount,
		blog.EstimatedReadTime, blog.Summary, blog.Slug, formatTime(blog.UpdatedAt),
		blog.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	return requireAffected(res, domain.ErrBlogNotFound)
}

// Delete removes a blog.
func (r *SQLiteBlogRepository) Delete(ctx context.Context, id domain.BlogID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	return requireAffected(res, domain.ErrBlogNotFound)
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func encodeLists(blog *domain.Blog) (keywords, hashtags, sections string, err error) {
	if keywords, err = encodeList(blog.Keywords); err != nil {
		return "", "", "", err
	}
	if hashtags, err = encodeList(blog.Hashtags); err != nil {
		return "", "", "", err
	}
	if sections, err = encodeList(blog.SectionImages); err != nil {
		return "", "", "", err
	}
	return keywords, hashtags, sections, nil
}

func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}

func decodeList(s string) ([]string, error) {
	list := []string{}
	if s == "" {
		return list, nil
	}
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return list, nil
}

func blogArgs(blog *domain.Blog) ([]any, error) {
	keywords, hashtags, sections, err := encodeLists(blog)
	if err != nil {
		return nil, err
	}
	return []any{
		blog.ID.String(), blog.Title, blog.Content, blog.MetaDescription,
		keywords, hashtags, blog.HeroImage, sections, blog.Prompt,
		string(blog.Status), blog.WordCount, blog.EstimatedReadTime,
		blog.Summary, blog.Slug, blog.AuthorID.String(),
		formatTime(blog.CreatedAt), formatTime(blog.UpdatedAt),
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlog(row rowScanner) (*domain.Blog, error) {
	var (
		b                            domain.Blog
		id, status, author           string
		keywords, hashtags, sections string
		created, updated             string
	)
	err := row.Scan(
		&id, &b.Title, &b.Content, &b.MetaDescription, &keywords, &hashtags,
		&b.HeroImage, &sections, &b.Prompt, &status, &b.WordCount,
		&b.EstimatedReadTime, &b.Summary, &b.Slug, &author, &created, &updated,
	)
	if err != nil {
		return nil, err
	}

	b.ID = domain.BlogID(id)
	b.Status = domain.BlogStatus(status)
	b.AuthorID = domain.UserID(author)

	if b.Keywords, err = decodeList(keywords); err != nil {
		return nil, err
	}
	if b.Hashtags, err = decodeList(hashtags); err != nil {
		return nil, err
	}
	if b.SectionImages, err = decodeList(sections); err != nil {
		return nil, err
	}
	if b.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}

	return &b, nil
}
