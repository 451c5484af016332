// Package blog models articles published on the site.
package blog

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/id"
	"remotcyberhelp/internal/shared/query"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Renderer turns markdown into sanitized HTML and plain-text excerpts.
type Renderer interface {
	Render(markdown string) (string, error)
	Excerpt(markdown string, maxRunes int) string
}

const excerptLength = 200

type Post struct {
	id          string
	title       string
	slug        string
	excerpt     string
	content     string
	contentHTML string
	category    string
	tags        []string
	author      string
	coverImage  string
	status      Status
	publishedAt *time.Time
	views       int64
	createdAt   time.Time
	updatedAt   time.Time
}

// Content is the editable part of a post.
type Content struct {
	Title      string
	Excerpt    string
	Body       string
	Category   string
	Tags       []string
	Author     string
	CoverImage string
}

func NewPost(c Content, status Status, r Renderer, now time.Time) (*Post, error) {
	p := &Post{id: id.New(), status: StatusDraft, createdAt: now.UTC()}
	if err := p.Edit(c, r, now); err != nil {
		return nil, err
	}
	p.slug = Slugify(p.title)
	if p.slug == "" {
		return nil, errors.NewValidationError("title must contain letters or digits")
	}
	if status == StatusPublished {
		p.Publish(now)
	}
	return p, nil
}

type State struct {
	ID          string
	Title       string
	Slug        string
	Excerpt     string
	Content     string
	ContentHTML string
	Category    string
	Tags        []string
	Author      string
	CoverImage  string
	Status      string
	PublishedAt *time.Time
	Views       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func Reconstruct(s State) *Post {
	return &Post{
		id:          s.ID,
		title:       s.Title,
		slug:        s.Slug,
		excerpt:     s.Excerpt,
		content:     s.Content,
		contentHTML: s.ContentHTML,
		category:    s.Category,
		tags:        s.Tags,
		author:      s.Author,
		coverImage:  s.CoverImage,
		status:      Status(s.Status),
		publishedAt: s.PublishedAt,
		views:       s.Views,
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
	}
}

func (p *Post) State() State {
	tags := make([]string, len(p.tags))
	copy(tags, p.tags)
	return State{
		ID:          p.id,
		Title:       p.title,
		Slug:        p.slug,
		Excerpt:     p.excerpt,
		Content:     p.content,
		ContentHTML: p.contentHTML,
		Category:    p.category,
		Tags:        tags,
		Author:      p.author,
		CoverImage:  p.coverImage,
		Status:      string(p.status),
		PublishedAt: p.publishedAt,
		Views:       p.views,
		CreatedAt:   p.createdAt,
		UpdatedAt:   p.updatedAt,
	}
}

func (p *Post) ID() string {
	return p.id
}

func (p *Post) Slug() string {
	return p.slug
}

func (p *Post) Title() string {
	return p.title
}

func (p *Post) Status() Status {
	return p.status
}

func (p *Post) IsPublished() bool {
	return p.status == StatusPublished
}

// Edit replaces the content and re-renders it. The slug is kept stable.
func (p *Post) Edit(c Content, r Renderer, now time.Time) error {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return errors.NewValidationError("title is required")
	}
	if utf8.RuneCountInString(title) > 200 {
		return errors.NewValidationError("title exceeds maximum length of 200 characters")
	}
	if strings.TrimSpace(c.Body) == "" {
		return errors.NewValidationError("content is required")
	}

	html, err := r.Render(c.Body)
	if err != nil {
		return fmt.Errorf("render post: %w", err)
	}
	excerpt := strings.TrimSpace(c.Excerpt)
	if excerpt == "" {
		excerpt = r.Excerpt(c.Body, excerptLength)
	}

	p.title = title
	p.content = c.Body
	p.contentHTML = html
	p.excerpt = excerpt
	p.category = NormalizeTag(c.Category)
	p.tags = normalizeTags(c.Tags)
	p.author = strings.TrimSpace(c.Author)
	p.coverImage = strings.TrimSpace(c.CoverImage)
	p.updatedAt = now.UTC()
	return nil
}

// Publish makes the post public. The first publication time is kept.
func (p *Post) Publish(now time.Time) {
	p.status = StatusPublished
	if p.publishedAt == nil {
		t := now.UTC()
		p.publishedAt = &t
	}
	p.updatedAt = now.UTC()
}

func (p *Post) Unpublish(now time.Time) {
	p.status = StatusDraft
	p.updatedAt = now.UTC()
}

// SetSlug overrides the generated slug, used to resolve collisions.
func (p *Post) SetSlug(slug string) {
	p.slug = slug
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases s and joins its alphanumeric runs with hyphens.
func Slugify(s string) string {
	slug := nonSlugChars.ReplaceAllString(cases.Fold().String(s), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 80 {
		slug = strings.TrimRight(slug[:80], "-")
	}
	return slug
}

// NormalizeTag folds a category or tag to its slug form.
func NormalizeTag(s string) string {
	return Slugify(s)
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		n := NormalizeTag(t)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type Repository interface {
	Create(ctx context.Context, p *Post) error
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, filter Filter) ([]*Post, int64, error)
	// IncrementViews bumps the view counter without loading the post.
	IncrementViews(ctx context.Context, id string) error
	// Categories counts published posts per category.
	Categories(ctx context.Context) ([]CategoryCount, error)
}

type Filter struct {
	query.BaseFilter
	Status   *Status
	Category string
	Tag      string
	Search   string
}

var SortableFields = map[string]string{
	"publishedAt": "published_at",
	"createdAt":   "created_at",
	"views":       "views",
	"title":       "title",
}
