package dto

import (
	"time"

	"remotcyberhelp/internal/domain/blog"
)

type PostDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content,omitempty"`
	ContentHTML string     `json:"contentHtml,omitempty"`
	Category    string     `json:"category,omitempty"`
	Tags        []string   `json:"tags"`
	Author      string     `json:"author,omitempty"`
	CoverImage  string     `json:"coverImage,omitempty"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Views       int64      `json:"views"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ToPostDTO includes the body. Listings use ToPostSummaryDTOs.
func ToPostDTO(p *blog.Post) *PostDTO {
	if p == nil {
		return nil
	}
	s := p.State()
	return &PostDTO{
		ID:          s.ID,
		Title:       s.Title,
		Slug:        s.Slug,
		Excerpt:     s.Excerpt,
		Content:     s.Content,
		ContentHTML: s.ContentHTML,
		Category:    s.Category,
		Tags:        s.Tags,
		Author:      s.Author,
		CoverImage:  s.CoverImage,
		Status:      s.Status,
		PublishedAt: s.PublishedAt,
		Views:       s.Views,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func ToPostSummaryDTOs(posts []*blog.Post) []*PostDTO {
	out := make([]*PostDTO, 0, len(posts))
	for _, p := range posts {
		d := ToPostDTO(p)
		d.Content = ""
		d.ContentHTML = ""
		out = append(out, d)
	}
	return out
}
