package usecases

import (
	"context"
	"fmt"
	"time"

	"remotcyberhelp/internal/application/blog/dto"
	"remotcyberhelp/internal/domain/blog"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/id"
	"remotcyberhelp/internal/shared/logger"
)

// maxSlugSuffix bounds the "-2", "-3" search before falling back to a random suffix.
const maxSlugSuffix = 50

type PostCommand struct {
	Title      string
	Excerpt    string
	Content    string
	Category   string
	Tags       []string
	Author     string
	CoverImage string
	Status     string
}

func (c PostCommand) content() blog.Content {
	return blog.Content{
		Title:      c.Title,
		Excerpt:    c.Excerpt,
		Body:       c.Content,
		Category:   c.Category,
		Tags:       c.Tags,
		Author:     c.Author,
		CoverImage: c.CoverImage,
	}
}

func parseStatus(s string) (blog.Status, error) {
	if s == "" {
		return blog.StatusDraft, nil
	}
	status := blog.Status(s)
	if !status.IsValid() {
		return "", errors.NewValidationError(fmt.Sprintf("invalid status: %s", s))
	}
	return status, nil
}

type CreatePostUseCase struct {
	repo     blog.Repository
	renderer blog.Renderer
	logger   logger.Interface
	now      func() time.Time
}

func NewCreatePostUseCase(repo blog.Repository, renderer blog.Renderer, logger logger.Interface) *CreatePostUseCase {
	return &CreatePostUseCase{repo: repo, renderer: renderer, logger: logger, now: biztime.NowUTC}
}

func (uc *CreatePostUseCase) Execute(ctx context.Context, cmd PostCommand) (*dto.PostDTO, error) {
	status, err := parseStatus(cmd.Status)
	if err != nil {
		return nil, err
	}
	p, err := blog.NewPost(cmd.content(), status, uc.renderer, uc.now())
	if err != nil {
		return nil, err
	}
	slug, err := uc.uniqueSlug(ctx, p.Slug())
	if err != nil {
		return nil, err
	}
	p.SetSlug(slug)

	if err := uc.repo.Create(ctx, p); err != nil {
		uc.logger.Errorw("failed to create post", "slug", slug, "error", err)
		return nil, err
	}
	uc.logger.Infow("post created", "post_id", p.ID(), "slug", slug, "status", status)
	return dto.ToPostDTO(p), nil
}

func (uc *CreatePostUseCase) uniqueSlug(ctx context.Context, base string) (string, error) {
	candidate := base
	for n := 2; n <= maxSlugSuffix; n++ {
		taken, err := uc.repo.ExistsBySlug(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
	return fmt.Sprintf("%s-%s", base, id.New()[:8]), nil
}
