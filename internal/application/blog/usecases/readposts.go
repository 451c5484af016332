package usecases

import (
	"context"

	"remotcyberhelp/internal/application/blog/dto"
	"remotcyberhelp/internal/application/common"
	"remotcyberhelp/internal/domain/blog"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
	"remotcyberhelp/internal/shared/query"
)

type ListPostsQuery struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
	Status    string
	Category  string
	Tag       string
	Search    string
	// PublishedOnly hides drafts regardless of Status.
	PublishedOnly bool
}

type ListPostsUseCase struct {
	repo   blog.Repository
	logger logger.Interface
}

func NewListPostsUseCase(repo blog.Repository, logger logger.Interface) *ListPostsUseCase {
	return &ListPostsUseCase{repo: repo, logger: logger}
}

func (uc *ListPostsUseCase) Execute(ctx context.Context, q ListPostsQuery) (*common.Page[*dto.PostDTO], error) {
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "publishedAt"
	}
	filter := blog.Filter{
		BaseFilter: query.NewBaseFilter(q.Page, q.PageSize, sortBy, q.SortOrder),
		Category:   blog.NormalizeTag(q.Category),
		Tag:        blog.NormalizeTag(q.Tag),
		Search:     q.Search,
	}
	switch {
	case q.PublishedOnly:
		s := blog.StatusPublished
		filter.Status = &s
	case q.Status != "":
		s, err := parseStatus(q.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &s
	}

	posts, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list posts", "error", err)
		return nil, err
	}
	return common.NewPage(dto.ToPostSummaryDTOs(posts), total, filter.PageFilter), nil
}

type GetPostUseCase struct {
	repo   blog.Repository
	logger logger.Interface
}

func NewGetPostUseCase(repo blog.Repository, logger logger.Interface) *GetPostUseCase {
	return &GetPostUseCase{repo: repo, logger: logger}
}

// BySlug returns a post for public reading and counts the view.
// Drafts are reported as not found unless includeDrafts is set.
func (uc *GetPostUseCase) BySlug(ctx context.Context, slug string, includeDrafts bool) (*dto.PostDTO, error) {
	p, err := uc.repo.GetBySlug(ctx, blog.Slugify(slug))
	if err != nil {
		return nil, err
	}
	if !p.IsPublished() {
		if !includeDrafts {
			return nil, errors.NewNotFoundError("post not found")
		}
		return dto.ToPostDTO(p), nil
	}

	out := dto.ToPostDTO(p)
	if err := uc.repo.IncrementViews(ctx, p.ID()); err != nil {
		uc.logger.Warnw("failed to count post view", "post_id", p.ID(), "error", err)
	} else {
		out.Views++
	}
	return out, nil
}

func (uc *GetPostUseCase) ByID(ctx context.Context, postID string) (*dto.PostDTO, error) {
	p, err := uc.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return dto.ToPostDTO(p), nil
}

type ListCategoriesUseCase struct {
	repo blog.Repository
}

func NewListCategoriesUseCase(repo blog.Repository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{repo: repo}
}

func (uc *ListCategoriesUseCase) Execute(ctx context.Context) ([]blog.CategoryCount, error) {
	cats, err := uc.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []blog.CategoryCount{}
	}
	return cats, nil
}
