package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"remotcyberhelp/internal/domain/blog"
	"remotcyberhelp/internal/infrastructure/persistence/mappers"
	"remotcyberhelp/internal/infrastructure/persistence/models"
	"remotcyberhelp/internal/shared/db"
	apperrors "remotcyberhelp/internal/shared/errors"
)

type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Create(ctx context.Context, p *blog.Post) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.BlogPostToModel(p)).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("a post with this slug already exists", p.Slug())
		}
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *BlogRepository) Update(ctx context.Context, p *blog.Post) error {
	model := mappers.BlogPostToModel(p)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.BlogPostModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at", "views").
		Updates(model).Error
	if err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("a post with this slug already exists", p.Slug())
		}
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.BlogPostModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("post not found")
	}
	return nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*blog.Post, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *BlogRepository) GetBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	return r.getOne(ctx, "slug = ?", slug)
}

func (r *BlogRepository) getOne(ctx context.Context, cond string, arg interface{}) (*blog.Post, error) {
	var model models.BlogPostModel
	if err := db.GetTxFromContext(ctx, r.db).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("post not found")
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return mappers.BlogPostToDomain(&model), nil
}

func (r *BlogRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.BlogPostModel{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return count > 0, nil
}

func (r *BlogRepository) List(ctx context.Context, filter blog.Filter) ([]*blog.Post, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.BlogPostModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Tag != "" {
		query = query.Where(datatypes.JSONArrayQuery("tags").Contains(blog.NormalizeTag(filter.Tag)))
	}
	query = query.Scopes(db.Search(filter.Search, "title", "excerpt", "content"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	var rows []models.BlogPostModel
	if err := query.
		Order(filter.OrderClause(blog.SortableFields, "published_at DESC, created_at DESC")).
		Scopes(db.Paginate(filter.Offset(), filter.Limit())).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	out := make([]*blog.Post, len(rows))
	for i := range rows {
		out[i] = mappers.BlogPostToDomain(&rows[i])
	}
	return out, total, nil
}

func (r *BlogRepository) IncrementViews(ctx context.Context, id string) error {
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.BlogPostModel{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

func (r *BlogRepository) Categories(ctx context.Context) ([]blog.CategoryCount, error) {
	var out []blog.CategoryCount
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.BlogPostModel{}).
		Select("category, COUNT(*) AS count").
		Where("status = ? AND category <> ''", string(blog.StatusPublished)).
		Group("category").
		Order("category ASC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	return out, nil
}
