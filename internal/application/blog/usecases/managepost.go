package usecases

import (
	"context"
	"time"

	"remotcyberhelp/internal/application/blog/dto"
	"remotcyberhelp/internal/domain/blog"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/logger"
)

type UpdatePostUseCase struct {
	repo     blog.Repository
	renderer blog.Renderer
	logger   logger.Interface
	now      func() time.Time
}

func NewUpdatePostUseCase(repo blog.Repository, renderer blog.Renderer, logger logger.Interface) *UpdatePostUseCase {
	return &UpdatePostUseCase{repo: repo, renderer: renderer, logger: logger, now: biztime.NowUTC}
}

// Execute replaces the post content. An empty Status keeps the current one.
func (uc *UpdatePostUseCase) Execute(ctx context.Context, postID string, cmd PostCommand) (*dto.PostDTO, error) {
	p, err := uc.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if err := p.Edit(cmd.content(), uc.renderer, now); err != nil {
		return nil, err
	}
	if cmd.Status != "" {
		status, err := parseStatus(cmd.Status)
		if err != nil {
			return nil, err
		}
		if status == blog.StatusPublished {
			p.Publish(now)
		} else {
			p.Unpublish(now)
		}
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update post", "post_id", postID, "error", err)
		return nil, err
	}
	return dto.ToPostDTO(p), nil
}

type DeletePostUseCase struct {
	repo   blog.Repository
	logger logger.Interface
}

func NewDeletePostUseCase(repo blog.Repository, logger logger.Interface) *DeletePostUseCase {
	return &DeletePostUseCase{repo: repo, logger: logger}
}

func (uc *DeletePostUseCase) Execute(ctx context.Context, postID string) error {
	if _, err := uc.repo.GetByID(ctx, postID); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, postID); err != nil {
		uc.logger.Errorw("failed to delete post", "post_id", postID, "error", err)
		return err
	}
	uc.logger.Infow("post deleted", "post_id", postID)
	return nil
}
