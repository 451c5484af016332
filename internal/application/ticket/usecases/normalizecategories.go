package usecases

import (
	"context"

	"remotcyberhelp/internal/domain/ticket"
	vo "remotcyberhelp/internal/domain/ticket/valueobjects"
	"remotcyberhelp/internal/shared/logger"
)

// CategoryRewrite records one legacy value mapped onto a canonical category.
type CategoryRewrite struct {
	From string
	To   vo.Category
	Rows int64
}

type NormalizeCategoriesResult struct {
	Rewritten []CategoryRewrite
	// Unknown lists stored values with no canonical mapping. They are left as is.
	Unknown []string
}

type NormalizeCategoriesUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewNormalizeCategoriesUseCase(ticketRepo ticket.Repository, logger logger.Interface) *NormalizeCategoriesUseCase {
	return &NormalizeCategoriesUseCase{ticketRepo: ticketRepo, logger: logger}
}

// Execute rewrites legacy category spellings to canonical values. With dryRun
// nothing is written and Rows stays zero.
func (uc *NormalizeCategoriesUseCase) Execute(ctx context.Context, dryRun bool) (*NormalizeCategoriesResult, error) {
	values, err := uc.ticketRepo.DistinctCategories(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list stored categories", "error", err)
		return nil, err
	}

	result := &NormalizeCategoriesResult{}
	for _, raw := range values {
		canonical, ok := vo.NormalizeCategory(raw)
		if !ok {
			result.Unknown = append(result.Unknown, raw)
			continue
		}
		if canonical.String() == raw {
			continue
		}

		rewrite := CategoryRewrite{From: raw, To: canonical}
		if !dryRun {
			n, err := uc.ticketRepo.RewriteCategory(ctx, raw, canonical)
			if err != nil {
				uc.logger.Errorw("failed to rewrite category", "error", err, "from", raw, "to", canonical)
				return result, err
			}
			rewrite.Rows = n
		}
		result.Rewritten = append(result.Rewritten, rewrite)
	}

	uc.logger.Infow("category normalization finished",
		"rewritten", len(result.Rewritten),
		"unknown", len(result.Unknown),
		"dry_run", dryRun,
	)
	return result, nil
}
