package usecases

import (
	"context"
	"strings"

	"remotcyberhelp/internal/application/government/dto"
	"remotcyberhelp/internal/domain/government"
	"remotcyberhelp/internal/shared/logger"
)

type ListServicesUseCase struct {
	services government.ServiceRepository
	logger   logger.Interface
}

func NewListServicesUseCase(services government.ServiceRepository, logger logger.Interface) *ListServicesUseCase {
	return &ListServicesUseCase{services: services, logger: logger}
}

func (uc *ListServicesUseCase) Execute(ctx context.Context, includeInactive bool) ([]*dto.ServiceDTO, error) {
	list, err := uc.services.List(ctx, !includeInactive)
	if err != nil {
		uc.logger.Errorw("failed to list government services", "error", err)
		return nil, err
	}
	return dto.ToServiceDTOs(list), nil
}

func (uc *ListServicesUseCase) Get(ctx context.Context, code string) (*dto.ServiceDTO, error) {
	s, err := uc.services.GetByCode(ctx, strings.ToLower(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	return dto.ToServiceDTO(s), nil
}

// SeedCatalogueUseCase upserts catalogue entries by code.
type SeedCatalogueUseCase struct {
	services government.ServiceRepository
	logger   logger.Interface
}

func NewSeedCatalogueUseCase(services government.ServiceRepository, logger logger.Interface) *SeedCatalogueUseCase {
	return &SeedCatalogueUseCase{services: services, logger: logger}
}

func (uc *SeedCatalogueUseCase) Execute(ctx context.Context, entries []*government.Service) (int, error) {
	for _, s := range entries {
		if err := s.Validate(); err != nil {
			return 0, err
		}
		if err := uc.services.Upsert(ctx, s); err != nil {
			uc.logger.Errorw("failed to upsert government service", "code", s.Code, "error", err)
			return 0, err
		}
	}
	uc.logger.Infow("government catalogue seeded", "count", len(entries))
	return len(entries), nil
}
