package service

import (
	"context"
	"errors"

	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/common"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/entity"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/repo"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/repo/repo_errors"
)

type BannerService struct {
	bannerRepo  repo.Banner
	accountRepo repo.Account
}

func NewBannerService(repos *repo.Repositories) *BannerService {
	return &BannerService{
		bannerRepo:  repos.Banner,
		accountRepo: repos.Account,
	}
}

func (s *BannerService) requireAdmin(ctx context.Context, requesterId string) error {
	isAdmin, err := s.accountRepo.HasRole(ctx, requesterId, common.RoleAdmin)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrUnauthorized
	}

	return nil
}

func (s *BannerService) CreateBanner(ctx context.Context, requesterId string, input *entity.CreateBannerInput) (*entity.BannerOutputModel, error) {
	if err := s.requireAdmin(ctx, requesterId); err != nil {
		return nil, err
	}

	id, err := s.bannerRepo.CreateBanner(ctx, input)
	if err != nil {
		return nil, err
	}

	banner, err := s.bannerRepo.GetBannerById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapBanner(banner), nil
}

func (s *BannerService) EditBannerById(ctx context.Context, bannerId string, requesterId string, patch *entity.BannerPatch) (*entity.BannerOutputModel, error) {
	if err := s.requireAdmin(ctx, requesterId); err != nil {
		return nil, err
	}

	if patch.Empty() {
		return nil, ErrNoNewChanges
	}

	err := s.bannerRepo.UpdateBanner(ctx, bannerId, patch)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBannerNotFound
		}

		return nil, err
	}

	banner, err := s.bannerRepo.GetBannerById(ctx, bannerId)
	if err != nil {
		return nil, err
	}

	return mapBanner(banner), nil
}

func (s *BannerService) DeleteBannerById(ctx context.Context, bannerId string, requesterId string) error {
	if err := s.requireAdmin(ctx, requesterId); err != nil {
		return err
	}

	err := s.bannerRepo.DeleteBanner(ctx, bannerId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrBannerNotFound
		}

		return err
	}

	return nil
}

func (s *BannerService) GetBanners(ctx context.Context, onlyActive bool) ([]entity.BannerOutputModel, error) {
	banners, err := s.bannerRepo.GetBanners(ctx, onlyActive)
	if err != nil {
		return nil, err
	}

	return mapBanners(banners), nil
}
