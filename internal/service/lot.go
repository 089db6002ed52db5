package service

import (
	"context"
	"errors"
	"time"

	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/common"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/entity"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/repo"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/repo/repo_errors"
)

type LotService struct {
	lotRepo     repo.Lot
	bidRepo     repo.Bid
	accountRepo repo.Account
	now         func() time.Time
}

func NewLotService(repos *repo.Repositories) *LotService {
	return &LotService{
		lotRepo:     repos.Lot,
		bidRepo:     repos.Bid,
		accountRepo: repos.Account,
		now:         time.Now,
	}
}

func (s *LotService) requireAdmin(ctx context.Context, requesterId string) error {
	isAdmin, err := s.accountRepo.HasRole(ctx, requesterId, common.RoleAdmin)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrUnauthorized
	}

	return nil
}

func (s *LotService) CreateLot(ctx context.Context, input *entity.CreateLotInput) (*entity.LotOutputModel, error) {
	if err := s.requireAdmin(ctx, input.RequesterId); err != nil {
		return nil, err
	}

	if len(input.PhotoUrls) > common.MaxLotPhotos {
		return nil, ErrTooManyPhotos
	}

	if input.OpensAt.IsZero() {
		input.OpensAt = s.now()
	}
	if !input.ClosesAt.After(input.OpensAt) {
		return nil, ErrInvalidWindow
	}

	input.Status = common.LotActive
	id, err := s.lotRepo.CreateLot(ctx, input)
	if err != nil {
		return nil, err
	}

	lot, err := s.lotRepo.GetLotById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapLot(lot, 0), nil
}

func (s *LotService) EditLotById(ctx context.Context, lotId string, requesterId string, patch *entity.LotPatch) (*entity.LotOutputModel, error) {
	if err := s.requireAdmin(ctx, requesterId); err != nil {
		return nil, err
	}

	if patch.Empty() {
		return nil, ErrNoNewChanges
	}

	if patch.PhotoUrls != nil && len(*patch.PhotoUrls) > common.MaxLotPhotos {
		return nil, ErrTooManyPhotos
	}

	lot, err := s.lotRepo.GetLotById(ctx, lotId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrLotNotFound
		}

		return nil, err
	}

	// The patched window must stay consistent, whichever side moves.
	opensAt, closesAt := lot.OpensAt, lot.ClosesAt
	if patch.OpensAt != nil {
		opensAt = *patch.OpensAt
	}
	if patch.ClosesAt != nil {
		closesAt = *patch.ClosesAt
	}
	if !closesAt.After(opensAt) {
		return nil, ErrInvalidWindow
	}

	if err = s.lotRepo.UpdateLot(ctx, lotId, patch); err != nil {
		return nil, err
	}

	lot, err = s.lotRepo.GetLotById(ctx, lotId)
	if err != nil {
		return nil, err
	}

	return mapLot(lot, 0), nil
}

// CancelLotById is the second terminal transition besides finalize. Like
// finalize it only moves out of active and never back.
func (s *LotService) CancelLotById(ctx context.Context, lotId string, requesterId string) (*entity.LotOutputModel, error) {
	if err := s.requireAdmin(ctx, requesterId); err != nil {
		return nil, err
	}

	if _, err := s.lotRepo.GetLotById(ctx, lotId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrLotNotFound
		}

		return nil, err
	}

	err := s.lotRepo.UpdateLotStatus(ctx, lotId, common.LotActive, common.LotCancelled)
	if err != nil {
		if errors.Is(err, repo_errors.ErrLotNotActive) {
			return nil, ErrLotAlreadyFinalized
		}

		return nil, err
	}

	lot, err := s.lotRepo.GetLotById(ctx, lotId)
	if err != nil {
		return nil, err
	}

	return mapLot(lot, 0), nil
}

func (s *LotService) DeleteLotById(ctx context.Context, lotId string, requesterId string) error {
	if err := s.requireAdmin(ctx, requesterId); err != nil {
		return err
	}

	err := s.lotRepo.DeleteLot(ctx, lotId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrLotNotFound
		}

		return err
	}

	return nil
}

func (s *LotService) GetLotsByStatus(ctx context.Context, status string, pg *entity.PaginationInput) ([]entity.LotOutputModel, error) {
	lots, err := s.lotRepo.GetLotsByStatus(ctx, status, pg)
	if err != nil {
		return nil, err
	}

	return mapLots(lots), nil
}

func (s *LotService) GetLotById(ctx context.Context, lotId string) (*entity.LotDetailsOutputModel, error) {
	lot, err := s.lotRepo.GetLotById(ctx, lotId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrLotNotFound
		}

		return nil, err
	}

	bids, err := s.bidRepo.GetLotBids(ctx, lotId, entity.NewPaginationInput(100, 0))
	if err != nil {
		return nil, err
	}

	return &entity.LotDetailsOutputModel{
		LotOutputModel: *mapLot(lot, len(bids)),
		Bids:           mapLotBids(bids),
	}, nil
}
