package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/common"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/entity"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/repo"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/repo/repo_errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BidService struct {
	bidRepo     repo.Bid
	lotRepo     repo.Lot
	accountRepo repo.Account
	now         func() time.Time
}

func NewBidService(repos *repo.Repositories) *BidService {
	return &BidService{
		bidRepo:     repos.Bid,
		lotRepo:     repos.Lot,
		accountRepo: repos.Account,
		now:         time.Now,
	}
}

// PlaceBid runs the acceptance pipeline in a fixed order: bidder approval,
// lot existence, lot status, close time, minimum amount. The close time is
// compared against a single read of the clock. Expiry here is advisory: a
// lot past its close time stays active until an administrator finalizes it,
// it just stops accepting bids.
func (s *BidService) PlaceBid(ctx context.Context, lotId string, accountId string, amount decimal.Decimal) (*entity.BidOutputModel, error) {
	account, err := s.accountRepo.GetAccountById(ctx, accountId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrAccountNotFound
		}

		return nil, err
	}
	if account.ApprovalStatus != common.ApprovalApproved {
		return nil, ErrAccountNotApproved
	}

	lot, err := s.lotRepo.GetLotById(ctx, lotId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrLotNotFound
		}

		return nil, err
	}

	if lot.Status != common.LotActive {
		return nil, ErrAuctionClosed
	}

	placedAt := s.now()
	if !placedAt.Before(lot.ClosesAt) {
		return nil, ErrAuctionExpired
	}

	if minimum := lot.MinimumExceededBid(); !amount.GreaterThan(minimum) {
		return nil, bidTooLowError(minimum)
	}

	// The repository re-applies the status and minimum checks while holding
	// a lock on the lot row, so a concurrent bid accepted between our read
	// and this call is still observed.
	bidId, err := s.bidRepo.PlaceBid(ctx, &entity.PlaceBidInput{
		LotId:     lot.Id,
		AccountId: account.Id,
		Amount:    amount,
		PlacedAt:  placedAt,
	})
	if err != nil {
		var belowMin *repo_errors.BidBelowMinimumError
		if errors.As(err, &belowMin) {
			return nil, bidTooLowError(belowMin.Minimum)
		}
		if errors.Is(err, repo_errors.ErrLotNotActive) {
			return nil, ErrAuctionClosed
		}
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrLotNotFound
		}

		return nil, err
	}

	bid, err := s.bidRepo.GetBidById(ctx, bidId.String())
	if err != nil {
		return nil, err
	}

	return mapBid(bid), nil
}

// bidTooLowError wraps ErrBidTooLow so errors.Is still matches while the
// message tells the caller the amount to beat.
func bidTooLowError(minimum decimal.Decimal) error {
	return fmt.Errorf("%w: bid must exceed %s", ErrBidTooLow, minimum.StringFixed(2))
}

func (s *BidService) GetAccountBids(ctx context.Context, accountId string, pg *entity.PaginationInput) ([]entity.AccountBidOutputModel, error) {
	if _, err := uuid.Parse(accountId); err != nil {
		return nil, ErrAccountNotFound
	}

	bids, err := s.bidRepo.GetAccountBids(ctx, accountId, pg)
	if err != nil {
		return nil, err
	}

	return mapAccountBids(bids), nil
}

func (s *BidService) GetLotBids(ctx context.Context, lotId string, requesterId string, pg *entity.PaginationInput) ([]entity.LotBidOutputModel, error) {
	isAdmin, err := s.accountRepo.HasRole(ctx, requesterId, common.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, ErrUnauthorized
	}

	if _, err := s.lotRepo.GetLotById(ctx, lotId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrLotNotFound
		}

		return nil, err
	}

	bids, err := s.bidRepo.GetLotBids(ctx, lotId, pg)
	if err != nil {
		return nil, err
	}

	return mapLotBids(bids), nil
}
