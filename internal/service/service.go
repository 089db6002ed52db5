package service

import (
	"context"

	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/entity"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/repo"

	"github.com/shopspring/decimal"
)

type Diagnostics interface {
	Ping() error
}

type Lot interface {
	CreateLot(ctx context.Context, input *entity.CreateLotInput) (*entity.LotOutputModel, error)
	EditLotById(ctx context.Context, lotId string, requesterId string, patch *entity.LotPatch) (*entity.LotOutputModel, error)
	CancelLotById(ctx context.Context, lotId string, requesterId string) (*entity.LotOutputModel, error)
	DeleteLotById(ctx context.Context, lotId string, requesterId string) error

	GetLotsByStatus(ctx context.Context, status string, pg *entity.PaginationInput) ([]entity.LotOutputModel, error)
	GetLotById(ctx context.Context, lotId string) (*entity.LotDetailsOutputModel, error)
}

type Bid interface {
	PlaceBid(ctx context.Context, lotId string, accountId string, amount decimal.Decimal) (*entity.BidOutputModel, error)
	GetAccountBids(ctx context.Context, accountId string, pg *entity.PaginationInput) ([]entity.AccountBidOutputModel, error)
	GetLotBids(ctx context.Context, lotId string, requesterId string, pg *entity.PaginationInput) ([]entity.LotBidOutputModel, error)
}

type Settlement interface {
	FinalizeLot(ctx context.Context, lotId string, requesterId string) (*entity.SettlementSummary, error)
	GetSettlement(ctx context.Context, lotId string, requesterId string) (*entity.SettlementSummary, error)
}

type Account interface {
	Register(ctx context.Context, input *entity.RegisterAccountInput) (*entity.AccountOutputModel, error)
	GetAccounts(ctx context.Context, requesterId string, approvalStatus string, pg *entity.PaginationInput) ([]entity.AccountOutputModel, error)
	GetAccountById(ctx context.Context, accountId string, requesterId string) (*entity.AccountOutputModel, error)
	UpdateApprovalStatus(ctx context.Context, accountId string, requesterId string, newStatus string) (*entity.AccountOutputModel, error)
}

type Banner interface {
	CreateBanner(ctx context.Context, requesterId string, input *entity.CreateBannerInput) (*entity.BannerOutputModel, error)
	EditBannerById(ctx context.Context, bannerId string, requesterId string, patch *entity.BannerPatch) (*entity.BannerOutputModel, error)
	DeleteBannerById(ctx context.Context, bannerId string, requesterId string) error
	GetBanners(ctx context.Context, onlyActive bool) ([]entity.BannerOutputModel, error)
}

type Services struct {
	Diagnostics Diagnostics
	Lot         Lot
	Bid         Bid
	Settlement  Settlement
	Account     Account
	Banner      Banner
}

func NewServices(repos *repo.Repositories) *Services {
	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		Lot:         NewLotService(repos),
		Bid:         NewBidService(repos),
		Settlement:  NewSettlementService(repos),
		Account:     NewAccountService(repos),
		Banner:      NewBannerService(repos),
	}
}
