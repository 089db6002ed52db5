package repo

import (
	"context"
	"time"

	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/entity"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/repo/pgdb"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/pkg/postgres"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

type Account interface {
	CreateAccount(ctx context.Context, input *entity.CreateAccountInput) (uuid.UUID, error)
	GetAccountById(ctx context.Context, id string) (*entity.Account, error)
	GetAccounts(ctx context.Context, approvalStatus string, pg *entity.PaginationInput) ([]entity.Account, error)
	UpdateApprovalStatus(ctx context.Context, id string, newStatus string) error
	HasRole(ctx context.Context, accountId string, role string) (bool, error)
}

type Lot interface {
	CreateLot(ctx context.Context, input *entity.CreateLotInput) (uuid.UUID, error)
	GetLotById(ctx context.Context, id string) (*entity.Lot, error)
	GetLotsByStatus(ctx context.Context, status string, pg *entity.PaginationInput) ([]entity.LotListItem, error)
	UpdateLot(ctx context.Context, id string, patch *entity.LotPatch) error
	UpdateLotStatus(ctx context.Context, id string, expectedStatus, newStatus string) error
	FinalizeLot(ctx context.Context, id string, finalizedAt time.Time) error
	DeleteLot(ctx context.Context, id string) error
}

type Bid interface {
	// PlaceBid inserts the bid and raises the lot's current bid as one
	// transaction, holding a row lock on the lot so concurrent bids are
	// serialized. The minimum-amount and status checks are re-applied under
	// the lock.
	PlaceBid(ctx context.Context, input *entity.PlaceBidInput) (uuid.UUID, error)
	GetBidById(ctx context.Context, id string) (*entity.Bid, error)
	GetLotBids(ctx context.Context, lotId string, pg *entity.PaginationInput) ([]entity.BidWithBidder, error)
	GetAccountBids(ctx context.Context, accountId string, pg *entity.PaginationInput) ([]entity.AccountBid, error)
	GetWinningBid(ctx context.Context, lotId string) (*entity.WinningBid, error)
}

type Banner interface {
	CreateBanner(ctx context.Context, input *entity.CreateBannerInput) (uuid.UUID, error)
	GetBannerById(ctx context.Context, id string) (*entity.Banner, error)
	GetBanners(ctx context.Context, onlyActive bool) ([]entity.Banner, error)
	UpdateBanner(ctx context.Context, id string, patch *entity.BannerPatch) error
	DeleteBanner(ctx context.Context, id string) error
}

type Repositories struct {
	Diagnostics
	Account
	Lot
	Bid
	Banner
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		Account:     pgdb.NewAccountRepo(p),
		Lot:         pgdb.NewLotRepo(p),
		Bid:         pgdb.NewBidRepo(p),
		Banner:      pgdb.NewBannerRepo(p),
	}
}
