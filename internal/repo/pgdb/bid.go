package pgdb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/common"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/entity"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/repo/repo_errors"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/pkg/postgres"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BidRepo struct {
	*postgres.Postgres
}

func NewBidRepo(pgdb *postgres.Postgres) *BidRepo {
	return &BidRepo{pgdb}
}

// PlaceBid appends the bid and raises the lot's current bid as one atomic
// unit. The lot row is locked with SELECT ... FOR UPDATE first, so two
// concurrent bids are serialized: the second one re-reads a current bid that
// already includes the first and fails the minimum check if it no longer
// exceeds it. A partial write (bid without lot update or vice versa) cannot
// be observed.
func (r *BidRepo) PlaceBid(ctx context.Context, input *entity.PlaceBidInput) (uuid.UUID, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}

	lockLotSql, args, _ := r.SqlBuilder.
		Select("status", "starting_bid", "current_bid").
		From("lote").
		Where("id = ?", input.LotId).
		Suffix("FOR UPDATE").
		ToSql()

	var status string
	var startingBid decimal.Decimal
	var currentBid decimal.NullDecimal
	err = tx.QueryRowContext(ctx, lockLotSql, args...).Scan(&status, &startingBid, &currentBid)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, repo_errors.ErrNotFound
		}

		return uuid.Nil, err
	}

	if status != common.LotActive {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, repo_errors.ErrLotNotActive
	}

	minimum := startingBid
	if currentBid.Valid {
		minimum = currentBid.Decimal
	}
	if !input.Amount.GreaterThan(minimum) {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, &repo_errors.BidBelowMinimumError{Minimum: minimum}
	}

	createBidSql, args, _ := r.SqlBuilder.
		Insert("lance").
		Columns("amount", "lot_id", "account_id", "created_at").
		Values(input.Amount, input.LotId, input.AccountId, input.PlacedAt).
		Suffix("RETURNING id").
		ToSql()

	var bidId uuid.UUID
	if err = tx.QueryRowContext(ctx, createBidSql, args...).Scan(&bidId); err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	updateLotSql, args, _ := r.SqlBuilder.
		Update("lote").
		Set("current_bid", input.Amount).
		Where("id = ?", input.LotId).
		ToSql()

	if _, err = tx.ExecContext(ctx, updateLotSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, err
	}

	return bidId, nil
}

func (r *BidRepo) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getBidSql, args, _ := r.SqlBuilder.
		Select("id", "amount", "lot_id", "account_id", "created_at").
		From("lance").
		Where("id = ?", uuidForm).
		ToSql()

	var bid entity.Bid
	row := r.Database.QueryRowContext(ctx, getBidSql, args...)
	err = row.Scan(&bid.Id, &bid.Amount, &bid.LotId, &bid.AccountId, &bid.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &bid, nil
}

func (r *BidRepo) GetLotBids(ctx context.Context, lotId string, pg *entity.PaginationInput) ([]entity.BidWithBidder, error) {
	uuidForm, err := uuid.Parse(lotId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	sqlReq, args, _ := r.SqlBuilder.
		Select("lance.id, lance.amount, lance.lot_id, lance.account_id, lance.created_at, account.name, account.email").
		From("lance").
		InnerJoin("account on account.id = lance.account_id").
		Where("lance.lot_id = ?", uuidForm).
		OrderBy("lance.created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]entity.BidWithBidder, 0)
	for rows.Next() {
		var bid entity.BidWithBidder
		if err := rows.Scan(&bid.Id, &bid.Amount, &bid.LotId, &bid.AccountId, &bid.CreatedAt,
			&bid.BidderName, &bid.BidderEmail); err != nil {
			return bids, err
		}
		bids = append(bids, bid)
	}
	if err = rows.Err(); err != nil {
		return bids, err
	}

	return bids, nil
}

func (r *BidRepo) GetAccountBids(ctx context.Context, accountId string, pg *entity.PaginationInput) ([]entity.AccountBid, error) {
	uuidForm, err := uuid.Parse(accountId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	sqlReq, args, _ := r.SqlBuilder.
		Select("lance.id, lance.amount, lance.lot_id, lance.account_id, lance.created_at, lote.number, lote.title, lote.status").
		From("lance").
		InnerJoin("lote on lote.id = lance.lot_id").
		Where("lance.account_id = ?", uuidForm).
		OrderBy("lance.created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]entity.AccountBid, 0)
	for rows.Next() {
		var bid entity.AccountBid
		if err := rows.Scan(&bid.Id, &bid.Amount, &bid.LotId, &bid.AccountId, &bid.CreatedAt,
			&bid.LotNumber, &bid.LotTitle, &bid.LotStatus); err != nil {
			return bids, err
		}
		bids = append(bids, bid)
	}
	if err = rows.Err(); err != nil {
		return bids, err
	}

	return bids, nil
}

// GetWinningBid returns the highest bid on the lot joined with the bidder's
// full contact record. Ties on amount go to the earliest bid, then the
// smallest id; they cannot arise through PlaceBid (strict greater-than) but
// the ordering keeps old or hand-loaded data deterministic.
func (r *BidRepo) GetWinningBid(ctx context.Context, lotId string) (*entity.WinningBid, error) {
	uuidForm, err := uuid.Parse(lotId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	sqlReq, args, _ := r.SqlBuilder.
		Select("lance.id, lance.amount, lance.lot_id, lance.account_id, lance.created_at, "+
			"account.id, account.name, account.email, account.tax_id, account.phone, "+
			"account.postal_code, account.street, account.street_number, account.unit, "+
			"account.district, account.city, account.state").
		From("lance").
		InnerJoin("account on account.id = lance.account_id").
		Where("lance.lot_id = ?", uuidForm).
		OrderBy("lance.amount DESC", "lance.created_at ASC", "lance.id ASC").
		Limit(1).
		ToSql()

	var winning entity.WinningBid
	row := r.Database.QueryRowContext(ctx, sqlReq, args...)
	err = row.Scan(&winning.Id, &winning.Amount, &winning.LotId, &winning.AccountId, &winning.CreatedAt,
		&winning.Bidder.Id, &winning.Bidder.Name, &winning.Bidder.Email, &winning.Bidder.TaxId,
		&winning.Bidder.Phone, &winning.Bidder.PostalCode, &winning.Bidder.Street,
		&winning.Bidder.StreetNumber, &winning.Bidder.Unit, &winning.Bidder.District,
		&winning.Bidder.City, &winning.Bidder.State)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &winning, nil
}
