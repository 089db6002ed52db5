package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/common"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/entity"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/repo/repo_errors"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type LotRepo struct {
	*postgres.Postgres
}

func NewLotRepo(pgdb *postgres.Postgres) *LotRepo {
	return &LotRepo{pgdb}
}

const lotColumns = "lote.id, lote.number, lote.title, lote.description, lote.origin, " +
	"lote.starting_bid, lote.current_bid, lote.status, lote.opens_at, lote.closes_at, " +
	"lote.photo_urls, lote.video_url, lote.finalized_at, lote.created_at"

func scanLot(row squirrel.RowScanner, lot *entity.Lot) error {
	return row.Scan(&lot.Id, &lot.Number, &lot.Title, &lot.Description, &lot.Origin,
		&lot.StartingBid, &lot.CurrentBid, &lot.Status, &lot.OpensAt, &lot.ClosesAt,
		pq.Array(&lot.PhotoUrls), &lot.VideoUrl, &lot.FinalizedAt, &lot.CreatedAt)
}

func (r *LotRepo) CreateLot(ctx context.Context, input *entity.CreateLotInput) (uuid.UUID, error) {
	createLotSql, args, _ := r.SqlBuilder.
		Insert("lote").
		Columns("title", "description", "origin", "starting_bid", "status",
			"opens_at", "closes_at", "photo_urls", "video_url").
		Values(input.Title, input.Description, input.Origin, input.StartingBid, input.Status,
			input.OpensAt, input.ClosesAt, pq.Array(input.PhotoUrls), input.VideoUrl).
		Suffix("RETURNING id").
		ToSql()

	var lotId uuid.UUID
	err := r.Database.QueryRowContext(ctx, createLotSql, args...).Scan(&lotId)
	if err != nil {
		return uuid.Nil, err
	}

	return lotId, nil
}

func (r *LotRepo) GetLotById(ctx context.Context, id string) (*entity.Lot, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getLotSql, args, _ := r.SqlBuilder.
		Select(lotColumns).
		From("lote").
		Where("lote.id = ?", uuidForm).
		ToSql()

	var lot entity.Lot
	row := r.Database.QueryRowContext(ctx, getLotSql, args...)
	if err := scanLot(row, &lot); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &lot, nil
}

func (r *LotRepo) GetLotsByStatus(ctx context.Context, status string, pg *entity.PaginationInput) ([]entity.LotListItem, error) {
	sqlReq, args, _ := r.SqlBuilder.
		Select(lotColumns+", count(lance.id) as bid_count").
		From("lote").
		LeftJoin("lance on lance.lot_id = lote.id").
		Where("lote.status = ?", status).
		GroupBy("lote.id").
		OrderBy("lote.closes_at ASC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lots := make([]entity.LotListItem, 0)
	for rows.Next() {
		var item entity.LotListItem
		if err := rows.Scan(&item.Id, &item.Number, &item.Title, &item.Description, &item.Origin,
			&item.StartingBid, &item.CurrentBid, &item.Status, &item.OpensAt, &item.ClosesAt,
			pq.Array(&item.PhotoUrls), &item.VideoUrl, &item.FinalizedAt, &item.CreatedAt,
			&item.BidCount); err != nil {
			return lots, err
		}
		lots = append(lots, item)
	}
	if err = rows.Err(); err != nil {
		return lots, err
	}

	return lots, nil
}

func (r *LotRepo) UpdateLot(ctx context.Context, id string, patch *entity.LotPatch) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	builder := r.SqlBuilder.Update("lote")
	if patch.Title != nil {
		builder = builder.Set("title", *patch.Title)
	}
	if patch.Description != nil {
		builder = builder.Set("description", *patch.Description)
	}
	if patch.Origin != nil {
		builder = builder.Set("origin", *patch.Origin)
	}
	if patch.StartingBid != nil {
		builder = builder.Set("starting_bid", *patch.StartingBid)
	}
	if patch.OpensAt != nil {
		builder = builder.Set("opens_at", *patch.OpensAt)
	}
	if patch.ClosesAt != nil {
		builder = builder.Set("closes_at", *patch.ClosesAt)
	}
	if patch.PhotoUrls != nil {
		builder = builder.Set("photo_urls", pq.Array(*patch.PhotoUrls))
	}
	if patch.VideoUrl != nil {
		builder = builder.Set("video_url", *patch.VideoUrl)
	}

	updateLotSql, args, _ := builder.Where("id = ?", uuidForm).ToSql()

	result, err := r.Database.ExecContext(ctx, updateLotSql, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}

// UpdateLotStatus is a compare-and-set transition: the update only applies
// when the lot still has expectedStatus. Zero affected rows means the lot is
// gone or already left that status.
func (r *LotRepo) UpdateLotStatus(ctx context.Context, id string, expectedStatus, newStatus string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	updateStatusSql, args, _ := r.SqlBuilder.
		Update("lote").
		Set("status", newStatus).
		Where("id = ?", uuidForm).
		Where("status = ?", expectedStatus).
		ToSql()

	result, err := r.Database.ExecContext(ctx, updateStatusSql, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrLotNotActive
	}

	return nil
}

func (r *LotRepo) FinalizeLot(ctx context.Context, id string, finalizedAt time.Time) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	finalizeSql, args, _ := r.SqlBuilder.
		Update("lote").
		Set("status", common.LotFinalized).
		Set("finalized_at", finalizedAt).
		Where("id = ?", uuidForm).
		Where("status = ?", common.LotActive).
		ToSql()

	result, err := r.Database.ExecContext(ctx, finalizeSql, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrLotNotActive
	}

	return nil
}

// DeleteLot removes the lot and its bids in one transaction. Bids carry a
// foreign key to the lot, so they have to go first.
func (r *LotRepo) DeleteLot(ctx context.Context, id string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	deleteBidsSql, args, _ := r.SqlBuilder.
		Delete("lance").
		Where("lot_id = ?", uuidForm).
		ToSql()

	if _, err = tx.ExecContext(ctx, deleteBidsSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	deleteLotSql, args, _ := r.SqlBuilder.
		Delete("lote").
		Where("id = ?", uuidForm).
		ToSql()

	result, err := tx.ExecContext(ctx, deleteLotSql, args...)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}
	if affected == 0 {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrNotFound
	}

	return tx.Commit()
}
