package pgdb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/entity"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/repo/repo_errors"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/pkg/postgres"

	"github.com/google/uuid"
)

type BannerRepo struct {
	*postgres.Postgres
}

func NewBannerRepo(pgdb *postgres.Postgres) *BannerRepo {
	return &BannerRepo{pgdb}
}

func (r *BannerRepo) CreateBanner(ctx context.Context, input *entity.CreateBannerInput) (uuid.UUID, error) {
	createBannerSql, args, _ := r.SqlBuilder.
		Insert("banner").
		Columns("title", "image_url", "link", "position", "active").
		Values(input.Title, input.ImageUrl, input.Link, input.Position, input.Active).
		Suffix("RETURNING id").
		ToSql()

	var bannerId uuid.UUID
	err := r.Database.QueryRowContext(ctx, createBannerSql, args...).Scan(&bannerId)
	if err != nil {
		return uuid.Nil, err
	}

	return bannerId, nil
}

func (r *BannerRepo) GetBannerById(ctx context.Context, id string) (*entity.Banner, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getBannerSql, args, _ := r.SqlBuilder.
		Select("id", "title", "image_url", "link", "position", "active", "created_at").
		From("banner").
		Where("id = ?", uuidForm).
		ToSql()

	var banner entity.Banner
	row := r.Database.QueryRowContext(ctx, getBannerSql, args...)
	err = row.Scan(&banner.Id, &banner.Title, &banner.ImageUrl, &banner.Link,
		&banner.Position, &banner.Active, &banner.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &banner, nil
}

func (r *BannerRepo) GetBanners(ctx context.Context, onlyActive bool) ([]entity.Banner, error) {
	builder := r.SqlBuilder.
		Select("id", "title", "image_url", "link", "position", "active", "created_at").
		From("banner")

	if onlyActive {
		builder = builder.Where("active = ?", true)
	}

	sqlReq, args, _ := builder.OrderBy("position ASC").ToSql()

	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	banners := make([]entity.Banner, 0)
	for rows.Next() {
		var banner entity.Banner
		if err := rows.Scan(&banner.Id, &banner.Title, &banner.ImageUrl, &banner.Link,
			&banner.Position, &banner.Active, &banner.CreatedAt); err != nil {
			return banners, err
		}
		banners = append(banners, banner)
	}
	if err = rows.Err(); err != nil {
		return banners, err
	}

	return banners, nil
}

func (r *BannerRepo) UpdateBanner(ctx context.Context, id string, patch *entity.BannerPatch) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	builder := r.SqlBuilder.Update("banner")
	if patch.Title != nil {
		builder = builder.Set("title", *patch.Title)
	}
	if patch.ImageUrl != nil {
		builder = builder.Set("image_url", *patch.ImageUrl)
	}
	if patch.Link != nil {
		builder = builder.Set("link", *patch.Link)
	}
	if patch.Position != nil {
		builder = builder.Set("position", *patch.Position)
	}
	if patch.Active != nil {
		builder = builder.Set("active", *patch.Active)
	}

	updateBannerSql, args, _ := builder.Where("id = ?", uuidForm).ToSql()

	result, err := r.Database.ExecContext(ctx, updateBannerSql, args...)
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

func (r *BannerRepo) DeleteBanner(ctx context.Context, id string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	deleteBannerSql, args, _ := r.SqlBuilder.
		Delete("banner").
		Where("id = ?", uuidForm).
		ToSql()

	result, err := r.Database.ExecContext(ctx, deleteBannerSql, args...)
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
