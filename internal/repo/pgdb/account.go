package pgdb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/entity"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/repo/repo_errors"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type AccountRepo struct {
	*postgres.Postgres
}

func NewAccountRepo(pgdb *postgres.Postgres) *AccountRepo {
	return &AccountRepo{pgdb}
}

const accountColumns = "id, name, email, password_hash, tax_id, phone, postal_code, " +
	"street, street_number, unit, district, city, state, approval_status, " +
	"document_front_url, document_back_url, selfie_url, created_at"

func scanAccount(row squirrel.RowScanner, a *entity.Account) error {
	return row.Scan(&a.Id, &a.Name, &a.Email, &a.PasswordHash, &a.TaxId, &a.Phone,
		&a.PostalCode, &a.Street, &a.StreetNumber, &a.Unit, &a.District, &a.City,
		&a.State, &a.ApprovalStatus, &a.DocumentFront, &a.DocumentBack, &a.SelfieUrl,
		&a.CreatedAt)
}

func (r *AccountRepo) CreateAccount(ctx context.Context, input *entity.CreateAccountInput) (uuid.UUID, error) {
	createAccountSql, args, _ := r.SqlBuilder.
		Insert("account").
		Columns("name", "email", "password_hash", "tax_id", "phone", "postal_code",
			"street", "street_number", "unit", "district", "city", "state",
			"approval_status", "document_front_url", "document_back_url", "selfie_url").
		Values(input.Name, input.Email, input.PasswordHash, input.TaxId, input.Phone,
			input.PostalCode, input.Street, input.StreetNumber, input.Unit, input.District,
			input.City, input.State, input.ApprovalStatus, input.DocumentFront,
			input.DocumentBack, input.SelfieUrl).
		Suffix("RETURNING id").
		ToSql()

	var accountId uuid.UUID
	err := r.Database.QueryRowContext(ctx, createAccountSql, args...).Scan(&accountId)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return uuid.Nil, repo_errors.ErrAlreadyExists
		}

		return uuid.Nil, err
	}

	return accountId, nil
}

func (r *AccountRepo) GetAccountById(ctx context.Context, id string) (*entity.Account, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getAccountSql, args, _ := r.SqlBuilder.
		Select(accountColumns).
		From("account").
		Where("id = ?", uuidForm).
		ToSql()

	var account entity.Account
	row := r.Database.QueryRowContext(ctx, getAccountSql, args...)
	if err := scanAccount(row, &account); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return &account, nil
}

func (r *AccountRepo) GetAccounts(ctx context.Context, approvalStatus string, pg *entity.PaginationInput) ([]entity.Account, error) {
	builder := r.SqlBuilder.
		Select(accountColumns).
		From("account")

	if approvalStatus != "" {
		builder = builder.Where("approval_status = ?", approvalStatus)
	}

	sqlReq, args, _ := builder.
		OrderBy("created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, sqlReq, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]entity.Account, 0)
	for rows.Next() {
		var account entity.Account
		if err := scanAccount(rows, &account); err != nil {
			return accounts, err
		}
		accounts = append(accounts, account)
	}
	if err = rows.Err(); err != nil {
		return accounts, err
	}

	return accounts, nil
}

func (r *AccountRepo) UpdateApprovalStatus(ctx context.Context, id string, newStatus string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	updateStatusSql, args, _ := r.SqlBuilder.
		Update("account").
		Set("approval_status", newStatus).
		Where("id = ?", uuidForm).
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
		return repo_errors.ErrNotFound
	}

	return nil
}

func (r *AccountRepo) HasRole(ctx context.Context, accountId string, role string) (bool, error) {
	uuidForm, err := uuid.Parse(accountId)
	if err != nil {
		return false, nil
	}

	sqlReq, args, _ := r.SqlBuilder.
		Select("account_id").
		From("account_role").
		Where("account_id = ?", uuidForm).
		Where("role = ?", role).
		ToSql()

	var id uuid.UUID
	err = r.Database.QueryRowContext(ctx, sqlReq, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
