package service

import (
	"context"
	"errors"

	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/common"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/entity"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/repo"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/repo/repo_errors"

	"golang.org/x/crypto/bcrypt"
)

type AccountService struct {
	accountRepo repo.Account
}

func NewAccountService(repos *repo.Repositories) *AccountService {
	return &AccountService{accountRepo: repos.Account}
}

// Register creates an account awaiting approval. Uniqueness of email and tax
// id is enforced by the database; a violation surfaces as
// ErrAccountAlreadyExists.
func (s *AccountService) Register(ctx context.Context, input *entity.RegisterAccountInput) (*entity.AccountOutputModel, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id, err := s.accountRepo.CreateAccount(ctx, &entity.CreateAccountInput{
		Name:           input.Name,
		Email:          input.Email,
		PasswordHash:   string(hash),
		TaxId:          input.TaxId,
		Phone:          input.Phone,
		PostalCode:     input.PostalCode,
		Street:         input.Street,
		StreetNumber:   input.StreetNumber,
		Unit:           input.Unit,
		District:       input.District,
		City:           input.City,
		State:          input.State,
		DocumentFront:  input.DocumentFront,
		DocumentBack:   input.DocumentBack,
		SelfieUrl:      input.SelfieUrl,
		ApprovalStatus: common.ApprovalPending,
	})
	if err != nil {
		if errors.Is(err, repo_errors.ErrAlreadyExists) {
			return nil, ErrAccountAlreadyExists
		}

		return nil, err
	}

	account, err := s.accountRepo.GetAccountById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapAccount(account), nil
}

func (s *AccountService) requireAdmin(ctx context.Context, requesterId string) error {
	isAdmin, err := s.accountRepo.HasRole(ctx, requesterId, common.RoleAdmin)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrUnauthorized
	}

	return nil
}

func (s *AccountService) GetAccounts(ctx context.Context, requesterId string, approvalStatus string, pg *entity.PaginationInput) ([]entity.AccountOutputModel, error) {
	if err := s.requireAdmin(ctx, requesterId); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.GetAccounts(ctx, approvalStatus, pg)
	if err != nil {
		return nil, err
	}

	return mapAccounts(accounts), nil
}

func (s *AccountService) GetAccountById(ctx context.Context, accountId string, requesterId string) (*entity.AccountOutputModel, error) {
	if err := s.requireAdmin(ctx, requesterId); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetAccountById(ctx, accountId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrAccountNotFound
		}

		return nil, err
	}

	return mapAccount(account), nil
}

func (s *AccountService) UpdateApprovalStatus(ctx context.Context, accountId string, requesterId string, newStatus string) (*entity.AccountOutputModel, error) {
	if err := s.requireAdmin(ctx, requesterId); err != nil {
		return nil, err
	}

	err := s.accountRepo.UpdateApprovalStatus(ctx, accountId, newStatus)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrAccountNotFound
		}

		return nil, err
	}

	account, err := s.accountRepo.GetAccountById(ctx, accountId)
	if err != nil {
		return nil, err
	}

	return mapAccount(account), nil
}
