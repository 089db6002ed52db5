package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/common"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/entity"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/repo"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/repo/repo_errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeStore is an in-memory implementation of every repository interface.
// PlaceBid holds the store mutex for the whole check-and-write, mirroring the
// row lock the Postgres implementation takes.
type fakeStore struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account
	roles    map[string]map[string]bool
	lots     map[string]*entity.Lot
	bids     []*entity.Bid
	banners  map[string]*entity.Banner

	nextLotNumber int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:      make(map[string]*entity.Account),
		roles:         make(map[string]map[string]bool),
		lots:          make(map[string]*entity.Lot),
		banners:       make(map[string]*entity.Banner),
		nextLotNumber: 1,
	}
}

func (f *fakeStore) repositories() *repo.Repositories {
	return &repo.Repositories{
		Diagnostics: f,
		Account:     f,
		Lot:         f,
		Bid:         f,
		Banner:      f,
	}
}

func (f *fakeStore) addAccount(name string, approvalStatus string) *entity.Account {
	f.mu.Lock()
	defer f.mu.Unlock()

	account := &entity.Account{
		Id:             uuid.New(),
		Name:           name,
		Email:          name + "@example.com",
		TaxId:          "52998224725",
		Phone:          "(15) 99999-0000",
		PostalCode:     "18035-000",
		Street:         "Rua das Acácias",
		StreetNumber:   "120",
		District:       "Centro",
		City:           "Sorocaba",
		State:          "SP",
		ApprovalStatus: approvalStatus,
		CreatedAt:      time.Now(),
	}
	f.accounts[account.Id.String()] = account

	return account
}

func (f *fakeStore) addAdmin(name string) *entity.Account {
	account := f.addAccount(name, common.ApprovalApproved)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.roles[account.Id.String()] = map[string]bool{common.RoleAdmin: true}

	return account
}

func (f *fakeStore) addLot(startingBid string, status string, closesAt time.Time) *entity.Lot {
	f.mu.Lock()
	defer f.mu.Unlock()

	lot := &entity.Lot{
		Id:          uuid.New(),
		Number:      f.nextLotNumber,
		Title:       "Lote de retorno",
		Description: "Mercadorias de devolução de marketplace",
		StartingBid: decimal.RequireFromString(startingBid),
		Status:      status,
		OpensAt:     closesAt.Add(-24 * time.Hour),
		ClosesAt:    closesAt,
		PhotoUrls:   []string{},
		CreatedAt:   time.Now(),
	}
	f.nextLotNumber++
	f.lots[lot.Id.String()] = lot

	return lot
}

func (f *fakeStore) lotBids(lotId string) []*entity.Bid {
	f.mu.Lock()
	defer f.mu.Unlock()

	bids := make([]*entity.Bid, 0)
	for _, bid := range f.bids {
		if bid.LotId.String() == lotId {
			bids = append(bids, bid)
		}
	}

	return bids
}

// Diagnostics

func (f *fakeStore) Ping() error { return nil }

// Account

func (f *fakeStore) CreateAccount(ctx context.Context, input *entity.CreateAccountInput) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, account := range f.accounts {
		if account.Email == input.Email || account.TaxId == input.TaxId {
			return uuid.Nil, repo_errors.ErrAlreadyExists
		}
	}

	account := &entity.Account{
		Id:             uuid.New(),
		Name:           input.Name,
		Email:          input.Email,
		PasswordHash:   input.PasswordHash,
		TaxId:          input.TaxId,
		Phone:          input.Phone,
		PostalCode:     input.PostalCode,
		Street:         input.Street,
		StreetNumber:   input.StreetNumber,
		Unit:           input.Unit,
		District:       input.District,
		City:           input.City,
		State:          input.State,
		ApprovalStatus: input.ApprovalStatus,
		DocumentFront:  input.DocumentFront,
		DocumentBack:   input.DocumentBack,
		SelfieUrl:      input.SelfieUrl,
		CreatedAt:      time.Now(),
	}
	f.accounts[account.Id.String()] = account

	return account.Id, nil
}

func (f *fakeStore) GetAccountById(ctx context.Context, id string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	account, ok := f.accounts[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	copied := *account
	return &copied, nil
}

func (f *fakeStore) GetAccounts(ctx context.Context, approvalStatus string, pg *entity.PaginationInput) ([]entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	accounts := make([]entity.Account, 0)
	for _, account := range f.accounts {
		if approvalStatus == "" || account.ApprovalStatus == approvalStatus {
			accounts = append(accounts, *account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.After(accounts[j].CreatedAt)
	})

	return paginate(accounts, pg), nil
}

func (f *fakeStore) UpdateApprovalStatus(ctx context.Context, id string, newStatus string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	account, ok := f.accounts[id]
	if !ok {
		return repo_errors.ErrNotFound
	}
	account.ApprovalStatus = newStatus

	return nil
}

func (f *fakeStore) HasRole(ctx context.Context, accountId string, role string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.roles[accountId][role], nil
}

// Lot

func (f *fakeStore) CreateLot(ctx context.Context, input *entity.CreateLotInput) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	lot := &entity.Lot{
		Id:          uuid.New(),
		Number:      f.nextLotNumber,
		Title:       input.Title,
		Description: input.Description,
		Origin:      input.Origin,
		StartingBid: input.StartingBid,
		Status:      input.Status,
		OpensAt:     input.OpensAt,
		ClosesAt:    input.ClosesAt,
		PhotoUrls:   input.PhotoUrls,
		VideoUrl:    input.VideoUrl,
		CreatedAt:   time.Now(),
	}
	f.nextLotNumber++
	f.lots[lot.Id.String()] = lot

	return lot.Id, nil
}

func (f *fakeStore) GetLotById(ctx context.Context, id string) (*entity.Lot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	lot, ok := f.lots[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	copied := *lot
	return &copied, nil
}

func (f *fakeStore) GetLotsByStatus(ctx context.Context, status string, pg *entity.PaginationInput) ([]entity.LotListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	lots := make([]entity.LotListItem, 0)
	for _, lot := range f.lots {
		if lot.Status != status {
			continue
		}
		count := 0
		for _, bid := range f.bids {
			if bid.LotId == lot.Id {
				count++
			}
		}
		lots = append(lots, entity.LotListItem{Lot: *lot, BidCount: count})
	}
	sort.Slice(lots, func(i, j int) bool {
		return lots[i].ClosesAt.Before(lots[j].ClosesAt)
	})

	return paginate(lots, pg), nil
}

func (f *fakeStore) UpdateLot(ctx context.Context, id string, patch *entity.LotPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	lot, ok := f.lots[id]
	if !ok {
		return repo_errors.ErrNotFound
	}

	if patch.Title != nil {
		lot.Title = *patch.Title
	}
	if patch.Description != nil {
		lot.Description = *patch.Description
	}
	if patch.Origin != nil {
		lot.Origin = *patch.Origin
	}
	if patch.StartingBid != nil {
		lot.StartingBid = *patch.StartingBid
	}
	if patch.OpensAt != nil {
		lot.OpensAt = *patch.OpensAt
	}
	if patch.ClosesAt != nil {
		lot.ClosesAt = *patch.ClosesAt
	}
	if patch.PhotoUrls != nil {
		lot.PhotoUrls = *patch.PhotoUrls
	}
	if patch.VideoUrl != nil {
		lot.VideoUrl = *patch.VideoUrl
	}

	return nil
}

func (f *fakeStore) UpdateLotStatus(ctx context.Context, id string, expectedStatus, newStatus string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	lot, ok := f.lots[id]
	if !ok || lot.Status != expectedStatus {
		return repo_errors.ErrLotNotActive
	}
	lot.Status = newStatus

	return nil
}

func (f *fakeStore) FinalizeLot(ctx context.Context, id string, finalizedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	lot, ok := f.lots[id]
	if !ok || lot.Status != common.LotActive {
		return repo_errors.ErrLotNotActive
	}
	lot.Status = common.LotFinalized
	lot.FinalizedAt = &finalizedAt

	return nil
}

func (f *fakeStore) DeleteLot(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.lots[id]; !ok {
		return repo_errors.ErrNotFound
	}

	kept := f.bids[:0]
	for _, bid := range f.bids {
		if bid.LotId.String() != id {
			kept = append(kept, bid)
		}
	}
	f.bids = kept
	delete(f.lots, id)

	return nil
}

// Bid

func (f *fakeStore) PlaceBid(ctx context.Context, input *entity.PlaceBidInput) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	lot, ok := f.lots[input.LotId.String()]
	if !ok {
		return uuid.Nil, repo_errors.ErrNotFound
	}
	if lot.Status != common.LotActive {
		return uuid.Nil, repo_errors.ErrLotNotActive
	}

	minimum := lot.StartingBid
	if lot.CurrentBid.Valid {
		minimum = lot.CurrentBid.Decimal
	}
	if !input.Amount.GreaterThan(minimum) {
		return uuid.Nil, &repo_errors.BidBelowMinimumError{Minimum: minimum}
	}

	bid := &entity.Bid{
		Id:        uuid.New(),
		Amount:    input.Amount,
		LotId:     input.LotId,
		AccountId: input.AccountId,
		CreatedAt: input.PlacedAt,
	}
	f.bids = append(f.bids, bid)
	lot.CurrentBid = decimal.NewNullDecimal(input.Amount)

	return bid.Id, nil
}

func (f *fakeStore) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, bid := range f.bids {
		if bid.Id.String() == id {
			copied := *bid
			return &copied, nil
		}
	}

	return nil, repo_errors.ErrNotFound
}

func (f *fakeStore) GetLotBids(ctx context.Context, lotId string, pg *entity.PaginationInput) ([]entity.BidWithBidder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bids := make([]entity.BidWithBidder, 0)
	for _, bid := range f.bids {
		if bid.LotId.String() != lotId {
			continue
		}
		joined := entity.BidWithBidder{Bid: *bid}
		if account, ok := f.accounts[bid.AccountId.String()]; ok {
			joined.BidderName = account.Name
			joined.BidderEmail = account.Email
		}
		bids = append(bids, joined)
	}
	sort.Slice(bids, func(i, j int) bool {
		return bids[i].CreatedAt.After(bids[j].CreatedAt)
	})

	return paginate(bids, pg), nil
}

func (f *fakeStore) GetAccountBids(ctx context.Context, accountId string, pg *entity.PaginationInput) ([]entity.AccountBid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bids := make([]entity.AccountBid, 0)
	for _, bid := range f.bids {
		if bid.AccountId.String() != accountId {
			continue
		}
		joined := entity.AccountBid{Bid: *bid}
		if lot, ok := f.lots[bid.LotId.String()]; ok {
			joined.LotNumber = lot.Number
			joined.LotTitle = lot.Title
			joined.LotStatus = lot.Status
		}
		bids = append(bids, joined)
	}
	sort.Slice(bids, func(i, j int) bool {
		return bids[i].CreatedAt.After(bids[j].CreatedAt)
	})

	return paginate(bids, pg), nil
}

func (f *fakeStore) GetWinningBid(ctx context.Context, lotId string) (*entity.WinningBid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var winner *entity.Bid
	for _, bid := range f.bids {
		if bid.LotId.String() != lotId {
			continue
		}
		if winner == nil || bid.Amount.GreaterThan(winner.Amount) ||
			(bid.Amount.Equal(winner.Amount) && bid.CreatedAt.Before(winner.CreatedAt)) {
			winner = bid
		}
	}
	if winner == nil {
		return nil, repo_errors.ErrNotFound
	}

	winning := &entity.WinningBid{Bid: *winner}
	if account, ok := f.accounts[winner.AccountId.String()]; ok {
		winning.Bidder = *account
	}

	return winning, nil
}

// Banner

func (f *fakeStore) CreateBanner(ctx context.Context, input *entity.CreateBannerInput) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	banner := &entity.Banner{
		Id:        uuid.New(),
		Title:     input.Title,
		ImageUrl:  input.ImageUrl,
		Link:      input.Link,
		Position:  input.Position,
		Active:    input.Active,
		CreatedAt: time.Now(),
	}
	f.banners[banner.Id.String()] = banner

	return banner.Id, nil
}

func (f *fakeStore) GetBannerById(ctx context.Context, id string) (*entity.Banner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	banner, ok := f.banners[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	copied := *banner
	return &copied, nil
}

func (f *fakeStore) GetBanners(ctx context.Context, onlyActive bool) ([]entity.Banner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	banners := make([]entity.Banner, 0)
	for _, banner := range f.banners {
		if !onlyActive || banner.Active {
			banners = append(banners, *banner)
		}
	}
	sort.Slice(banners, func(i, j int) bool {
		return banners[i].Position < banners[j].Position
	})

	return banners, nil
}

func (f *fakeStore) UpdateBanner(ctx context.Context, id string, patch *entity.BannerPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	banner, ok := f.banners[id]
	if !ok {
		return repo_errors.ErrNotFound
	}

	if patch.Title != nil {
		banner.Title = *patch.Title
	}
	if patch.ImageUrl != nil {
		banner.ImageUrl = *patch.ImageUrl
	}
	if patch.Link != nil {
		banner.Link = *patch.Link
	}
	if patch.Position != nil {
		banner.Position = *patch.Position
	}
	if patch.Active != nil {
		banner.Active = *patch.Active
	}

	return nil
}

func (f *fakeStore) DeleteBanner(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.banners[id]; !ok {
		return repo_errors.ErrNotFound
	}
	delete(f.banners, id)

	return nil
}

func paginate[T any](items []T, pg *entity.PaginationInput) []T {
	if pg == nil {
		return items
	}
	if pg.Offset >= len(items) {
		return []T{}
	}
	end := pg.Offset + pg.Limit
	if end > len(items) {
		end = len(items)
	}

	return items[pg.Offset:end]
}
