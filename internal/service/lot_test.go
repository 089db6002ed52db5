package service

import (
	"context"
	"testing"
	"time"

	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/common"
	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLotServiceAt(store *fakeStore, now time.Time) *LotService {
	s := NewLotService(store.repositories())
	s.now = func() time.Time { return now }

	return s
}

func TestCreateLot_DefaultsAndNumbering(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	admin := store.addAdmin("admin")

	s := newLotServiceAt(store, now)

	first, err := s.CreateLot(context.Background(), &entity.CreateLotInput{
		RequesterId: admin.Id.String(),
		Title:       "Lote eletrônicos",
		Description: "Devoluções de marketplace",
		StartingBid: decimal.RequireFromString("1500"),
		ClosesAt:    now.Add(72 * time.Hour),
		PhotoUrls:   []string{"https://cdn.example.com/p1.jpg"},
	})
	require.NoError(t, err)

	// OpensAt was omitted, so the lot opens immediately.
	assert.Equal(t, now.Format(time.RFC3339), first.OpensAt)
	assert.Equal(t, common.LotActive, first.Status)
	assert.Equal(t, "1500.00", first.StartingBid)
	assert.Nil(t, first.CurrentBid)

	second, err := s.CreateLot(context.Background(), &entity.CreateLotInput{
		RequesterId: admin.Id.String(),
		Title:       "Lote vestuário",
		Description: "Devoluções de e-commerce",
		StartingBid: decimal.RequireFromString("800"),
		ClosesAt:    now.Add(48 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, first.Number+1, second.Number)
}

func TestCreateLot_Validation(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	admin := store.addAdmin("admin")
	regular := store.addAccount("maria", common.ApprovalApproved)

	s := newLotServiceAt(store, now)

	_, err := s.CreateLot(context.Background(), &entity.CreateLotInput{
		RequesterId: regular.Id.String(),
		Title:       "Lote",
		StartingBid: decimal.RequireFromString("100"),
		ClosesAt:    now.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = s.CreateLot(context.Background(), &entity.CreateLotInput{
		RequesterId: admin.Id.String(),
		Title:       "Lote",
		StartingBid: decimal.RequireFromString("100"),
		OpensAt:     now.Add(2 * time.Hour),
		ClosesAt:    now.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	photos := make([]string, common.MaxLotPhotos+1)
	for i := range photos {
		photos[i] = "https://cdn.example.com/p.jpg"
	}
	_, err = s.CreateLot(context.Background(), &entity.CreateLotInput{
		RequesterId: admin.Id.String(),
		Title:       "Lote",
		StartingBid: decimal.RequireFromString("100"),
		ClosesAt:    now.Add(time.Hour),
		PhotoUrls:   photos,
	})
	assert.ErrorIs(t, err, ErrTooManyPhotos)
}

func TestEditLotById_PatchesOnlyGivenFields(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	admin := store.addAdmin("admin")
	lot := store.addLot("1000", common.LotActive, now.Add(time.Hour))

	s := newLotServiceAt(store, now)

	title := "Lote revisado"
	out, err := s.EditLotById(context.Background(), lot.Id.String(), admin.Id.String(), &entity.LotPatch{
		Title: &title,
	})
	require.NoError(t, err)
	assert.Equal(t, "Lote revisado", out.Title)
	// Untouched fields survive the patch.
	assert.Equal(t, lot.Description, out.Description)
	assert.Equal(t, "1000.00", out.StartingBid)
}

func TestEditLotById_RejectsEmptyPatchAndBadWindow(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	admin := store.addAdmin("admin")
	lot := store.addLot("1000", common.LotActive, now.Add(time.Hour))

	s := newLotServiceAt(store, now)

	_, err := s.EditLotById(context.Background(), lot.Id.String(), admin.Id.String(), &entity.LotPatch{})
	assert.ErrorIs(t, err, ErrNoNewChanges)

	// Moving closes_at before the stored opens_at breaks the window.
	badClose := lot.OpensAt.Add(-time.Minute)
	_, err = s.EditLotById(context.Background(), lot.Id.String(), admin.Id.String(), &entity.LotPatch{
		ClosesAt: &badClose,
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestCancelLotById_IsOneWay(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	admin := store.addAdmin("admin")
	lot := store.addLot("1000", common.LotActive, now.Add(time.Hour))

	s := newLotServiceAt(store, now)

	out, err := s.CancelLotById(context.Background(), lot.Id.String(), admin.Id.String())
	require.NoError(t, err)
	assert.Equal(t, common.LotCancelled, out.Status)

	_, err = s.CancelLotById(context.Background(), lot.Id.String(), admin.Id.String())
	assert.ErrorIs(t, err, ErrLotAlreadyFinalized)
}

func TestDeleteLotById_RemovesLotAndBids(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	admin := store.addAdmin("admin")
	bidder := store.addAccount("maria", common.ApprovalApproved)
	lot := store.addLot("1000", common.LotActive, now.Add(time.Hour))
	placeBid(t, store, lot, bidder, "1100", now.Add(-time.Minute))

	s := newLotServiceAt(store, now)

	require.NoError(t, s.DeleteLotById(context.Background(), lot.Id.String(), admin.Id.String()))

	_, err := s.GetLotById(context.Background(), lot.Id.String())
	assert.ErrorIs(t, err, ErrLotNotFound)
	assert.Empty(t, store.lotBids(lot.Id.String()))

	err = s.DeleteLotById(context.Background(), lot.Id.String(), admin.Id.String())
	assert.ErrorIs(t, err, ErrLotNotFound)
}

func TestGetLotsByStatus_OrdersByCloseTime(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	later := store.addLot("1000", common.LotActive, now.Add(3*time.Hour))
	sooner := store.addLot("1000", common.LotActive, now.Add(time.Hour))
	store.addLot("1000", common.LotCancelled, now.Add(2*time.Hour))

	s := newLotServiceAt(store, now)

	lots, err := s.GetLotsByStatus(context.Background(), common.LotActive, nil)
	require.NoError(t, err)
	require.Len(t, lots, 2)
	assert.Equal(t, sooner.Id.String(), lots[0].Id)
	assert.Equal(t, later.Id.String(), lots[1].Id)
}

func TestGetLotById_IncludesBidHistory(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	bidder := store.addAccount("maria", common.ApprovalApproved)
	lot := store.addLot("1000", common.LotActive, now.Add(time.Hour))
	placeBid(t, store, lot, bidder, "1100", now.Add(-2*time.Minute))
	placeBid(t, store, lot, bidder, "1200", now.Add(-time.Minute))

	s := newLotServiceAt(store, now)

	details, err := s.GetLotById(context.Background(), lot.Id.String())
	require.NoError(t, err)
	assert.Equal(t, 2, details.BidCount)
	require.Len(t, details.Bids, 2)
	// Newest first.
	assert.Equal(t, "1200.00", details.Bids[0].Amount)
	assert.Equal(t, "1100.00", details.Bids[1].Amount)
}
