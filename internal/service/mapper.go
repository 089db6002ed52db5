package service

import (
	"time"

	"github.com/hgtechsorocaba-arch/leiloes-reversa-abacus/internal/entity"
)

func mapLot(l *entity.Lot, bidCount int) *entity.LotOutputModel {
	var currentBid *string
	if l.CurrentBid.Valid {
		v := l.CurrentBid.Decimal.StringFixed(2)
		currentBid = &v
	}

	return &entity.LotOutputModel{
		Id:          l.Id.String(),
		Number:      l.Number,
		Title:       l.Title,
		Description: l.Description,
		Origin:      l.Origin,
		StartingBid: l.StartingBid.StringFixed(2),
		CurrentBid:  currentBid,
		Status:      l.Status,
		OpensAt:     l.OpensAt.Format(time.RFC3339),
		ClosesAt:    l.ClosesAt.Format(time.RFC3339),
		PhotoUrls:   l.PhotoUrls,
		VideoUrl:    l.VideoUrl,
		BidCount:    bidCount,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
}

func mapLots(lots []entity.LotListItem) []entity.LotOutputModel {
	s := make([]entity.LotOutputModel, 0)
	for _, lot := range lots {
		s = append(s, *mapLot(&lot.Lot, lot.BidCount))
	}

	return s
}

func mapBid(b *entity.Bid) *entity.BidOutputModel {
	return &entity.BidOutputModel{
		Id:        b.Id.String(),
		Amount:    b.Amount.StringFixed(2),
		LotId:     b.LotId.String(),
		AccountId: b.AccountId.String(),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}

func mapLotBids(bids []entity.BidWithBidder) []entity.LotBidOutputModel {
	s := make([]entity.LotBidOutputModel, 0)
	for _, bid := range bids {
		s = append(s, entity.LotBidOutputModel{
			Id:          bid.Id.String(),
			Amount:      bid.Amount.StringFixed(2),
			BidderName:  bid.BidderName,
			BidderEmail: bid.BidderEmail,
			CreatedAt:   bid.CreatedAt.Format(time.RFC3339),
		})
	}

	return s
}

func mapAccountBids(bids []entity.AccountBid) []entity.AccountBidOutputModel {
	s := make([]entity.AccountBidOutputModel, 0)
	for _, bid := range bids {
		s = append(s, entity.AccountBidOutputModel{
			Id:        bid.Id.String(),
			Amount:    bid.Amount.StringFixed(2),
			LotId:     bid.LotId.String(),
			LotNumber: bid.LotNumber,
			LotTitle:  bid.LotTitle,
			LotStatus: bid.LotStatus,
			CreatedAt: bid.CreatedAt.Format(time.RFC3339),
		})
	}

	return s
}

func mapAccount(a *entity.Account) *entity.AccountOutputModel {
	return &entity.AccountOutputModel{
		Id:             a.Id.String(),
		Name:           a.Name,
		Email:          a.Email,
		TaxId:          a.TaxId,
		Phone:          a.Phone,
		City:           a.City,
		State:          a.State,
		ApprovalStatus: a.ApprovalStatus,
		DocumentFront:  a.DocumentFront,
		DocumentBack:   a.DocumentBack,
		SelfieUrl:      a.SelfieUrl,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
	}
}

func mapAccounts(accounts []entity.Account) []entity.AccountOutputModel {
	s := make([]entity.AccountOutputModel, 0)
	for _, account := range accounts {
		s = append(s, *mapAccount(&account))
	}

	return s
}

func mapBanner(b *entity.Banner) *entity.BannerOutputModel {
	return &entity.BannerOutputModel{
		Id:        b.Id.String(),
		Title:     b.Title,
		ImageUrl:  b.ImageUrl,
		Link:      b.Link,
		Position:  b.Position,
		Active:    b.Active,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}

func mapBanners(banners []entity.Banner) []entity.BannerOutputModel {
	s := make([]entity.BannerOutputModel, 0)
	for _, banner := range banners {
		s = append(s, *mapBanner(&banner))
	}

	return s
}
