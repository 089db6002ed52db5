package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// repo model: the highest bid on a lot joined with the bidder's full
// contact record, as needed by settlement
type WinningBid struct {
	Bid
	Bidder Account
}

// SettlementSummary is a read-time projection, never persisted. Computing it
// twice for the same finalized lot yields identical output: every field
// derives from stored state, including FinalizedAt.
type SettlementSummary struct {
	Lot              SettlementLot     `json:"lot"`
	Winner           SettlementWinner  `json:"winner"`
	Amounts          SettlementAmounts `json:"amounts"`
	WinningBidAt     time.Time         `json:"winningBidAt"`
	FinalizedAt      time.Time         `json:"finalizedAt"`
	NotificationText string            `json:"notificationText"`
}

type SettlementLot struct {
	Id          string `json:"id"`
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type SettlementWinner struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	TaxId   string `json:"taxId"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type SettlementAmounts struct {
	BidAmount  decimal.Decimal `json:"bidAmount"`
	Commission decimal.Decimal `json:"commission"`
	AdminFee   decimal.Decimal `json:"adminFee"`
	Total      decimal.Decimal `json:"total"`
}
