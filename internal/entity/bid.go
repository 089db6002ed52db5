package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model. Bids are append-only: no update path exists anywhere in the
// repository layer, they disappear only when their lot is deleted.
type Bid struct {
	Id        uuid.UUID       `json:"id" db:"id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	LotId     uuid.UUID       `json:"lotId" db:"lot_id"`
	AccountId uuid.UUID       `json:"accountId" db:"account_id"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// service + repo input model
type PlaceBidInput struct {
	LotId     uuid.UUID
	AccountId uuid.UUID
	Amount    decimal.Decimal
	PlacedAt  time.Time // the single "now" read for the whole acceptance check
}

// repo model: a bid joined with its bidder's public fields
type BidWithBidder struct {
	Bid
	BidderName  string `db:"bidder_name"`
	BidderEmail string `db:"bidder_email"`
}

// repo model: a bid joined with its lot, for an account's own bid history
type AccountBid struct {
	Bid
	LotNumber int    `db:"lot_number"`
	LotTitle  string `db:"lot_title"`
	LotStatus string `db:"lot_status"`
}

// controller model
type BidOutputModel struct {
	Id        string `json:"id"`
	Amount    string `json:"amount"`
	LotId     string `json:"lotId"`
	AccountId string `json:"accountId"`
	CreatedAt string `json:"createdAt"`
}

// controller model for a lot's bid history
type LotBidOutputModel struct {
	Id          string `json:"id"`
	Amount      string `json:"amount"`
	BidderName  string `json:"bidderName"`
	BidderEmail string `json:"bidderEmail"`
	CreatedAt   string `json:"createdAt"`
}

// controller model for an account's own bids
type AccountBidOutputModel struct {
	Id        string `json:"id"`
	Amount    string `json:"amount"`
	LotId     string `json:"lotId"`
	LotNumber int    `json:"lotNumber"`
	LotTitle  string `json:"lotTitle"`
	LotStatus string `json:"lotStatus"`
	CreatedAt string `json:"createdAt"`
}
