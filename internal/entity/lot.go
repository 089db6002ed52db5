package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model
type Lot struct {
	Id          uuid.UUID           `json:"id" db:"id"`
	Number      int                 `json:"number" db:"number"`
	Title       string              `json:"title" db:"title"`
	Description string              `json:"description" db:"description"`
	Origin      string              `json:"origin" db:"origin"`
	StartingBid decimal.Decimal     `json:"startingBid" db:"starting_bid"`
	CurrentBid  decimal.NullDecimal `json:"currentBid" db:"current_bid"`
	Status      string              `json:"status" db:"status"`
	OpensAt     time.Time           `json:"opensAt" db:"opens_at"`
	ClosesAt    time.Time           `json:"closesAt" db:"closes_at"`
	PhotoUrls   []string            `json:"photoUrls" db:"photo_urls"`
	VideoUrl    string              `json:"videoUrl" db:"video_url"`
	FinalizedAt *time.Time          `json:"finalizedAt" db:"finalized_at"`
	CreatedAt   time.Time           `json:"createdAt" db:"created_at"`
}

// MinimumExceededBid is the amount a new bid has to beat: the current bid when
// one exists, the starting bid otherwise.
func (l *Lot) MinimumExceededBid() decimal.Decimal {
	if l.CurrentBid.Valid {
		return l.CurrentBid.Decimal
	}

	return l.StartingBid
}

// service + repo input model
type CreateLotInput struct {
	RequesterId string // given
	Title       string // given
	Description string // given
	Origin      string // given, may be empty
	StartingBid decimal.Decimal
	OpensAt     time.Time // zero value: service substitutes now
	ClosesAt    time.Time
	PhotoUrls   []string
	VideoUrl    string
	Status      string // should be set: "active"
	// Id, Number and CreatedAt are set by the database
}

// LotPatch carries an admin partial update. Nil fields are left unchanged.
// Status is deliberately absent: lifecycle transitions go through dedicated
// cancel/finalize operations.
type LotPatch struct {
	Title       *string
	Description *string
	Origin      *string
	StartingBid *decimal.Decimal
	OpensAt     *time.Time
	ClosesAt    *time.Time
	PhotoUrls   *[]string
	VideoUrl    *string
}

func (p *LotPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Origin == nil &&
		p.StartingBid == nil && p.OpensAt == nil && p.ClosesAt == nil &&
		p.PhotoUrls == nil && p.VideoUrl == nil
}

// repo list model: a lot plus its bid count
type LotListItem struct {
	Lot
	BidCount int `db:"bid_count"`
}

// controller model
type LotOutputModel struct {
	Id          string   `json:"id"`
	Number      int      `json:"number"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Origin      string   `json:"origin,omitempty"`
	StartingBid string   `json:"startingBid"`
	CurrentBid  *string  `json:"currentBid"`
	Status      string   `json:"status"`
	OpensAt     string   `json:"opensAt"`
	ClosesAt    string   `json:"closesAt"`
	PhotoUrls   []string `json:"photoUrls"`
	VideoUrl    string   `json:"videoUrl,omitempty"`
	BidCount    int      `json:"bidCount"`
	CreatedAt   string   `json:"createdAt"`
}

// controller model for the lot detail page: the lot plus its bid history,
// newest bid first
type LotDetailsOutputModel struct {
	LotOutputModel
	Bids []LotBidOutputModel `json:"bids"`
}
