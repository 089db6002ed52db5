package entity

import (
	"time"

	"github.com/google/uuid"
)

// db model
type Banner struct {
	Id        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	ImageUrl  string    `json:"imageUrl" db:"image_url"`
	Link      string    `json:"link" db:"link"`
	Position  int       `json:"position" db:"position"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateBannerInput struct {
	Title    string
	ImageUrl string // required
	Link     string
	Position int
	Active   bool
}

// BannerPatch carries an admin partial update. Nil fields are left unchanged.
type BannerPatch struct {
	Title    *string
	ImageUrl *string
	Link     *string
	Position *int
	Active   *bool
}

func (p *BannerPatch) Empty() bool {
	return p.Title == nil && p.ImageUrl == nil && p.Link == nil &&
		p.Position == nil && p.Active == nil
}

// controller model
type BannerOutputModel struct {
	Id        string `json:"id"`
	Title     string `json:"title,omitempty"`
	ImageUrl  string `json:"imageUrl"`
	Link      string `json:"link,omitempty"`
	Position  int    `json:"position"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
}
