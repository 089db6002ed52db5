package entity

import (
	"time"

	"github.com/google/uuid"
)

// db model
type Account struct {
	Id             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	TaxId          string    `json:"taxId" db:"tax_id"`
	Phone          string    `json:"phone" db:"phone"`
	PostalCode     string    `json:"postalCode" db:"postal_code"`
	Street         string    `json:"street" db:"street"`
	StreetNumber   string    `json:"streetNumber" db:"street_number"`
	Unit           string    `json:"unit" db:"unit"`
	District       string    `json:"district" db:"district"`
	City           string    `json:"city" db:"city"`
	State          string    `json:"state" db:"state"`
	ApprovalStatus string    `json:"approvalStatus" db:"approval_status"`
	DocumentFront  string    `json:"documentFrontUrl" db:"document_front_url"`
	DocumentBack   string    `json:"documentBackUrl" db:"document_back_url"`
	SelfieUrl      string    `json:"selfieUrl" db:"selfie_url"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// controller + service input model, carries the plaintext password
type RegisterAccountInput struct {
	Name          string
	Email         string
	Password      string
	TaxId         string
	Phone         string
	PostalCode    string
	Street        string
	StreetNumber  string
	Unit          string
	District      string
	City          string
	State         string
	DocumentFront string
	DocumentBack  string
	SelfieUrl     string
}

// repo input model. PasswordHash is already bcrypt-hashed by the service;
// the plaintext never reaches the repository.
type CreateAccountInput struct {
	Name           string
	Email          string
	PasswordHash   string
	TaxId          string
	Phone          string
	PostalCode     string
	Street         string
	StreetNumber   string
	Unit           string
	District       string
	City           string
	State          string
	DocumentFront  string
	DocumentBack   string
	SelfieUrl      string
	ApprovalStatus string // should be set: "pending"
}

// controller model. Never exposes the password hash.
type AccountOutputModel struct {
	Id             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	TaxId          string `json:"taxId"`
	Phone          string `json:"phone"`
	City           string `json:"city"`
	State          string `json:"state"`
	ApprovalStatus string `json:"approvalStatus"`
	DocumentFront  string `json:"documentFrontUrl,omitempty"`
	DocumentBack   string `json:"documentBackUrl,omitempty"`
	SelfieUrl      string `json:"selfieUrl,omitempty"`
	CreatedAt      string `json:"createdAt"`
}
