package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// IdentityField names an account field that must be globally unique.
type IdentityField string

const (
	// FieldEmail is the account email.
	FieldEmail IdentityField = "email"
	// FieldPhone is the account phone number.
	FieldPhone IdentityField = "phone"
	// FieldNationalID is the national identity card number.
	FieldNationalID IdentityField = "national_id"
)

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	// Create inserts a new account. A unique-constraint violation is reported as *ConstraintError.
	Create(ctx context.Context, account Account) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
	// ExistsBy reports whether an account with the exact field value exists.
	ExistsBy(ctx context.Context, field IdentityField, value string) (bool, error)
	// UpdatePassword replaces the password hash and advances the token epoch.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (Account, error)
	// Delete removes the account together with its addresses.
	Delete(ctx context.Context, id uuid.UUID) error
}

// AddressStore defines persistence operations for addresses owned by an account.
type AddressStore interface {
	// ListAddresses returns ErrNotFound when the account does not exist.
	ListAddresses(ctx context.Context, accountID uuid.UUID) ([]Address, error)
	AddAddress(ctx context.Context, accountID uuid.UUID, address Address) error
	// UpdateAddress returns ErrNotFound when the address does not belong to the account.
	UpdateAddress(ctx context.Context, accountID uuid.UUID, address Address) error
	// DeleteAddress is a no-op when the address does not belong to the account.
	DeleteAddress(ctx context.Context, accountID, addressID uuid.UUID) error
}

// Account represents a registered identity with its credential material.
type Account struct {
	ID               uuid.UUID
	FullName         string
	GuardianName     string
	Email            string
	PasswordHash     string
	NationalID       string
	NationalIDImage  string
	PhoneCountryCode string
	Phone            string
	Country          string
	City             string
	DateOfBirth      string
	EducationLevel   string
	TokenEpoch       int64
	Addresses        []Address
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Address is a saved delivery address. It has no existence outside its owner.
type Address struct {
	ID      uuid.UUID `json:"id"`
	Label   string    `json:"label"`
	Address string    `json:"address"`
}

// AddressPatch holds a partial address update. Nil or blank fields keep prior values.
type AddressPatch struct {
	Label   *string
	Address *string
}

// AccountProfile is the public-safe projection of an account.
type AccountProfile struct {
	ID               uuid.UUID `json:"id"`
	FullName         string    `json:"fullName"`
	GuardianName     string    `json:"fatherName"`
	Email            string    `json:"email"`
	NationalID       string    `json:"cnicNumber"`
	NationalIDImage  string    `json:"cnicImage"`
	PhoneCountryCode string    `json:"countryCode"`
	Phone            string    `json:"phone"`
	Country          string    `json:"country"`
	City             string    `json:"city"`
	DateOfBirth      string    `json:"dob"`
	EducationLevel   string    `json:"educationLevel"`
	Addresses        []Address `json:"addresses"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Profile returns the projection of the account without credential material.
func (a Account) Profile() AccountProfile {
	addresses := a.Addresses
	if addresses == nil {
		addresses = []Address{}
	}
	return AccountProfile{
		ID:               a.ID,
		FullName:         a.FullName,
		GuardianName:     a.GuardianName,
		Email:            a.Email,
		NationalID:       a.NationalID,
		NationalIDImage:  a.NationalIDImage,
		PhoneCountryCode: a.PhoneCountryCode,
		Phone:            a.Phone,
		Country:          a.Country,
		City:             a.City,
		DateOfBirth:      a.DateOfBirth,
		EducationLevel:   a.EducationLevel,
		Addresses:        addresses,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}
