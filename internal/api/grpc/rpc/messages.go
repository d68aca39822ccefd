// Package rpc declares the accounts gRPC services, their messages and typed clients.
// Messages travel as JSON through the codec package.
package rpc

import "time"

type Empty struct{}

type CheckUniqueRequest struct {
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	NationalID string `json:"cnicNumber,omitempty"`
}

type CheckUniqueResponse struct {
	Success bool              `json:"success"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type RequestCodeRequest struct {
	Email string `json:"email"`
}

type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"otp"`
}

type RegisterRequest struct {
	FullName         string `json:"fullName"`
	FatherName       string `json:"fatherName,omitempty"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	NationalID       string `json:"cnicNumber"`
	PhoneCountryCode string `json:"countryCode,omitempty"`
	Phone            string `json:"phone"`
	Country          string `json:"country,omitempty"`
	City             string `json:"city,omitempty"`
	DateOfBirth      string `json:"dob,omitempty"`
	EducationLevel   string `json:"educationLevel,omitempty"`
	// NationalIDImage is the raw image, base64 in JSON.
	NationalIDImage            []byte `json:"cnicImage,omitempty"`
	NationalIDImageContentType string `json:"cnicImageContentType,omitempty"`
}

type RegisterResponse struct {
	AccountID string `json:"accountId"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      Profile   `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type Address struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Address string `json:"address"`
}

type Profile struct {
	ID               string    `json:"id"`
	FullName         string    `json:"fullName"`
	FatherName       string    `json:"fatherName"`
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

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

type NationalIDImageResponse struct {
	Data []byte `json:"data"`
}

type AddressList struct {
	Addresses []Address `json:"addresses"`
}

type AddAddressRequest struct {
	Label   string `json:"label"`
	Address string `json:"address"`
}

// UpdateAddressRequest changes only the fields that are set and not blank.
type UpdateAddressRequest struct {
	AddressID string  `json:"addressId"`
	Label     *string `json:"label,omitempty"`
	Address   *string `json:"address,omitempty"`
}

type DeleteAddressRequest struct {
	AddressID string `json:"addressId"`
}
