package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	apiErrors "github.com/dtroode/airgo-accounts/internal/api/errors"
	"github.com/dtroode/airgo-accounts/internal/logger"
	"github.com/dtroode/airgo-accounts/internal/model"
)

// PasswordHasher hashes and verifies password credentials.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// ImageUpload is a national identity card image supplied at registration.
type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

// RegisterParams holds everything a client submits to complete registration.
type RegisterParams struct {
	FullName         string
	GuardianName     string
	Email            string
	Password         string
	NationalID       string
	PhoneCountryCode string
	Phone            string
	Country          string
	City             string
	DateOfBirth      string
	EducationLevel   string
	NationalIDImage  *ImageUpload
}

// Validate checks presence of required fields first, then the format of the present ones.
func (p RegisterParams) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"email", p.Email},
		{"password", p.Password},
		{"fullName", p.FullName},
		{"cnicNumber", p.NationalID},
		{"phone", p.Phone},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return apiErrors.NewErrMissingFields(missing...)
	}

	if err := validateEmail(p.Email); err != nil {
		return err
	}
	if err := validateRegistrationPassword(p.Password); err != nil {
		return err
	}
	if !namePattern.MatchString(strings.TrimSpace(p.FullName)) {
		return apiErrors.NewErrInvalidField("fullName", "full name must be 3 to 15 letters or spaces")
	}
	if guardian := strings.TrimSpace(p.GuardianName); guardian != "" && !namePattern.MatchString(guardian) {
		return apiErrors.NewErrInvalidField("fatherName", "father name must be 3 to 15 letters or spaces")
	}
	if !phonePattern.MatchString(p.Phone) {
		return apiErrors.NewErrInvalidField("phone", "phone must be 7 to 15 digits")
	}
	if normalizeNationalID(p.NationalID) == "" {
		return apiErrors.NewErrInvalidField("cnicNumber", "CNIC must contain digits")
	}

	return nil
}

// Registration drives the multi-step sign-up flow: uniqueness check, code request,
// code verification and account creation.
type Registration struct {
	accounts   model.AccountStore
	ledger     *OTPLedger
	uniqueness *Uniqueness
	hasher     PasswordHasher
	mailer     model.Mailer
	images     model.Storage
	now        func() time.Time
	logger     *logger.Logger
}

// NewRegistration creates the orchestrator. images may be nil, in which case uploaded
// national id images are rejected.
func NewRegistration(
	accounts model.AccountStore,
	ledger *OTPLedger,
	uniqueness *Uniqueness,
	hasher PasswordHasher,
	mailer model.Mailer,
	images model.Storage,
	logger *logger.Logger,
) *Registration {
	return &Registration{
		accounts:   accounts,
		ledger:     ledger,
		uniqueness: uniqueness,
		hasher:     hasher,
		mailer:     mailer,
		images:     images,
		now:        time.Now,
		logger:     logger,
	}
}

func (r *Registration) CheckUnique(ctx context.Context, fields UniqueFields) (map[string]string, error) {
	return r.uniqueness.CheckUnique(ctx, fields)
}

// RequestCode issues a verification code for email and mails it. When delivery fails the
// code stays valid so that a later verify with a code obtained out of band still works.
func (r *Registration) RequestCode(ctx context.Context, email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}

	code, err := r.ledger.Issue(ctx, email)
	if err != nil {
		return err
	}

	if err := r.mailer.SendOTP(ctx, email, code); err != nil {
		r.logger.Error("Registration service: failed to deliver verification code",
			"email", email,
			"error", err.Error())
		return apiErrors.NewErrDeliveryFailed()
	}

	r.logger.Info("Registration service: verification code sent",
		"email", email)

	return nil
}

func (r *Registration) VerifyCode(ctx context.Context, email, code string) error {
	var missing []string
	if strings.TrimSpace(email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(code) == "" {
		missing = append(missing, "otp")
	}
	if len(missing) > 0 {
		return apiErrors.NewErrMissingFields(missing...)
	}

	if err := r.ledger.Check(ctx, email, code); err != nil {
		r.logger.Info("Registration service: code verification failed",
			"email", email,
			"reason", apiErrors.CodeOf(err))
		return err
	}

	r.logger.Info("Registration service: email verified",
		"email", email)

	return nil
}

// Register creates the account for a verified email and returns its id.
// The verification record is consumed only when the account is persisted.
func (r *Registration) Register(ctx context.Context, params RegisterParams) (uuid.UUID, error) {
	if err := params.Validate(); err != nil {
		return uuid.Nil, err
	}

	r.logger.Debug("Registration service: completing registration",
		"email", params.Email)

	_, err := r.accounts.GetByEmail(ctx, params.Email)
	if err == nil {
		return uuid.Nil, apiErrors.NewErrDuplicateEmail(params.Email)
	}
	if !errors.Is(err, model.ErrNotFound) {
		r.logger.Error("Registration service: failed to get account by email",
			"email", params.Email,
			"error", err.Error())
		return uuid.Nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	if params.NationalIDImage != nil && r.images == nil {
		return uuid.Nil, apiErrors.NewErrInvalidField("cnicImage", "image uploads are not enabled")
	}

	record, ok := r.ledger.ConsumeOnRegister(ctx, params.Email)
	if !ok {
		return uuid.Nil, apiErrors.NewErrEmailNotVerified()
	}

	id, err := r.create(ctx, params)
	if err != nil {
		if r.ledger.Restore(ctx, params.Email, record) {
			r.logger.Debug("Registration service: verification restored after failed registration",
				"email", params.Email)
		}
		return uuid.Nil, err
	}

	r.logger.Info("Registration service: account created",
		"email", params.Email,
		"account_id", id)

	return id, nil
}

func (r *Registration) create(ctx context.Context, params RegisterParams) (uuid.UUID, error) {
	hash, err := r.hasher.Hash(params.Password)
	if err != nil {
		return uuid.Nil, apiErrors.NewErrInvalidField("password", "password cannot be used")
	}

	now := r.now()
	account := model.Account{
		ID:               uuid.New(),
		FullName:         strings.TrimSpace(params.FullName),
		GuardianName:     strings.TrimSpace(params.GuardianName),
		Email:            params.Email,
		PasswordHash:     hash,
		NationalID:       normalizeNationalID(params.NationalID),
		PhoneCountryCode: params.PhoneCountryCode,
		Phone:            params.Phone,
		Country:          params.Country,
		City:             params.City,
		DateOfBirth:      params.DateOfBirth,
		EducationLevel:   params.EducationLevel,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if img := params.NationalIDImage; img != nil {
		key := nationalIDImageKey(account.ID)
		if err := r.images.Upload(ctx, key, img.Reader, img.Size, img.ContentType); err != nil {
			r.logger.Error("Registration service: failed to upload national id image",
				"email", params.Email,
				"error", err.Error())
			return uuid.Nil, fmt.Errorf("failed to upload national id image: %w", err)
		}
		account.NationalIDImage = key
	}

	created, err := r.accounts.Create(ctx, account)
	if err != nil {
		r.discardImage(ctx, account.NationalIDImage)

		var constraintErr *model.ConstraintError
		if errors.As(err, &constraintErr) {
			r.logger.Info("Registration service: identity already registered",
				"email", params.Email,
				"field", constraintErr.Field)
			if constraintErr.Field == model.FieldEmail {
				return uuid.Nil, apiErrors.NewErrDuplicateEmail(params.Email)
			}
			return uuid.Nil, apiErrors.NewErrDuplicateField(fieldName(constraintErr.Field))
		}

		r.logger.Error("Registration service: failed to create account",
			"email", params.Email,
			"error", err.Error())
		return uuid.Nil, fmt.Errorf("failed to create account: %w", err)
	}

	return created.ID, nil
}

func (r *Registration) discardImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := r.images.Delete(ctx, key); err != nil {
		r.logger.Error("Registration service: failed to remove orphaned national id image",
			"key", key,
			"error", err.Error())
	}
}

func nationalIDImageKey(accountID uuid.UUID) string {
	return "national-id/" + accountID.String()
}

// fieldName maps an identity field to the name clients submit it under.
func fieldName(field model.IdentityField) string {
	return conflicts[field].key
}
