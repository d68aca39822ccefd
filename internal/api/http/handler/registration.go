package handler

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"

	apiErrors "github.com/dtroode/airgo-accounts/internal/api/errors"
	"github.com/dtroode/airgo-accounts/internal/logger"
	"github.com/dtroode/airgo-accounts/internal/service"
)

// MaxImageSize bounds the national ID image accepted on registration.
const MaxImageSize = 5 << 20

type verifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"otp"`
}

type registerRequest struct {
	FullName         string `json:"fullName"`
	FatherName       string `json:"fatherName"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	NationalID       string `json:"cnicNumber"`
	PhoneCountryCode string `json:"countryCode"`
	Phone            string `json:"phone"`
	Country          string `json:"country"`
	City             string `json:"city"`
	DateOfBirth      string `json:"dob"`
	EducationLevel   string `json:"educationLevel"`
}

func (r registerRequest) params() service.RegisterParams {
	return service.RegisterParams{
		FullName:         r.FullName,
		GuardianName:     r.FatherName,
		Email:            r.Email,
		Password:         r.Password,
		NationalID:       r.NationalID,
		PhoneCountryCode: r.PhoneCountryCode,
		Phone:            r.Phone,
		Country:          r.Country,
		City:             r.City,
		DateOfBirth:      r.DateOfBirth,
		EducationLevel:   r.EducationLevel,
	}
}

type checkUniqueResponse struct {
	Success bool              `json:"success"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type registerResponse struct {
	Message   string `json:"message"`
	AccountID string `json:"accountId"`
}

// Registration serves the public sign-up endpoints.
type Registration struct {
	registration RegistrationService
	logger       *logger.Logger
}

func NewRegistration(registration RegistrationService, logger *logger.Logger) *Registration {
	return &Registration{registration: registration, logger: logger}
}

func (h *Registration) CheckUnique(w http.ResponseWriter, r *http.Request) {
	var req service.UniqueFields
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	conflicts, err := h.registration.CheckUnique(r.Context(), req)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	if len(conflicts) > 0 {
		WriteJSON(w, http.StatusOK, checkUniqueResponse{Success: false, Errors: conflicts})
		return
	}
	WriteJSON(w, http.StatusOK, checkUniqueResponse{Success: true})
}

func (h *Registration) SendCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	if err := h.registration.RequestCode(r.Context(), req.Email); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, messageResponse{Message: "OTP sent successfully"})
}

func (h *Registration) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	if err := h.registration.VerifyCode(r.Context(), req.Email, req.Code); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, messageResponse{Message: "OTP verified successfully"})
}

// Register accepts either a JSON body or a multipart form carrying the
// cnicImage file next to the text fields.
func (h *Registration) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxImageSize+1<<20)

	var (
		params service.RegisterParams
		err    error
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		params, err = h.multipartParams(r)
	} else {
		var req registerRequest
		err = decodeJSON(r, &req)
		params = req.params()
	}
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	id, err := h.registration.Register(r.Context(), params)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusCreated, registerResponse{
		Message:   "Account created successfully",
		AccountID: id.String(),
	})
}

func (h *Registration) multipartParams(r *http.Request) (service.RegisterParams, error) {
	if err := r.ParseMultipartForm(MaxImageSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return service.RegisterParams{}, apiErrors.NewErrInvalidField("cnicImage", "image is too large")
		}
		return service.RegisterParams{}, apiErrors.NewErrInvalidField("body", "malformed multipart form")
	}

	req := registerRequest{
		FullName:         r.FormValue("fullName"),
		FatherName:       r.FormValue("fatherName"),
		Email:            r.FormValue("email"),
		Password:         r.FormValue("password"),
		NationalID:       r.FormValue("cnicNumber"),
		PhoneCountryCode: r.FormValue("countryCode"),
		Phone:            r.FormValue("phone"),
		Country:          r.FormValue("country"),
		City:             r.FormValue("city"),
		DateOfBirth:      r.FormValue("dob"),
		EducationLevel:   r.FormValue("educationLevel"),
	}
	params := req.params()

	file, header, err := r.FormFile("cnicImage")
	if errors.Is(err, http.ErrMissingFile) {
		return params, nil
	}
	if err != nil {
		return service.RegisterParams{}, apiErrors.NewErrInvalidField("cnicImage", "could not read image")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxImageSize+1))
	if err != nil {
		return service.RegisterParams{}, apiErrors.NewErrInvalidField("cnicImage", "could not read image")
	}
	if len(data) > MaxImageSize {
		return service.RegisterParams{}, apiErrors.NewErrInvalidField("cnicImage", "image is too large")
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	params.NationalIDImage = &service.ImageUpload{
		Reader:      bytes.NewReader(data),
		Size:        int64(len(data)),
		ContentType: contentType,
	}
	return params, nil
}

// DevCode returns the last code mailed to an address. It is mounted only with the development outbox.
func DevCode(inbox CodeInbox, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		if email == "" {
			WriteError(w, logger, apiErrors.NewErrMissingFields("email"))
			return
		}
		code, ok := inbox.Last(email)
		if !ok {
			WriteError(w, logger, apiErrors.NewErrOTPNotRequested())
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"email": email, "otp": code})
	}
}
