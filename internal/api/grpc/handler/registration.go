package handler

import (
	"bytes"
	"context"
	"net/http"

	"github.com/dtroode/airgo-accounts/internal/api/grpc/rpc"
	"github.com/dtroode/airgo-accounts/internal/logger"
	"github.com/dtroode/airgo-accounts/internal/service"
)

var _ rpc.RegistrationServer = (*Registration)(nil)

// Registration handles the unauthenticated sign-up endpoints.
type Registration struct {
	registration RegistrationService
	logger       *logger.Logger
}

func NewRegistration(registration RegistrationService, logger *logger.Logger) *Registration {
	return &Registration{
		registration: registration,
		logger:       logger,
	}
}

func (h *Registration) CheckUnique(ctx context.Context, req *rpc.CheckUniqueRequest) (*rpc.CheckUniqueResponse, error) {
	conflicts, err := h.registration.CheckUnique(ctx, service.UniqueFields{
		Email:      req.Email,
		Phone:      req.Phone,
		NationalID: req.NationalID,
	})
	if err != nil {
		h.logger.Error("Registration handler: uniqueness check failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	if len(conflicts) > 0 {
		return &rpc.CheckUniqueResponse{Success: false, Errors: conflicts}, nil
	}
	return &rpc.CheckUniqueResponse{Success: true}, nil
}

func (h *Registration) RequestCode(ctx context.Context, req *rpc.RequestCodeRequest) (*rpc.Empty, error) {
	h.logger.Debug("Registration handler: processing code request",
		"email", req.Email)

	if err := h.registration.RequestCode(ctx, req.Email); err != nil {
		return nil, handleError(err)
	}
	return &rpc.Empty{}, nil
}

func (h *Registration) VerifyCode(ctx context.Context, req *rpc.VerifyCodeRequest) (*rpc.Empty, error) {
	if err := h.registration.VerifyCode(ctx, req.Email, req.Code); err != nil {
		return nil, handleError(err)
	}
	return &rpc.Empty{}, nil
}

func (h *Registration) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.RegisterResponse, error) {
	h.logger.Debug("Registration handler: processing registration",
		"email", req.Email)

	params := service.RegisterParams{
		FullName:         req.FullName,
		GuardianName:     req.FatherName,
		Email:            req.Email,
		Password:         req.Password,
		NationalID:       req.NationalID,
		PhoneCountryCode: req.PhoneCountryCode,
		Phone:            req.Phone,
		Country:          req.Country,
		City:             req.City,
		DateOfBirth:      req.DateOfBirth,
		EducationLevel:   req.EducationLevel,
	}
	if len(req.NationalIDImage) > 0 {
		contentType := req.NationalIDImageContentType
		if contentType == "" {
			contentType = http.DetectContentType(req.NationalIDImage)
		}
		params.NationalIDImage = &service.ImageUpload{
			Reader:      bytes.NewReader(req.NationalIDImage),
			Size:        int64(len(req.NationalIDImage)),
			ContentType: contentType,
		}
	}

	id, err := h.registration.Register(ctx, params)
	if err != nil {
		return nil, handleError(err)
	}

	h.logger.Info("Registration handler: registration completed",
		"account_id", id)

	return &rpc.RegisterResponse{AccountID: id.String()}, nil
}
