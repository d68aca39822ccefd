package handler

import (
	"github.com/dtroode/airgo-accounts/internal/api/grpc/rpc"
	"github.com/dtroode/airgo-accounts/internal/model"
)

func toRPCAddresses(in []model.Address) []rpc.Address {
	out := make([]rpc.Address, 0, len(in))
	for _, a := range in {
		out = append(out, rpc.Address{
			ID:      a.ID.String(),
			Label:   a.Label,
			Address: a.Address,
		})
	}
	return out
}

func toRPCProfile(p model.AccountProfile) rpc.Profile {
	return rpc.Profile{
		ID:               p.ID.String(),
		FullName:         p.FullName,
		FatherName:       p.GuardianName,
		Email:            p.Email,
		NationalID:       p.NationalID,
		NationalIDImage:  p.NationalIDImage,
		PhoneCountryCode: p.PhoneCountryCode,
		Phone:            p.Phone,
		Country:          p.Country,
		City:             p.City,
		DateOfBirth:      p.DateOfBirth,
		EducationLevel:   p.EducationLevel,
		Addresses:        toRPCAddresses(p.Addresses),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
