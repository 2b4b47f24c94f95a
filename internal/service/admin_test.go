package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"vendorhub/internal/domain"
	"vendorhub/internal/service"
)

func TestAdminService_CreateInvitation(t *testing.T) {
	ctx := context.Background()
	req := service.CreateInvitationRequest{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@vendor.example",
		CompanyName:  "Acme Media",
		InviterEmail: "buyer@example.com",
	}

	t.Run("PersistsAndEmails", func(t *testing.T) {
		inviteRepo := new(MockInvitationRepo)
		emailSvc := new(MockEmailService)
		inviteRepo.On("Create", ctx, mock.MatchedBy(func(inv *domain.Invitation) bool {
			return inv.Token != "" && inv.CompanyName == "Acme Media" && inv.ExpiresOn.After(time.Now())
		})).Return(nil)
		emailSvc.On("SendInvitation", ctx, mock.Anything, mock.MatchedBy(func(link string) bool {
			return len(link) > 0
		})).Return(nil)

		svc := service.NewAdminService(inviteRepo, emailSvc, "http://localhost:3000/onboarding", 30*24*time.Hour)
		inv, err := svc.CreateInvitation(ctx, req)
		assert.NoError(t, err)
		assert.NotEmpty(t, inv.Token)
		emailSvc.AssertExpectations(t)
	})

	t.Run("EmailFailureStillCreates", func(t *testing.T) {
		inviteRepo := new(MockInvitationRepo)
		emailSvc := new(MockEmailService)
		inviteRepo.On("Create", ctx, mock.Anything).Return(nil)
		emailSvc.On("SendInvitation", ctx, mock.Anything, mock.Anything).Return(errors.New("sendgrid down"))

		svc := service.NewAdminService(inviteRepo, emailSvc, "http://localhost:3000/onboarding", 30*24*time.Hour)
		inv, err := svc.CreateInvitation(ctx, req)
		assert.NoError(t, err)
		assert.NotNil(t, inv)
	})

	t.Run("MissingFieldsRejected", func(t *testing.T) {
		svc := service.NewAdminService(new(MockInvitationRepo), new(MockEmailService), "http://localhost:3000/onboarding", 30*24*time.Hour)
		_, err := svc.CreateInvitation(ctx, service.CreateInvitationRequest{FirstName: "Ada"})
		assert.Error(t, err)
	})

	t.Run("RepoFailurePropagates", func(t *testing.T) {
		inviteRepo := new(MockInvitationRepo)
		inviteRepo.On("Create", ctx, mock.Anything).Return(errors.New("db down"))

		svc := service.NewAdminService(inviteRepo, new(MockEmailService), "http://localhost:3000/onboarding", 30*24*time.Hour)
		_, err := svc.CreateInvitation(ctx, req)
		assert.Error(t, err)
	})
}
