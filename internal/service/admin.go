package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"vendorhub/internal/domain"
	"vendorhub/internal/logger"
	"vendorhub/internal/repository"
)

// CreateInvitationRequest carries the inviter-supplied fields for a new
// vendor invitation.
type CreateInvitationRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	CompanyName  string `json:"companyName"`
	InviterEmail string `json:"inviterEmail"`
}

type adminService struct {
	inviteRepo    repository.InvitationRepository
	emailSvc      EmailService
	onboardingURL string
	inviteTTL     time.Duration
}

func NewAdminService(inviteRepo repository.InvitationRepository, emailSvc EmailService, onboardingURL string, inviteTTL time.Duration) AdminService {
	return &adminService{
		inviteRepo:    inviteRepo,
		emailSvc:      emailSvc,
		onboardingURL: onboardingURL,
		inviteTTL:     inviteTTL,
	}
}

func (s *adminService) CreateInvitation(ctx context.Context, req CreateInvitationRequest) (*domain.Invitation, error) {
	if req.Email == "" || req.CompanyName == "" {
		return nil, fmt.Errorf("email and company name are required")
	}

	now := time.Now().UTC()
	inv := &domain.Invitation{
		Token:        uuid.New().String(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		CompanyName:  req.CompanyName,
		InviterEmail: req.InviterEmail,
		CreatedOn:    now,
		ExpiresOn:    now.Add(s.inviteTTL),
	}

	if err := s.inviteRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	link := fmt.Sprintf("%s?vendor=%s&email=%s", s.onboardingURL, inv.Token, url.QueryEscape(inv.InviterEmail))
	if err := s.emailSvc.SendInvitation(ctx, inv, link); err != nil {
		// The invitation exists; the link can be resent manually.
		logger.Error("failed to send invitation email", "token", inv.Token, "error", err)
	}

	logger.Info("invitation created", "token", inv.Token, "company", inv.CompanyName)
	return inv, nil
}
