package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"vendorhub/internal/domain"
)

// MockDraftRepo
type MockDraftRepo struct {
	mock.Mock
}

func (m *MockDraftRepo) Create(ctx context.Context, draft *domain.Draft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}
func (m *MockDraftRepo) GetByID(ctx context.Context, draftID string) (*domain.Draft, error) {
	args := m.Called(ctx, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Draft), args.Error(1)
}
func (m *MockDraftRepo) GetByVendorToken(ctx context.Context, token string) (*domain.Draft, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Draft), args.Error(1)
}
func (m *MockDraftRepo) SavePage(ctx context.Context, draftID string, step domain.Step, frag domain.Fragment) error {
	args := m.Called(ctx, draftID, step, frag)
	return args.Error(0)
}
func (m *MockDraftRepo) UpdateStep(ctx context.Context, draftID string, step domain.Step) error {
	args := m.Called(ctx, draftID, step)
	return args.Error(0)
}
func (m *MockDraftRepo) MarkSubmitted(ctx context.Context, draftID, vendorID string) (bool, error) {
	args := m.Called(ctx, draftID, vendorID)
	return args.Bool(0), args.Error(1)
}
func (m *MockDraftRepo) ListIdle(ctx context.Context, cutoff time.Time) ([]domain.Draft, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Draft), args.Error(1)
}
func (m *MockDraftRepo) ListSubmittedBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]string), args.Error(1)
}

// MockInvitationRepo
type MockInvitationRepo struct {
	mock.Mock
}

func (m *MockInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
func (m *MockInvitationRepo) GetByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}
func (m *MockInvitationRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockReferenceRepo
type MockReferenceRepo struct {
	mock.Mock
}

func (m *MockReferenceRepo) ListOptions(ctx context.Context) (map[string][]domain.Option, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.Option), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendInvitation(ctx context.Context, inv *domain.Invitation, onboardingURL string) error {
	args := m.Called(ctx, inv, onboardingURL)
	return args.Error(0)
}
func (m *MockEmailService) SendSubmissionConfirmation(ctx context.Context, email, name, companyName string) error {
	args := m.Called(ctx, email, name, companyName)
	return args.Error(0)
}
func (m *MockEmailService) SendInviterNotice(ctx context.Context, inviterEmail, companyName string) error {
	args := m.Called(ctx, inviterEmail, companyName)
	return args.Error(0)
}
func (m *MockEmailService) SendDraftReminder(ctx context.Context, email, name string, step domain.Step) error {
	args := m.Called(ctx, email, name, step)
	return args.Error(0)
}
