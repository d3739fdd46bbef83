package v1_test

import (
	"context"
	"errors"

	"childcare-cv-backend/internal/domain"
	"childcare-cv-backend/pkg/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
)

const validToken = "valid-token"

type fakeVerifier struct{}

func (fakeVerifier) Verify(token string) (*auth.SupabaseClaims, error) {
	if token != validToken {
		return nil, errors.New("token is malformed")
	}
	claims := &auth.SupabaseClaims{
		Email:            "camille@example.fr",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user1"},
	}
	claims.UserMetadata.FirstName = "Camille"
	claims.UserMetadata.LastName = "Martin"
	return claims, nil
}

// forUser matches a request context carrying the authenticated user id.
func forUser(userID string) any {
	return mock.MatchedBy(func(ctx context.Context) bool {
		id, _ := ctx.Value(domain.KeyUserID).(string)
		return id == userID
	})
}

type MockCandidateUsecase struct {
	mock.Mock
}

func (m *MockCandidateUsecase) GetOrCreateProfile(ctx context.Context, userID string, seed domain.ProfileSeed) (*domain.CandidateProfile, error) {
	args := m.Called(ctx, userID, seed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateProfile), args.Error(1)
}

func (m *MockCandidateUsecase) GetDashboard(ctx context.Context, userID string, seed domain.ProfileSeed) (*domain.Dashboard, error) {
	args := m.Called(ctx, userID, seed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}

func (m *MockCandidateUsecase) UpdatePersonalInfo(ctx context.Context, userID string, input *domain.PersonalInfoInput) (*domain.CandidateProfile, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateProfile), args.Error(1)
}

func (m *MockCandidateUsecase) UpdateProfessionalInfo(ctx context.Context, userID string, input *domain.ProfessionalInfoInput) (*domain.CandidateProfile, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateProfile), args.Error(1)
}

func (m *MockCandidateUsecase) SetVisibility(ctx context.Context, userID string, enabled bool) (*domain.CandidateProfile, error) {
	args := m.Called(ctx, userID, enabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateProfile), args.Error(1)
}

func (m *MockCandidateUsecase) DeleteAccount(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockExperienceUsecase struct {
	mock.Mock
}

func (m *MockExperienceUsecase) List(ctx context.Context, userID string) ([]domain.ProfessionalExperience, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProfessionalExperience), args.Error(1)
}

func (m *MockExperienceUsecase) Create(ctx context.Context, userID string, input *domain.ExperienceInput) (*domain.ProfessionalExperience, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfessionalExperience), args.Error(1)
}

func (m *MockExperienceUsecase) Update(ctx context.Context, userID, id string, input *domain.ExperienceInput) (*domain.ProfessionalExperience, error) {
	args := m.Called(ctx, userID, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfessionalExperience), args.Error(1)
}

func (m *MockExperienceUsecase) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

type MockPublicProfileUsecase struct {
	mock.Mock
}

func (m *MockPublicProfileUsecase) Resolve(ctx context.Context, slug string) (*domain.PublicProfile, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublicProfile), args.Error(1)
}

type MockUploadUsecase struct {
	mock.Mock
}

func (m *MockUploadUsecase) UploadProfilePhoto(ctx context.Context, userID, filename string, data []byte) (*domain.UploadResult, error) {
	args := m.Called(ctx, userID, filename, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadResult), args.Error(1)
}

func (m *MockUploadUsecase) UploadProofDocument(ctx context.Context, userID, credentialID, filename string, data []byte) (*domain.UploadResult, error) {
	args := m.Called(ctx, userID, credentialID, filename, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadResult), args.Error(1)
}

type MockHealthUsecase struct {
	mock.Mock
}

func (m *MockHealthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]string), args.Bool(1)
}

type MockCredentialUsecase struct {
	mock.Mock
}

func (m *MockCredentialUsecase) List(ctx context.Context, userID string) ([]domain.AcademicCredential, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AcademicCredential), args.Error(1)
}

func (m *MockCredentialUsecase) Create(ctx context.Context, userID string, input *domain.CredentialInput) (*domain.AcademicCredential, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AcademicCredential), args.Error(1)
}

func (m *MockCredentialUsecase) Update(ctx context.Context, userID, id string, input *domain.CredentialInput) (*domain.AcademicCredential, error) {
	args := m.Called(ctx, userID, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AcademicCredential), args.Error(1)
}

func (m *MockCredentialUsecase) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}
